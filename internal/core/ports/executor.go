package ports

import (
	"context"
	"io"

	"go.trai.ch/rockbuild/internal/core/domain"
)

// Executor defines the interface for running external programs.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the command and waits for it to exit.
	// Output is copied to stdout and stderr as it is produced.
	// It returns an error carrying the exit code if the command fails.
	Execute(ctx context.Context, cmd *domain.Command, stdout, stderr io.Writer) error
}
