package ports

// Logger defines the interface for logging.
//
//go:generate mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	Info(msg string)
	Warn(msg string)
	Error(err error)
	// Output logs one line written by a tool building component. Empty component means no prefix.
	Output(component, line string, stderr bool)
}
