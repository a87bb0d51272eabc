// Package commands implements the CLI commands for rockbuild.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/rockbuild/internal/adapters/detector" //nolint:depguard // Log format detection happens at the CLI edge
	"go.trai.ch/rockbuild/internal/app"
	"go.trai.ch/rockbuild/internal/build"
	"go.trai.ch/rockbuild/internal/core/domain"
)

// CLI represents the command line interface for rockbuild.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Build(ctx context.Context, opts app.Options) error
	Plan(ctx context.Context, opts app.Options) (*domain.BuildPlan, error)
	Status(ctx context.Context, opts app.Options) ([]domain.BuildRecord, error)
	SetLogJSON(enable bool)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	c := &CLI{app: a}

	rootCmd := &cobra.Command{
		Use:           "rockbuild",
		Short:         "Build RocksDB and its compression libraries for native linking",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			c.app.SetLogJSON(logJSON(cmd))
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	pf := rootCmd.PersistentFlags()
	pf.StringP("root", "C", ".", "Project root holding the vendored source trees")
	pf.String("target", "", "Target triple (default: $TARGET, then the host)")
	pf.String("out-dir", "", "Output directory (default: $OUT_DIR, then target/rockbuild)")
	pf.StringSlice("features", nil, "Comma separated optional libraries to build, replacing the defaults")
	pf.Bool("no-default-features", false, "Disable every optional library not named by --features or rockbuild.yaml")
	pf.String("log-format", "auto", "Log format: auto, pretty or json (auto picks json when stderr is not a terminal or CI is set)")
	pf.Bool("log-json", false, "Write logs as JSON (shorthand for --log-format json)")

	c.rootCmd = rootCmd
	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newPlanCmd())
	rootCmd.AddCommand(c.newStatusCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// logJSON resolves the log format. An explicit --log-json wins over --log-format and detection.
func logJSON(cmd *cobra.Command) bool {
	if cmd.Flags().Changed("log-json") {
		enable, _ := cmd.Flags().GetBool("log-json")
		return enable
	}
	format, _ := cmd.Flags().GetString("log-format")
	return detector.ResolveLogFormat(detector.DetectLogFormat(), format) == detector.FormatJSON
}

// options reads the flags shared by every command.
func options(cmd *cobra.Command) app.Options {
	root, _ := cmd.Flags().GetString("root")
	target, _ := cmd.Flags().GetString("target")
	outDir, _ := cmd.Flags().GetString("out-dir")
	noDefault, _ := cmd.Flags().GetBool("no-default-features")

	opts := app.Options{
		Root:              root,
		Target:            target,
		OutDir:            outDir,
		NoDefaultFeatures: noDefault,
	}
	if cmd.Flags().Changed("features") {
		features, _ := cmd.Flags().GetStringSlice("features")
		opts.Features = append([]string{}, features...)
	}
	return opts
}
