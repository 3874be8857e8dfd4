package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"lintel/internal/logging"
	"lintel/internal/version"
)

// exitError ends the process with code without printing anything more.
type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// newRootCmd assembles the command tree. The returned profiler must be
// stopped once Execute returns.
func newRootCmd() (*cobra.Command, *profiler) {
	profiling := &profiler{}
	root := &cobra.Command{
		Use:   "lintel",
		Short: "Static analyzer for JavaScript",
		Long: `lintel checks JavaScript (ES2021) sources for syntax errors, undefined and
unused bindings, missing semicolons, quote style, excessive complexity and eval.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return profiling.start(cmd)
		},
	}

	// Глобальные флаги
	root.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	root.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	root.PersistentFlags().Bool("timings", false, "show timing information")
	root.PersistentFlags().Int("max-diagnostics", 0, "maximum number of diagnostics per file (0 = all)")
	root.PersistentFlags().String("log-level", "", "log level (trace|debug|info|warn|error|off); env "+logging.EnvLevel)
	root.PersistentFlags().Bool("log-json", false, "emit logs as JSON")
	root.PersistentFlags().String("cpu-profile", "", "write CPU profile to file")
	root.PersistentFlags().String("mem-profile", "", "write heap profile to file")
	root.PersistentFlags().String("runtime-trace", "", "write Go runtime trace to file")

	root.AddCommand(newLintCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newTokenizeCmd())
	root.AddCommand(newParseCmd())
	root.AddCommand(newRulesCmd())
	root.AddCommand(newCrosscheckCmd())
	root.AddCommand(newVersionCmd())
	return root, profiling
}

// main runs the root command. An exitError sets the status quietly; any
// other error is printed to stderr and exits with 2.
func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	root, profiling := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.Execute()
	if perr := profiling.stop(); perr != nil {
		fmt.Fprintf(stderr, "lintel: %v\n", perr)
	}
	if err == nil {
		return 0
	}
	var exit exitError
	if errors.As(err, &exit) {
		return exit.code
	}
	fmt.Fprintf(stderr, "lintel: %v\n", err)
	return 2
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// useColor resolves --color for the given stream.
func useColor(cmd *cobra.Command, w io.Writer) (bool, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch colorFlag {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto":
		return isTerminal(w) && os.Getenv("NO_COLOR") == "", nil
	}
	return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
}

// newLogger builds the hclog logger from --log-level/--log-json. Logs go to stderr.
func newLogger(cmd *cobra.Command) (hclog.Logger, error) {
	level, err := cmd.Root().PersistentFlags().GetString("log-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get log-level flag: %w", err)
	}
	asJSON, err := cmd.Root().PersistentFlags().GetBool("log-json")
	if err != nil {
		return nil, fmt.Errorf("failed to get log-json flag: %w", err)
	}
	return logging.New(logging.Options{
		Name:       "lintel",
		Level:      level,
		JSONFormat: asJSON,
		Output:     cmd.ErrOrStderr(),
	})
}
