package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lintel/internal/diagfmt"
	"lintel/internal/driver"
)

const validateUsage = "Usage: lintel validate <file.js>"

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file.js>",
		Short: "Print the diagnostics of one file as a JSON array",
		Long: `Validate analyzes one file with the default rule set and prints a compact JSON
array of {message, line, column, ruleId} objects to stdout. The exit status is 0
whatever the findings. When the file cannot be analyzed, a single message with
line 0, column 0 and ruleId "error" is printed to stderr and the exit status is 1.`,
		Args: cobra.ArbitraryArgs,
		RunE: runValidate,
	}
	addConfigFlags(cmd)
	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	stderr := cmd.ErrOrStderr()
	if len(args) < 1 {
		fmt.Fprintln(stderr, validateUsage)
		return exitError{code: 1}
	}

	fail := func(err error) error {
		if werr := diagfmt.WriteMessages(stderr, diagfmt.Sentinel(err)); werr != nil {
			return werr
		}
		return exitError{code: 1}
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return fail(err)
	}
	log, err := newLogger(cmd)
	if err != nil {
		return fail(err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	res := driver.LintFile(args[0], driver.Options{Config: cfg, Logger: log, EnableTimings: showTimings})
	if res.Report.Failure != nil {
		return fail(res.Report.Failure)
	}
	if err := diagfmt.ValidatorJSON(cmd.OutOrStdout(), &res.Report); err != nil {
		return err
	}
	if showTimings {
		return driver.WriteTimings(stderr, []driver.FileResult{res}, false)
	}
	return nil
}
