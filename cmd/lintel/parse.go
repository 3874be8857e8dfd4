package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lintel/internal/diag"
	"lintel/internal/diagfmt"
	"lintel/internal/driver"
	"lintel/internal/source"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] file.js",
		Short: "Parse a JavaScript source file and print its AST",
		Long:  `Parse runs the lexer, parser and scope resolver and prints the syntax tree`,
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}
	addConfigFlags(cmd)
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Parse(args[0], cfg)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	if len(result.Diagnostics) > 0 {
		if err := printFrontDiagnostics(cmd, result.FileSet, result.File, result.Diagnostics); err != nil {
			return err
		}
	}

	unit := result.Unit
	switch format {
	case "pretty":
		return diagfmt.FormatASTPretty(cmd.OutOrStdout(), unit.Builder, unit.Program, result.FileSet)
	case "json":
		return diagfmt.FormatASTJSON(cmd.OutOrStdout(), unit.Builder, unit.Program, result.FileSet)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// printFrontDiagnostics pretty-prints lexer/parser findings to stderr.
func printFrontDiagnostics(cmd *cobra.Command, fs *source.FileSet, file *source.File, diags []diag.Diagnostic) error {
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if quiet {
		return nil
	}
	stderr := cmd.ErrOrStderr()
	color, err := useColor(cmd, stderr)
	if err != nil {
		return err
	}
	report := diagfmt.FileReport{Path: file.Path, FileSet: fs, File: file, Diagnostics: diags}
	diagfmt.Pretty(stderr, []diagfmt.FileReport{report}, diagfmt.PrettyOpts{Color: color, Context: 2})
	return nil
}
