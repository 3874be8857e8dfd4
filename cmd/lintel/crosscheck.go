package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"lintel/internal/driver"
	"lintel/internal/source"
	"lintel/internal/xcheck"
)

func newCrosscheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crosscheck [flags] file.js|directory...",
		Short: "Compare syntax errors against the tree-sitter JavaScript grammar",
		Long: `Crosscheck parses every file with both lintel and tree-sitter and reports files
where only one of them finds a syntax error. The exit status is 1 on any
disagreement.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runCrosscheck,
	}
	addConfigFlags(cmd)
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	cmd.Flags().Bool("all", false, "list files where both parsers agree too")
	return cmd
}

func runCrosscheck(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	all, err := cmd.Flags().GetBool("all")
	if err != nil {
		return fmt.Errorf("failed to get all flag: %w", err)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}

	paths, err := driver.ListSources(args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	reports := make([]*xcheck.Report, 0, len(paths))
	disagree := 0
	for _, path := range paths {
		fs := source.NewFileSet()
		id, err := fs.Load(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		report, err := xcheck.Check(ctx, fs, fs.Get(id), cfg)
		if err != nil {
			return err
		}
		log.Debug("crosschecked", "file", path, "verdict", report.Verdict())
		if !report.Agree() {
			disagree++
		}
		if all || !report.Agree() {
			reports = append(reports, report)
		}
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			return err
		}
	} else {
		writeCrosscheckPretty(out, reports)
		fmt.Fprintf(out, "%d files checked, %d disagreements\n", len(paths), disagree)
	}
	if disagree > 0 {
		return exitError{code: 1}
	}
	return nil
}

func writeCrosscheckPretty(w io.Writer, reports []*xcheck.Report) {
	for _, r := range reports {
		fmt.Fprintf(w, "%s: %s\n", r.Path, r.Verdict())
		for _, is := range r.Lintel {
			fmt.Fprintf(w, "  lintel      %d:%d %s\n", is.Line, is.Column, is.Message)
		}
		for _, is := range r.TreeSitter {
			fmt.Fprintf(w, "  tree-sitter %d:%d %s\n", is.Line, is.Column, is.Message)
		}
	}
}
