package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"lintel/internal/diagfmt"
	"lintel/internal/driver"
	"lintel/internal/ui"
	"lintel/internal/version"
)

const stdinName = "<stdin>"

func newLintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint [flags] [file.js|directory|-]...",
		Short: "Lint files and directories",
		Long: `Lint analyzes JavaScript files. Directories are walked for .js, .mjs and .cjs
files, honouring .gitignore; "-" reads one file from stdin. The exit status is 1
when an error diagnostic remains after filtering.`,
		Args: cobra.ArbitraryArgs,
		RunE: runLint,
	}
	addConfigFlags(cmd)
	cmd.Flags().String("format", "pretty", "output format (pretty|short|json|sarif|eslint)")
	cmd.Flags().Bool("no-warnings", false, "drop warnings")
	cmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	cmd.Flags().Int("jobs", 0, "max files analyzed in parallel (0=auto)")
	cmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	cmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	cmd.Flags().Bool("cache", false, "reuse results for unchanged files")
	cmd.Flags().String("cache-dir", "", "cache location (default $XDG_CACHE_HOME/lintel)")
	cmd.Flags().String("ui", "auto", "progress UI on stderr (auto|on|off)")
	return cmd
}

func runLint(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	format, err := flags.GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "short", "json", "sarif", "eslint":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	noWarnings, err := flags.GetBool("no-warnings")
	if err != nil {
		return fmt.Errorf("failed to get no-warnings flag: %w", err)
	}
	warningsAsErrors, err := flags.GetBool("warnings-as-errors")
	if err != nil {
		return fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	if noWarnings && warningsAsErrors {
		return fmt.Errorf("no-warnings and warnings-as-errors flags cannot be used together")
	}
	jobs, err := flags.GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	withNotes, err := flags.GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	fullPath, err := flags.GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	useCache, err := flags.GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}
	cacheDir, err := flags.GetString("cache-dir")
	if err != nil {
		return fmt.Errorf("failed to get cache-dir flag: %w", err)
	}
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	persistent := cmd.Root().PersistentFlags()
	maxDiagnostics, err := persistent.GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	showTimings, err := persistent.GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	quiet, err := persistent.GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}

	opts := driver.Options{
		Config:           cfg,
		Jobs:             jobs,
		MaxDiagnostics:   maxDiagnostics,
		IgnoreWarnings:   noWarnings,
		WarningsAsErrors: warningsAsErrors,
		EnableTimings:    showTimings,
		Logger:           log,
	}
	if useCache {
		cache, err := driver.OpenDiskCache("lintel", cacheDir)
		if err != nil {
			return err
		}
		log.Debug("using cache", "dir", cache.Dir())
		opts.Cache = cache
	}

	var results []driver.FileResult
	if len(args) == 1 && args[0] == "-" {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		results = []driver.FileResult{driver.LintSource(stdinName, content, opts)}
	} else {
		if len(args) == 0 {
			args = []string{"."}
		}
		paths, err := driver.ListSources(args)
		if err != nil {
			return err
		}
		log.Debug("discovered sources", "files", len(paths))
		stderr := cmd.ErrOrStderr()
		if shouldUseTUI(mode, len(paths), stderr) && !quiet {
			results, err = ui.RunLint(cmd.Context(), "lint", paths, opts, stderr)
		} else {
			results, err = driver.LintPaths(cmd.Context(), paths, opts)
		}
		if err != nil {
			return err
		}
	}

	pathMode := diagfmt.PathModeRelative
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	if err := writeReports(cmd, format, driver.Reports(results), pathMode, withNotes, quiet); err != nil {
		return err
	}
	if showTimings {
		if err := driver.WriteTimings(cmd.ErrOrStderr(), results, format == "json"); err != nil {
			return err
		}
	}

	for i := range results {
		if results[i].HasErrors() {
			return exitError{code: 1}
		}
	}
	return nil
}

func writeReports(cmd *cobra.Command, format string, reports []diagfmt.FileReport, pathMode diagfmt.PathMode, withNotes, quiet bool) error {
	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		color, err := useColor(cmd, out)
		if err != nil {
			return err
		}
		diagfmt.Pretty(out, reports, diagfmt.PrettyOpts{
			Color:     color,
			PathMode:  pathMode,
			Context:   1,
			ShowNotes: withNotes,
			Summary:   !quiet,
		})
		return nil
	case "short":
		diagfmt.Short(out, reports, pathMode)
		return nil
	case "json":
		return diagfmt.JSON(out, reports, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     withNotes,
		})
	case "sarif":
		return diagfmt.Sarif(out, reports, diagfmt.SarifRunMeta{
			ToolName:    "lintel",
			ToolVersion: version.Version,
		})
	case "eslint":
		return diagfmt.ESLintJSON(out, reports, pathMode)
	}
	return fmt.Errorf("unknown format: %s", format)
}
