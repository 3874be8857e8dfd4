package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"lintel/internal/version"
)

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show lintel version",
		Args:  cobra.NoArgs,
		RunE:  runVersion,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	cmd.Flags().Bool("full", false, "include commit, build date and Go version")
	return cmd
}

func runVersion(cmd *cobra.Command, _ []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	full, err := cmd.Flags().GetBool("full")
	if err != nil {
		return fmt.Errorf("failed to get full flag: %w", err)
	}

	out := cmd.OutOrStdout()
	info := version.Current()
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	case "pretty":
		if full {
			fmt.Fprintln(out, info.String())
			return nil
		}
		color, err := useColor(cmd, out)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "lintel %s\n", version.Colored(color))
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
