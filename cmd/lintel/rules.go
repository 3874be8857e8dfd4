package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"lintel/internal/lint"
	"lintel/internal/rules"
)

type ruleInfo struct {
	ID      string `json:"id"`
	Level   string `json:"level"`
	Option  any    `json:"option,omitempty"`
	Default string `json:"default"`
	Doc     string `json:"doc"`
}

func newRulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the available rules and their effective settings",
		Args:  cobra.NoArgs,
		RunE:  runRules,
	}
	addConfigFlags(cmd)
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runRules(cmd *cobra.Command, _ []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	infos := collectRules(cfg)

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	case "pretty":
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "RULE\tLEVEL\tOPTION\tDESCRIPTION")
		for _, r := range infos {
			opt := "-"
			if r.Option != nil {
				opt = fmt.Sprint(r.Option)
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.ID, r.Level, opt, r.Doc)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func collectRules(cfg lint.Config) []ruleInfo {
	out := make([]ruleInfo, 0, len(rules.Registry()))
	for _, r := range rules.Registry() {
		setting := cfg.Rule(r.ID)
		out = append(out, ruleInfo{
			ID:      r.ID,
			Level:   setting.Level.String(),
			Option:  setting.Option,
			Default: lint.DefaultLevel(r).String(),
			Doc:     r.Doc,
		})
	}
	return out
}
