package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lintel/internal/lint"
	"lintel/internal/symbols"
)

// addConfigFlags registers the analysis configuration flags shared by the
// commands that run the front end.
func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "rule configuration file (.toml, .yaml, .yml)")
	cmd.Flags().StringArray("rule", nil, "override a rule: id=off|warn|error[:option] (repeatable)")
	cmd.Flags().String("source-type", "", "module or script (default module)")
	cmd.Flags().String("env", "", "comma-separated global environments (es2021,browser,node)")
	cmd.Flags().Bool("parallel-rules", false, "evaluate rules of one file concurrently")
}

// loadConfig layers defaults, the --config file, --source-type, --env and
// --rule overrides, in that order.
func loadConfig(cmd *cobra.Command) (lint.Config, error) {
	cfg := lint.DefaultConfig()

	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return cfg, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		file, err := lint.LoadFile(path)
		if err != nil {
			return cfg, err
		}
		if cfg, err = file.Apply(cfg); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
	}

	sourceType, err := cmd.Flags().GetString("source-type")
	if err != nil {
		return cfg, fmt.Errorf("failed to get source-type flag: %w", err)
	}
	if sourceType != "" {
		if cfg.SourceType, err = lint.ParseSourceType(sourceType); err != nil {
			return cfg, err
		}
	}

	envs, err := cmd.Flags().GetString("env")
	if err != nil {
		return cfg, fmt.Errorf("failed to get env flag: %w", err)
	}
	if envs != "" {
		if cfg.Envs, err = symbols.ParseEnvs(envs); err != nil {
			return cfg, err
		}
	}

	overrides, err := cmd.Flags().GetStringArray("rule")
	if err != nil {
		return cfg, fmt.Errorf("failed to get rule flag: %w", err)
	}
	for _, o := range overrides {
		id, raw, err := lint.ParseRuleFlag(o)
		if err != nil {
			return cfg, err
		}
		if cfg, err = cfg.Override(id, raw); err != nil {
			return cfg, err
		}
	}

	parallel, err := cmd.Flags().GetBool("parallel-rules")
	if err != nil {
		return cfg, fmt.Errorf("failed to get parallel-rules flag: %w", err)
	}
	cfg.Parallel = parallel
	return cfg, nil
}
