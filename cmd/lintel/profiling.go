package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lintel/internal/prof"
)

// profiler holds the session started by the root command's pre-run hook.
type profiler struct {
	session *prof.Session
}

// start reads the persistent profiling flags and enables the profilers.
func (p *profiler) start(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	cpu, err := flags.GetString("cpu-profile")
	if err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	mem, err := flags.GetString("mem-profile")
	if err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	tracePath, err := flags.GetString("runtime-trace")
	if err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	opts := prof.Options{CPU: cpu, Mem: mem, Trace: tracePath}
	if !opts.Enabled() {
		return nil
	}
	p.session, err = prof.Start(opts)
	return err
}

// stop runs after Execute so profiles are written on failing runs as well.
func (p *profiler) stop() error {
	return p.session.Stop()
}
