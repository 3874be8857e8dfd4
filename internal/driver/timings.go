package driver

import (
	"encoding/json"
	"fmt"
	"io"

	"lintel/internal/observ"
)

// TimingPayload is the machine-readable timing summary of a run.
type TimingPayload struct {
	Kind    string               `json:"kind"`
	Files   int                  `json:"files"`
	Cached  int                  `json:"cached"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// BuildTimingPayload sums the per-file timings of results.
func BuildTimingPayload(results []FileResult) TimingPayload {
	total := TotalTiming(results)
	payload := TimingPayload{
		Kind:    "lint",
		Files:   len(results),
		TotalMS: total.TotalMS,
		Phases:  total.Phases,
	}
	for i := range results {
		if results[i].Cached {
			payload.Cached++
		}
	}
	return payload
}

// WriteTimings prints the summary as a table, or as one JSON line when asJSON is set.
func WriteTimings(w io.Writer, results []FileResult, asJSON bool) error {
	payload := BuildTimingPayload(results)
	if asJSON {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
	if _, err := fmt.Fprintf(w, "timings (%s): %d files, %d cached\n", payload.Kind, payload.Files, payload.Cached); err != nil {
		return err
	}
	for _, p := range payload.Phases {
		fmt.Fprintf(w, "  %-20s %7.2f ms\n", p.Name, p.DurationMS)
	}
	_, err := fmt.Fprintf(w, "  %-20s %7.2f ms\n", "total", payload.TotalMS)
	return err
}
