// petreplay runs a recorded input fixture through a fresh arbitrator and
// reports the resolved transitions. Exit code 1 means an expectation failed.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/danielpatrickdp/deskpet/internal/replay"
)

// #region cli

var CLI struct {
	Fixture string `arg:"" help:"Path to a JSON replay fixture" type:"path"`
	JSON    bool   `help:"Output step results as JSON"`
}

// #endregion cli

// #region main

func main() {
	kong.Parse(&CLI)

	f, err := replay.LoadFixture(CLI.Fixture)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	results, summary, err := replay.Run(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if CLI.JSON {
		out := struct {
			Results []replay.StepResult `json:"results"`
			Summary replay.Summary      `json:"summary"`
		}{results, summary}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	} else {
		if f.Description != "" {
			fmt.Printf("# %s\n", f.Description)
		}
		fmt.Printf("%-5s  %-8s  %-18s  %-8s  %s\n", "STEP", "AT_MS", "KIND", "CHANGED", "CURRENT")
		for _, r := range results {
			fmt.Printf("%-5d  %-8d  %-18s  %-8v  %s\n", r.Index, r.AtMS, r.Kind, r.Changed, r.Current)
		}
		fmt.Printf("\n%d steps, %d transitions, final state %s\n",
			summary.Steps, summary.Transitions, summary.Final)
	}

	if mismatches := replay.Verify(f, results); len(mismatches) > 0 {
		for _, m := range mismatches {
			fmt.Fprintf(os.Stderr, "step %d: expected %s, got %s\n", m.Step, m.Want, m.Got)
		}
		os.Exit(1)
	}
}

// #endregion main
