// petctl inspects a pet engine journal offline.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/alecthomas/kong"

	"github.com/danielpatrickdp/deskpet/internal/journal"
)

// #region cli

var CLI struct {
	DB string `short:"d" help:"Path to the journal database" default:"deskpet.db"`

	Recent struct {
		Last int  `short:"n" help:"Show N most recent transitions" default:"20"`
		JSON bool `help:"Output as JSON instead of a table"`
	} `cmd:"" help:"Show recent state transitions"`

	Stats struct {
		JSON bool `help:"Output as JSON instead of a table"`
	} `cmd:"" help:"Show per-state entry counts"`
}

// #endregion cli

// #region main

func main() {
	ctx := kong.Parse(&CLI)

	j, err := journal.Open(CLI.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open journal: %v\n", err)
		os.Exit(1)
	}
	defer j.Close()

	switch ctx.Command() {
	case "recent":
		err = runRecent(j)
	case "stats":
		err = runStats(j)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region recent

func runRecent(j *journal.Journal) error {
	rows, err := j.Recent(CLI.Recent.Last)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintln(os.Stderr, "no transitions recorded")
		return nil
	}

	if CLI.Recent.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	fmt.Printf("%-30s  %-20s  %-20s\n", "AT", "FROM", "TO")
	for _, r := range rows {
		fmt.Printf("%-30s  %-20s  %-20s\n",
			r.CreatedAt.Format("2006-01-02T15:04:05.000Z"),
			r.Previous, r.Current)
	}
	return nil
}

// #endregion recent

// #region stats

func runStats(j *journal.Journal) error {
	counts, err := j.CountByState()
	if err != nil {
		return err
	}
	if len(counts) == 0 {
		fmt.Fprintln(os.Stderr, "no transitions recorded")
		return nil
	}

	if CLI.Stats.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(counts)
	}

	type entry struct {
		state string
		n     int
	}
	entries := make([]entry, 0, len(counts))
	for id, n := range counts {
		entries = append(entries, entry{string(id), n})
	}
	sort.Slice(entries, func(i, k int) bool {
		if entries[i].n != entries[k].n {
			return entries[i].n > entries[k].n
		}
		return entries[i].state < entries[k].state
	})

	fmt.Printf("%-20s  %s\n", "STATE", "ENTERED")
	for _, e := range entries {
		fmt.Printf("%-20s  %d\n", e.state, e.n)
	}
	return nil
}

// #endregion stats
