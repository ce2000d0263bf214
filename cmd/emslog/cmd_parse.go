package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/niems-digital/emslog/internal/ingest"
	"github.com/niems-digital/emslog/internal/models"
	"github.com/niems-digital/emslog/internal/session"
	"github.com/niems-digital/emslog/pkg/textutil"
)

func parseCmd() *cobra.Command {
	var (
		file   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse a Thai activity log into normalized activity records",
		Long: `Reads log text from --file or stdin, runs one full parse cycle
(extraction, sanitization, registry enrichment, mandate fallback) and
prints the resulting records.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			rawText, err := readLogText(file)
			if err != nil {
				return err
			}
			if rawText == "" {
				return fmt.Errorf("parse: no log text provided")
			}

			engine, err := newEngine(cmd.Context(), logger)
			if err != nil {
				return fmt.Errorf("parse: %w", err)
			}
			reg, err := newRegistry(logger)
			if err != nil {
				return fmt.Errorf("parse: %w", err)
			}

			store := session.NewStore()
			ing := ingest.New(engine, reg, store, logger)

			records, err := ing.Parse(cmd.Context(), rawText)
			if err != nil {
				return fmt.Errorf("parse: %w", err)
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}

			renderActivities(records)
			renderStats(store)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "read the log from a file instead of stdin")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON records")
	return cmd
}

func readLogText(file string) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("parse: reading %s: %w", file, err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("parse: reading stdin: %w", err)
	}
	return string(data), nil
}

func renderActivities(records []models.Activity) {
	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"Date", "Summary", "Type", "Project", "Section 15", "Match"})
	for _, a := range records {
		project := ""
		match := ""
		if a.ProjectCode != nil {
			project = *a.ProjectCode
			if a.ProjectDetails != nil {
				match = "✓"
			} else {
				match = "?"
			}
		}
		section := ""
		if a.Section15 != nil {
			section = textutil.Truncate(*a.Section15, 32)
		}
		tw.AppendRow(table.Row{
			a.Date,
			textutil.Truncate(a.Summary, 40),
			a.ActivityType,
			project,
			section,
			match,
		})
	}
	tw.Render()
}

func renderStats(store *session.Store) {
	stats := store.Stats()
	fmt.Printf("\n%d activities", stats.TotalActivities)
	if stats.Unmatched > 0 {
		fmt.Printf(" (%d with unmatched project codes)", stats.Unmatched)
	}
	fmt.Println()

	for _, block := range []struct {
		title  string
		counts map[string]int
	}{
		{"By Section 15:", stats.BySection15},
		{"By program:", stats.ByProgram},
	} {
		if len(block.counts) == 0 {
			continue
		}
		fmt.Println(block.title)
		keys := make([]string, 0, len(block.counts))
		for k := range block.counts {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("  %-50s %d\n", textutil.Truncate(k, 48), block.counts[k])
		}
	}
}
