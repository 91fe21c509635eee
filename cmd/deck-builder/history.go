// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/deck-builder/internal/catalog"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List previous builds recorded in the catalog",
	Long: `History reads the build catalog kept next to the generated deck and
lists recent runs: when they ran, what they read, and how many records
each produced.`,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	outputDir, _ := cmd.Flags().GetString("output-dir")
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	store, err := catalog.NewStore(outputDir)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Recent(context.Background(), limit)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Println("No builds recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-20s  %-8s  %-30s  %-4s  %-7s  %s\n",
		"Started", "Parser", "Input", "Docs", "Records", "Failed")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))

	for _, r := range runs {
		input := r.InputDir
		if len(input) > 30 {
			input = input[:27] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-20s  %-8s  %-30s  %-4d  %-7d  %d\n",
			r.StartedAt.Format(time.DateTime), r.Strategy, input,
			r.Documents, r.Records, r.Failed)
	}

	fmt.Fprintf(os.Stdout, "\n%d runs\n", len(runs))
	return nil
}

func init() {
	historyCmd.Flags().String("output-dir", defaultOutputDir, "output directory holding the catalog")
	historyCmd.Flags().Int("limit", 10, "maximum runs to list")
	historyCmd.Flags().Bool("json", false, "output runs as JSON")

	rootCmd.AddCommand(historyCmd)
}
