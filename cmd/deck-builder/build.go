// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/deck-builder/internal/build"
	"github.com/pdiddy/deck-builder/internal/catalog"
	"github.com/pdiddy/deck-builder/internal/convert"
	"github.com/pdiddy/deck-builder/pkg/types"
)

const (
	defaultInputDir  = "./resources"
	defaultOutputDir = "/tmp/anki"
)

var buildCmd = &cobra.Command{
	Use:   "build [input_dir] [output_dir]",
	Short: "Build a flashcard deck from a directory of exported documents",
	Long: `Build processes every .md and .docx file in the input directory and
writes a single combined deck file plus a media directory to the output
directory. .docx files are converted through pandoc first; a per-file
conversion failure is reported and the file is skipped.

The legacy parser reads Google Docs Markdown exports (numeric ct- title
tags) and writes the Front;Back format. The comments parser cuts documents
at comment annotations and writes the question;answer;tag format.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	inputDir := viper.GetString("build.input_dir")
	if inputDir == "" {
		inputDir = defaultInputDir
	}
	outputDir := viper.GetString("build.output_dir")
	if outputDir == "" {
		outputDir = defaultOutputDir
	}
	if len(args) > 0 {
		inputDir = args[0]
	}
	if len(args) > 1 {
		outputDir = args[1]
	}

	parserName, _ := cmd.Flags().GetString("parser")
	strategy := types.ParseStrategy(parserName)
	if !strategy.Valid() {
		return fmt.Errorf("unknown parser %q: use legacy or comments", parserName)
	}

	deckName, _ := cmd.Flags().GetString("deck")
	noCatalog, _ := cmd.Flags().GetBool("no-catalog")

	// A missing pandoc only matters for .docx inputs; Markdown-only runs
	// proceed without it.
	var conv convert.Converter
	if c, err := convert.NewPandocConverter(); err == nil {
		conv = c
	} else {
		fmt.Fprintf(os.Stderr, "document converter unavailable: %v\n", err)
	}

	started := time.Now().UTC()
	result, err := build.Run(build.Options{
		InputDir:  inputDir,
		OutputDir: outputDir,
		DeckName:  deckName,
		Strategy:  strategy,
	}, conv, os.Stdout)
	if err != nil {
		return err
	}

	if !noCatalog {
		if err := recordRun(started, inputDir, strategy, result); err != nil {
			return err
		}
	}

	fmt.Printf("Deck generated in '%s'\n", result.DeckPath)
	return nil
}

func recordRun(started time.Time, inputDir string, strategy types.ParseStrategy, result build.Result) error {
	store, err := catalog.NewStore(filepath.Dir(result.DeckPath))
	if err != nil {
		return err
	}
	defer store.Close()

	docs := make([]catalog.DocumentEntry, len(result.Documents))
	for i, d := range result.Documents {
		docs[i] = catalog.DocumentEntry{
			Name:    d.Name,
			FileID:  d.FileID,
			Records: d.Records,
			Status:  string(d.Status),
		}
	}

	_, err = store.RecordRun(context.Background(), catalog.Run{
		StartedAt: started,
		InputDir:  inputDir,
		DeckPath:  result.DeckPath,
		Strategy:  string(strategy),
		Documents: len(result.Documents),
		Records:   result.Records,
		Failed:    result.Failed,
	}, docs)
	return err
}

func init() {
	buildCmd.Flags().String("parser", string(types.StrategyLegacy), "parsing strategy: legacy or comments")
	buildCmd.Flags().String("deck", build.DefaultDeckName, "deck output filename")
	buildCmd.Flags().Bool("no-catalog", false, "skip recording the run in the build catalog")

	rootCmd.AddCommand(buildCmd)
}
