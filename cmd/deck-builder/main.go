// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the deck-builder CLI, which turns
// word-processor-exported documents into Anki-importable flashcard decks.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the deck-builder CLI.
var rootCmd = &cobra.Command{
	Use:   "deck-builder",
	Short: "Build spaced-repetition decks from exported documents",
	Long: `deck-builder converts word-processor-exported documents into a flashcard
deck file importable by a spaced-repetition application. Markdown exports of
Google Docs are parsed directly; .docx files are first run through pandoc
with tracked changes preserved.

The build subcommand runs the whole pipeline; history lists previous builds
recorded in the catalog.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./deck-builder.yaml or ~/.config/deck-builder/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("deck-builder")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "deck-builder"))
		}
	}

	viper.SetEnvPrefix("DECK_BUILDER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
