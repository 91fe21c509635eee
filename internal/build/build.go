// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package build orchestrates a deck build: it enumerates the input
// directory, routes each source document through conversion and parsing,
// and writes the combined deck, media, and manifest once all documents
// are processed.
package build

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/deck-builder/internal/convert"
	"github.com/pdiddy/deck-builder/internal/deck"
	"github.com/pdiddy/deck-builder/internal/fileid"
	"github.com/pdiddy/deck-builder/internal/media"
	"github.com/pdiddy/deck-builder/internal/parse"
	"github.com/pdiddy/deck-builder/pkg/types"
)

const (
	mediaDirName     = "media"
	convertedDirName = "converted"
	manifestName     = "deck.manifest.yaml"

	// DefaultDeckName is the combined deck filename.
	DefaultDeckName = "combined_deck.txt"
)

// Options configures a build run.
type Options struct {
	InputDir  string
	OutputDir string

	// DeckName overrides DefaultDeckName when set.
	DeckName string

	// Strategy selects the parsing grammar and with it the output
	// format: legacy writes Front;Back, comments writes
	// question;answer;tag.
	Strategy types.ParseStrategy
}

// DocumentResult records the outcome for one source document.
type DocumentResult struct {
	Name    string
	FileID  string
	Records int
	Status  types.DocumentStatus
}

// Result summarizes a completed build.
type Result struct {
	DeckPath  string
	Records   int
	Parsed    int
	Skipped   int
	Failed    int
	Documents []DocumentResult
}

// Run executes a full build. Converter failures are logged to w and the
// document is skipped; parse and write failures abort the run. Documents
// are processed strictly sequentially, in the order the directory
// enumeration yields them.
func Run(opts Options, conv convert.Converter, w io.Writer) (Result, error) {
	info, err := os.Stat(opts.InputDir)
	if err != nil || !info.IsDir() {
		return Result{}, fmt.Errorf("input directory %q does not exist", opts.InputDir)
	}

	parser, err := parse.ForStrategy(opts.Strategy)
	if err != nil {
		return Result{}, err
	}

	outMedia := filepath.Join(opts.OutputDir, mediaDirName)
	if err := os.MkdirAll(outMedia, 0o755); err != nil {
		return Result{}, fmt.Errorf("creating output directory: %w", err)
	}

	entries, err := listDir(opts.InputDir)
	if err != nil {
		return Result{}, err
	}

	var result Result
	var records []types.Record

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		path := filepath.Join(opts.InputDir, name)
		id := fileid.Derive(name)

		var text string
		switch strings.ToLower(filepath.Ext(name)) {
		case ".md":
			data, err := os.ReadFile(path)
			if err != nil {
				return Result{}, fmt.Errorf("reading %s: %w", name, err)
			}
			text = string(data)

		case ".docx":
			if conv == nil {
				fmt.Fprintf(w, "skipped: %s (no document converter)\n", name)
				result.Skipped++
				result.Documents = append(result.Documents, DocumentResult{
					Name: name, FileID: id, Status: types.DocumentSkipped,
				})
				continue
			}
			mdPath, err := convertDocx(conv, path, opts.OutputDir, id)
			if err != nil {
				fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
				result.Failed++
				result.Documents = append(result.Documents, DocumentResult{
					Name: name, FileID: id, Status: types.DocumentFailed,
				})
				continue
			}
			data, err := os.ReadFile(mdPath)
			if err != nil {
				return Result{}, fmt.Errorf("reading converted %s: %w", name, err)
			}
			text = string(data)

		default:
			continue
		}

		recs, err := parser.Parse(parse.Document{
			Text:     text,
			FileID:   id,
			Category: parse.CategoryFromFilename(name),
			MediaDir: outMedia,
		})
		if err != nil {
			return Result{}, fmt.Errorf("parsing %s: %w", name, err)
		}

		fmt.Fprintf(w, "parsed:  %s (%d records)\n", name, len(recs))
		records = append(records, recs...)
		result.Parsed++
		result.Documents = append(result.Documents, DocumentResult{
			Name: name, FileID: id, Records: len(recs), Status: types.DocumentParsed,
		})
	}

	deckName := opts.DeckName
	if deckName == "" {
		deckName = DefaultDeckName
	}
	deckPath := filepath.Join(opts.OutputDir, deckName)

	switch opts.Strategy {
	case types.StrategyComments:
		if err := deck.WriteTagged(records, deckPath); err != nil {
			return Result{}, err
		}
	default:
		images, err := media.NewHandler(outMedia)
		if err != nil {
			return Result{}, err
		}
		if err := deck.WriteBasic(records, deckPath, images); err != nil {
			return Result{}, err
		}
	}

	result.DeckPath = deckPath
	result.Records = len(records)

	if err := writeManifest(opts, result); err != nil {
		return Result{}, err
	}

	fmt.Fprintf(w, "\nBuild summary: %d parsed, %d skipped, %d failed; %d records -> %s\n",
		result.Parsed, result.Skipped, result.Failed, result.Records, deckPath)
	return result, nil
}

// listDir returns the directory entries in raw enumeration order. The
// order is whatever the filesystem yields; the deck keeps documents in
// that order, so it is not stable across filesystems.
func listDir(dir string) ([]os.DirEntry, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("opening input directory: %w", err)
	}
	defer f.Close()

	entries, err := f.ReadDir(-1)
	if err != nil {
		return nil, fmt.Errorf("listing input directory: %w", err)
	}
	return entries, nil
}

// convertDocx runs one document through the external converter. Markdown
// lands under <out>/converted/, media under <out>/media/<fileID>/.
func convertDocx(conv convert.Converter, docxPath, outputDir, id string) (string, error) {
	mdDir := filepath.Join(outputDir, convertedDirName)
	if err := os.MkdirAll(mdDir, 0o755); err != nil {
		return "", fmt.Errorf("creating converted directory: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(docxPath), filepath.Ext(docxPath))
	mdPath := filepath.Join(mdDir, base+".md")
	mediaDir := filepath.Join(outputDir, mediaDirName, id)

	if err := conv.Convert(docxPath, mdPath, mediaDir); err != nil {
		return "", err
	}
	return mdPath, nil
}

func writeManifest(opts Options, result Result) error {
	docs := make([]deck.ManifestDoc, len(result.Documents))
	for i, d := range result.Documents {
		docs[i] = deck.ManifestDoc{
			Name:    d.Name,
			FileID:  d.FileID,
			Records: d.Records,
			Status:  string(d.Status),
		}
	}
	m := deck.Manifest{
		GeneratedAt: time.Now().UTC(),
		InputDir:    opts.InputDir,
		Deck:        result.DeckPath,
		Strategy:    string(opts.Strategy),
		Records:     result.Records,
		Documents:   docs,
	}
	return deck.WriteManifest(filepath.Join(opts.OutputDir, manifestName), m)
}
