// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package parse segments exported document text into flashcard records.
// Two grammars exist for the same job: a line-oriented scanner for Google
// Docs Markdown exports and a whole-document scanner keyed on the comment
// annotations pandoc preserves from .docx sources. They stay independent
// strategies behind one contract because their matching rules and output
// fields differ.
package parse

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pdiddy/deck-builder/pkg/types"
)

// Document carries one source file's text plus the per-document context
// the parsers need.
type Document struct {
	// Text is the full Markdown content.
	Text string

	// FileID is the short id derived from the source filename, used to
	// disambiguate extracted media.
	FileID string

	// Category tags every record of this document (comment scanner only).
	Category string

	// MediaDir receives media decoded from inline datablocks.
	MediaDir string
}

// Parser turns document text into an ordered sequence of records.
type Parser interface {
	Parse(doc Document) ([]types.Record, error)
}

// ForStrategy returns the parser implementing the named strategy.
func ForStrategy(s types.ParseStrategy) (Parser, error) {
	switch s {
	case types.StrategyLegacy:
		return LineScanner{}, nil
	case types.StrategyComments:
		return CommentScanner{}, nil
	default:
		return nil, fmt.Errorf("unknown parse strategy %q", s)
	}
}

// CategoryFromFilename derives the deck tag for a document: the second
// hyphen-delimited segment of the basename, spaces replaced with
// underscores. Filenames without two segments fall back to the whole
// basename, extension removed.
func CategoryFromFilename(name string) string {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	seg := base
	if parts := strings.Split(base, "-"); len(parts) >= 2 {
		seg = strings.TrimSpace(parts[1])
	}
	return strings.ReplaceAll(seg, " ", "_")
}

// unescapeBrackets undoes the bracket escaping Markdown exporters apply
// to literal square brackets.
func unescapeBrackets(text string) string {
	text = strings.ReplaceAll(text, `\[`, `[`)
	return strings.ReplaceAll(text, `\]`, `]`)
}

// escapeQuotes doubles double quotes so the text can sit inside a quoted
// field of the delimited deck file.
func escapeQuotes(text string) string {
	return strings.ReplaceAll(text, `"`, `""`)
}
