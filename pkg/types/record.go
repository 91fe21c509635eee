// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the value types shared across the deck-builder
// pipeline stages.
package types

// Record is one parsed flashcard. Title is always set on a finalized
// record; Body holds the accumulated body segments, joined with a
// line-break marker at serialization time. Answer and Category are only
// populated by the comment-marker parser.
type Record struct {
	Title    string
	Body     []string
	Answer   string
	Category string
}

// ParseStrategy selects the document parsing grammar for a build run.
type ParseStrategy string

const (
	// StrategyLegacy is the line-oriented scanner for Google Docs
	// Markdown exports (numeric ct- title tags, inline datablocks).
	StrategyLegacy ParseStrategy = "legacy"

	// StrategyComments is the whole-document scanner keyed on
	// comment-start/comment-end annotation markers.
	StrategyComments ParseStrategy = "comments"
)

// Valid reports whether s names a known parsing strategy.
func (s ParseStrategy) Valid() bool {
	return s == StrategyLegacy || s == StrategyComments
}

// DocumentStatus records the outcome of processing one source document.
type DocumentStatus string

const (
	DocumentParsed  DocumentStatus = "parsed"
	DocumentSkipped DocumentStatus = "skipped"
	DocumentFailed  DocumentStatus = "failed"
)
