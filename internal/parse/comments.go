// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"regexp"
	"strings"

	"github.com/pdiddy/deck-builder/internal/media"
	"github.com/pdiddy/deck-builder/pkg/types"
)

// commentSpanRe matches one annotation pair in pandoc output with tracked
// changes preserved:
//
//	[answer]{.comment-start id="0" author="..."}title[]{.comment-end id="0"}
//
// The answer travels in the comment text, the question title between the
// markers. The question body is everything from the comment-end marker to
// the start of the next pair (or end of document), sliced by index rather
// than matched, since RE2 has no lookahead.
var commentSpanRe = regexp.MustCompile(`(?s)\[(.*?)\]\{\.comment-start[^}]*\}(.*?)\[\]\{\.comment-end[^}]*\}`)

// CommentScanner is the whole-document scanner for .docx sources routed
// through the external converter. Unlike the line scanner it never drops
// the final record, and every record of a document shares the category
// derived from the source filename.
type CommentScanner struct{}

// Parse rewrites extracted image paths across the whole text, then cuts
// the document at annotation pairs.
func (CommentScanner) Parse(doc Document) ([]types.Record, error) {
	text := media.RewriteExtractedPaths(doc.Text)

	matches := commentSpanRe.FindAllStringSubmatchIndex(text, -1)
	records := make([]types.Record, 0, len(matches))

	for i, m := range matches {
		bodyEnd := len(text)
		if i+1 < len(matches) {
			bodyEnd = matches[i+1][0]
		}

		records = append(records, types.Record{
			Title:    strings.TrimSpace(unescapeBrackets(text[m[4]:m[5]])),
			Answer:   escapeQuotes(text[m[2]:m[3]]),
			Body:     bodyLines(text[m[1]:bodyEnd]),
			Category: doc.Category,
		})
	}

	return records, nil
}

// bodyLines normalizes a body span into the trimmed line list the
// assembler joins with line-break markers.
func bodyLines(span string) []string {
	lines := strings.Split(strings.TrimSpace(escapeQuotes(span)), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return lines
}
