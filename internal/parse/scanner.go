// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"regexp"
	"strings"

	"github.com/pdiddy/deck-builder/internal/media"
	"github.com/pdiddy/deck-builder/pkg/types"
)

// titleBoundaryRe matches the question boundary of Google Docs exports: a
// decimal number followed by a bracket-escaped ct- tag, e.g.
// 12-\[ct-algebra\].
var titleBoundaryRe = regexp.MustCompile(`^\d+-\\\[ct-.+\\\]`)

// LineScanner is the single-pass, stateful scanner for Google Docs
// Markdown exports. Datablock lines are extracted to the media directory
// and consumed; a title boundary finalizes the in-progress record and
// starts the next; every other line accumulates into the active record's
// body. Text before the first boundary is discarded.
type LineScanner struct{}

// Parse scans doc line by line. The record still open at end of input is
// not finalized: source decks terminate every question with a following
// boundary line, and this scanner preserves that contract.
func (LineScanner) Parse(doc Document) ([]types.Record, error) {
	var records []types.Record
	var current *types.Record

	for _, line := range strings.Split(doc.Text, "\n") {
		consumed, err := media.ExtractDatablock(line, doc.FileID, doc.MediaDir)
		if err != nil {
			return nil, err
		}
		if consumed {
			continue
		}

		if titleBoundaryRe.MatchString(line) {
			if current != nil {
				records = append(records, snapshot(*current))
			}
			current = &types.Record{
				Title: strings.TrimSpace(unescapeBrackets(line)),
				Body:  []string{},
			}
			continue
		}

		if current != nil {
			line = media.RewriteReferenceTags(line, doc.FileID)
			line = escapeQuotes(line)
			current.Body = append(current.Body, strings.TrimSpace(line))
		}
	}

	return records, nil
}

// snapshot returns an independent copy of r so appends to the live
// record's body cannot alter an already finalized one.
func snapshot(r types.Record) types.Record {
	r.Body = append([]string(nil), r.Body...)
	return r
}
