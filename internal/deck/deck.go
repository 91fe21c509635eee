// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package deck serializes parsed records into the delimited text file the
// flashcard application imports.
package deck

import (
	"fmt"
	"os"
	"strings"

	"github.com/pdiddy/deck-builder/internal/media"
	"github.com/pdiddy/deck-builder/pkg/types"
)

// lineBreak joins title and body segments inside a deck field.
const lineBreak = "<br>"

// WriteBasic writes the Front;Back deck format: one double-quoted combined
// field per record, blank line between records, closing quote after the
// separator. Each body passes through the image handler before writing so
// inline and local images end up in the media directory. The file is
// truncated on every run; a mid-write failure leaves a partial file.
func WriteBasic(records []types.Record, path string, images *media.Handler) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating deck file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString("Front;Back\n"); err != nil {
		return fmt.Errorf("writing deck header: %w", err)
	}

	for _, r := range records {
		body := strings.Join(r.Body, lineBreak)
		if images != nil {
			body, err = images.Rewrite(body)
			if err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(f, "\"%s%s%s\n\n\"\n", r.Title, lineBreak, body); err != nil {
			return fmt.Errorf("writing record: %w", err)
		}
	}
	return nil
}

// WriteTagged writes the question;answer;tag deck format: three
// double-quoted fields per record, blank line between records. The file is
// truncated on every run.
func WriteTagged(records []types.Record, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating deck file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString("question;answer;tag\n"); err != nil {
		return fmt.Errorf("writing deck header: %w", err)
	}

	for _, r := range records {
		body := strings.Join(r.Body, lineBreak)
		if _, err := fmt.Fprintf(f, "\"%s%s%s\";\"%s\";\"%s\"\n\n", r.Title, lineBreak, body, r.Answer, r.Category); err != nil {
			return fmt.Errorf("writing record: %w", err)
		}
	}
	return nil
}
