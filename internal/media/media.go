// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package media locates image references in document text and materializes
// them in the deck's media directory: inline base64 datablocks are decoded
// to files, shorthand Markdown image tags are rewritten to HTML img tags
// that resolve against the extracted media, and local file references are
// copied alongside the deck.
package media

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	// datablockRe matches a reference-style image definition whose target
	// is an inline data URI, e.g.
	// [image1]: <data:image/png;base64,iVBORw0...>
	datablockRe = regexp.MustCompile(`^\[(.*?)\]: <data:image/(\w+);base64,(.*)>`)

	// referenceTagRe matches the shorthand ![][name] form Google Docs
	// exports use for reference-style images.
	referenceTagRe = regexp.MustCompile(`!\[\]\[(.*?)\]`)

	// extractedPathRe matches pandoc's ![](path){attrs} image output.
	extractedPathRe = regexp.MustCompile(`!\[\]\((.*?)\)\{.*?\}`)

	// inlineImageRe matches any Markdown image and captures its target.
	inlineImageRe = regexp.MustCompile(`!\[.*?\]\((.*?)\)`)

	// base64PayloadRe pulls the payload out of a data URI.
	base64PayloadRe = regexp.MustCompile(`base64,(.*)`)
)

// ExtractDatablock checks whether line is an inline image datablock. If it
// is, the payload is decoded and written to mediaDir as
// <name>-<fileID>.<ext> and (true, nil) is returned; the caller drops the
// line. Decode and write failures are returned as-is; there is no per-line
// recovery.
func ExtractDatablock(line, fileID, mediaDir string) (bool, error) {
	m := datablockRe.FindStringSubmatch(line)
	if m == nil {
		return false, nil
	}

	raw, err := base64.StdEncoding.DecodeString(m[3])
	if err != nil {
		return false, fmt.Errorf("decoding datablock %q: %w", m[1], err)
	}

	if err := os.MkdirAll(mediaDir, 0o755); err != nil {
		return false, fmt.Errorf("creating media directory: %w", err)
	}

	name := fmt.Sprintf("%s-%s.%s", m[1], fileID, m[2])
	if err := os.WriteFile(filepath.Join(mediaDir, name), raw, 0o644); err != nil {
		return false, fmt.Errorf("writing datablock %s: %w", name, err)
	}
	return true, nil
}

// RewriteReferenceTags converts shorthand ![][name] image references into
// HTML img tags pointing at the extracted file for this document:
// <img src="name-<fileID>.png">.
func RewriteReferenceTags(text, fileID string) string {
	return referenceTagRe.ReplaceAllString(text, fmt.Sprintf(`<img src="${1}-%s.png">`, fileID))
}

// RewriteExtractedPaths converts pandoc-style ![](path){attrs} references
// into HTML img tags. Pandoc emits paths relative to its own extraction
// location, so only the last two directory components plus the basename are
// kept; that suffix is what exists under the deck's media directory.
func RewriteExtractedPaths(text string) string {
	return extractedPathRe.ReplaceAllStringFunc(text, func(m string) string {
		sub := extractedPathRe.FindStringSubmatch(m)
		return fmt.Sprintf(`<img src="%s">`, relocatedSrc(sub[1]))
	})
}

// relocatedSrc keeps at most the two parent directory components and the
// basename of p.
func relocatedSrc(p string) string {
	p = filepath.Clean(p)
	parts := []string{filepath.Base(p)}
	dir := filepath.Dir(p)
	for i := 0; i < 2; i++ {
		base := filepath.Base(dir)
		if base == "." || base == string(filepath.Separator) {
			break
		}
		parts = append([]string{base}, parts...)
		dir = filepath.Dir(dir)
	}
	return filepath.Join(parts...)
}

// Handler materializes Markdown image targets found in finished record
// bodies into a media directory. Generated filenames use a counter seeded
// once from the directory's entry count at construction and advanced
// in-process from there, so the directory must have a single writer for
// the duration of a run.
type Handler struct {
	dir  string
	next int
}

// NewHandler creates the media directory if needed and seeds the filename
// counter from its current entry count.
func NewHandler(dir string) (*Handler, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating media directory: %w", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing media directory: %w", err)
	}
	return &Handler{dir: dir, next: len(entries)}, nil
}

// Rewrite processes every Markdown image reference in body. Data URIs are
// decoded into media/image_<n>.png, http(s) URLs pass through untouched,
// and anything else is treated as a local file path and copied into the
// media directory. A missing local file fails the whole rewrite.
func (h *Handler) Rewrite(body string) (string, error) {
	var firstErr error
	out := inlineImageRe.ReplaceAllStringFunc(body, func(m string) string {
		sub := inlineImageRe.FindStringSubmatch(m)
		src := sub[1]

		switch {
		case strings.HasPrefix(src, "data:image"):
			path, err := h.writeDataURI(src)
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return m
			}
			return "![](" + path + ")"

		case isRemote(src):
			return m

		default:
			dst := filepath.Join(h.dir, filepath.Base(src))
			if err := copyFile(src, dst); err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return m
			}
			return "![](" + dst + ")"
		}
	})
	if firstErr != nil {
		return "", firstErr
	}
	return out, nil
}

func (h *Handler) writeDataURI(src string) (string, error) {
	payload := base64PayloadRe.FindStringSubmatch(src)
	if payload == nil {
		return "", fmt.Errorf("data URI without base64 payload: %.40s", src)
	}
	raw, err := base64.StdEncoding.DecodeString(payload[1])
	if err != nil {
		return "", fmt.Errorf("decoding inline image: %w", err)
	}

	path := filepath.Join(h.dir, fmt.Sprintf("image_%d.png", h.next))
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", fmt.Errorf("writing inline image: %w", err)
	}
	h.next++
	return path, nil
}

// isRemote reports whether src is an http(s) URL, which the deck importer
// resolves on its own.
func isRemote(src string) bool {
	u, err := url.Parse(src)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https")
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("copying image %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("copying image to %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copying image %s: %w", src, err)
	}
	return nil
}
