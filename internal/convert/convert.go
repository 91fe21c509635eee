// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert invokes the external document converter that turns
// .docx sources into Markdown. The converter is a black box to the rest
// of the pipeline: given a source document it produces an intermediate
// Markdown file and a directory of extracted media.
package convert

// Converter transforms a .docx file into Markdown, extracting embedded
// media into mediaDir. Implementations must preserve tracked changes and
// comment annotations; the comment-marker parser depends on them
// surviving conversion.
type Converter interface {
	Convert(docxPath, mdPath, mediaDir string) error
}
