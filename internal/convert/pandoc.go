// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os/exec"
)

const binPandoc = "pandoc"

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(name string, args ...string) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

var defaultExec executor = &osExecutor{}

// PandocConverter converts .docx files by shelling out to pandoc with
// tracked changes preserved and embedded media extracted.
type PandocConverter struct {
	exec executor
}

// NewPandocConverter verifies that pandoc is on PATH before returning a
// converter.
func NewPandocConverter() (*PandocConverter, error) {
	return newPandocConverter(defaultExec)
}

func newPandocConverter(e executor) (*PandocConverter, error) {
	if _, err := e.LookPath(binPandoc); err != nil {
		return nil, fmt.Errorf("pandoc not found on PATH: %w", err)
	}
	return &PandocConverter{exec: e}, nil
}

// Convert runs pandoc on docxPath, writing Markdown to mdPath and
// extracted media under mediaDir.
func (p *PandocConverter) Convert(docxPath, mdPath, mediaDir string) error {
	args := []string{
		docxPath,
		"-f", "docx",
		"-t", "markdown",
		"--track-changes=all",
		"--extract-media=" + mediaDir,
		"-o", mdPath,
	}
	if err := p.exec.Run(binPandoc, args...); err != nil {
		return fmt.Errorf("converting %s with pandoc: %w", docxPath, err)
	}
	return nil
}
