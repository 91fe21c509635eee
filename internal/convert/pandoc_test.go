// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeExecutor records invocations and returns configured results.
type fakeExecutor struct {
	lookPathErr error
	runErr      error

	ranName string
	ranArgs []string
}

func (f *fakeExecutor) LookPath(file string) (string, error) {
	if f.lookPathErr != nil {
		return "", f.lookPathErr
	}
	return "/usr/bin/" + file, nil
}

func (f *fakeExecutor) Run(name string, args ...string) error {
	f.ranName = name
	f.ranArgs = args
	return f.runErr
}

func TestNewPandocConverter_MissingBinary(t *testing.T) {
	e := &fakeExecutor{lookPathErr: errors.New("executable file not found")}
	_, err := newPandocConverter(e)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pandoc not found")
}

func TestPandocConverter_Convert(t *testing.T) {
	e := &fakeExecutor{}
	c, err := newPandocConverter(e)
	require.NoError(t, err)

	err = c.Convert("in/deck.docx", "out/converted/deck.md", "out/media/abc12345")
	require.NoError(t, err)

	assert.Equal(t, "pandoc", e.ranName)
	assert.Equal(t, []string{
		"in/deck.docx",
		"-f", "docx",
		"-t", "markdown",
		"--track-changes=all",
		"--extract-media=out/media/abc12345",
		"-o", "out/converted/deck.md",
	}, e.ranArgs)
}

func TestPandocConverter_RunFailure(t *testing.T) {
	e := &fakeExecutor{runErr: errors.New("exit status 64")}
	c, err := newPandocConverter(e)
	require.NoError(t, err)

	err = c.Convert("in/deck.docx", "out/deck.md", "out/media")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "in/deck.docx")
}
