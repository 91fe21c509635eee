// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package media

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExtractDatablock_RoundTrip(t *testing.T) {
	mediaDir := t.TempDir()
	original := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 1, 2, 3}
	line := fmt.Sprintf("[image1]: <data:image/png;base64,%s>",
		base64.StdEncoding.EncodeToString(original))

	consumed, err := ExtractDatablock(line, "abc12345", mediaDir)
	if err != nil {
		t.Fatalf("ExtractDatablock: %v", err)
	}
	if !consumed {
		t.Fatal("datablock line not recognized")
	}

	data, err := os.ReadFile(filepath.Join(mediaDir, "image1-abc12345.png"))
	if err != nil {
		t.Fatalf("reading extracted file: %v", err)
	}
	if !bytes.Equal(data, original) {
		t.Error("extracted bytes differ from original")
	}
}

func TestExtractDatablock_NonMatchingLine(t *testing.T) {
	consumed, err := ExtractDatablock("just a body line", "abc12345", t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if consumed {
		t.Error("plain line reported as datablock")
	}
}

func TestExtractDatablock_BadPayload(t *testing.T) {
	line := "[image1]: <data:image/png;base64,!!!not-base64!!!>"
	if _, err := ExtractDatablock(line, "abc12345", t.TempDir()); err == nil {
		t.Error("expected decode error for malformed payload")
	}
}

func TestRewriteReferenceTags(t *testing.T) {
	got := RewriteReferenceTags("see ![][fig1] here", "abc12345")
	want := `see <img src="fig1-abc12345.png"> here`
	if got != want {
		t.Errorf("RewriteReferenceTags = %q, want %q", got, want)
	}
}

func TestRewriteExtractedPaths(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "deep pandoc path keeps two parents",
			in:   `![](/tmp/anki/media/abc12345/media/image1.png){width="2in"}`,
			want: `<img src="abc12345/media/image1.png">`,
		},
		{
			name: "shallow path",
			in:   `![](media/image2.png){height="1in"}`,
			want: `<img src="media/image2.png">`,
		},
		{
			name: "plain image without attrs untouched",
			in:   `![](media/image3.png)`,
			want: `![](media/image3.png)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RewriteExtractedPaths(tt.in); got != tt.want {
				t.Errorf("RewriteExtractedPaths(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestHandler_DataURI(t *testing.T) {
	mediaDir := filepath.Join(t.TempDir(), "media")
	h, err := NewHandler(mediaDir)
	if err != nil {
		t.Fatal(err)
	}

	raw := []byte("fake image bytes")
	body := fmt.Sprintf("intro ![](data:image/png;base64,%s) outro",
		base64.StdEncoding.EncodeToString(raw))

	out, err := h.Rewrite(body)
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}

	wantPath := filepath.Join(mediaDir, "image_0.png")
	if !strings.Contains(out, "![]("+wantPath+")") {
		t.Errorf("body not rewritten to %s: %q", wantPath, out)
	}
	data, err := os.ReadFile(wantPath)
	if err != nil {
		t.Fatalf("reading decoded image: %v", err)
	}
	if !bytes.Equal(data, raw) {
		t.Error("decoded bytes differ from original")
	}
}

func TestHandler_CounterAdvances(t *testing.T) {
	mediaDir := filepath.Join(t.TempDir(), "media")
	if err := os.MkdirAll(mediaDir, 0o755); err != nil {
		t.Fatal(err)
	}
	// Pre-existing entries seed the counter once at construction.
	if err := os.WriteFile(filepath.Join(mediaDir, "image_0.png"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	h, err := NewHandler(mediaDir)
	if err != nil {
		t.Fatal(err)
	}

	payload := base64.StdEncoding.EncodeToString([]byte("img"))
	for _, want := range []string{"image_1.png", "image_2.png"} {
		out, err := h.Rewrite("![](data:image/png;base64," + payload + ")")
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in %q", want, out)
		}
	}
}

func TestHandler_RemoteURLUntouched(t *testing.T) {
	h, err := NewHandler(filepath.Join(t.TempDir(), "media"))
	if err != nil {
		t.Fatal(err)
	}

	body := "![diagram](https://example.com/a.png) and ![](http://example.com/b.png)"
	out, err := h.Rewrite(body)
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	if out != body {
		t.Errorf("remote URLs changed: %q", out)
	}
}

func TestHandler_LocalCopy(t *testing.T) {
	srcDir := t.TempDir()
	src := filepath.Join(srcDir, "photo.png")
	if err := os.WriteFile(src, []byte("local image"), 0o644); err != nil {
		t.Fatal(err)
	}

	mediaDir := filepath.Join(t.TempDir(), "media")
	h, err := NewHandler(mediaDir)
	if err != nil {
		t.Fatal(err)
	}

	out, err := h.Rewrite("![](" + src + ")")
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}

	dst := filepath.Join(mediaDir, "photo.png")
	if !strings.Contains(out, "![]("+dst+")") {
		t.Errorf("reference not rewritten to %s: %q", dst, out)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("reading copied image: %v", err)
	}
	if string(data) != "local image" {
		t.Error("copied bytes differ")
	}
}

func TestHandler_MissingLocalFile(t *testing.T) {
	h, err := NewHandler(filepath.Join(t.TempDir(), "media"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := h.Rewrite("![](does/not/exist.png)"); err == nil {
		t.Error("expected error for missing local image")
	}
}
