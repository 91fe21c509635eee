// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"reflect"
	"testing"

	"github.com/pdiddy/deck-builder/pkg/types"
)

func TestCommentScanner_SingleSpan(t *testing.T) {
	text := `[42]{.comment-start id="0" author="reviewer"}Q: capital of France?[]{.comment-end id="0"}Paris is the answer.`

	recs, err := CommentScanner{}.Parse(Document{Text: text, Category: "geography"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}

	r := recs[0]
	if r.Answer != "42" {
		t.Errorf("answer = %q", r.Answer)
	}
	if r.Title != "Q: capital of France?" {
		t.Errorf("title = %q", r.Title)
	}
	if !reflect.DeepEqual(r.Body, []string{"Paris is the answer."}) {
		t.Errorf("body = %v", r.Body)
	}
	if r.Category != "geography" {
		t.Errorf("category = %q", r.Category)
	}
}

func TestCommentScanner_LastRecordKept(t *testing.T) {
	// Unlike the line scanner, the final question does not need a
	// trailing marker to survive.
	text := `[a1]{.comment-start id="0"}First?[]{.comment-end id="0"}Body one.
[a2]{.comment-start id="1"}Second?[]{.comment-end id="1"}Body two.`

	recs, err := CommentScanner{}.Parse(Document{Text: text})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	if recs[1].Title != "Second?" {
		t.Errorf("second title = %q", recs[1].Title)
	}
	if !reflect.DeepEqual(recs[1].Body, []string{"Body two."}) {
		t.Errorf("second body = %v", recs[1].Body)
	}
}

func TestCommentScanner_BodyBoundedByNextMarker(t *testing.T) {
	text := `[a1]{.comment-start id="0"}First?[]{.comment-end id="0"}Only this.
[a2]{.comment-start id="1"}Second?[]{.comment-end id="1"}Rest.`

	recs, err := CommentScanner{}.Parse(Document{Text: text})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := recs[0].Body; !reflect.DeepEqual(got, []string{"Only this."}) {
		t.Errorf("first body = %v, must stop at next marker", got)
	}
}

func TestCommentScanner_EscapesAndImages(t *testing.T) {
	text := `[she said "yes"]{.comment-start id="0"}What about \[brackets\]?[]{.comment-end id="0"}A "quoted" body with ![](/tmp/anki/media/abc12345/media/image1.png){width="2in"} inline.`

	recs, err := CommentScanner{}.Parse(Document{Text: text})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}

	r := recs[0]
	if r.Answer != `she said ""yes""` {
		t.Errorf("answer = %q", r.Answer)
	}
	if r.Title != "What about [brackets]?" {
		t.Errorf("title = %q", r.Title)
	}
	want := `A ""quoted"" body with <img src=""abc12345/media/image1.png""> inline.`
	if !reflect.DeepEqual(r.Body, []string{want}) {
		t.Errorf("body = %v, want %q", r.Body, want)
	}
}

func TestCommentScanner_NoMarkers(t *testing.T) {
	recs, err := CommentScanner{}.Parse(Document{Text: "plain converted text, no annotations"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("got %d records, want 0", len(recs))
	}
}

func TestCommentScanner_MultilineBody(t *testing.T) {
	text := "[a]{.comment-start id=\"0\"}Q?[]{.comment-end id=\"0\"}line one\nline two"

	recs, err := CommentScanner{}.Parse(Document{Text: text})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !reflect.DeepEqual(recs[0].Body, []string{"line one", "line two"}) {
		t.Errorf("body = %v", recs[0].Body)
	}
}

func TestCategoryFromFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"two segments", "Deck - Algebra Notes.docx", "Algebra_Notes"},
		{"three segments take second", "Deck - Linear Algebra - v2.docx", "Linear_Algebra"},
		{"no hyphen falls back to basename", "Geometry Notes.docx", "Geometry_Notes"},
		{"path stripped", "/srv/in/Deck - Trig.docx", "Trig"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CategoryFromFilename(tt.in); got != tt.want {
				t.Errorf("CategoryFromFilename(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestForStrategy(t *testing.T) {
	if _, err := ForStrategy(types.StrategyLegacy); err != nil {
		t.Errorf("legacy: %v", err)
	}
	if _, err := ForStrategy(types.StrategyComments); err != nil {
		t.Errorf("comments: %v", err)
	}
	if _, err := ForStrategy(types.ParseStrategy("bogus")); err == nil {
		t.Error("expected error for unknown strategy")
	}
}
