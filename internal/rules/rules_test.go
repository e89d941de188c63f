package rules

import (
	"fmt"
	"testing"
)

func TestAll_OrderedAndContiguous(t *testing.T) {
	t.Parallel()

	all := All()
	if len(all) != 12 {
		t.Fatalf("len(All()) = %d, want 12", len(all))
	}
	for i, r := range all {
		if r.Order != i+1 {
			t.Errorf("All()[%d].Order = %d, want %d", i, r.Order, i+1)
		}
		wantID := fmt.Sprintf("section%d", i+1)
		if r.ID != wantID {
			t.Errorf("All()[%d].ID = %q, want %q", i, r.ID, wantID)
		}
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		id     string
		wantOK bool
	}{
		{name: "hero", id: "section1", wantOK: true},
		{name: "last", id: "section12", wantOK: true},
		{name: "out of range", id: "section13", wantOK: false},
		{name: "zero padded", id: "section01", wantOK: false},
		{name: "uppercase not normalized", id: "SECTION1", wantOK: false},
		{name: "empty", id: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r, ok := Lookup(tt.id)
			if ok != tt.wantOK {
				t.Fatalf("Lookup(%q) ok = %v, want %v", tt.id, ok, tt.wantOK)
			}
			if ok && r.ID != tt.id {
				t.Errorf("Lookup(%q).ID = %q", tt.id, r.ID)
			}
		})
	}
}

func TestRequired(t *testing.T) {
	t.Parallel()

	got := Required()
	want := []string{Hero, Introduction, MainContent, Conclusion}
	if len(got) != len(want) {
		t.Fatalf("Required() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Required()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestImagePosition(t *testing.T) {
	t.Parallel()

	hero, _ := Lookup(Hero)
	if got := hero.ImagePosition(); got != ImageAfter {
		t.Errorf("hero ImagePosition() = %q, want %q", got, ImageAfter)
	}

	intro, _ := Lookup(Introduction)
	if got := intro.ImagePosition(); got != ImageNone {
		t.Errorf("intro ImagePosition() = %q, want %q", got, ImageNone)
	}

	var nilRule *SectionRule
	if got := nilRule.ImagePosition(); got != ImageNone {
		t.Errorf("nil ImagePosition() = %q, want %q", got, ImageNone)
	}
}

func TestMainContentMinWords(t *testing.T) {
	t.Parallel()

	r, _ := Lookup(MainContent)
	if r.MinWords != 120 {
		t.Errorf("MainContent.MinWords = %d, want 120", r.MinWords)
	}
}
