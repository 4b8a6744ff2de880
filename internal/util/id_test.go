package util

import (
	"strings"
	"testing"
)

func TestNewPlanID(t *testing.T) {
	t.Parallel()

	id, err := NewPlanID()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(id) != 8 {
		t.Errorf("length: got %d, want 8", len(id))
	}
	for _, r := range id {
		if !strings.ContainsRune(idAlphabet, r) {
			t.Errorf("unexpected character %q in id %q", r, id)
		}
	}

	other, err := NewPlanID()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == other {
		t.Error("two generated ids collided")
	}
}

func TestKebab(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"My Plan", "my-plan"},
		{"already-kebab", "already-kebab"},
		{"under_scores and  spaces", "under-scores-and-spaces"},
		{"Drop (punctuation)!", "drop-punctuation"},
		{"--trimmed--", "trimmed"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Kebab(tc.in); got != tc.want {
			t.Errorf("Kebab(%q): got %q, want %q", tc.in, got, tc.want)
		}
	}
}
