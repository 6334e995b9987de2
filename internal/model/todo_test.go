package model

import (
	"strings"
	"testing"
)

func TestValidTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		title string
		want  bool
	}{
		{"empty", "", false},
		{"single char", "x", true},
		{"typical", "Buy milk", true},
		{"at limit", strings.Repeat("a", MaxTodoTitleLength), true},
		{"over limit", strings.Repeat("a", MaxTodoTitleLength+1), false},
		{"multibyte at limit", strings.Repeat("é", MaxTodoTitleLength), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ValidTitle(tt.title); got != tt.want {
				t.Errorf("ValidTitle(%q) = %v, want %v", tt.title, got, tt.want)
			}
		})
	}
}

func TestNormalizeTitle(t *testing.T) {
	t.Parallel()

	if got := NormalizeTitle("  Buy milk \n"); got != "Buy milk" {
		t.Errorf("NormalizeTitle() = %q, want %q", got, "Buy milk")
	}
	if got := NormalizeTitle("   "); ValidTitle(got) {
		t.Errorf("whitespace-only title should be invalid after normalization, got %q", got)
	}
}
