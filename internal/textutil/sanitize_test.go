package textutil

import "testing"

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Show", "Show"},
		{"  padded  ", "padded"},
		{"Re:Zero", "Re-Zero"},
		{"AC/DC", "AC-DC"},
		{`What? "Really" <yes>|no`, "What Really yesno"},
		{"..hidden", "hidden"},
		{"tab\there", "tabhere"},
		// Decomposed e + combining acute becomes the precomposed rune.
		{"Pokemone\u0301", "Pokemon\u00e9"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SanitizeFileName(tt.input); got != tt.want {
			t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
