package recipe

import "testing"

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"bare json", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"plain fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"fence without newlines", "```json{\"a\":1}```", `{"a":1}`},
		{"surrounding whitespace", "  \n```json\n{\"a\":1}\n```\n  ", `{"a":1}`},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripCodeFences(tt.raw); got != tt.want {
				t.Errorf("StripCodeFences(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
