package recipe

import (
	"encoding/json"
	"testing"
)

func TestNormalizeMacro(t *testing.T) {
	tests := []struct {
		name  string
		value any
		unit  string
		want  string
	}{
		{"string with duplicated unit", "30gg", "g", "30g"},
		{"bare number", float64(30), "g", "30g"},
		{"int value", 30, "g", "30g"},
		{"int64 value", int64(415), "kcal", "415kcal"},
		{"json number", json.Number("42"), "g", "42g"},
		{"repeated unit with spaces", "415 kcal kcal", "kcal", "415kcal"},
		{"already normalized", "30g", "g", "30g"},
		{"unit with inner space", "30 g", "g", "30g"},
		{"numeric string without unit", "28", "g", "28g"},
		{"decimal string without unit", "12.5", "g", "12.5g"},
		{"text around a number", "about 30", "g", "30g"},
		{"approx kcal", "roughly 415 calories", "kcal", "415kcal"},
		{"whitespace padding", "  30g  ", "g", "30g"},
		{"float value", 12.5, "g", "12.5g"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeMacro(tt.value, tt.unit)
			if got != tt.want {
				t.Errorf("NormalizeMacro(%v, %q) = %q, want %q", tt.value, tt.unit, got, tt.want)
			}
		})
	}
}

func TestNormalizeMacroLossyInput(t *testing.T) {
	// Text with no digits at all degrades to the bare unit; the shape
	// validator rejects it downstream.
	got := NormalizeMacro("unknown", "g")
	if got != "g" {
		t.Errorf("NormalizeMacro(\"unknown\", \"g\") = %q, want %q", got, "g")
	}
	if MacroPattern("g").MatchString(got) {
		t.Errorf("bare unit %q must not satisfy the macro pattern", got)
	}
}

func TestMacroPattern(t *testing.T) {
	tests := []struct {
		value string
		unit  string
		want  bool
	}{
		{"30g", "g", true},
		{"12.5g", "g", true},
		{"415kcal", "kcal", true},
		{"30", "g", false},
		{"g", "g", false},
		{"30 g", "g", false},
		{"30gg", "g", false},
		{"kcal415", "kcal", false},
	}

	for _, tt := range tests {
		if got := MacroPattern(tt.unit).MatchString(tt.value); got != tt.want {
			t.Errorf("MacroPattern(%q).MatchString(%q) = %v, want %v", tt.unit, tt.value, got, tt.want)
		}
	}
}
