package ai

import (
	"strings"
	"testing"
)

func TestSystemInstruction(t *testing.T) {
	instruction := SystemInstruction()

	if len(instruction) == 0 {
		t.Fatal("SystemInstruction() returned empty string")
	}

	contains := []string{
		"<ROLE>",
		"<FLAVOR_PROFILES>",
		"<SUPERFOOD_PRIORITY>",
		"<MACRO_CALCULATION>",
		"<MEASUREMENTS>",
		"<INSTRUCTIONS>",
		"<OUTPUT_FORMAT>",
		"(Protein x 4) + (Carbs x 4) + (Fats x 9)",
		"no more than 6 cooking steps",
		"recipeName",
		"ingredients",
		"macros",
		"steps",
		"thought",
		"grams (g)",
		"milliliters (ml)",
	}

	for _, s := range contains {
		if !strings.Contains(instruction, s) {
			t.Errorf("SystemInstruction() did not contain expected string: %s", s)
		}
	}
}

func TestSystemInstructionIsStable(t *testing.T) {
	if SystemInstruction() != SystemInstruction() {
		t.Error("SystemInstruction() must be deterministic")
	}
}

func TestBuildUserPrompt(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		dietFilter string
		expected   string
	}{
		{
			name:       "No filter",
			input:      "I have eggs, spinach, and avocado",
			dietFilter: "",
			expected:   "I have eggs, spinach, and avocado",
		},
		{
			name:       "None sentinel",
			input:      "chicken and rice",
			dietFilter: "none",
			expected:   "chicken and rice",
		},
		{
			name:       "Any sentinel",
			input:      "chicken and rice",
			dietFilter: "any",
			expected:   "chicken and rice",
		},
		{
			name:       "Sentinel is case-insensitive",
			input:      "chicken and rice",
			dietFilter: "None",
			expected:   "chicken and rice",
		},
		{
			name:       "Diet filter appended",
			input:      "chicken and rice",
			dietFilter: "keto",
			expected:   "chicken and rice Make it keto.",
		},
		{
			name:       "Input is trimmed",
			input:      "  oats and berries  ",
			dietFilter: "vegan",
			expected:   "oats and berries Make it vegan.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := BuildUserPrompt(tt.input, tt.dietFilter)
			if result != tt.expected {
				t.Errorf("BuildUserPrompt(%q, %q) = %q, want %q", tt.input, tt.dietFilter, result, tt.expected)
			}
		})
	}
}
