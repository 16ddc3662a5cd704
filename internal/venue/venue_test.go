package venue

import (
	"testing"

	"github.com/rcallahan/memphis-shows/internal/config"
)

func newTestNormalizer() *Normalizer {
	return NewNormalizer(config.Default().AliasMap())
}

func TestNormalize(t *testing.T) {
	n := newTestNormalizer()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "exact alias match",
			input:    "hi tone cafe",
			expected: "Hi Tone",
		},
		{
			name:     "exact match is case-insensitive",
			input:    "MINGLEWOOD HALL",
			expected: "Minglewood Hall",
		},
		{
			name:     "alias substring of input",
			input:    "HI-TONE CAFE",
			expected: "Hi Tone",
		},
		{
			name:     "input substring of alias",
			input:    "lafayettes music",
			expected: "Lafayette's Music Room",
		},
		{
			name:     "leading the variant",
			input:    "The Hi-Tone",
			expected: "Hi Tone",
		},
		{
			name:     "former name maps to current",
			input:    "Levitt Shell",
			expected: "Overton Park Shell",
		},
		{
			name:     "unknown venue passes through",
			input:    "Totally New Place",
			expected: "Totally New Place",
		},
		{
			name:     "unknown all-caps venue gets title case",
			input:    "SOME WAREHOUSE",
			expected: "Some Warehouse",
		},
		{
			name:     "unknown lowercase venue gets title case",
			input:    "railgarten patio",
			expected: "Railgarten Patio",
		},
		{
			name:     "mixed-case proper name is never re-cased",
			input:    "McEwen's",
			expected: "McEwen's",
		},
		{
			name:     "empty input",
			input:    "",
			expected: UnknownVenue,
		},
		{
			name:     "whitespace only",
			input:    "   ",
			expected: UnknownVenue,
		},
		{
			name:     "surrounding whitespace trimmed",
			input:    "  growlers  ",
			expected: "Growlers",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n.Normalize(tt.input)
			if got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	n := newTestNormalizer()

	inputs := []string{
		"hi tone cafe",
		"HI-TONE CAFE",
		"Totally New Place",
		"railgarten patio",
		"Minglewood Hall",
		"",
		"the shell",
	}

	for _, input := range inputs {
		once := n.Normalize(input)
		twice := n.Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestNormalizeCanonicalNameMapsToItself(t *testing.T) {
	n := newTestNormalizer()
	for _, v := range config.Default().Venues {
		if got := n.Normalize(v.Name); got != v.Name {
			t.Errorf("Normalize(%q) = %q, want canonical name unchanged", v.Name, got)
		}
	}
}
