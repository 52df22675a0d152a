package words

import "testing"

func TestSimilarity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		min  float64
		max  float64
	}{
		{"color", "color", 1, 1},
		{"", "color", 0, 0},
		{"color", "", 0, 0},
		{"color", "colour", 0.8, 0.9},
		{"cat", "elephant", 0, 0.3},
	}

	for _, tc := range tests {
		got := Similarity(tc.a, tc.b)
		if got < tc.min || got > tc.max {
			t.Errorf("Similarity(%q, %q) = %v, want within [%v, %v]", tc.a, tc.b, got, tc.min, tc.max)
		}
		if got != Similarity(tc.b, tc.a) {
			t.Errorf("Similarity(%q, %q) not symmetric", tc.a, tc.b)
		}
	}
}

func TestLevenshtein(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"a", "", 1},
		{"kitten", "sitting", 3},
		{"amber", "amber", 0},
		{"blue", "blues", 1},
	}

	for _, tc := range tests {
		if got := levenshtein(tc.a, tc.b); got != tc.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}
