package fuzzy

import (
	"fmt"
	"testing"
)

// check if our lev distance impl returns correct distance int
func TestEditDistance(t *testing.T) {
	testCases := []struct {
		a        string
		b        string
		expected int
	}{
		{"", "", 0},
		{"a", "", 1},
		{"", "a", 1},
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},
		{"book", "back", 2},
		{"book", "books", 1},
		{"hello", "hallo", 1},
		{"batt", "bat", 1},
		{"batt", "ball", 2},
		{"trraditunully", "traditionally", 4},
		{"naïve", "naive", 1},
		{"日本語", "日本", 1},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%s→%s", tc.a, tc.b), func(t *testing.T) {
			dist := EditDistance(tc.a, tc.b)
			if dist != tc.expected {
				t.Errorf("Expected distance %d, got %d", tc.expected, dist)
			}
		})
	}
}

var words = []string{"", "a", "ab", "ba", "bat", "base", "ball", "tree", "taste", "basketball", "日本", "naïve"}

func TestEditDistanceSymmetric(t *testing.T) {
	for _, a := range words {
		for _, b := range words {
			if EditDistance(a, b) != EditDistance(b, a) {
				t.Errorf("d(%q,%q)=%d but d(%q,%q)=%d", a, b, EditDistance(a, b), b, a, EditDistance(b, a))
			}
		}
		if d := EditDistance(a, a); d != 0 {
			t.Errorf("d(%q,%q) = %d, want 0", a, a, d)
		}
	}
}

func TestEditDistanceTriangle(t *testing.T) {
	for _, a := range words {
		for _, b := range words {
			for _, c := range words {
				if EditDistance(a, c) > EditDistance(a, b)+EditDistance(b, c) {
					t.Errorf("triangle violated for %q %q %q", a, b, c)
				}
			}
		}
	}
}

func BenchmarkEditDistance(b *testing.B) {
	inputs := []string{"wrd123", "word1", "wordd2", "woord3", "wird4"}
	for i := 0; i < b.N; i++ {
		EditDistance(inputs[i%len(inputs)], "internationalization")
	}
}
