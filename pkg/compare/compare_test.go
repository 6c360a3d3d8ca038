package compare

import "testing"

func TestBoundedLevenshtein(t *testing.T) {
	cases := []struct {
		a, b      string
		threshold int
		want      int
	}{
		{"kitten", "sitting", 3, 3},
		{"train", "shine", 4, 4},
		{"a", "aaa", 2, 2},
		{"arst", "zxcv", 4, 4},
		// Row cutoff: |10-12| <= 5 so we proceed into the matrix; no
		// characters match, so row 6 is the first with every cell above the
		// threshold, and the early exit returns 6.
		{"ieanrstien", "            ", 5, 6},
		// Length upper bound short-circuit: max(8,4) > 100 is false... wait
		// max(8,4)=8 <= 100, so this hits the upper-bound short circuit and
		// returns the threshold itself, not the true distance.
		{"arstarst", "zxcv", 100, 100},
		{"same", "same", 0, 0},
		{"", "", 5, 5},
	}

	for _, c := range cases {
		got := BoundedLevenshtein(c.a, c.b, c.threshold)
		if got != c.want {
			t.Errorf("BoundedLevenshtein(%q, %q, %d) = %d, want %d", c.a, c.b, c.threshold, got, c.want)
		}
	}
}

func TestBoundedLevenshteinLengthLowerBound(t *testing.T) {
	// |3-9| = 6 > threshold(2), must short-circuit above the threshold.
	got := BoundedLevenshtein("abc", "abcdefghi", 2)
	if got <= 2 {
		t.Fatalf("expected > 2 for a length gap that exceeds the threshold, got %d", got)
	}
}

func TestBoundedLevenshteinSymmetry(t *testing.T) {
	pairs := [][2]string{
		{"kitten", "sitting"},
		{"flaw", "lawn"},
		{"", "abc"},
		{"go", "go"},
	}
	for _, p := range pairs {
		const threshold = 2
		d1 := BoundedLevenshtein(p[0], p[1], threshold)
		d2 := BoundedLevenshtein(p[1], p[0], threshold)
		if d1 != d2 {
			t.Errorf("distance not symmetric for %q/%q: %d vs %d", p[0], p[1], d1, d2)
		}
	}
}

func TestBoundedLevenshteinIdentity(t *testing.T) {
	// threshold=0 keeps both short-circuits aligned with the true distance
	// (0) for identical strings of any length, so this exercises both the
	// shortcut path (empty string) and the full matrix path (non-empty).
	for _, s := range []string{"", "x", "hello world", "héllo wörld"} {
		if d := BoundedLevenshtein(s, s, 0); d != 0 {
			t.Errorf("BoundedLevenshtein(%q, %q, 0) = %d, want 0", s, s, d)
		}
	}
}

func TestNewComparatorSelection(t *testing.T) {
	exact := New(0)
	if !exact.Compare("foo", "foo") {
		t.Error("exact comparator should accept identical lines")
	}
	if exact.Compare("foo", "fob") {
		t.Error("exact comparator should reject a single-character difference")
	}

	fuzzy := New(1)
	if !fuzzy.Compare("foo", "fob") {
		t.Error("threshold-1 comparator should accept a single substitution")
	}
	if fuzzy.Compare("foo", "bar") {
		t.Error("threshold-1 comparator should reject completely different lines")
	}
}

func TestUnicodeCodePointGranularity(t *testing.T) {
	// "café" (4 code points, one of which is multi-byte) vs "cafe" is a
	// single substitution in code points, even though it differs by more
	// than one byte.
	if d := BoundedLevenshtein("café", "cafe", 3); d != 1 {
		t.Errorf("BoundedLevenshtein(café, cafe, 3) = %d, want 1", d)
	}
}
