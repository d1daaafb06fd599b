package learning

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"What is Gravity?", "gravity"},
		{"  capital   of   France??? ", "capital of france"},
		{"Tell me about the Renaissance", "renaissance"},
		{"full form form of usa", "full form of usa"},
		{"EXPLAIN a molecule", "molecule"},
		{"speed of light.", "speed of light"},
		{"", ""},
		{"???", ""},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

// Two phrasings a user would consider the same question must produce the
// same key.
func TestNormalizeStableAcrossPhrasings(t *testing.T) {
	a := Normalize("What is photosynthesis?")
	b := Normalize("what is  Photosynthesis")
	if a != b {
		t.Errorf("phrasings normalized differently: %q vs %q", a, b)
	}
}

func TestNormalizeDeterministic(t *testing.T) {
	in := "  How   DOES gravity Work?? "
	first := Normalize(in)
	for i := 0; i < 5; i++ {
		if got := Normalize(in); got != first {
			t.Fatalf("Normalize not deterministic: %q then %q", first, got)
		}
	}
}
