package learning

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe    = regexp.MustCompile(`\s+`)
	trailingPunctRe = regexp.MustCompile(`[?!.]+$`)
	questionLeadRe  = regexp.MustCompile(`^(what is|what are|what does|tell me about|explain|define|describe)\s+(the\s+|a\s+|an\s+)?`)
)

// Normalize canonicalizes a raw query into the key used by the learned store.
// It is the sole key-derivation point: every lookup and every write goes
// through it, so its rules must stay stable across releases or all stored
// keys are invalidated.
//
// Rules: lowercase, collapse whitespace, strip terminal punctuation, strip
// leading question scaffolding ("what is", "explain", ... plus an optional
// article), and collapse duplicated consecutive words ("full form form of"
// becomes "full form of").
func Normalize(raw string) string {
	q := strings.ToLower(strings.TrimSpace(raw))
	q = whitespaceRe.ReplaceAllString(q, " ")
	q = trailingPunctRe.ReplaceAllString(q, "")
	q = questionLeadRe.ReplaceAllString(q, "")
	q = strings.TrimSpace(q)

	words := strings.Fields(q)
	deduped := words[:0]
	prev := ""
	for _, w := range words {
		if w != prev {
			deduped = append(deduped, w)
			prev = w
		}
	}
	return strings.Join(deduped, " ")
}
