package learning

import (
	"regexp"
	"strings"
)

// correctionRules are ordered from most to least specific; the first rule
// whose pattern matches wins, and its captured value then has to survive
// the vagueness post-filter. A later, more generic rule never overrides an
// earlier match.
var correctionRules = []struct {
	name string
	re   *regexp.Regexp
}{
	{"the-subject-is", regexp.MustCompile(`(?i)\bthe\s+.{1,50}?\s+(?:is|are)\s+([^,.!?]+)`)},
	{"correct-answer-is", regexp.MustCompile(`(?i)\b(?:correct|right|actual)\s+answer\s+(?:is|are)\s+([^,.!?]+)`)},
	{"it-should-be", regexp.MustCompile(`(?i)\b(?:it|they)\s+should\s+be\s+([^,.!?]+)`)},
	{"actually-its", regexp.MustCompile(`(?i)\bactually\s+(?:it\s+is\s+|it'?s\s+)?([^,.!?]+)`)},
	{"means", regexp.MustCompile(`(?i)\b(?:means|stands\s+for)\s+([^,.!?]+)`)},
	{"should-be", regexp.MustCompile(`(?i)\bshould\s+be\s+([^,.!?]+)`)},
	{"bare-is", regexp.MustCompile(`(?i)^[^,.!?]+?\s+(?:is|are)\s+([^,.!?]+)`)},
}

// fillerWords are words that carry no factual content. A candidate made up
// only of these is vague feedback ("should be more specific"), not a fact,
// and must never be learned.
var fillerWords = map[string]bool{
	"more": true, "better": true, "clearer": true, "detailed": true,
	"specific": true, "wrong": true, "different": true, "incorrect": true,
	"bad": true, "vague": true, "accurate": true, "precise": true,
	"helpful": true, "correct": true, "right": true, "good": true,
	"not": true, "else": true, "something": true, "shorter": true,
	"longer": true, "simpler": true,
}

const (
	minCorrectionChars = 3
	maxCorrectionChars = 200
)

// ExtractCorrection parses a free-text feedback comment into a corrected
// answer. It returns ("", false) when the comment matches no rule or the
// candidate fails the vagueness filter; that is a normal absent result,
// not an error.
func ExtractCorrection(comment string) (string, bool) {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return "", false
	}
	for _, rule := range correctionRules {
		m := rule.re.FindStringSubmatch(comment)
		if m == nil {
			continue
		}
		candidate := strings.TrimSpace(m[1])
		if !usableCorrection(candidate) {
			return "", false
		}
		return candidate, true
	}
	return "", false
}

func usableCorrection(candidate string) bool {
	if len(candidate) < minCorrectionChars || len(candidate) > maxCorrectionChars {
		return false
	}
	words := strings.Fields(strings.ToLower(candidate))
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		if !fillerWords[strings.Trim(w, `"'`)] {
			return true
		}
	}
	return false
}
