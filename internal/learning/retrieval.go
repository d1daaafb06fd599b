package learning

import (
	"log"
	"time"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// Similarity scores two normalized strings in [0,1] using a normalized
// Levenshtein ratio. Inputs are expected to already be lowercased and
// whitespace-collapsed by Normalize.
func Similarity(a, b string) float64 {
	return strutil.Similarity(a, b, metrics.NewLevenshtein())
}

// Retrieve looks up a raw query: exact match on the normalized key first,
// then a linear fuzzy scan over all stored keys. A fuzzy candidate matches
// when its score is at least fuzzyThreshold (the threshold is closed on the
// match side); score ties are broken by higher confidence, then by most
// recent use. Records below minConfidence are never served.
//
// A hit bumps HitCount and LastUsedAt. Exact match always wins over fuzzy,
// so two distinct literal phrasings stored deliberately by corrections are
// never collapsed into one.
func (s *Store) Retrieve(rawQuery string, fuzzyThreshold, minConfidence float64) (AnswerRecord, bool) {
	if s.disabled {
		return AnswerRecord{}, false
	}
	key := Normalize(rawQuery)
	if key == "" {
		return AnswerRecord{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if rec, ok := s.records[key]; ok && rec.Confidence >= minConfidence {
		return s.touchLocked(rec), true
	}

	var (
		best      AnswerRecord
		bestScore float64
		found     bool
	)
	for k, rec := range s.records {
		if rec.Confidence < minConfidence {
			continue
		}
		score := Similarity(key, k)
		if score < fuzzyThreshold {
			continue
		}
		if !found || score > bestScore ||
			(score == bestScore && betterTiebreak(rec, best)) {
			best, bestScore, found = rec, score, true
		}
	}
	if !found {
		return AnswerRecord{}, false
	}
	return s.touchLocked(best), true
}

func betterTiebreak(a, b AnswerRecord) bool {
	if a.Confidence != b.Confidence {
		return a.Confidence > b.Confidence
	}
	return a.LastUsedAt.After(b.LastUsedAt)
}

// touchLocked updates hit bookkeeping and persists. Serving the answer
// outranks bookkeeping: on a failed persist the in-memory record is rolled
// back so memory never diverges from disk, but the bumped copy is still
// returned to the caller.
func (s *Store) touchLocked(rec AnswerRecord) AnswerRecord {
	prev := s.records[rec.NormalizedQuery]
	rec.HitCount++
	rec.LastUsedAt = time.Now()
	s.records[rec.NormalizedQuery] = rec
	if err := s.persistLocked(); err != nil {
		s.records[rec.NormalizedQuery] = prev
		log.Printf("learning: failed to persist hit bookkeeping for %q: %v", rec.NormalizedQuery, err)
	}
	return rec
}
