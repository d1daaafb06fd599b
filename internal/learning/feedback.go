package learning

import (
	"log"
	"math"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	// initialConfidence is assigned on first learn and to corrections.
	initialConfidence = 0.8
	// reinforceStep is how far each repeated positive confirmation moves
	// confidence toward 1.0.
	reinforceStep = 0.05
	// maxLearnableAnswer guards against learning whole scraped pages as
	// single answers.
	maxLearnableAnswer = 2000
)

// ApplyFeedback applies user feedback for a query/answer pair.
//
// Positive: learn the answer under the normalized key (first learn gets
// confidence 0.8) or, when the same answer is already stored for that key,
// reinforce its confidence toward 1.0.
//
// Negative: remove any stored record for the key so a flagged answer is
// never served again, then try to extract a correction from the comment;
// if one is found it is stored as a new record with source "correction".
// When extraction yields nothing, the key simply stays empty.
//
// The feedback event is recorded first, in memory before disk, so feedback
// is never silently dropped even when the store write fails; a store
// failure is returned as *StorageError and can be retried by the caller.
func (s *System) ApplyFeedback(query, answer string, helpful bool, comment string) error {
	ev := FeedbackEvent{
		ID:        uuid.NewString(),
		Query:     query,
		Answer:    clip(answer, 200),
		Helpful:   helpful,
		Comment:   comment,
		Timestamp: time.Now(),
	}
	if err := s.Ledger.AppendFeedback(ev); err != nil {
		// The event is retained in memory; learning still proceeds.
		log.Printf("learning: feedback event not persisted: %v", err)
	}

	if helpful {
		return s.learn(query, answer, MethodLearned)
	}

	key := Normalize(query)
	if err := s.Store.Remove(key); err != nil {
		return err
	}
	if comment == "" {
		return nil
	}
	corrected, ok := ExtractCorrection(comment)
	if !ok {
		// Vague or unparseable feedback: the key stays empty and the next
		// query falls through to the lower pipeline tiers.
		return nil
	}
	return s.learn(query, corrected, MethodCorrection)
}

// RecordSkip notes a skipped feedback prompt when the user typed a comment
// anyway; a silent skip carries no signal and is not recorded.
func (s *System) RecordSkip(query, answer, comment string) {
	if comment == "" {
		return
	}
	ev := FeedbackEvent{
		ID:        uuid.NewString(),
		Query:     query,
		Answer:    clip(answer, 200),
		Helpful:   false,
		Comment:   comment,
		Timestamp: time.Now(),
	}
	if err := s.Ledger.AppendFeedback(ev); err != nil {
		log.Printf("learning: skip event not persisted: %v", err)
	}
}

func (s *System) learn(query, answer string, source Method) error {
	if len(answer) == 0 || len(answer) > maxLearnableAnswer {
		return nil
	}
	key := Normalize(query)
	if key == "" {
		return nil
	}
	now := time.Now()

	if existing, ok := s.Store.Get(key); ok && existing.Answer == answer {
		existing.Confidence = math.Min(1.0, existing.Confidence+reinforceStep)
		existing.OriginalQuery = query
		existing.LastUsedAt = now
		return s.Store.Put(existing)
	}

	return s.Store.Put(AnswerRecord{
		NormalizedQuery: key,
		OriginalQuery:   query,
		Answer:          answer,
		Confidence:      initialConfidence,
		SourceMethod:    source,
		CreatedAt:       now,
		LastUsedAt:      now,
	})
}

// clip truncates to at most n bytes without splitting a rune.
func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
