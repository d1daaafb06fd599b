package learning

import "time"

// Summary is derived on demand from the usage ledger and feedback history.
// It is never persisted as authoritative state: recomputing it from the
// logs always yields the same numbers.
type Summary struct {
	TotalQueries int            `json:"total_queries"`
	LearnedPairs int            `json:"learned_pairs"`
	ByMethod     map[Method]int `json:"by_method"`
	Positive     int            `json:"positive_feedback"`
	Negative     int            `json:"negative_feedback"`
	Satisfaction float64        `json:"satisfaction"`
	TopTopics    []TopicCount   `json:"top_topics"`
	FirstUsed    time.Time      `json:"first_used,omitzero"`
	LastUsed     time.Time      `json:"last_used,omitzero"`
}

// Summarize recomputes the aggregate statistics in a single pass over the
// current ledger window and feedback history. It never mutates the ledger.
func (l *Ledger) Summarize(learnedPairs int) Summary {
	l.mu.RLock()
	defer l.mu.RUnlock()

	s := Summary{
		TotalQueries: len(l.entries),
		LearnedPairs: learnedPairs,
		ByMethod:     make(map[Method]int),
	}
	for i, e := range l.entries {
		s.ByMethod[e.Method]++
		if i == 0 || e.Timestamp.Before(s.FirstUsed) {
			s.FirstUsed = e.Timestamp
		}
		if e.Timestamp.After(s.LastUsed) {
			s.LastUsed = e.Timestamp
		}
	}
	for _, ev := range l.feedback {
		if ev.Helpful {
			s.Positive++
		} else {
			s.Negative++
		}
	}
	if total := s.Positive + s.Negative; total > 0 {
		s.Satisfaction = float64(s.Positive) / float64(total)
	}
	s.TopTopics = topTopics(l.entries, 5)
	return s
}
