package learning

import "time"

// Method identifies which pipeline tier produced an answer.
type Method string

const (
	MethodLearned    Method = "learned"
	MethodSimpleQA   Method = "simple_qa"
	MethodWeb        Method = "web_extraction"
	MethodCorrection Method = "correction"
)

// AnswerRecord is one learned question/answer pair, keyed by the normalized
// query. Exactly one live record exists per key.
type AnswerRecord struct {
	NormalizedQuery string    `json:"normalized_query"`
	OriginalQuery   string    `json:"original_query"`
	Answer          string    `json:"answer"`
	Confidence      float64   `json:"confidence"`
	SourceMethod    Method    `json:"source_method"`
	HitCount        int       `json:"hit_count"`
	CreatedAt       time.Time `json:"created_at"`
	LastUsedAt      time.Time `json:"last_used_at"`
}

// UsageEntry is one row in the bounded usage ledger.
type UsageEntry struct {
	Query     string    `json:"query"`
	Answer    string    `json:"answer"`
	Method    Method    `json:"method"`
	Success   bool      `json:"success"`
	Timestamp time.Time `json:"timestamp"`
}

// FeedbackEvent records a single user feedback action. Events are
// append-only and never pruned.
type FeedbackEvent struct {
	ID        string    `json:"id"`
	Query     string    `json:"query"`
	Answer    string    `json:"answer"`
	Helpful   bool      `json:"helpful"`
	Comment   string    `json:"comment,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
