package learning

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
)

const (
	usageFileName    = "usage_log.json"
	feedbackFileName = "feedback.json"
)

// Ledger owns the two append-mostly logs: the bounded usage log (FIFO,
// capped at maxEntries) and the uncapped feedback history. Entries are
// never edited in place.
type Ledger struct {
	mu         sync.RWMutex
	entries    []UsageEntry
	feedback   []FeedbackEvent
	usagePath  string
	fbPath     string
	maxEntries int
}

func OpenLedger(dir string, maxEntries int) (*Ledger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &StorageError{Op: "load", Path: dir, Err: err}
	}
	l := &Ledger{
		usagePath:  filepath.Join(dir, usageFileName),
		fbPath:     filepath.Join(dir, feedbackFileName),
		maxEntries: maxEntries,
	}
	if err := loadJSONArray(l.usagePath, &l.entries); err != nil {
		return nil, err
	}
	if err := loadJSONArray(l.fbPath, &l.feedback); err != nil {
		return nil, err
	}
	// Enforce the cap even if the file was written by an older build with
	// a larger window.
	if over := len(l.entries) - maxEntries; over > 0 {
		l.entries = append([]UsageEntry(nil), l.entries[over:]...)
	}
	return l, nil
}

func loadJSONArray(path string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return &StorageError{Op: "load", Path: path, Err: err}
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return &StorageError{Op: "load", Path: path, Err: err}
	}
	return nil
}

// LogQuery appends a usage entry, evicting the oldest entry first once the
// cap is exceeded.
func (l *Ledger) LogQuery(e UsageEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	prev := l.entries
	l.entries = append(l.entries, e)
	if len(l.entries) > l.maxEntries {
		l.entries = append([]UsageEntry(nil), l.entries[len(l.entries)-l.maxEntries:]...)
	}
	if err := l.persistUsageLocked(); err != nil {
		l.entries = prev
		return &StorageError{Op: "append", Path: l.usagePath, Err: err}
	}
	return nil
}

// AppendFeedback records a feedback event. The event is kept in memory
// first so user feedback survives a failed disk write (at-least-once); a
// persistence failure is still reported so the caller can retry.
func (l *Ledger) AppendFeedback(ev FeedbackEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.feedback = append(l.feedback, ev)
	if err := l.persistFeedbackLocked(); err != nil {
		return &StorageError{Op: "append", Path: l.fbPath, Err: err}
	}
	return nil
}

// Entries returns a copy of the current usage window, in insertion order.
func (l *Ledger) Entries() []UsageEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]UsageEntry(nil), l.entries...)
}

// FeedbackHistory returns a copy of all recorded feedback events.
func (l *Ledger) FeedbackHistory() []FeedbackEvent {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]FeedbackEvent(nil), l.feedback...)
}

func (l *Ledger) persistUsageLocked() error {
	data, err := json.MarshalIndent(l.entries, "", "  ")
	if err != nil {
		return err
	}
	return atomicWrite(l.usagePath, data)
}

func (l *Ledger) persistFeedbackLocked() error {
	data, err := json.MarshalIndent(l.feedback, "", "  ")
	if err != nil {
		return err
	}
	return atomicWrite(l.fbPath, data)
}

var (
	questionWordRe = regexp.MustCompile(`^(what|how|why|when|where|who|which|tell me|explain)\s+`)
	leadFillerRe   = regexp.MustCompile(`^(is|are|was|were|the|a|an)\s+`)
)

// extractTopic pulls a short topic label out of a query for the top-topics
// statistic: question words stripped, first three words kept.
func extractTopic(query string) string {
	topic := strings.ToLower(strings.TrimSpace(query))
	topic = questionWordRe.ReplaceAllString(topic, "")
	topic = leadFillerRe.ReplaceAllString(topic, "")
	topic = trailingPunctRe.ReplaceAllString(topic, "")
	words := strings.Fields(topic)
	if len(words) > 3 {
		words = words[:3]
	}
	return strings.Join(words, " ")
}

// TopicCount is one row of the top-topics statistic.
type TopicCount struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

func topTopics(entries []UsageEntry, n int) []TopicCount {
	counts := make(map[string]int)
	for _, e := range entries {
		if t := extractTopic(e.Query); t != "" {
			counts[t]++
		}
	}
	out := make([]TopicCount, 0, len(counts))
	for t, c := range counts {
		out = append(out, TopicCount{Topic: t, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Topic < out[j].Topic
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
