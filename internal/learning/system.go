package learning

import (
	"github.com/jeanpaul/musage/internal/config"
)

// System bundles the learned store, the usage ledger and the feedback
// processor behind one constructor. Each instance is fully isolated:
// tests and user profiles get their own storage directory, nothing is
// process-global.
type System struct {
	Store  *Store
	Ledger *Ledger

	fuzzyThreshold float64
	minConfidence  float64
}

// Open initializes a learning system rooted at cfg.StorageDir.
func Open(cfg *config.Config) (*System, error) {
	store, err := OpenStore(cfg.StorageDir, cfg.LearningDisabled)
	if err != nil {
		return nil, err
	}
	ledger, err := OpenLedger(cfg.StorageDir, cfg.MaxLogSize)
	if err != nil {
		return nil, err
	}
	return &System{
		Store:          store,
		Ledger:         ledger,
		fuzzyThreshold: cfg.FuzzyThreshold,
		minConfidence:  cfg.MinConfidence,
	}, nil
}

// Retrieve answers a raw query from the learned store, or reports absent.
func (s *System) Retrieve(rawQuery string) (AnswerRecord, bool) {
	return s.Store.Retrieve(rawQuery, s.fuzzyThreshold, s.minConfidence)
}

// LogQuery appends one usage entry for an answered query.
func (s *System) LogQuery(e UsageEntry) error {
	return s.Ledger.LogQuery(e)
}

// Summarize recomputes the statistics summary from the logs.
func (s *System) Summarize() Summary {
	return s.Ledger.Summarize(s.Store.Len())
}
