package learning

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// ExportLearned returns a snapshot of the store as a plain query -> answer
// mapping, for portability.
func (s *System) ExportLearned() map[string]string {
	return s.Store.Snapshot()
}

// WriteLearnedYAML dumps the learned pairs to a YAML file, keys sorted,
// answers only.
func (s *System) WriteLearnedYAML(path string) error {
	snapshot := s.ExportLearned()

	keys := make([]string, 0, len(snapshot))
	for k := range snapshot {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	// yaml.MapSlice is gone in v3; an ordered document is built by hand.
	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range keys {
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: k},
			&yaml.Node{Kind: yaml.ScalarNode, Value: snapshot[k]},
		)
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal learned pairs: %w", err)
	}
	if err := atomicWrite(path, data); err != nil {
		return &StorageError{Op: "export", Path: path, Err: err}
	}
	_ = os.Chmod(path, 0o644)
	return nil
}
