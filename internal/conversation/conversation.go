// Package conversation tracks the rolling dialogue between the user and the
// assistant and persists it across sessions.
package conversation

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single turn in the dialogue.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Manager holds the session history. Safe for concurrent use.
type Manager struct {
	mu       sync.RWMutex
	messages []Message
	path     string
	maxTurns int // user/assistant pairs kept in memory
}

// Open loads the previous session from dir, or starts fresh if none exists.
func Open(dir string, maxTurns int) (*Manager, error) {
	if maxTurns <= 0 {
		maxTurns = 10
	}
	m := &Manager{
		path:     filepath.Join(dir, "session.json"),
		maxTurns: maxTurns,
	}

	data, err := os.ReadFile(m.path)
	if os.IsNotExist(err) {
		return m, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading session: %w", err)
	}
	if err := json.Unmarshal(data, &m.messages); err != nil {
		// A corrupt session is not worth failing startup over.
		m.messages = nil
	}
	m.trim()
	return m, nil
}

// AddUser records a user turn.
func (m *Manager) AddUser(content string) {
	m.add(RoleUser, content)
}

// AddAssistant records an assistant turn.
func (m *Manager) AddAssistant(content string) {
	m.add(RoleAssistant, content)
}

func (m *Manager) add(role, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	})
	m.trim()
	_ = m.persistLocked()
}

// trim keeps the newest maxTurns exchanges. Caller holds the lock.
func (m *Manager) trim() {
	limit := m.maxTurns * 2
	if len(m.messages) > limit {
		m.messages = append([]Message(nil), m.messages[len(m.messages)-limit:]...)
	}
}

// ContextString renders the last n exchanges for display or prompting.
func (m *Manager) ContextString(n int) string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	msgs := m.messages
	if limit := n * 2; limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}

	var b strings.Builder
	for _, msg := range msgs {
		label := "You"
		if msg.Role == RoleAssistant {
			label = "Assistant"
		}
		fmt.Fprintf(&b, "%s: %s\n", label, msg.Content)
	}
	return b.String()
}

// Messages returns a copy of the current history.
func (m *Manager) Messages() []Message {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Message, len(m.messages))
	copy(out, m.messages)
	return out
}

// Len reports how many turns are held.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.messages)
}

// LastUserMessage returns the most recent user turn, if any.
func (m *Manager) LastUserMessage() (Message, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := len(m.messages) - 1; i >= 0; i-- {
		if m.messages[i].Role == RoleUser {
			return m.messages[i], true
		}
	}
	return Message{}, false
}

// Clear wipes the history and the session file.
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = nil
	if err := os.Remove(m.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session: %w", err)
	}
	return nil
}

func (m *Manager) persistLocked() error {
	data, err := json.MarshalIndent(m.messages, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(m.path), ".session-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), m.path)
}
