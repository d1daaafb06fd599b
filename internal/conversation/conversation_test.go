package conversation

import (
	"fmt"
	"strings"
	"testing"
)

func TestHistoryCapsAtMaxTurns(t *testing.T) {
	m, err := Open(t.TempDir(), 3)
	if err != nil {
		t.Fatal(err)
	}

	for i := 1; i <= 10; i++ {
		m.AddUser(fmt.Sprintf("question %d", i))
		m.AddAssistant(fmt.Sprintf("answer %d", i))
	}

	if got := m.Len(); got != 6 {
		t.Fatalf("Len = %d, want 6", got)
	}
	msgs := m.Messages()
	if msgs[0].Content != "question 8" {
		t.Errorf("oldest kept = %q, want question 8", msgs[0].Content)
	}
	if msgs[5].Content != "answer 10" {
		t.Errorf("newest = %q, want answer 10", msgs[5].Content)
	}
}

func TestSessionSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	m, err := Open(dir, 5)
	if err != nil {
		t.Fatal(err)
	}
	m.AddUser("what is the capital of france")
	m.AddAssistant("Paris")

	m2, err := Open(dir, 5)
	if err != nil {
		t.Fatal(err)
	}
	if m2.Len() != 2 {
		t.Fatalf("reloaded Len = %d, want 2", m2.Len())
	}
	last, ok := m2.LastUserMessage()
	if !ok || last.Content != "what is the capital of france" {
		t.Errorf("LastUserMessage = %q, %v", last.Content, ok)
	}
}

func TestContextStringShowsLastExchanges(t *testing.T) {
	m, err := Open(t.TempDir(), 10)
	if err != nil {
		t.Fatal(err)
	}
	m.AddUser("first question")
	m.AddAssistant("first answer")
	m.AddUser("second question")
	m.AddAssistant("second answer")

	ctx := m.ContextString(1)
	if strings.Contains(ctx, "first question") {
		t.Errorf("ContextString(1) should drop older turns:\n%s", ctx)
	}
	if !strings.Contains(ctx, "You: second question") || !strings.Contains(ctx, "Assistant: second answer") {
		t.Errorf("ContextString(1) missing latest exchange:\n%s", ctx)
	}
}

func TestClearWipesHistoryAndFile(t *testing.T) {
	dir := t.TempDir()
	m, err := Open(dir, 5)
	if err != nil {
		t.Fatal(err)
	}
	m.AddUser("hello")
	if err := m.Clear(); err != nil {
		t.Fatal(err)
	}
	if m.Len() != 0 {
		t.Errorf("Len after Clear = %d", m.Len())
	}

	m2, err := Open(dir, 5)
	if err != nil {
		t.Fatal(err)
	}
	if m2.Len() != 0 {
		t.Errorf("session file should be gone, got %d messages", m2.Len())
	}
}
