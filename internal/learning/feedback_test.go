package learning

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanpaul/musage/internal/config"
)

func testSystem(t *testing.T) *System {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.StorageDir = t.TempDir()
	sys, err := Open(cfg)
	require.NoError(t, err)
	return sys
}

func TestPositiveFeedbackLearns(t *testing.T) {
	sys := testSystem(t)

	err := sys.ApplyFeedback("What is photosynthesis?", "Plants converting light into glucose and oxygen.", true, "")
	require.NoError(t, err)

	rec, ok := sys.Store.Get(Normalize("What is photosynthesis?"))
	require.True(t, ok, "positive feedback should create a record")
	assert.Equal(t, MethodLearned, rec.SourceMethod)
	assert.Equal(t, 0.8, rec.Confidence)
	assert.Equal(t, "Plants converting light into glucose and oxygen.", rec.Answer)

	events := sys.Ledger.FeedbackHistory()
	require.Len(t, events, 1)
	assert.True(t, events[0].Helpful)
}

func TestPositiveReinforcementBounded(t *testing.T) {
	sys := testSystem(t)
	answer := "Paris is the capital of France."

	for i := 0; i < 30; i++ {
		require.NoError(t, sys.ApplyFeedback("capital of france", answer, true, ""))
	}

	rec, ok := sys.Store.Get("capital of france")
	require.True(t, ok)
	assert.LessOrEqual(t, rec.Confidence, 1.0, "confidence must never exceed 1.0")
	assert.Greater(t, rec.Confidence, 0.8, "repeated confirmation should raise confidence")
}

func TestPositiveFeedbackDifferentAnswerReplaces(t *testing.T) {
	sys := testSystem(t)

	require.NoError(t, sys.ApplyFeedback("tallest mountain", "K2.", true, ""))
	require.NoError(t, sys.ApplyFeedback("tallest mountain", "Mount Everest, 8,849 m.", true, ""))

	rec, ok := sys.Store.Get("tallest mountain")
	require.True(t, ok)
	assert.Equal(t, "Mount Everest, 8,849 m.", rec.Answer)
	assert.Equal(t, 0.8, rec.Confidence, "replacement starts back at initial confidence")
}

func TestNegativeFeedbackRemovesBadAnswer(t *testing.T) {
	sys := testSystem(t)

	require.NoError(t, sys.ApplyFeedback("capital of australia", "Sydney.", true, ""))
	_, ok := sys.Store.Get("capital of australia")
	require.True(t, ok)

	require.NoError(t, sys.ApplyFeedback("capital of australia", "Sydney.", false, ""))
	_, ok = sys.Store.Get("capital of australia")
	assert.False(t, ok, "flagged answer must never be served again")

	// Both events are recorded regardless of outcome.
	assert.Len(t, sys.Ledger.FeedbackHistory(), 2)
}

func TestNegativeFeedbackWithCorrectionRelearns(t *testing.T) {
	sys := testSystem(t)

	err := sys.ApplyFeedback("capital of australia", "Sydney.", false, "The correct answer is Canberra")
	require.NoError(t, err)

	rec, ok := sys.Store.Get("capital of australia")
	require.True(t, ok, "correction should be learned")
	assert.Equal(t, "Canberra", rec.Answer)
	assert.Equal(t, MethodCorrection, rec.SourceMethod)
	assert.Equal(t, 0.8, rec.Confidence)
}

func TestNegativeFeedbackVagueCommentLearnsNothing(t *testing.T) {
	sys := testSystem(t)

	err := sys.ApplyFeedback("what is inflation", "Prices going up.", false, "should be more specific")
	require.NoError(t, err)

	_, ok := sys.Store.Get("inflation")
	assert.False(t, ok, "vague feedback must not be stored as an answer")
	assert.Len(t, sys.Ledger.FeedbackHistory(), 1, "feedback event still recorded")
}

// The self-correction loop end to end: miss, correct via negative feedback,
// then retrieve the corrected answer with hit bookkeeping.
func TestSelfCorrectionLoop(t *testing.T) {
	sys := testSystem(t)

	_, ok := sys.Retrieve("capital of france")
	require.False(t, ok, "store should start empty")

	err := sys.ApplyFeedback("capital of france", "I don't know.", false, "The correct answer is Paris")
	require.NoError(t, err)

	rec, ok := sys.Store.Get(Normalize("capital of france"))
	require.True(t, ok)
	assert.Equal(t, "Paris", rec.Answer)
	assert.Equal(t, 0.8, rec.Confidence)

	got, ok := sys.Retrieve("capital of france")
	require.True(t, ok)
	assert.Equal(t, "Paris", got.Answer)
	assert.Equal(t, 1, got.HitCount)
}

func TestLearningDisabledSkipsStore(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.StorageDir = t.TempDir()
	cfg.LearningDisabled = true
	sys, err := Open(cfg)
	require.NoError(t, err)

	require.NoError(t, sys.ApplyFeedback("what is ai", "Artificial intelligence.", true, ""))
	_, ok := sys.Retrieve("what is ai")
	assert.False(t, ok, "disabled learning must not serve records")
}

func TestFeedbackEventClipsOnRuneBoundary(t *testing.T) {
	sys := testSystem(t)

	// 150 two-byte runes is 300 bytes; a byte-wise cut at 200 would land
	// mid-rune.
	answer := strings.Repeat("é", 150)
	require.NoError(t, sys.ApplyFeedback("accented answer", answer, true, ""))

	history := sys.Ledger.FeedbackHistory()
	require.Len(t, history, 1)
	clipped := history[0].Answer
	assert.True(t, utf8.ValidString(clipped), "clipped answer must stay valid UTF-8")
	assert.LessOrEqual(t, len(clipped), 200)
}

func TestClipKeepsRuneBoundary(t *testing.T) {
	s := "abé" // 4 bytes, rune boundary after "ab"
	assert.Equal(t, "ab", clip(s, 3))
	assert.Equal(t, s, clip(s, 4))
	assert.Equal(t, "ab", clip(s, 2))
}

func TestRecordSkip(t *testing.T) {
	sys := testSystem(t)

	sys.RecordSkip("what is pi", "3.14159...", "")
	assert.Empty(t, sys.Ledger.FeedbackHistory(), "silent skip carries no signal")

	sys.RecordSkip("what is pi", "3.14159...", "came back to this later")
	assert.Len(t, sys.Ledger.FeedbackHistory(), 1)
}
