package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suklaray/hrms-sub002/pkg/assistant/conversation"
)

func newDetector() (*Detector, *conversation.Store) {
	store := conversation.NewStore()
	return NewDetector(DefaultTable(), store), store
}

func TestDetectLeaveBalance(t *testing.T) {
	d, _ := newDetector()

	res := d.Detect("what is my leave balance", "")

	assert.Equal(t, "leave", res.PrimaryIntent)
	assert.Equal(t, "balance", res.SubIntent)
	assert.Greater(t, res.Confidence, 0.6)
	assert.Equal(t, []string{"leave", "balance"}, res.Labels)
	assert.True(t, IsHRRelated(res))
}

func TestDetectTable(t *testing.T) {
	d, _ := newDetector()

	tests := []struct {
		question   string
		wantIntent string
	}{
		{"show me my payslip", "payslip"},
		{"download my salary slip pdf", "payslip"},
		{"how do i apply for leave", "leave"},
		{"mark my attendance", "attendance"},
		{"when is the next holiday", "holiday"},
		{"how do i contact the hr team", "contact"},
		{"what is the company policy", "policy"},
		{"update my profile address", "profile"},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			res := d.Detect(tt.question, "")
			assert.Equal(t, tt.wantIntent, res.PrimaryIntent)
			assert.Greater(t, res.Confidence, 0.0)
		})
	}
}

func TestNonHRPrecedence(t *testing.T) {
	d, _ := newDetector()

	// Denylist wins even when HR keywords are present.
	res := d.Detect("what's the weather for my leave trip", "u1")

	assert.Equal(t, TagNonHR, res.PrimaryIntent)
	assert.True(t, res.IsNonHR)
	assert.Equal(t, 0.95, res.Confidence)
	assert.False(t, IsHRRelated(res))
}

func TestGeneralFallback(t *testing.T) {
	d, _ := newDetector()

	res := d.Detect("hello there", "")

	assert.Equal(t, TagGeneral, res.PrimaryIntent)
	assert.Empty(t, res.SubIntent)
	assert.Equal(t, 0.0, res.Confidence)
	assert.False(t, IsHRRelated(res))
}

func TestConfidenceBound(t *testing.T) {
	d, _ := newDetector()

	questions := []string{
		"",
		"leave",
		"leave leave leave balance apply status policy my leave leave status",
		"payslip salary wage payment download breakdown my payslip payslip status",
		"random words with no meaning",
	}

	for _, q := range questions {
		res := d.Detect(q, "")
		assert.GreaterOrEqual(t, res.Confidence, 0.0, "question %q", q)
		assert.LessOrEqual(t, res.Confidence, 1.0, "question %q", q)
	}
}

func TestConfirmationPositive(t *testing.T) {
	d, store := newDetector()

	pending := true
	store.Set("u1", conversation.Update{
		LastIntent:          &conversation.IntentRef{Primary: "leave"},
		PendingConfirmation: &pending,
	})

	res := d.Detect("yes", "u1")

	assert.Equal(t, "leave", res.PrimaryIntent)
	assert.Equal(t, 0.95, res.Confidence)
	assert.True(t, res.IsConfirmation)
	assert.True(t, res.ConfirmationResponse)

	// Pending state consumed.
	require.NotNil(t, store.Get("u1"))
	assert.False(t, store.Get("u1").PendingConfirmation)
}

func TestConfirmationNegative(t *testing.T) {
	d, store := newDetector()

	pending := true
	store.Set("u1", conversation.Update{
		LastIntent:          &conversation.IntentRef{Primary: "payslip"},
		PendingConfirmation: &pending,
	})

	res := d.Detect("no", "u1")

	assert.Equal(t, TagClarification, res.PrimaryIntent)
	assert.Equal(t, 0.9, res.Confidence)
	assert.True(t, res.IsConfirmation)
	assert.False(t, res.ConfirmationResponse)
}

func TestConfirmationRequiresPendingState(t *testing.T) {
	d, _ := newDetector()

	// "yes" without a pending confirmation goes through normal scoring.
	res := d.Detect("yes", "u1")
	assert.False(t, res.IsConfirmation)
}

func TestContextualBoostCarryOver(t *testing.T) {
	d, store := newDetector()

	// First question establishes the topic.
	first := d.Detect("how many leaves do i have left", "u1")
	require.Equal(t, "leave", first.PrimaryIntent)

	// An otherwise weak follow-up leans toward the recent topic.
	boost := store.ContextualBoost("u1")
	assert.Equal(t, conversation.RecencyBoost, boost["leave"])
}

func TestDetectRecordsContext(t *testing.T) {
	d, store := newDetector()

	d.Detect("show my payslip", "u1")

	ctx := store.Get("u1")
	require.NotNil(t, ctx)
	require.NotNil(t, ctx.LastIntent)
	assert.Equal(t, "payslip", ctx.LastIntent.Primary)
	assert.Len(t, ctx.History, 1)
}

func TestGeneralNotRecorded(t *testing.T) {
	d, store := newDetector()

	d.Detect("hello", "u1")
	assert.Nil(t, store.Get("u1"))
}
