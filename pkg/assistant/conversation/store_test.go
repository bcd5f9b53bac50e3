package conversation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestGetUnknownUser(t *testing.T) {
	s := NewStore()

	assert.Nil(t, s.Get("nobody"))
	assert.Nil(t, s.Get(""))
}

func TestSetCreatesAndMerges(t *testing.T) {
	s := NewStore()

	s.Set("u1", Update{LastIntent: &IntentRef{Primary: "leave", Sub: "balance"}})

	ctx := s.Get("u1")
	require.NotNil(t, ctx)
	assert.Equal(t, "leave", ctx.LastIntent.Primary)
	assert.Equal(t, "balance", ctx.LastIntent.Sub)
	assert.Len(t, ctx.History, 1)
	assert.False(t, ctx.PendingConfirmation)

	// Merging the pending flag must not touch the intent or history.
	s.Set("u1", Update{PendingConfirmation: boolPtr(true)})
	ctx = s.Get("u1")
	assert.Equal(t, "leave", ctx.LastIntent.Primary)
	assert.Len(t, ctx.History, 1)
	assert.True(t, ctx.PendingConfirmation)
}

func TestSetEmptyUserIsNoop(t *testing.T) {
	s := NewStore()

	s.Set("", Update{LastIntent: &IntentRef{Primary: "leave"}})
	assert.Equal(t, 0, s.Snapshot().TotalUsers)
}

func TestHistoryCap(t *testing.T) {
	s := NewStore()

	for i := 0; i < 7; i++ {
		s.Set("u1", Update{LastIntent: &IntentRef{Primary: fmt.Sprintf("intent-%d", i)}})
	}

	ctx := s.Get("u1")
	require.NotNil(t, ctx)
	require.Len(t, ctx.History, HistoryLimit)

	// Insertion order preserved, oldest two evicted.
	for i, entry := range ctx.History {
		assert.Equal(t, fmt.Sprintf("intent-%d", i+2), entry.Intent.Primary)
	}
}

func TestResolveConfirmation(t *testing.T) {
	s := NewStore()

	// Nothing pending -> nil
	assert.Nil(t, s.ResolveConfirmation("u1", true))

	s.Set("u1", Update{
		LastIntent:          &IntentRef{Primary: "leave"},
		PendingConfirmation: boolPtr(true),
	})

	res := s.ResolveConfirmation("u1", true)
	require.NotNil(t, res)
	assert.True(t, res.UseSuggested)
	require.NotNil(t, res.LastIntent)
	assert.Equal(t, "leave", res.LastIntent.Primary)

	// Pending flag cleared even though the call returned a result.
	assert.False(t, s.Get("u1").PendingConfirmation)

	// Second resolve finds nothing pending.
	assert.Nil(t, s.ResolveConfirmation("u1", true))
}

func TestResolveConfirmationNegative(t *testing.T) {
	s := NewStore()

	s.Set("u1", Update{
		LastIntent:          &IntentRef{Primary: "payslip"},
		PendingConfirmation: boolPtr(true),
	})

	res := s.ResolveConfirmation("u1", false)
	require.NotNil(t, res)
	assert.False(t, res.UseSuggested)
	assert.True(t, res.Clarify)
	assert.NotEmpty(t, res.Message)
	assert.False(t, s.Get("u1").PendingConfirmation)
}

func TestContextualBoost(t *testing.T) {
	s := NewStore()

	assert.Empty(t, s.ContextualBoost("u1"))

	s.Set("u1", Update{LastIntent: &IntentRef{Primary: "attendance"}})
	s.Set("u1", Update{LastIntent: &IntentRef{Primary: "holiday"}})

	boost := s.ContextualBoost("u1")
	require.Len(t, boost, 1)
	assert.Equal(t, RecencyBoost, boost["holiday"])
}

func TestClear(t *testing.T) {
	s := NewStore()

	s.Set("u1", Update{LastIntent: &IntentRef{Primary: "leave"}})
	s.Set("u2", Update{LastIntent: &IntentRef{Primary: "payslip"}})

	s.Clear("u1")
	assert.Nil(t, s.Get("u1"))
	assert.NotNil(t, s.Get("u2"))

	s.Clear("")
	assert.Equal(t, 0, s.Snapshot().TotalUsers)
}

func TestSnapshot(t *testing.T) {
	s := NewStore()

	s.Set("u1", Update{LastIntent: &IntentRef{Primary: "leave"}})
	s.Set("u1", Update{LastIntent: &IntentRef{Primary: "leave"}})
	s.Set("u2", Update{
		LastIntent:          &IntentRef{Primary: "policy"},
		PendingConfirmation: boolPtr(true),
	})

	snap := s.Snapshot()
	assert.Equal(t, 2, snap.TotalUsers)
	assert.Equal(t, 2, snap.Users["u1"].Interactions)
	assert.False(t, snap.Users["u1"].PendingConfirmation)
	assert.True(t, snap.Users["u2"].PendingConfirmation)
	assert.False(t, snap.Users["u2"].LastActivity.IsZero())
}
