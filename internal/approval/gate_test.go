package approval

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/payday-budget/internal/models"
)

type fakeCommitter struct {
	verified  []models.Transaction
	remaining []models.Transaction
	err       error
}

func (f *fakeCommitter) CommitStaged(_ context.Context, verified, remaining []models.Transaction) error {
	if f.err != nil {
		return f.err
	}
	f.verified = verified
	f.remaining = remaining
	return nil
}

func classified(id string, approved bool, match models.MatchType) models.Transaction {
	return models.Transaction{
		ID:                 id,
		Type:               models.TypeExpense,
		CategoryMainID:     "m1",
		CategorySubID:      "s1",
		MatchType:          match,
		IsManuallyApproved: approved,
	}
}

func TestIsReady(t *testing.T) {
	tests := []struct {
		name     string
		tx       models.Transaction
		settings models.Settings
		want     bool
	}{
		{
			name: "Manually approved and classified",
			tx:   classified("t1", true, models.MatchNone),
			want: true,
		},
		{
			name: "Classified but unapproved",
			tx:   classified("t1", false, models.MatchNone),
			want: false,
		},
		{
			name: "Approved but incomplete",
			tx:   models.Transaction{Type: models.TypeExpense, CategoryMainID: "m1", IsManuallyApproved: true},
			want: false,
		},
		{
			name:     "Rule match with auto-approve on",
			tx:       classified("t1", false, models.MatchRule),
			settings: models.Settings{AutoApproveRule: true},
			want:     true,
		},
		{
			name: "Rule match with auto-approve off",
			tx:   classified("t1", false, models.MatchRule),
			want: false,
		},
		{
			name:     "History match with auto-approve on",
			tx:       classified("t1", false, models.MatchHistory),
			settings: models.Settings{AutoApproveHistory: true},
			want:     true,
		},
		{
			name:     "AI match never auto-approves",
			tx:       classified("t1", false, models.MatchAI),
			settings: models.Settings{AutoApproveRule: true, AutoApproveHistory: true},
			want:     false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsReady(tc.tx, tc.settings))
		})
	}
}

func TestFinalizeStripsStagingFields(t *testing.T) {
	out := Finalize(classified("t1", true, models.MatchAI))
	assert.True(t, out.IsVerified)
	assert.Equal(t, models.MatchNone, out.MatchType)
	assert.False(t, out.IsManuallyApproved)
}

func TestCommitPartialBatch(t *testing.T) {
	staged := []models.Transaction{
		classified("ready-1", true, models.MatchNone),
		classified("ready-2", false, models.MatchRule),
		classified("waiting", false, models.MatchAI),
		{ID: "incomplete", Type: models.TypeExpense, IsManuallyApproved: true},
	}
	committer := &fakeCommitter{}
	settings := models.Settings{AutoApproveRule: true}

	committed, remaining, err := Commit(context.Background(), committer, staged, settings)
	require.NoError(t, err)

	assert.Len(t, committed, 2)
	assert.Len(t, remaining, 2)
	for _, tx := range committed {
		assert.True(t, tx.IsVerified)
		assert.Equal(t, models.MatchNone, tx.MatchType)
	}

	// The committer saw exactly what the caller got back.
	assert.Equal(t, committed, committer.verified)
	assert.Equal(t, remaining, committer.remaining)
}

func TestCommitFailureKeepsEverythingStaged(t *testing.T) {
	staged := []models.Transaction{
		classified("t1", true, models.MatchNone),
		classified("t2", false, models.MatchNone),
	}
	committer := &fakeCommitter{err: errors.New("disk full")}

	committed, remaining, err := Commit(context.Background(), committer, staged, models.Settings{})
	assert.Error(t, err)
	assert.Nil(t, committed)
	assert.Equal(t, staged, remaining)
}
