// Package approval decides which staged transactions are ready to become
// persisted, verified transactions, and performs the atomic transition.
package approval

import (
	"context"

	"fjacquet/payday-budget/internal/models"
)

// Committer persists a batch of verified transactions and replaces the
// staging set in one atomic write: either everything lands or nothing does.
type Committer interface {
	CommitStaged(ctx context.Context, verified, remaining []models.Transaction) error
}

// IsReady reports whether a staged transaction can be committed. Two gates
// apply: the transaction must carry the fields its type requires, and it
// must be approved, either manually or through the per-match-type
// auto-approve settings. A rule or history match can be data-complete yet
// still wait for a human glance unless the user has trusted that match type.
func IsReady(tx models.Transaction, settings models.Settings) bool {
	if !tx.IsClassified() {
		return false
	}
	if tx.IsManuallyApproved {
		return true
	}
	switch tx.MatchType {
	case models.MatchRule:
		return settings.AutoApproveRule
	case models.MatchHistory:
		return settings.AutoApproveHistory
	}
	return false
}

// Partition splits a staging set into ready and not-yet-ready transactions.
// Not-ready transactions are returned unmodified.
func Partition(staged []models.Transaction, settings models.Settings) (ready, remaining []models.Transaction) {
	for _, tx := range staged {
		if IsReady(tx, settings) {
			ready = append(ready, tx)
		} else {
			remaining = append(remaining, tx)
		}
	}
	return ready, remaining
}

// Finalize strips the transient staging fields and marks the transaction
// verified. A persisted transaction never carries staging annotations.
func Finalize(tx models.Transaction) models.Transaction {
	tx.MatchType = models.MatchNone
	tx.IsManuallyApproved = false
	tx.IsVerified = true
	return tx
}

// Commit runs the gate over the staging set and atomically persists the
// ready transactions while keeping the rest staged. It returns the verified
// transactions and the remaining staging set.
func Commit(ctx context.Context, committer Committer, staged []models.Transaction, settings models.Settings) (committed, remaining []models.Transaction, err error) {
	ready, remaining := Partition(staged, settings)

	committed = make([]models.Transaction, len(ready))
	for i, tx := range ready {
		committed[i] = Finalize(tx)
	}

	if err := committer.CommitStaged(ctx, committed, remaining); err != nil {
		return nil, staged, err
	}
	return committed, remaining, nil
}
