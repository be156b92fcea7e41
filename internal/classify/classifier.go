// Package classify implements the import classification pipeline: staged
// transactions are produced from raw bank records through ordered passes of
// duplicate suppression, rule matching, historical matching, heuristic
// defaulting and an optional best-effort AI pass.
package classify

import (
	"context"

	"fjacquet/payday-budget/internal/models"
)

// Universe is the set of classification targets handed to matching passes
// and to the external classifier.
type Universe struct {
	Buckets        []models.Bucket
	MainCategories []models.MainCategory
	SubCategories  []models.SubCategory
}

// Suggestion is one advisory classification for a transaction.
type Suggestion struct {
	Type           models.TransactionType `json:"type"`
	BucketID       string                 `json:"bucketId,omitempty"`
	CategoryMainID string                 `json:"categoryMainId,omitempty"`
	CategorySubID  string                 `json:"categorySubId,omitempty"`
}

// Classifier is the capability interface for external AI classification.
// Implementations are advisory and fallible: empty or partial maps are valid
// outcomes, and the pipeline maps any error to "no suggestions".
type Classifier interface {
	Suggest(ctx context.Context, batch []models.Transaction, universe Universe) (map[string]Suggestion, error)
}

// HistoryLookup finds the most recent classified transaction with the same
// account and exact description. A lookup failure affects only the one
// transaction being matched.
type HistoryLookup interface {
	MostRecentClassified(ctx context.Context, accountID, description string) (models.Transaction, bool, error)
}

// StaticClassifier is a Classifier returning a fixed suggestion map. Used in
// tests and as an offline stand-in.
type StaticClassifier struct {
	Suggestions map[string]Suggestion
	Err         error
}

// Suggest returns the configured map or error.
func (s StaticClassifier) Suggest(context.Context, []models.Transaction, Universe) (map[string]Suggestion, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Suggestions, nil
}
