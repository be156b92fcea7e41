package models

import (
	"github.com/shopspring/decimal"
)

// TransactionType classifies a transaction's role in the budget.
type TransactionType string

const (
	TypeExpense  TransactionType = "EXPENSE"
	TypeTransfer TransactionType = "TRANSFER"
	TypeIncome   TransactionType = "INCOME"
)

// MatchType records which classification pass matched a staged transaction.
// It is a staging-only annotation and never survives commit.
type MatchType string

const (
	MatchRule    MatchType = "rule"
	MatchHistory MatchType = "history"
	MatchAI      MatchType = "ai"
	MatchNone    MatchType = ""
)

// TransactionSource distinguishes manually entered from imported transactions.
type TransactionSource string

const (
	TxSourceManual TransactionSource = "manual"
	TxSourceImport TransactionSource = "import"
)

// Transaction is one bank transaction. Amount is signed: negative is an
// outflow. TRANSFER classification needs a bucket; EXPENSE/INCOME need
// category ids. MatchType and IsManuallyApproved exist only while the
// transaction is staged; a verified transaction never carries them.
type Transaction struct {
	ID                  string            `json:"id"`
	AccountID           string            `json:"accountId"`
	Date                string            `json:"date"` // ISO day, YYYY-MM-DD
	Amount              decimal.Decimal   `json:"amount"`
	Description         string            `json:"description"`
	Type                TransactionType   `json:"type"`
	BucketID            string            `json:"bucketId,omitempty"`
	CategoryMainID      string            `json:"categoryMainId,omitempty"`
	CategorySubID       string            `json:"categorySubId,omitempty"`
	IsVerified          bool              `json:"isVerified,omitempty"`
	Source              TransactionSource `json:"source,omitempty"`
	LinkedTransactionID string            `json:"linkedTransactionId,omitempty"`
	LinkedExpenseID     string            `json:"linkedExpenseId,omitempty"`

	MatchType          MatchType `json:"matchType,omitempty"`
	IsManuallyApproved bool      `json:"isManuallyApproved,omitempty"`
}

// DedupKey returns the content hash used for duplicate suppression during
// import: the exact concatenation of date, amount and description. Two
// legitimate same-day transactions with equal amount and description collide;
// the behavior is kept as-is.
func (t Transaction) DedupKey() string {
	return t.Date + t.Amount.String() + t.Description
}

// IsClassified reports whether the transaction carries the classification
// fields its type requires.
func (t Transaction) IsClassified() bool {
	switch t.Type {
	case TypeTransfer:
		return t.BucketID != ""
	case TypeExpense:
		return t.CategoryMainID != "" && t.CategorySubID != ""
	case TypeIncome:
		return t.CategoryMainID != ""
	}
	return false
}

// HasSuggestion reports whether any classification target is set at all,
// used by the AI pass to pick still-unmatched transactions.
func (t Transaction) HasSuggestion() bool {
	return t.BucketID != "" || t.CategoryMainID != "" || t.CategorySubID != ""
}

// MonthOf returns the budget-agnostic calendar month of the transaction date.
func (t Transaction) MonthOf() MonthKey {
	if len(t.Date) < 7 {
		return ""
	}
	m := MonthKey(t.Date[:7])
	if !m.IsValid() {
		return ""
	}
	return m
}

// NewDedupIndex builds the set of dedup keys over existing transactions.
func NewDedupIndex(existing []Transaction) map[string]struct{} {
	idx := make(map[string]struct{}, len(existing))
	for _, t := range existing {
		idx[t.DedupKey()] = struct{}{}
	}
	return idx
}
