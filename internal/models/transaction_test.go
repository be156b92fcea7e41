package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransactionDedupKey(t *testing.T) {
	tx := Transaction{
		Date:        "2025-03-10",
		Amount:      decimal.NewFromFloat(-42.50),
		Description: "ICA SUPERMARKET",
	}
	assert.Equal(t, "2025-03-10-42.5ICA SUPERMARKET", tx.DedupKey())

	// Two same-day transactions with equal amount and description collide on
	// purpose; the key carries nothing else.
	other := tx
	other.ID = "different-id"
	assert.Equal(t, tx.DedupKey(), other.DedupKey())
}

func TestTransactionIsClassified(t *testing.T) {
	tests := []struct {
		name string
		tx   Transaction
		want bool
	}{
		{"Transfer with bucket", Transaction{Type: TypeTransfer, BucketID: "b1"}, true},
		{"Transfer without bucket", Transaction{Type: TypeTransfer}, false},
		{"Expense with both categories", Transaction{Type: TypeExpense, CategoryMainID: "m1", CategorySubID: "s1"}, true},
		{"Expense missing sub", Transaction{Type: TypeExpense, CategoryMainID: "m1"}, false},
		{"Income with main", Transaction{Type: TypeIncome, CategoryMainID: "m1"}, true},
		{"Income without main", Transaction{Type: TypeIncome}, false},
		{"No type at all", Transaction{}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.tx.IsClassified())
		})
	}
}

func TestTransactionMonthOf(t *testing.T) {
	assert.Equal(t, MonthKey("2025-07"), Transaction{Date: "2025-07-25"}.MonthOf())
	assert.Equal(t, MonthKey(""), Transaction{Date: "bad"}.MonthOf())
	assert.Equal(t, MonthKey(""), Transaction{}.MonthOf())
}

func TestNewDedupIndex(t *testing.T) {
	existing := []Transaction{
		{Date: "2025-01-02", Amount: decimal.NewFromInt(-100), Description: "RENT"},
		{Date: "2025-01-03", Amount: decimal.NewFromInt(-50), Description: "FOOD"},
	}
	idx := NewDedupIndex(existing)
	assert.Len(t, idx, 2)

	_, hit := idx[existing[0].DedupKey()]
	assert.True(t, hit)
	_, miss := idx["2025-01-04-25COFFEE"]
	assert.False(t, miss)
}

func TestBucketIsArchivedFor(t *testing.T) {
	b := Bucket{ArchivedDate: "2025-06"}
	assert.False(t, b.IsArchivedFor("2025-05"))
	assert.False(t, b.IsArchivedFor("2025-06"))
	assert.True(t, b.IsArchivedFor("2025-07"))

	unarchived := Bucket{}
	assert.False(t, unarchived.IsArchivedFor("2099-12"))
}
