package classify

import "fjacquet/payday-budget/internal/models"

// NormalizeEdit applies the staging rules to a transaction the user has just
// edited: the system match annotation is dropped, the transaction counts as
// manually approved, and fields that the new type cannot carry are cleared.
func NormalizeEdit(tx models.Transaction) models.Transaction {
	tx.MatchType = models.MatchNone
	tx.IsManuallyApproved = true

	switch tx.Type {
	case models.TypeTransfer:
		tx.CategoryMainID = ""
		tx.CategorySubID = ""
	case models.TypeExpense, models.TypeIncome:
		tx.BucketID = ""
	}
	return tx
}
