package report

import (
	"io"

	"github.com/gocarina/gocsv"

	"fjacquet/payday-budget/internal/models"
)

// TransactionRow is the flat CSV shape of a committed transaction.
type TransactionRow struct {
	ID              string `csv:"Id"`
	Date            string `csv:"Date"`
	Description     string `csv:"Description"`
	Amount          string `csv:"Amount"`
	Type            string `csv:"Type"`
	AccountID       string `csv:"Account"`
	BucketID        string `csv:"Bucket"`
	CategoryMainID  string `csv:"MainCategory"`
	CategorySubID   string `csv:"SubCategory"`
	Source          string `csv:"Source"`
}

func toRow(tx models.Transaction) TransactionRow {
	return TransactionRow{
		ID:             tx.ID,
		Date:           tx.Date,
		Description:    tx.Description,
		Amount:         tx.Amount.String(),
		Type:           string(tx.Type),
		AccountID:      tx.AccountID,
		BucketID:       tx.BucketID,
		CategoryMainID: tx.CategoryMainID,
		CategorySubID:  tx.CategorySubID,
		Source:         string(tx.Source),
	}
}

// WriteTransactionsCSV writes the transactions as CSV with a header row.
func WriteTransactionsCSV(w io.Writer, txs []models.Transaction) error {
	rows := make([]TransactionRow, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, toRow(tx))
	}
	return gocsv.Marshal(&rows, w)
}
