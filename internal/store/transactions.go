package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"fjacquet/payday-budget/internal/dateutils"
	"fjacquet/payday-budget/internal/models"
)

func insertTransaction(ctx context.Context, ex execer, tx models.Transaction) error {
	doc, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("marshal transaction %s: %w", tx.ID, err)
	}
	_, err = ex.ExecContext(ctx,
		`INSERT INTO transactions (id, account_id, date, description, doc)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			account_id = excluded.account_id,
			date = excluded.date,
			description = excluded.description,
			doc = excluded.doc`,
		tx.ID, tx.AccountID, tx.Date, tx.Description, string(doc))
	if err != nil {
		return fmt.Errorf("put transaction %s: %w", tx.ID, err)
	}
	return nil
}

func scanTransactions(rows *sql.Rows) ([]models.Transaction, error) {
	defer rows.Close()
	var out []models.Transaction
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		var tx models.Transaction
		if err := json.Unmarshal([]byte(doc), &tx); err != nil {
			return nil, fmt.Errorf("decode transaction document: %w", err)
		}
		out = append(out, tx)
	}
	return out, rows.Err()
}

// PutTransaction stores or replaces one persisted transaction.
func (s *Store) PutTransaction(ctx context.Context, tx models.Transaction) error {
	return insertTransaction(ctx, s.db, tx)
}

// ListTransactions returns every persisted transaction.
func (s *Store) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT doc FROM transactions ORDER BY date, id`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return scanTransactions(rows)
}

// TransactionsInRange returns persisted transactions with date in
// [start, end], both inclusive. This is the query behind all actuals
// aggregation over a budget interval.
func (s *Store) TransactionsInRange(ctx context.Context, start, end time.Time) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT doc FROM transactions WHERE date >= ? AND date <= ? ORDER BY date, id`,
		dateutils.ToISODay(start), dateutils.ToISODay(end))
	if err != nil {
		return nil, fmt.Errorf("transactions in range: %w", err)
	}
	return scanTransactions(rows)
}

// DeleteTransactions removes persisted transactions by id.
func (s *Store) DeleteTransactions(ctx context.Context, ids []string) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete: %w", err)
	}
	defer dbTx.Rollback()
	for _, id := range ids {
		if _, err := dbTx.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete transaction %s: %w", id, err)
		}
	}
	return dbTx.Commit()
}

// MostRecentClassified implements the classification pipeline's history
// lookup: the newest persisted transaction with the same account and exact
// description that carries a classification.
func (s *Store) MostRecentClassified(ctx context.Context, accountID, description string) (models.Transaction, bool, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT doc FROM transactions
		 WHERE account_id = ? AND description = ?
		 ORDER BY date DESC`,
		accountID, description)
	if err != nil {
		return models.Transaction{}, false, fmt.Errorf("history lookup: %w", err)
	}
	txs, err := scanTransactions(rows)
	if err != nil {
		return models.Transaction{}, false, err
	}
	for _, tx := range txs {
		if tx.IsClassified() {
			return tx, true, nil
		}
	}
	return models.Transaction{}, false, nil
}

// ListStaged returns the current staging set.
func (s *Store) ListStaged(ctx context.Context) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT doc FROM staged_transactions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list staged: %w", err)
	}
	return scanTransactions(rows)
}

// PutStaged adds or replaces transactions in the staging set.
func (s *Store) PutStaged(ctx context.Context, staged []models.Transaction) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin staging write: %w", err)
	}
	defer dbTx.Rollback()
	for _, tx := range staged {
		doc, err := json.Marshal(tx)
		if err != nil {
			return fmt.Errorf("marshal staged %s: %w", tx.ID, err)
		}
		if _, err := dbTx.ExecContext(ctx,
			`INSERT INTO staged_transactions (id, doc) VALUES (?, ?)
			 ON CONFLICT(id) DO UPDATE SET doc = excluded.doc`,
			tx.ID, string(doc)); err != nil {
			return fmt.Errorf("put staged %s: %w", tx.ID, err)
		}
	}
	return dbTx.Commit()
}

// CommitStaged atomically persists the verified transactions and replaces
// the staging set with the transactions that are not yet ready. Either the
// whole commit lands or none of it does.
func (s *Store) CommitStaged(ctx context.Context, verified, remaining []models.Transaction) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin commit: %w", err)
	}
	defer dbTx.Rollback()

	for _, tx := range verified {
		if err := insertTransaction(ctx, dbTx, tx); err != nil {
			return err
		}
	}

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM staged_transactions`); err != nil {
		return fmt.Errorf("clear staging: %w", err)
	}
	for _, tx := range remaining {
		doc, err := json.Marshal(tx)
		if err != nil {
			return fmt.Errorf("marshal staged %s: %w", tx.ID, err)
		}
		if _, err := dbTx.ExecContext(ctx,
			`INSERT INTO staged_transactions (id, doc) VALUES (?, ?)`,
			tx.ID, string(doc)); err != nil {
			return fmt.Errorf("restage %s: %w", tx.ID, err)
		}
	}

	return dbTx.Commit()
}
