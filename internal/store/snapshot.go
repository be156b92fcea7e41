package store

import (
	"context"
	"encoding/json"
	"fmt"

	"fjacquet/payday-budget/internal/models"
)

// Snapshot reads the full entity state for backup export.
func (s *Store) Snapshot(ctx context.Context) (models.Snapshot, error) {
	var snap models.Snapshot
	var err error

	if snap.Users, err = s.ListUsers(ctx); err != nil {
		return snap, err
	}
	if snap.Accounts, err = s.ListAccounts(ctx); err != nil {
		return snap, err
	}
	if snap.Buckets, err = s.ListBuckets(ctx); err != nil {
		return snap, err
	}
	if snap.Settings, err = s.GetSettings(ctx); err != nil {
		return snap, err
	}
	if snap.Transactions, err = s.ListTransactions(ctx); err != nil {
		return snap, err
	}
	if snap.ImportRules, err = s.ListImportRules(ctx); err != nil {
		return snap, err
	}
	if snap.MainCategories, err = s.ListMainCategories(ctx); err != nil {
		return snap, err
	}
	if snap.SubCategories, err = s.ListSubCategories(ctx); err != nil {
		return snap, err
	}
	if snap.BudgetGroups, err = s.ListBudgetGroups(ctx); err != nil {
		return snap, err
	}
	if snap.BudgetTemplates, err = s.ListTemplates(ctx); err != nil {
		return snap, err
	}
	configs, err := s.ListMonthConfigs(ctx)
	if err != nil {
		return snap, err
	}
	for _, c := range configs {
		snap.MonthConfigs = append(snap.MonthConfigs, c)
	}
	return snap, nil
}

// ReplaceAll atomically replaces the entire persisted state with a snapshot.
// Used by backup restore: validation happens before this is called, and a
// failure here leaves the previous state in place.
func (s *Store) ReplaceAll(ctx context.Context, snap models.Snapshot) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin restore: %w", err)
	}
	defer dbTx.Rollback()

	for _, table := range docTables {
		if _, err := dbTx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s`, table)); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	for _, table := range []string{"transactions", "staged_transactions", "settings"} {
		if _, err := dbTx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s`, table)); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, u := range snap.Users {
		if err := putDoc(ctx, dbTx, tableUsers, u.ID, u); err != nil {
			return err
		}
	}
	for _, a := range snap.Accounts {
		if err := putDoc(ctx, dbTx, tableAccounts, a.ID, a); err != nil {
			return err
		}
	}
	for _, b := range snap.Buckets {
		if err := putDoc(ctx, dbTx, tableBuckets, b.ID, b); err != nil {
			return err
		}
	}
	for _, g := range snap.BudgetGroups {
		if err := putDoc(ctx, dbTx, tableBudgetGroups, g.ID, g); err != nil {
			return err
		}
	}
	for _, c := range snap.MainCategories {
		if err := putDoc(ctx, dbTx, tableMainCategories, c.ID, c); err != nil {
			return err
		}
	}
	for _, c := range snap.SubCategories {
		if err := putDoc(ctx, dbTx, tableSubCategories, c.ID, c); err != nil {
			return err
		}
	}
	for _, t := range snap.BudgetTemplates {
		if err := putDoc(ctx, dbTx, tableTemplates, t.ID, t); err != nil {
			return err
		}
	}
	for _, c := range snap.MonthConfigs {
		if err := putDoc(ctx, dbTx, tableMonthConfigs, string(c.Month), c); err != nil {
			return err
		}
	}
	for _, r := range snap.ImportRules {
		if err := putDoc(ctx, dbTx, tableImportRules, r.ID, r); err != nil {
			return err
		}
	}
	for _, tx := range snap.Transactions {
		if err := insertTransaction(ctx, dbTx, tx); err != nil {
			return err
		}
	}

	doc, err := json.Marshal(snap.Settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if _, err := dbTx.ExecContext(ctx,
		`INSERT INTO settings (id, doc) VALUES (1, ?)`, string(doc)); err != nil {
		return fmt.Errorf("restore settings: %w", err)
	}

	return dbTx.Commit()
}
