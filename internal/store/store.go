// Package store persists the application state in a single SQLite database.
//
// Month-keyed entities are stored as JSON documents in per-type tables;
// transactions get a relational table with an indexed date column so the
// budget interval query stays a range scan. Bulk operations that must not
// partially apply (committing staged transactions, restoring a backup) run
// inside one database transaction.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	_ "modernc.org/sqlite"

	"fjacquet/payday-budget/internal/logging"
	"fjacquet/payday-budget/internal/models"
)

// Document table names. Only these constants are ever interpolated into SQL.
const (
	tableUsers          = "users"
	tableAccounts       = "accounts"
	tableBuckets        = "buckets"
	tableBudgetGroups   = "budget_groups"
	tableMainCategories = "main_categories"
	tableSubCategories  = "sub_categories"
	tableTemplates      = "budget_templates"
	tableMonthConfigs   = "month_configs"
	tableImportRules    = "import_rules"
)

var docTables = []string{
	tableUsers, tableAccounts, tableBuckets, tableBudgetGroups,
	tableMainCategories, tableSubCategories, tableTemplates,
	tableMonthConfigs, tableImportRules,
}

// Store is the SQLite-backed persistence layer.
type Store struct {
	db  *sql.DB
	log logging.Logger
}

// Open opens (and creates if necessary) the database at dbPath.
func Open(dbPath string, logger logging.Logger) (*Store, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &Store{db: db, log: logger}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) migrate() error {
	for _, table := range docTables {
		stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id  TEXT PRIMARY KEY,
			doc TEXT NOT NULL
		)`, table)
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("create table %s: %w", table, err)
		}
	}

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS transactions (
			id          TEXT PRIMARY KEY,
			account_id  TEXT NOT NULL,
			date        TEXT NOT NULL,
			description TEXT NOT NULL,
			doc         TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_account_desc ON transactions(account_id, description)`,
		`CREATE TABLE IF NOT EXISTS staged_transactions (
			id  TEXT PRIMARY KEY,
			doc TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			id  INTEGER PRIMARY KEY CHECK (id = 1),
			doc TEXT NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func putDoc(ctx context.Context, ex execer, table, id string, v any) error {
	doc, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s %s: %w", table, id, err)
	}
	_, err = ex.ExecContext(ctx,
		fmt.Sprintf(`INSERT INTO %s (id, doc) VALUES (?, ?)
			ON CONFLICT(id) DO UPDATE SET doc = excluded.doc`, table),
		id, string(doc))
	if err != nil {
		return fmt.Errorf("put %s %s: %w", table, id, err)
	}
	return nil
}

func listDocs[T any](ctx context.Context, db *sql.DB, table string) ([]T, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf(`SELECT doc FROM %s ORDER BY id`, table))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		var v T
		if err := json.Unmarshal([]byte(doc), &v); err != nil {
			return nil, fmt.Errorf("decode %s document: %w", table, err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *Store) deleteDoc(ctx context.Context, table, id string) error {
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, table), id)
	if err != nil {
		return fmt.Errorf("delete %s %s: %w", table, id, err)
	}
	return nil
}

// PutUser stores or replaces a user.
func (s *Store) PutUser(ctx context.Context, u models.User) error {
	return putDoc(ctx, s.db, tableUsers, u.ID, u)
}

// ListUsers returns all users.
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	return listDocs[models.User](ctx, s.db, tableUsers)
}

// PutAccount stores or replaces an account.
func (s *Store) PutAccount(ctx context.Context, a models.Account) error {
	return putDoc(ctx, s.db, tableAccounts, a.ID, a)
}

// ListAccounts returns all accounts.
func (s *Store) ListAccounts(ctx context.Context) ([]models.Account, error) {
	return listDocs[models.Account](ctx, s.db, tableAccounts)
}

// PutBucket stores or replaces a bucket.
func (s *Store) PutBucket(ctx context.Context, b models.Bucket) error {
	return putDoc(ctx, s.db, tableBuckets, b.ID, b)
}

// ListBuckets returns all buckets.
func (s *Store) ListBuckets(ctx context.Context) ([]models.Bucket, error) {
	return listDocs[models.Bucket](ctx, s.db, tableBuckets)
}

// DeleteBucket removes a bucket entirely.
func (s *Store) DeleteBucket(ctx context.Context, id string) error {
	return s.deleteDoc(ctx, tableBuckets, id)
}

// PutBudgetGroup stores or replaces a budget group.
func (s *Store) PutBudgetGroup(ctx context.Context, g models.BudgetGroup) error {
	return putDoc(ctx, s.db, tableBudgetGroups, g.ID, g)
}

// ListBudgetGroups returns all budget groups.
func (s *Store) ListBudgetGroups(ctx context.Context) ([]models.BudgetGroup, error) {
	return listDocs[models.BudgetGroup](ctx, s.db, tableBudgetGroups)
}

// PutMainCategory stores or replaces a main category.
func (s *Store) PutMainCategory(ctx context.Context, c models.MainCategory) error {
	return putDoc(ctx, s.db, tableMainCategories, c.ID, c)
}

// ListMainCategories returns all main categories.
func (s *Store) ListMainCategories(ctx context.Context) ([]models.MainCategory, error) {
	return listDocs[models.MainCategory](ctx, s.db, tableMainCategories)
}

// PutSubCategory stores or replaces a sub-category.
func (s *Store) PutSubCategory(ctx context.Context, c models.SubCategory) error {
	return putDoc(ctx, s.db, tableSubCategories, c.ID, c)
}

// ListSubCategories returns all sub-categories.
func (s *Store) ListSubCategories(ctx context.Context) ([]models.SubCategory, error) {
	return listDocs[models.SubCategory](ctx, s.db, tableSubCategories)
}

// PutTemplate stores or replaces a budget template.
func (s *Store) PutTemplate(ctx context.Context, t models.BudgetTemplate) error {
	return putDoc(ctx, s.db, tableTemplates, t.ID, t)
}

// ListTemplates returns all budget templates.
func (s *Store) ListTemplates(ctx context.Context) ([]models.BudgetTemplate, error) {
	return listDocs[models.BudgetTemplate](ctx, s.db, tableTemplates)
}

// PutMonthConfig stores or replaces a month config, keyed by its month.
func (s *Store) PutMonthConfig(ctx context.Context, c models.MonthConfig) error {
	return putDoc(ctx, s.db, tableMonthConfigs, string(c.Month), c)
}

// ListMonthConfigs returns all month configs keyed by month.
func (s *Store) ListMonthConfigs(ctx context.Context) (map[models.MonthKey]models.MonthConfig, error) {
	configs, err := listDocs[models.MonthConfig](ctx, s.db, tableMonthConfigs)
	if err != nil {
		return nil, err
	}
	out := make(map[models.MonthKey]models.MonthConfig, len(configs))
	for _, c := range configs {
		out[c.Month] = c
	}
	return out, nil
}

// PutImportRule stores or replaces an import rule.
func (s *Store) PutImportRule(ctx context.Context, r models.ImportRule) error {
	return putDoc(ctx, s.db, tableImportRules, r.ID, r)
}

// ListImportRules returns all import rules in evaluation order.
func (s *Store) ListImportRules(ctx context.Context) ([]models.ImportRule, error) {
	out, err := listDocs[models.ImportRule](ctx, s.db, tableImportRules)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

// GetSettings returns the persisted settings, or the defaults when none are
// stored yet.
func (s *Store) GetSettings(ctx context.Context) (models.Settings, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM settings WHERE id = 1`).Scan(&doc)
	if err == sql.ErrNoRows {
		return models.DefaultSettings(), nil
	}
	if err != nil {
		return models.Settings{}, fmt.Errorf("get settings: %w", err)
	}
	var settings models.Settings
	if err := json.Unmarshal([]byte(doc), &settings); err != nil {
		return models.Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	return settings, nil
}

// PutSettings stores the settings.
func (s *Store) PutSettings(ctx context.Context, settings models.Settings) error {
	doc, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO settings (id, doc) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET doc = excluded.doc`, string(doc))
	if err != nil {
		return fmt.Errorf("put settings: %w", err)
	}
	return nil
}
