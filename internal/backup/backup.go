// Package backup exports and restores the full entity snapshot as a single
// JSON document through a blob store. Restore validates the document
// structurally before any destructive replace: a failed validation leaves
// the persisted state untouched.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fjacquet/payday-budget/internal/importerror"
	"fjacquet/payday-budget/internal/logging"
	"fjacquet/payday-budget/internal/models"
)

// BlobStore is the opaque storage the snapshot document travels through.
type BlobStore interface {
	List() ([]string, error)
	Create(name string, data []byte) error
	Read(name string) ([]byte, error)
	Delete(name string) error
}

// SnapshotStore is the part of the persistence layer backup needs.
type SnapshotStore interface {
	Snapshot(ctx context.Context) (models.Snapshot, error)
	ReplaceAll(ctx context.Context, snap models.Snapshot) error
}

// Service orchestrates backup export and restore.
type Service struct {
	store SnapshotStore
	blobs BlobStore
	log   logging.Logger
}

// NewService creates a backup service.
func NewService(store SnapshotStore, blobs BlobStore, logger logging.Logger) *Service {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Service{store: store, blobs: blobs, log: logger}
}

// Export writes the full snapshot as a named JSON blob. An empty name gets a
// timestamped default.
func (s *Service) Export(ctx context.Context, name string) (string, error) {
	if name == "" {
		name = fmt.Sprintf("backup-%s.json", time.Now().UTC().Format("20060102-150405"))
	}

	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return "", fmt.Errorf("read snapshot: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	if err := s.blobs.Create(name, data); err != nil {
		return "", fmt.Errorf("write backup blob: %w", err)
	}

	s.log.WithField(logging.FieldFile, name).Info("Backup created")
	return name, nil
}

// Restore validates a named backup blob and atomically replaces the
// persisted state with its contents.
func (s *Service) Restore(ctx context.Context, name string) error {
	data, err := s.blobs.Read(name)
	if err != nil {
		return fmt.Errorf("read backup blob: %w", err)
	}

	snap, err := Decode(name, data)
	if err != nil {
		return err
	}

	if err := s.store.ReplaceAll(ctx, snap); err != nil {
		return fmt.Errorf("restore snapshot: %w", err)
	}

	s.log.WithField(logging.FieldFile, name).Info("Backup restored")
	return nil
}

// List returns the names of available backups.
func (s *Service) List() ([]string, error) {
	return s.blobs.List()
}

// listKeys are the snapshot fields that must be arrays when present.
var listKeys = []string{
	"users", "accounts", "buckets", "transactions", "importRules",
	"mainCategories", "subCategories", "budgetGroups",
	"budgetTemplates", "monthConfigs",
}

// Decode validates a backup document structurally and decodes it into a
// snapshot, applying the defaulting rules: missing list fields become empty
// lists and missing settings become the defaults (payday 25).
func Decode(name string, data []byte) (models.Snapshot, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return models.Snapshot{}, &importerror.ValidationError{
			Name: name, Reason: fmt.Sprintf("not a JSON object: %v", err),
		}
	}

	for _, key := range listKeys {
		field, ok := raw[key]
		if !ok || string(field) == "null" {
			continue
		}
		var probe []json.RawMessage
		if err := json.Unmarshal(field, &probe); err != nil {
			return models.Snapshot{}, &importerror.ValidationError{
				Name: name, Reason: fmt.Sprintf("field %q is not a list", key),
			}
		}
	}
	if field, ok := raw["settings"]; ok && string(field) != "null" {
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(field, &probe); err != nil {
			return models.Snapshot{}, &importerror.ValidationError{
				Name: name, Reason: `field "settings" is not an object`,
			}
		}
	}

	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return models.Snapshot{}, &importerror.ValidationError{
			Name: name, Reason: fmt.Sprintf("schema mismatch: %v", err),
		}
	}

	applyDefaults(&snap)
	return snap, nil
}

func applyDefaults(snap *models.Snapshot) {
	if snap.Users == nil {
		snap.Users = []models.User{}
	}
	if snap.Accounts == nil {
		snap.Accounts = []models.Account{}
	}
	if snap.Buckets == nil {
		snap.Buckets = []models.Bucket{}
	}
	if snap.Transactions == nil {
		snap.Transactions = []models.Transaction{}
	}
	if snap.ImportRules == nil {
		snap.ImportRules = []models.ImportRule{}
	}
	if snap.MainCategories == nil {
		snap.MainCategories = []models.MainCategory{}
	}
	if snap.SubCategories == nil {
		snap.SubCategories = []models.SubCategory{}
	}
	if snap.BudgetGroups == nil {
		snap.BudgetGroups = []models.BudgetGroup{}
	}
	if snap.BudgetTemplates == nil {
		snap.BudgetTemplates = []models.BudgetTemplate{}
	}
	if snap.MonthConfigs == nil {
		snap.MonthConfigs = []models.MonthConfig{}
	}
	if snap.Settings.Payday == 0 {
		snap.Settings.Payday = models.DefaultPayday
	}
}
