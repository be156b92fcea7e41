package backup

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/payday-budget/internal/importerror"
	"fjacquet/payday-budget/internal/logging"
	"fjacquet/payday-budget/internal/models"
)

type memBlobs struct {
	blobs map[string][]byte
}

func newMemBlobs() *memBlobs { return &memBlobs{blobs: map[string][]byte{}} }

func (m *memBlobs) List() ([]string, error) {
	var names []string
	for name := range m.blobs {
		names = append(names, name)
	}
	return names, nil
}

func (m *memBlobs) Create(name string, data []byte) error {
	m.blobs[name] = data
	return nil
}

func (m *memBlobs) Read(name string) ([]byte, error) {
	data, ok := m.blobs[name]
	if !ok {
		return nil, errors.New("no such blob")
	}
	return data, nil
}

func (m *memBlobs) Delete(name string) error {
	delete(m.blobs, name)
	return nil
}

type memSnapshots struct {
	snap     models.Snapshot
	replaced int
}

func (m *memSnapshots) Snapshot(context.Context) (models.Snapshot, error) {
	return m.snap, nil
}

func (m *memSnapshots) ReplaceAll(_ context.Context, snap models.Snapshot) error {
	m.snap = snap
	m.replaced++
	return nil
}

func TestExportRestoreRoundTrip(t *testing.T) {
	store := &memSnapshots{snap: models.Snapshot{
		Accounts: []models.Account{{ID: "acc1", Name: "Checking"}},
		Buckets:  []models.Bucket{{ID: "b1", Name: "Groceries", Type: models.BucketFixed}},
		Settings: models.Settings{Payday: 27},
	}}
	blobs := newMemBlobs()
	svc := NewService(store, blobs, logging.NewMockLogger())

	name, err := svc.Export(context.Background(), "roundtrip.json")
	require.NoError(t, err)
	assert.Equal(t, "roundtrip.json", name)

	// Wipe the store, then restore.
	store.snap = models.Snapshot{}
	require.NoError(t, svc.Restore(context.Background(), "roundtrip.json"))

	assert.Equal(t, 1, store.replaced)
	require.Len(t, store.snap.Accounts, 1)
	assert.Equal(t, "Checking", store.snap.Accounts[0].Name)
	assert.Equal(t, 27, store.snap.Settings.Payday)
}

func TestExportDefaultName(t *testing.T) {
	svc := NewService(&memSnapshots{}, newMemBlobs(), logging.NewMockLogger())

	name, err := svc.Export(context.Background(), "")
	require.NoError(t, err)
	assert.Regexp(t, `^backup-\d{8}-\d{6}\.json$`, name)
}

func TestRestoreInvalidLeavesStateUntouched(t *testing.T) {
	store := &memSnapshots{snap: models.Snapshot{
		Accounts: []models.Account{{ID: "acc1"}},
	}}
	blobs := newMemBlobs()
	blobs.blobs["broken.json"] = []byte(`{"buckets": "definitely not a list"}`)
	svc := NewService(store, blobs, logging.NewMockLogger())

	err := svc.Restore(context.Background(), "broken.json")
	require.Error(t, err)

	var vErr *importerror.ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Equal(t, 0, store.replaced)
	assert.Len(t, store.snap.Accounts, 1, "existing state must survive a failed restore")
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		expectErr bool
	}{
		{"Empty object gets defaults", `{}`, false},
		{"Null lists tolerated", `{"buckets": null, "users": null}`, false},
		{"Settings object", `{"settings": {"payday": 10}}`, false},
		{"Not an object", `[1,2,3]`, true},
		{"List field is a scalar", `{"transactions": 42}`, true},
		{"Settings is a list", `{"settings": []}`, true},
		{"Unparseable", `{nope}`, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			snap, err := Decode("t.json", []byte(tc.data))
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, snap.Buckets)
			assert.NotNil(t, snap.Transactions)
		})
	}
}

func TestDecodeDefaulting(t *testing.T) {
	snap, err := Decode("t.json", []byte(`{"accounts": [{"id": "a1"}]}`))
	require.NoError(t, err)

	assert.Equal(t, models.DefaultPayday, snap.Settings.Payday)
	assert.Empty(t, snap.Buckets)
	assert.NotNil(t, snap.Buckets)
	require.Len(t, snap.Accounts, 1)

	// An explicit payday survives.
	snap, err = Decode("t.json", []byte(`{"settings": {"payday": 3}}`))
	require.NoError(t, err)
	assert.Equal(t, 3, snap.Settings.Payday)
}

func TestFSBlobStore(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFSBlobStore(dir)
	require.NoError(t, err)

	require.NoError(t, fs.Create("a.json", []byte(`{}`)))
	require.NoError(t, fs.Create("b.json", []byte(`{}`)))

	names, err := fs.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.json", "b.json"}, names)

	data, err := fs.Read("a.json")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{}`), data)

	require.NoError(t, fs.Delete("a.json"))
	names, _ = fs.List()
	assert.Equal(t, []string{"b.json"}, names)

	// Path traversal in names is rejected.
	assert.Error(t, fs.Create("../escape.json", []byte(`{}`)))
	_, err = fs.Read("../../etc/passwd")
	assert.Error(t, err)
}
