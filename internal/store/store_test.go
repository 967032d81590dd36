// ABOUTME: Tests for opening the SQLite audit journal
// ABOUTME: Provides the shared setupTestStore helper

package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "audit.db")

	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)

	t.Cleanup(func() {
		store.Close()
	})

	return store
}

func TestNewSQLiteStore_CreatesParentDirs(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "audit.db")

	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer store.Close()

	assert.FileExists(t, dbPath)
}

func TestNewSQLiteStore_ReopenKeepsEntries(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "audit.db")
	ctx := context.Background()

	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.AppendAuditLog(ctx, &AuditEntry{
		SessionID: "s1", Action: AuditDeposit, TargetType: "cuenta", TargetID: "1",
	}))
	require.NoError(t, store.Close())

	store, err = NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer store.Close()

	entries, err := store.ListAuditLog(ctx, AuditFilter{})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
