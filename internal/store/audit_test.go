// ABOUTME: Tests for audit journal store operations
// ABOUTME: Covers Append and List with filtering and limits

package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateTestID(prefix string, i int) string {
	return fmt.Sprintf("%s-%d", prefix, i)
}

func TestAuditStore_Append(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	entry := &AuditEntry{
		SessionID:  "session-123",
		Action:     AuditCreateCustomer,
		TargetType: "cliente",
		TargetID:   "7",
		Detail:     map[string]any{"nombre": "Jose Lema"},
	}

	err := store.AppendAuditLog(ctx, entry)
	require.NoError(t, err)

	assert.NotEmpty(t, entry.ID)
	assert.False(t, entry.Timestamp.IsZero())

	entries, err := store.ListAuditLog(ctx, AuditFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entry.ID, entries[0].ID)
	assert.Equal(t, "session-123", entries[0].SessionID)
	assert.Equal(t, "Jose Lema", entries[0].Detail["nombre"])
	assert.True(t, entry.Timestamp.Equal(entries[0].Timestamp))
}

func TestAuditStore_Append_UnknownAction(t *testing.T) {
	store := setupTestStore(t)

	err := store.AppendAuditLog(context.Background(), &AuditEntry{Action: "drop_tables"})

	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestAuditStore_List_NewestFirst(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC()
	for i, action := range []AuditAction{AuditDeposit, AuditWithdraw, AuditTransfer} {
		require.NoError(t, store.AppendAuditLog(ctx, &AuditEntry{
			SessionID:  "session-123",
			Action:     action,
			TargetType: "cuenta",
			TargetID:   generateTestID("cuenta", i),
			Timestamp:  base.Add(time.Duration(i) * time.Second),
		}))
	}

	entries, err := store.ListAuditLog(ctx, AuditFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, AuditTransfer, entries[0].Action)
	assert.Equal(t, AuditDeposit, entries[2].Action)
}

func TestAuditStore_List_SameInstantKeepsInsertOrder(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	ts := time.Now().UTC()
	for i := 0; i < 3; i++ {
		require.NoError(t, store.AppendAuditLog(ctx, &AuditEntry{
			SessionID: "s", Action: AuditDeposit, TargetType: "cuenta",
			TargetID: generateTestID("cuenta", i), Timestamp: ts,
		}))
	}

	entries, err := store.ListAuditLog(ctx, AuditFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "cuenta-2", entries[0].TargetID)
}

func TestAuditStore_List_BySinceUntil(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 4; i++ {
		require.NoError(t, store.AppendAuditLog(ctx, &AuditEntry{
			SessionID:  "s",
			Action:     AuditDeposit,
			TargetType: "cuenta",
			TargetID:   generateTestID("cuenta", i),
			Timestamp:  base.Add(time.Duration(i) * 10 * time.Minute),
		}))
	}

	since := base.Add(5 * time.Minute)
	until := base.Add(25 * time.Minute)
	entries, err := store.ListAuditLog(ctx, AuditFilter{Since: &since, Until: &until})
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, "cuenta-2", entries[0].TargetID)
	assert.Equal(t, "cuenta-1", entries[1].TargetID)
}

func TestAuditStore_List_ByFields(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	seed := []AuditEntry{
		{SessionID: "a", Action: AuditCreateAccount, TargetType: "cuenta", TargetID: "1"},
		{SessionID: "a", Action: AuditDeleteCustomer, TargetType: "cliente", TargetID: "1"},
		{SessionID: "b", Action: AuditCreateAccount, TargetType: "cuenta", TargetID: "2"},
	}
	for i := range seed {
		require.NoError(t, store.AppendAuditLog(ctx, &seed[i]))
	}

	session := "a"
	entries, err := store.ListAuditLog(ctx, AuditFilter{SessionID: &session})
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	action := AuditCreateAccount
	entries, err = store.ListAuditLog(ctx, AuditFilter{Action: &action})
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	targetType, targetID := "cliente", "1"
	entries, err = store.ListAuditLog(ctx, AuditFilter{TargetType: &targetType, TargetID: &targetID})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, AuditDeleteCustomer, entries[0].Action)
}

func TestAuditStore_List_InvalidFilter(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	action := AuditAction("nope")
	_, err := store.ListAuditLog(ctx, AuditFilter{Action: &action})
	assert.ErrorIs(t, err, ErrInvalidFilter)

	since := time.Now()
	until := since.Add(-time.Hour)
	_, err = store.ListAuditLog(ctx, AuditFilter{Since: &since, Until: &until})
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestAuditStore_List_Limit(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, store.AppendAuditLog(ctx, &AuditEntry{
			SessionID: "s", Action: AuditDeposit, TargetType: "cuenta", TargetID: generateTestID("c", i),
		}))
	}

	entries, err := store.ListAuditLog(ctx, AuditFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestAuditStore_List_Empty(t *testing.T) {
	store := setupTestStore(t)

	entries, err := store.ListAuditLog(context.Background(), AuditFilter{})
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestNormalizeAuditLimit(t *testing.T) {
	assert.Equal(t, 100, normalizeAuditLimit(0))
	assert.Equal(t, 100, normalizeAuditLimit(-3))
	assert.Equal(t, 50, normalizeAuditLimit(50))
	assert.Equal(t, 1000, normalizeAuditLimit(5000))
}
