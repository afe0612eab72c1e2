package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/hc2580411/vwms/internal/infra"
	"github.com/hc2580411/vwms/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTransferEnv(t *testing.T) (*testEnv, TransferService) {
	t.Helper()
	env := newTestEnv(t)
	return env, NewTransferService(env.db, env.snapshots)
}

func TestExportContainsAllTables(t *testing.T) {
	env, transfer := newTransferEnv(t)
	env.createProduct(t, "Exported", 1)

	doc, err := transfer.Export(context.Background())
	require.NoError(t, err)
	assert.Equal(t, infra.SchemaVersion, doc.Version)
	for _, table := range []string{
		"users", "categories", "units", "products", "contacts",
		"orders", "order_items", "purchase_orders", "purchase_order_items",
		"inventory_logs", "settings",
	} {
		assert.Contains(t, doc.Tables, table)
	}

	var products []model.Product
	require.NoError(t, json.Unmarshal(doc.Tables["products"], &products))
	names := map[string]bool{}
	for _, p := range products {
		names[p.Name] = true
	}
	assert.True(t, names["Exported"])
}

func TestImportReplacesStore(t *testing.T) {
	srcEnv, srcTransfer := newTransferEnv(t)
	srcEnv.createProduct(t, "Imported Good", 42)
	doc, err := srcTransfer.Export(context.Background())
	require.NoError(t, err)

	dstEnv, dstTransfer := newTransferEnv(t)
	dstEnv.createProduct(t, "Pre-import Leftover", 1)

	require.NoError(t, dstTransfer.Import(context.Background(), doc))

	var count int64
	dstEnv.db.Model(&model.Product{}).Where("name = ?", "Pre-import Leftover").Count(&count)
	assert.Zero(t, count, "import replaces, never merges")
	dstEnv.db.Model(&model.Product{}).Where("name = ?", "Imported Good").Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestImportRejectsInvalidDocuments(t *testing.T) {
	env, transfer := newTransferEnv(t)
	ctx := context.Background()

	var before int64
	env.db.Model(&model.Product{}).Count(&before)

	// Wrong version.
	err := transfer.Import(ctx, &infra.SnapshotDocument{Version: infra.SchemaVersion - 1})
	assert.ErrorIs(t, err, ErrInvalidImport)

	// Missing required tables.
	doc, err := transfer.Export(ctx)
	require.NoError(t, err)
	delete(doc.Tables, "users")
	err = transfer.Import(ctx, doc)
	assert.ErrorIs(t, err, ErrInvalidImport)

	// A rejected import leaves the store untouched.
	var after int64
	env.db.Model(&model.Product{}).Count(&after)
	assert.Equal(t, before, after)
}

func TestResetInvalidatesHandle(t *testing.T) {
	env, transfer := newTransferEnv(t)
	require.NoError(t, env.snapshots.Save())
	require.NoError(t, transfer.Reset(context.Background()))
	assert.ErrorIs(t, env.snapshots.Save(), infra.ErrStoreClosed)
}
