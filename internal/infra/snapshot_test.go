package infra

import (
	"testing"

	"github.com/hc2580411/vwms/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSnapshotStore(t *testing.T) (*SnapshotStore, *FilesystemBlobStore) {
	t.Helper()
	db := newTestDB(t)
	require.NoError(t, EnsureSchema(db))
	blobs, err := NewFilesystemBlobStore(t.TempDir())
	require.NoError(t, err)
	return NewSnapshotStore(db, blobs), blobs
}

func TestSnapshotRoundTrip(t *testing.T) {
	store, blobs := newTestSnapshotStore(t)
	require.NoError(t, store.Save())

	// Mutate after the save: add a product, then save again.
	p := model.Product{Name: "Desk Lamp", Price: 35, Cost: 12, Stock: 7}
	require.NoError(t, store.db.Create(&p).Error)
	require.NoError(t, store.Save())

	// Restore into a completely fresh store.
	db2 := newTestDB(t)
	store2 := NewSnapshotStore(db2, blobs)
	restored, err := store2.Load()
	require.NoError(t, err)
	require.True(t, restored)

	var got model.Product
	require.NoError(t, db2.Where("name = ?", "Desk Lamp").First(&got).Error)
	assert.Equal(t, p.ID, got.ID, "row ids survive the round trip")
	assert.Equal(t, 7.0, got.Stock)

	var userCount int64
	db2.Model(&model.User{}).Count(&userCount)
	assert.EqualValues(t, 2, userCount)
}

func TestLoadWithoutSnapshot(t *testing.T) {
	db := newTestDB(t)
	blobs, err := NewFilesystemBlobStore(t.TempDir())
	require.NoError(t, err)

	restored, err := NewSnapshotStore(db, blobs).Load()
	require.NoError(t, err)
	assert.False(t, restored)
}

func TestLoadRejectsCorruptSnapshot(t *testing.T) {
	db := newTestDB(t)
	blobs, err := NewFilesystemBlobStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, blobs.Put(SnapshotKey(), []byte("not json{")))

	_, err = NewSnapshotStore(db, blobs).Load()
	assert.Error(t, err)
}

func TestResetBlocksSave(t *testing.T) {
	store, blobs := newTestSnapshotStore(t)
	require.NoError(t, store.Save())
	require.NoError(t, store.Reset())

	assert.ErrorIs(t, store.Save(), ErrStoreClosed)
	_, err := blobs.Get(SnapshotKey())
	assert.ErrorIs(t, err, ErrBlobNotFound, "reset deletes the blob")
}
