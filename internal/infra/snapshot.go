package infra

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/hc2580411/vwms/internal/model"

	"gorm.io/gorm"
)

// SchemaVersion qualifies the snapshot key. Breaking schema changes bump it,
// making older snapshots unreachable rather than migrated; additive changes
// are handled by EnsureSchema and keep the version.
const SchemaVersion = 8

// SnapshotKey is the versioned identifier the snapshot is stored under.
func SnapshotKey() string {
	return fmt.Sprintf("veik_wms_v%d.snapshot", SchemaVersion)
}

// ErrStoreClosed is returned from Save after Reset has invalidated the
// handle, so nothing can resurrect the old snapshot mid-reset.
var ErrStoreClosed = errors.New("store handle invalidated by reset")

// SnapshotDocument is the full serialized store: every table as an ordered
// list of row objects, keyed by table name. The same document type is the
// import/export format.
type SnapshotDocument struct {
	Version int                        `json:"version"`
	SavedAt time.Time                  `json:"saved_at"`
	Tables  map[string]json.RawMessage `json:"tables"`
}

// tableSpec drives serialization. Order matters for restore: parents before
// the rows that reference them.
type tableSpec struct {
	name    string
	orderBy string
	rows    func() interface{} // pointer to an empty typed slice
}

func tableSpecs() []tableSpec {
	return []tableSpec{
		{"users", "id", func() interface{} { return &[]model.User{} }},
		{"categories", "id", func() interface{} { return &[]model.Category{} }},
		{"units", "id", func() interface{} { return &[]model.Unit{} }},
		{"products", "id", func() interface{} { return &[]model.Product{} }},
		{"contacts", "id", func() interface{} { return &[]model.Contact{} }},
		{"orders", "id", func() interface{} { return &[]model.Order{} }},
		{"order_items", "id", func() interface{} { return &[]model.OrderItem{} }},
		{"purchase_orders", "id", func() interface{} { return &[]model.PurchaseOrder{} }},
		{"purchase_order_items", "id", func() interface{} { return &[]model.PurchaseOrderItem{} }},
		{"inventory_logs", "id", func() interface{} { return &[]model.InventoryLog{} }},
		{"settings", "key", func() interface{} { return &[]model.Setting{} }},
	}
}

// BuildDocument serializes every table of the live store.
func BuildDocument(db *gorm.DB) (*SnapshotDocument, error) {
	doc := &SnapshotDocument{
		Version: SchemaVersion,
		SavedAt: time.Now().UTC(),
		Tables:  make(map[string]json.RawMessage),
	}
	for _, spec := range tableSpecs() {
		rows := spec.rows()
		if err := db.Table(spec.name).Order(spec.orderBy).Find(rows).Error; err != nil {
			return nil, fmt.Errorf("read %s: %w", spec.name, err)
		}
		raw, err := json.Marshal(rows)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", spec.name, err)
		}
		doc.Tables[spec.name] = raw
	}
	return doc, nil
}

// RestoreDocument destructively replaces the live store with the document's
// contents: all tables are dropped, recreated, and bulk-inserted inside one
// transaction, so a failure partway leaves the previous state intact.
func RestoreDocument(db *gorm.DB, doc *SnapshotDocument) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, m := range allModels() {
			if err := tx.Migrator().DropTable(m); err != nil {
				return fmt.Errorf("drop table: %w", err)
			}
		}
		if err := tx.AutoMigrate(allModels()...); err != nil {
			return fmt.Errorf("recreate tables: %w", err)
		}
		for _, spec := range tableSpecs() {
			raw, ok := doc.Tables[spec.name]
			if !ok {
				continue
			}
			rows := spec.rows()
			if err := json.Unmarshal(raw, rows); err != nil {
				return fmt.Errorf("decode %s: %w", spec.name, err)
			}
			if reflect.ValueOf(rows).Elem().Len() == 0 {
				continue
			}
			if err := tx.Table(spec.name).CreateInBatches(rows, 200).Error; err != nil {
				return fmt.Errorf("insert %s: %w", spec.name, err)
			}
		}
		return nil
	})
}

// SnapshotStore persists the whole relational store as one serialized blob
// in host durable storage. Save runs after every mutating operation, so a
// host crash loses at most the most recent single operation.
type SnapshotStore struct {
	db    *gorm.DB
	blobs BlobStore
	key   string

	mu     sync.Mutex
	closed bool
}

func NewSnapshotStore(db *gorm.DB, blobs BlobStore) *SnapshotStore {
	return &SnapshotStore{db: db, blobs: blobs, key: SnapshotKey()}
}

// Load restores the persisted snapshot into the live store. It returns false
// when no snapshot exists yet (the caller seeds instead). An unreadable
// snapshot is fatal — the only recovery is an explicit Reset.
func (s *SnapshotStore) Load() (bool, error) {
	data, err := s.blobs.Get(s.key)
	if errors.Is(err, ErrBlobNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read snapshot: %w", err)
	}
	var doc SnapshotDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return false, fmt.Errorf("snapshot corrupt: %w", err)
	}
	if doc.Version != SchemaVersion {
		return false, fmt.Errorf("snapshot version %d under key for version %d", doc.Version, SchemaVersion)
	}
	if err := RestoreDocument(s.db, &doc); err != nil {
		return false, fmt.Errorf("restore snapshot: %w", err)
	}
	return true, nil
}

// Save serializes the live store and writes it to durable storage.
func (s *SnapshotStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	doc, err := BuildDocument(s.db)
	if err != nil {
		return err
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return s.blobs.Put(s.key, data)
}

// Reset invalidates the handle first, then discards the persisted snapshot.
// The next process start sees an empty store and re-seeds.
func (s *SnapshotStore) Reset() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return s.blobs.Delete(s.key)
}
