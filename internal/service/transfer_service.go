package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/hc2580411/vwms/internal/infra"

	"gorm.io/gorm"
)

// ErrInvalidImport rejects a document that cannot be a full store export.
// Validation happens before any write, so a bad import leaves the live store
// untouched.
var ErrInvalidImport = errors.New("import document is not a valid store export")

// requiredTables is the minimum shape an import must carry. A document
// missing either cannot have come from Export.
var requiredTables = []string{"products", "users"}

// TransferService moves whole-store state in and out: full export, full
// replace-on-import, and factory reset.
type TransferService interface {
	Export(ctx context.Context) (*infra.SnapshotDocument, error)
	Import(ctx context.Context, doc *infra.SnapshotDocument) error
	Reset(ctx context.Context) error
}

type transferService struct {
	db        *gorm.DB
	snapshots *infra.SnapshotStore
}

func NewTransferService(db *gorm.DB, snapshots *infra.SnapshotStore) TransferService {
	return &transferService{db: db, snapshots: snapshots}
}

func (s *transferService) Export(ctx context.Context) (*infra.SnapshotDocument, error) {
	return infra.BuildDocument(s.db.WithContext(ctx))
}

// Import replaces the entire live store with the document's contents and
// persists the result. The previous state is unrecoverable after a
// successful import.
func (s *transferService) Import(ctx context.Context, doc *infra.SnapshotDocument) error {
	if doc == nil || doc.Version != infra.SchemaVersion {
		return ErrInvalidImport
	}
	for _, table := range requiredTables {
		if _, ok := doc.Tables[table]; !ok {
			return ErrInvalidImport
		}
	}
	if err := infra.RestoreDocument(s.db.WithContext(ctx), doc); err != nil {
		return fmt.Errorf("import: %w", err)
	}
	if err := s.snapshots.Save(); err != nil {
		return fmt.Errorf("persist snapshot: %w", err)
	}
	return nil
}

// Reset invalidates the snapshot handle and deletes the persisted blob. The
// process must restart to get a freshly seeded store; in-flight saves after
// this point fail with ErrStoreClosed instead of resurrecting old state.
func (s *transferService) Reset(ctx context.Context) error {
	return s.snapshots.Reset()
}
