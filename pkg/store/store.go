// Package store persists solved layouts so the HTTP API can hand out
// stable ids for them.
//
// Implementations:
//   - [MemoryStore]: in-process map for tests and single-shot servers
//   - [FileStore]: one JSON file per layout under the user's data directory
//   - [MongoStore]: a MongoDB collection for shared deployments
//
// # Usage
//
//	st, err := store.NewFileStore("")  // ~/.local/share/anchorage/layouts
//	if err != nil {
//	    return err
//	}
//	rec := store.NewRecord("page", hash, snapshot, bindings)
//	if err := st.Save(ctx, rec); err != nil {
//	    return err
//	}
//	got, err := st.Get(ctx, rec.ID)
//	if errors.Is(err, errors.ErrCodeLayoutNotFound) {
//	    // unknown or deleted
//	}
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/anchorage/pkg/errors"
	"github.com/matzehuels/anchorage/pkg/scene"
)

// Record is one stored layout.
type Record struct {
	ID        string          `json:"id" bson:"_id"`
	Name      string          `json:"name,omitempty" bson:"name,omitempty"`
	SceneHash string          `json:"scene_hash" bson:"scene_hash"`
	Snapshot  scene.Snapshot  `json:"snapshot" bson:"snapshot"`
	Bindings  []scene.Binding `json:"bindings,omitempty" bson:"bindings,omitempty"`
	CreatedAt time.Time       `json:"created_at" bson:"created_at"`
}

// NewRecord creates a record with a fresh UUID.
func NewRecord(name, sceneHash string, snap scene.Snapshot, bindings []scene.Binding) *Record {
	return &Record{
		ID:        uuid.NewString(),
		Name:      name,
		SceneHash: sceneHash,
		Snapshot:  snap,
		Bindings:  bindings,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
}

// Store is the interface for layout storage backends.
type Store interface {
	// Save stores a record, replacing any record with the same id.
	Save(ctx context.Context, rec *Record) error

	// Get returns the record with the given id, or an error with code
	// ErrCodeLayoutNotFound.
	Get(ctx context.Context, id string) (*Record, error)

	// Delete removes a record. Deleting a missing record is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}

// ValidateID checks that id is a UUID. Ids reach file paths and queries,
// so every backend validates before use.
func ValidateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid layout id %q", id)
	}
	return nil
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeLayoutNotFound, "layout %s not found", id)
}

func validateRecord(rec *Record) error {
	if rec == nil {
		return errors.New(errors.ErrCodeInvalidInput, "nil record")
	}
	return ValidateID(rec.ID)
}
