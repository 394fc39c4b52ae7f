// Package docstore defines the persistence collaborator: flat JSON
// documents grouped into named collections, addressed by document id.
// The core only needs load-all and single-document put/delete; query
// shaping happens in memory above this layer.
package docstore

import "context"

const (
	CollectionUsers    = "users"
	CollectionContacts = "contacts"
	CollectionTasks    = "tasks"
	CollectionComments = "task_comments"
)

type Document struct {
	ID   string
	Data []byte
}

type Store interface {
	// LoadAll returns every document in the collection. A collection
	// that was never written to is empty, not an error.
	LoadAll(ctx context.Context, collection string) ([]Document, error)
	// Put creates or replaces a single document.
	Put(ctx context.Context, collection, id string, data []byte) error
	// Delete removes a document. Deleting an absent document is a
	// no-op.
	Delete(ctx context.Context, collection, id string) error
	Close()
}
