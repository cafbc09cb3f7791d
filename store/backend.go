package store

import "context"

// Collection names. Each names one JSON array document in the active backend.
const (
	CollectionBooks           = "books"
	CollectionUsers           = "users"
	CollectionChapters        = "chapters"
	CollectionPurchases       = "purchases"
	CollectionReadingProgress = "reading_progress"
	CollectionReports         = "reports"
	CollectionComments        = "comments"
)

// Backend persists whole collections. Load returns the collection's JSON array document, or
// nil with no error when the collection has never been written. Save replaces the document.
// There is no row-level primitive: callers read everything, mutate in memory and write
// everything back.
type Backend interface {
	Load(ctx context.Context, collection string) ([]byte, error)
	Save(ctx context.Context, collection string, doc []byte) error
	Close(ctx context.Context) error
}
