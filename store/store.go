// Package store is the record store: one typed table per entity type over a pluggable
// whole-collection Backend.
package store

import (
	"context"

	"github.com/kevinaaaquil/myb/backend/models"
	"go.uber.org/zap"
)

type DB struct {
	backend Backend
	logger  *zap.Logger

	books     *Table[models.Book]
	users     *Table[models.User]
	chapters  *Table[models.Chapter]
	purchases *Table[models.Purchase]
	progress  *Table[models.ReadingProgress]
	reports   *Table[models.Report]
	comments  *Table[models.Comment]
}

func New(backend Backend, logger *zap.Logger) *DB {
	return &DB{
		backend:   backend,
		logger:    logger,
		books:     NewTable[models.Book](CollectionBooks, backend, logger),
		users:     NewTable[models.User](CollectionUsers, backend, logger),
		chapters:  NewTable[models.Chapter](CollectionChapters, backend, logger),
		purchases: NewTable[models.Purchase](CollectionPurchases, backend, logger),
		progress:  NewTable[models.ReadingProgress](CollectionReadingProgress, backend, logger),
		reports:   NewTable[models.Report](CollectionReports, backend, logger),
		comments:  NewTable[models.Comment](CollectionComments, backend, logger),
	}
}

func (db *DB) Close(ctx context.Context) error {
	return db.backend.Close(ctx)
}
