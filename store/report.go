package store

import (
	"context"

	"github.com/kevinaaaquil/myb/backend/models"
)

// InsertReport keeps the newest report first.
func (db *DB) InsertReport(ctx context.Context, r models.Report) error {
	return db.reports.Mutate(ctx, func(rows []models.Report) ([]models.Report, error) {
		return prepend(rows, r), nil
	})
}

func (db *DB) AllReports(ctx context.Context) ([]models.Report, error) {
	return db.reports.All(ctx)
}
