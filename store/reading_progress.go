package store

import (
	"context"

	"github.com/kevinaaaquil/myb/backend/models"
)

func progressID(p *models.ReadingProgress) string { return p.ID }

func (db *DB) InsertProgress(ctx context.Context, p models.ReadingProgress) error {
	return db.progress.Mutate(ctx, func(rows []models.ReadingProgress) ([]models.ReadingProgress, error) {
		return append(rows, p), nil
	})
}

func (db *DB) AllProgress(ctx context.Context) ([]models.ReadingProgress, error) {
	return db.progress.All(ctx)
}

// UpdateProgress patches the record and stamps last_read.
func (db *DB) UpdateProgress(ctx context.Context, id string, patch models.ProgressPatch, lastRead string) (*models.ReadingProgress, error) {
	return updateByID(ctx, db.progress, id, progressID, func(p *models.ReadingProgress) error {
		if patch.CurrentChapter != nil {
			p.CurrentChapter = *patch.CurrentChapter
		}
		p.LastRead = lastRead
		return nil
	})
}
