package store

import (
	"context"

	"github.com/kevinaaaquil/myb/backend/models"
)

func (db *DB) InsertComment(ctx context.Context, c models.Comment) error {
	return db.comments.Mutate(ctx, func(rows []models.Comment) ([]models.Comment, error) {
		return append(rows, c), nil
	})
}

func (db *DB) AllComments(ctx context.Context) ([]models.Comment, error) {
	return db.comments.All(ctx)
}
