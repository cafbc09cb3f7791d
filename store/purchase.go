package store

import (
	"context"

	"github.com/kevinaaaquil/myb/backend/models"
)

func (db *DB) InsertPurchase(ctx context.Context, p models.Purchase) error {
	return db.purchases.Mutate(ctx, func(rows []models.Purchase) ([]models.Purchase, error) {
		return append(rows, p), nil
	})
}

func (db *DB) AllPurchases(ctx context.Context) ([]models.Purchase, error) {
	return db.purchases.All(ctx)
}
