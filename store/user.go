package store

import (
	"context"

	"github.com/kevinaaaquil/myb/backend/apperr"
	"github.com/kevinaaaquil/myb/backend/models"
)

// CreateUser appends user unless another account already uses the same email. The check and
// the insert happen under one lock.
func (db *DB) CreateUser(ctx context.Context, user models.User) error {
	return db.users.Mutate(ctx, func(rows []models.User) ([]models.User, error) {
		for _, u := range rows {
			if models.NormalizeEmail(u.Email) == user.Email {
				return nil, apperr.Conflict("Email already registered")
			}
		}
		return append(rows, user), nil
	})
}

func (db *DB) AllUsers(ctx context.Context) ([]models.User, error) {
	return db.users.All(ctx)
}
