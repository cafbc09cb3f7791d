package store

import (
	"context"
	"errors"

	"github.com/kevinaaaquil/myb/backend/apperr"
	"github.com/kevinaaaquil/myb/backend/models"
)

func bookID(b *models.Book) string { return b.ID }

// InsertBook stores book at the front of the collection; the catalog lists newest first.
func (db *DB) InsertBook(ctx context.Context, book models.Book) error {
	return db.books.Mutate(ctx, func(rows []models.Book) ([]models.Book, error) {
		return prepend(rows, book), nil
	})
}

func (db *DB) AllBooks(ctx context.Context) ([]models.Book, error) {
	return db.books.All(ctx)
}

func (db *DB) BookByID(ctx context.Context, id string) (*models.Book, error) {
	books, err := db.books.All(ctx)
	if err != nil {
		return nil, err
	}
	b, ok := findByID(books, id, bookID)
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return b, nil
}

// BookExists backs the book_id reference check on chapters, comments, purchases and progress.
func (db *DB) BookExists(ctx context.Context, id string) (bool, error) {
	_, err := db.BookByID(ctx, id)
	if errors.Is(err, apperr.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// UpdateBook runs fn against the stored book inside the collection lock. fn does both the
// permission check and the patch, so a refused update never touches storage.
func (db *DB) UpdateBook(ctx context.Context, id string, fn func(*models.Book) error) (*models.Book, error) {
	return updateByID(ctx, db.books, id, bookID, fn)
}

// DeleteBook removes a book. Chapters, comments, purchases and progress rows that reference it
// are left in place.
func (db *DB) DeleteBook(ctx context.Context, id string, check func(*models.Book) error) error {
	return deleteByID(ctx, db.books, id, bookID, check)
}
