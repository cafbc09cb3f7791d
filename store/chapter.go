package store

import (
	"context"
	"sort"

	"github.com/kevinaaaquil/myb/backend/models"
)

func chapterID(c *models.Chapter) string { return c.ID }

func (db *DB) InsertChapter(ctx context.Context, c models.Chapter) error {
	return db.chapters.Mutate(ctx, func(rows []models.Chapter) ([]models.Chapter, error) {
		return append(rows, c), nil
	})
}

func (db *DB) AllChapters(ctx context.Context) ([]models.Chapter, error) {
	return db.chapters.All(ctx)
}

// ChaptersForBook returns a book's chapters by ascending chapter_number. Numbers may repeat or
// skip; ties keep stored order.
func (db *DB) ChaptersForBook(ctx context.Context, bookID string) ([]models.Chapter, error) {
	all, err := db.chapters.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Chapter, 0)
	for _, c := range all {
		if c.BookID == bookID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ChapterNumber < out[j].ChapterNumber
	})
	return out, nil
}

func (db *DB) UpdateChapter(ctx context.Context, id string, patch models.ChapterPatch) (*models.Chapter, error) {
	return updateByID(ctx, db.chapters, id, chapterID, func(c *models.Chapter) error {
		patch.Apply(c)
		return nil
	})
}

func (db *DB) DeleteChapter(ctx context.Context, id string) error {
	return deleteByID(ctx, db.chapters, id, chapterID, nil)
}
