package models

// ReadingProgress is one record per (user, book). Callers look up an existing record and
// PATCH it rather than creating a second one.
type ReadingProgress struct {
	ID             string `json:"id"`
	UserID         string `json:"user_id"`
	BookID         string `json:"book_id"`
	CurrentChapter int    `json:"current_chapter"`
	LastRead       string `json:"last_read"`
}

type ProgressInput struct {
	UserID         string `json:"user_id"`
	BookID         string `json:"book_id" validate:"required"`
	CurrentChapter int    `json:"current_chapter" validate:"gte=0"`
}

func (in ProgressInput) NewProgress(id, lastRead string) ReadingProgress {
	return ReadingProgress{
		ID:             id,
		UserID:         in.UserID,
		BookID:         in.BookID,
		CurrentChapter: in.CurrentChapter,
		LastRead:       lastRead,
	}
}

type ProgressPatch struct {
	CurrentChapter *int `json:"current_chapter" validate:"omitempty,gte=0"`
}
