package models

import "strings"

type Chapter struct {
	ID            string `json:"id"`
	BookID        string `json:"book_id"`
	ChapterNumber int    `json:"chapter_number"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	WordCount     int    `json:"word_count"`
	CreatedAt     string `json:"created_at"`
}

type ChapterInput struct {
	BookID        string `json:"book_id" validate:"required"`
	ChapterNumber int    `json:"chapter_number" validate:"gte=0"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	WordCount     *int   `json:"word_count" validate:"omitempty,gte=0"`
}

func (in ChapterInput) NewChapter(id, createdAt string) Chapter {
	c := Chapter{
		ID:            id,
		BookID:        in.BookID,
		ChapterNumber: in.ChapterNumber,
		Title:         in.Title,
		Content:       in.Content,
		CreatedAt:     createdAt,
	}
	if in.WordCount != nil {
		c.WordCount = *in.WordCount
	} else {
		c.WordCount = CountWords(in.Content)
	}
	return c
}

// ChapterPatch is the body of PUT /tables/chapters/{id}. When content changes without an
// explicit word_count the count is recomputed.
type ChapterPatch struct {
	ChapterNumber *int    `json:"chapter_number" validate:"omitempty,gte=0"`
	Title         *string `json:"title"`
	Content       *string `json:"content"`
	WordCount     *int    `json:"word_count" validate:"omitempty,gte=0"`
}

func (p ChapterPatch) Apply(c *Chapter) {
	setIf(&c.ChapterNumber, p.ChapterNumber)
	setIf(&c.Title, p.Title)
	setIf(&c.Content, p.Content)
	switch {
	case p.WordCount != nil:
		c.WordCount = *p.WordCount
	case p.Content != nil:
		c.WordCount = CountWords(c.Content)
	}
}

func CountWords(s string) int {
	return len(strings.Fields(s))
}
