package models

import "strings"

type Book struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Author    string   `json:"author"`
	Genre     string   `json:"genre"`
	Price     float64  `json:"price"`
	Synopsis  string   `json:"synopsis"`
	CoverURL  string   `json:"cover_url"`
	PDFURL    string   `json:"pdf_url"`
	Published bool     `json:"published"`
	Featured  bool     `json:"featured"`
	Reads     int      `json:"reads"`
	Likes     int      `json:"likes"`
	Rating    float64  `json:"rating"`
	Tags      []string `json:"tags"`
	OwnerID   string   `json:"owner_id"`
	OwnerName string   `json:"owner_name"`
	CreatedAt string   `json:"created_at"`
}

// BookInput is the allow-listed body of POST /tables/books. id, owner and timestamps are
// assigned by the server.
type BookInput struct {
	Title     string   `json:"title" validate:"required"`
	Author    string   `json:"author"`
	Genre     string   `json:"genre"`
	Price     float64  `json:"price" validate:"gte=0"`
	Synopsis  string   `json:"synopsis"`
	CoverURL  string   `json:"cover_url"`
	PDFURL    string   `json:"pdf_url"`
	Published bool     `json:"published"`
	Featured  bool     `json:"featured"`
	Reads     int      `json:"reads" validate:"gte=0"`
	Likes     int      `json:"likes" validate:"gte=0"`
	Rating    float64  `json:"rating" validate:"gte=0"`
	Tags      []string `json:"tags"`
}

// NewBook builds the stored record for in; the caller supplies the generated fields.
func (in BookInput) NewBook(id, owner, createdAt string) Book {
	return Book{
		ID:        id,
		Title:     strings.TrimSpace(in.Title),
		Author:    in.Author,
		Genre:     in.Genre,
		Price:     in.Price,
		Synopsis:  in.Synopsis,
		CoverURL:  in.CoverURL,
		PDFURL:    in.PDFURL,
		Published: in.Published,
		Featured:  in.Featured,
		Reads:     in.Reads,
		Likes:     in.Likes,
		Rating:    in.Rating,
		Tags:      normalizeTags(in.Tags),
		OwnerID:   owner,
		OwnerName: owner,
		CreatedAt: createdAt,
	}
}

// BookPatch is the body of PUT /tables/books/{id}. Nil fields are left unchanged.
type BookPatch struct {
	Title     *string   `json:"title" validate:"omitempty,min=1"`
	Author    *string   `json:"author"`
	Genre     *string   `json:"genre"`
	Price     *float64  `json:"price" validate:"omitempty,gte=0"`
	Synopsis  *string   `json:"synopsis"`
	CoverURL  *string   `json:"cover_url"`
	PDFURL    *string   `json:"pdf_url"`
	Published *bool     `json:"published"`
	Featured  *bool     `json:"featured"`
	Reads     *int      `json:"reads" validate:"omitempty,gte=0"`
	Likes     *int      `json:"likes" validate:"omitempty,gte=0"`
	Rating    *float64  `json:"rating" validate:"omitempty,gte=0"`
	Tags      *[]string `json:"tags"`
}

func (p BookPatch) Apply(b *Book) {
	setIf(&b.Title, p.Title)
	setIf(&b.Author, p.Author)
	setIf(&b.Genre, p.Genre)
	setIf(&b.Price, p.Price)
	setIf(&b.Synopsis, p.Synopsis)
	setIf(&b.CoverURL, p.CoverURL)
	setIf(&b.PDFURL, p.PDFURL)
	setIf(&b.Published, p.Published)
	setIf(&b.Featured, p.Featured)
	setIf(&b.Reads, p.Reads)
	setIf(&b.Likes, p.Likes)
	setIf(&b.Rating, p.Rating)
	if p.Tags != nil {
		b.Tags = normalizeTags(*p.Tags)
	}
}

// BookCounters is the only thing an anonymous reader may patch on a book: view and like counts.
type BookCounters struct {
	Reads *int `json:"reads" validate:"omitempty,gte=0"`
	Likes *int `json:"likes" validate:"omitempty,gte=0"`
}

func (c BookCounters) Apply(b *Book) {
	setIf(&b.Reads, c.Reads)
	setIf(&b.Likes, c.Likes)
}

// normalizeTags trims, drops empties and de-duplicates while keeping first-seen order.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
