package models

type Comment struct {
	ID        string `json:"id"`
	BookID    string `json:"book_id"`
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"created_at"`
}

// CommentInput omits user_id and user_name: both come from the caller's token.
type CommentInput struct {
	BookID  string `json:"book_id" validate:"required"`
	Comment string `json:"comment" validate:"required"`
}

func (in CommentInput) NewComment(id string, author Identity, createdAt string) Comment {
	return Comment{
		ID:        id,
		BookID:    in.BookID,
		UserID:    author.Username,
		UserName:  author.Username,
		Comment:   in.Comment,
		CreatedAt: createdAt,
	}
}
