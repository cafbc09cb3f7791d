package handlers

import (
	"net/http"

	"github.com/kevinaaaquil/myb/backend/apperr"
	"github.com/kevinaaaquil/myb/backend/middleware"
	"github.com/kevinaaaquil/myb/backend/models"
	"github.com/kevinaaaquil/myb/backend/utils"
)

type CommentsHandler struct {
	*Base
}

func (h *CommentsHandler) List(w http.ResponseWriter, r *http.Request) {
	comments, err := h.DB.AllComments(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, listResponse[models.Comment]{Data: comments})
}

// Create attributes the comment to the token's username, whatever the body says.
func (h *CommentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.Error(w, apperr.ErrUnauthorized)
		return
	}
	var in models.CommentInput
	if err := h.decode(w, r, &in); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.requireBook(r, in.BookID); err != nil {
		h.fail(w, r, err)
		return
	}
	id, now, err := newIDAndTime()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	c := in.NewComment(id, caller, now)
	if err := h.DB.InsertComment(r.Context(), c); err != nil {
		h.fail(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, c)
}
