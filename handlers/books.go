package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kevinaaaquil/myb/backend/apperr"
	"github.com/kevinaaaquil/myb/backend/middleware"
	"github.com/kevinaaaquil/myb/backend/models"
	"github.com/kevinaaaquil/myb/backend/utils"
	"go.uber.org/zap"
)

type BooksHandler struct {
	*Base
}

func (h *BooksHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.DB.AllBooks(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, listResponse[models.Book]{Data: books})
}

// Create stores a new book owned by the caller. Runs behind middleware.Auth.
func (h *BooksHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.Error(w, apperr.ErrUnauthorized)
		return
	}
	var in models.BookInput
	if err := h.decode(w, r, &in); err != nil {
		h.fail(w, r, err)
		return
	}
	id, now, err := newIDAndTime()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	book := in.NewBook(id, caller.Username, now)
	if err := h.DB.InsertBook(r.Context(), book); err != nil {
		h.fail(w, r, err)
		return
	}
	h.Logger.Info("book created", zap.String("id", book.ID), zap.String("owner", book.OwnerID))
	utils.JSON(w, http.StatusOK, book)
}

// Update applies a partial edit. Only an admin or the book's owner may edit it.
func (h *BooksHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.Error(w, apperr.ErrUnauthorized)
		return
	}
	var patch models.BookPatch
	if err := h.decode(w, r, &patch); err != nil {
		h.fail(w, r, err)
		return
	}
	book, err := h.DB.UpdateBook(r.Context(), chi.URLParam(r, "id"), func(b *models.Book) error {
		if !caller.CanModifyBook(b) {
			return apperr.ErrForbidden
		}
		patch.Apply(b)
		return nil
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, book)
}

// PatchCounters lets any reader bump the view and like counters. Every other field in the
// body is ignored.
func (h *BooksHandler) PatchCounters(w http.ResponseWriter, r *http.Request) {
	var counters models.BookCounters
	if err := h.decode(w, r, &counters); err != nil {
		h.fail(w, r, err)
		return
	}
	book, err := h.DB.UpdateBook(r.Context(), chi.URLParam(r, "id"), func(b *models.Book) error {
		counters.Apply(b)
		return nil
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, book)
}

func (h *BooksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.Error(w, apperr.ErrUnauthorized)
		return
	}
	id := chi.URLParam(r, "id")
	err := h.DB.DeleteBook(r.Context(), id, func(b *models.Book) error {
		if !caller.CanModifyBook(b) {
			return apperr.ErrForbidden
		}
		return nil
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.Logger.Info("book deleted", zap.String("id", id), zap.String("by", caller.Username))
	utils.JSON(w, http.StatusOK, okResponse{OK: true})
}

// Chapters lists one book's chapters in reading order.
func (h *BooksHandler) Chapters(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.DB.BookByID(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	chapters, err := h.DB.ChaptersForBook(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, listResponse[models.Chapter]{Data: chapters})
}
