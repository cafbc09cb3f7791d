package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kevinaaaquil/myb/backend/models"
	"github.com/kevinaaaquil/myb/backend/utils"
)

// ChaptersHandler serves chapter text. Update and delete are mounted behind RequireAdmin;
// create is open.
type ChaptersHandler struct {
	*Base
}

func (h *ChaptersHandler) List(w http.ResponseWriter, r *http.Request) {
	chapters, err := h.DB.AllChapters(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, listResponse[models.Chapter]{Data: chapters})
}

func (h *ChaptersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.ChapterInput
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
	chapter := in.NewChapter(id, now)
	if err := h.DB.InsertChapter(r.Context(), chapter); err != nil {
		h.fail(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, chapter)
}

func (h *ChaptersHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch models.ChapterPatch
	if err := h.decode(w, r, &patch); err != nil {
		h.fail(w, r, err)
		return
	}
	chapter, err := h.DB.UpdateChapter(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, chapter)
}

func (h *ChaptersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.DeleteChapter(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, okResponse{OK: true})
}
