package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kevinaaaquil/myb/backend/models"
	"github.com/kevinaaaquil/myb/backend/utils"
)

type ProgressHandler struct {
	*Base
}

func (h *ProgressHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.DB.AllProgress(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, listResponse[models.ReadingProgress]{Data: rows})
}

func (h *ProgressHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.ProgressInput
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
	p := in.NewProgress(id, now)
	if err := h.DB.InsertProgress(r.Context(), p); err != nil {
		h.fail(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, p)
}

// Patch moves the reader to another chapter and restamps last_read.
func (h *ProgressHandler) Patch(w http.ResponseWriter, r *http.Request) {
	var patch models.ProgressPatch
	if err := h.decode(w, r, &patch); err != nil {
		h.fail(w, r, err)
		return
	}
	p, err := h.DB.UpdateProgress(r.Context(), chi.URLParam(r, "id"), patch, utils.NowISO())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, p)
}
