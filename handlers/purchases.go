package handlers

import (
	"net/http"

	"github.com/kevinaaaquil/myb/backend/models"
	"github.com/kevinaaaquil/myb/backend/utils"
	"go.uber.org/zap"
)

// PurchasesHandler records simulated payments. Creation is unauthenticated and trusts the
// user_id in the body.
type PurchasesHandler struct {
	*Base
}

func (h *PurchasesHandler) List(w http.ResponseWriter, r *http.Request) {
	purchases, err := h.DB.AllPurchases(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, listResponse[models.Purchase]{Data: purchases})
}

func (h *PurchasesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.PurchaseInput
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
	p := in.NewPurchase(id, now)
	if err := h.DB.InsertPurchase(r.Context(), p); err != nil {
		h.fail(w, r, err)
		return
	}
	h.Logger.Info("purchase recorded",
		zap.String("id", p.ID),
		zap.String("book_id", p.BookID),
		zap.Float64("amount", p.Amount))
	utils.JSON(w, http.StatusOK, p)
}
