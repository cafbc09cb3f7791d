package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/kevinaaaquil/myb/backend/models"
	"github.com/kevinaaaquil/myb/backend/utils"
	"go.uber.org/zap"
)

// ReportNotifier is told about every stored report. service.Mailer implements it.
type ReportNotifier interface {
	NotifyReport(ctx context.Context, r models.Report) error
}

type ReportsHandler struct {
	*Base
	// Notifier is optional.
	Notifier ReportNotifier
	// notified, when set, runs after each background send.
	notified func()
}

const notifyTimeout = 30 * time.Second

func (h *ReportsHandler) List(w http.ResponseWriter, r *http.Request) {
	reports, err := h.DB.AllReports(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, listResponse[models.Report]{Data: reports})
}

func (h *ReportsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.ReportInput
	if err := h.decode(w, r, &in); err != nil {
		h.fail(w, r, err)
		return
	}
	id, now, err := newIDAndTime()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	report := in.NewReport(id, now)
	if err := h.DB.InsertReport(r.Context(), report); err != nil {
		h.fail(w, r, err)
		return
	}
	h.Logger.Info("report filed", zap.String("id", report.ID), zap.String("type", report.Type))
	if h.Notifier != nil {
		go h.notify(report)
	}
	utils.JSON(w, http.StatusOK, report)
}

// notify runs detached from the request; a failed send is logged and otherwise ignored.
func (h *ReportsHandler) notify(report models.Report) {
	if h.notified != nil {
		defer h.notified()
	}
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()
	if err := h.Notifier.NotifyReport(ctx, report); err != nil {
		h.Logger.Warn("report notification failed", zap.String("id", report.ID), zap.Error(err))
	}
}
