package http

import (
	"fmt"
	"net/http"

	"github.com/cafebonheur/pos/internal/service"
)

type reportHandler struct {
	reportSvc service.ReportService
}

func newReportHandler(reportSvc service.ReportService) *reportHandler {
	return &reportHandler{
		reportSvc: reportSvc,
	}
}

func (h *reportHandler) summary(w http.ResponseWriter, r *http.Request) error {
	summary, err := h.reportSvc.Summary(r.Context())
	if err != nil {
		return fmt.Errorf("report service summary: %w", err)
	}

	return respondJSON(w, http.StatusOK, summary)
}

func (h *reportHandler) salesByDay(w http.ResponseWriter, r *http.Request) error {
	series, err := h.reportSvc.SalesByDay(r.Context())
	if err != nil {
		return fmt.Errorf("report service sales by day: %w", err)
	}

	return respondJSON(w, http.StatusOK, series)
}

func (h *reportHandler) topProducts(w http.ResponseWriter, r *http.Request) error {
	ranking, err := h.reportSvc.TopProducts(r.Context())
	if err != nil {
		return fmt.Errorf("report service top products: %w", err)
	}

	return respondJSON(w, http.StatusOK, ranking)
}

func (h *reportHandler) paymentMethods(w http.ResponseWriter, r *http.Request) error {
	dist, err := h.reportSvc.PaymentMethods(r.Context())
	if err != nil {
		return fmt.Errorf("report service payment methods: %w", err)
	}

	return respondJSON(w, http.StatusOK, dist)
}
