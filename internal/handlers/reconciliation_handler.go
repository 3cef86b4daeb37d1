package handler

import (
	"time"

	"ledger-reconciliation-backend/internal/apperrors"
	"ledger-reconciliation-backend/internal/services/reconciliation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReconciliationHandler struct {
	service *reconciliation.Service
}

func NewReconciliationHandler(s *reconciliation.Service) *ReconciliationHandler {
	return &ReconciliationHandler{service: s}
}

func (h *ReconciliationHandler) ListPending(c *gin.Context) {
	records, err := h.service.ListPending(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, gin.H{"records": records})
}

func (h *ReconciliationHandler) Start(c *gin.Context) {
	report, err := h.service.StartReconciliation(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, gin.H{"report": report})
}

type anomalyStartRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

func (h *ReconciliationHandler) StartAnomalyAware(c *gin.Context) {
	var payload anomalyStartRequest
	if err := c.BindJSON(&payload); err != nil {
		respondError(c, apperrors.Validation("start_date and end_date are required", nil))
		return
	}

	start, err := time.Parse("2006-01-02", payload.StartDate)
	if err != nil {
		respondError(c, apperrors.Validation("invalid start_date, expected YYYY-MM-DD", nil))
		return
	}
	end, err := time.Parse("2006-01-02", payload.EndDate)
	if err != nil {
		respondError(c, apperrors.Validation("invalid end_date, expected YYYY-MM-DD", nil))
		return
	}

	report, err := h.service.StartAnomalyAware(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, gin.H{"report": report})
}

func (h *ReconciliationHandler) Confirm(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperrors.Validation("invalid match ID", nil))
		return
	}

	match, err := h.service.Confirm(c.Request.Context(), id, operatorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, gin.H{"match": match})
}

func (h *ReconciliationHandler) Reject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperrors.Validation("invalid match ID", nil))
		return
	}

	match, err := h.service.Reject(c.Request.Context(), id, operatorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, gin.H{"match": match})
}

func (h *ReconciliationHandler) Report(c *gin.Context) {
	report, err := h.service.Report(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, gin.H{
		"summary":    report.Summary,
		"financials": report.Financials,
	})
}
