package handler

import (
	"io"
	"log"
	"net/http"

	"ledger-reconciliation-backend/internal/apperrors"
	"ledger-reconciliation-backend/internal/models"
	"ledger-reconciliation-backend/internal/services/ingestion"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UploadHandler struct {
	service *ingestion.Service
}

func NewUploadHandler(s *ingestion.Service) *UploadHandler {
	return &UploadHandler{service: s}
}

func (h *UploadHandler) UploadBank(c *gin.Context) {
	h.upload(c, models.SourceBank)
}

func (h *UploadHandler) UploadCompany(c *gin.Context) {
	h.upload(c, models.SourceCompany)
}

func (h *UploadHandler) upload(c *gin.Context, sourceKind string) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		respondError(c, apperrors.Validation("file is required", nil))
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		respondError(c, apperrors.Connection("could not read uploaded file", err))
		return
	}

	log.Printf("upload: %s file %q (%d bytes)", sourceKind, header.Filename, len(content))

	report, err := h.service.Ingest(c.Request.Context(), header.Filename, content, sourceKind)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, gin.H{
		"batch_id":                report.BatchID.String(),
		"status":                  report.Status,
		"items_imported":          report.Imported,
		"saved_count":             report.Imported,
		"duplicates_found":        report.DuplicatesFound,
		"items_incomplete":        len(report.Incomplete),
		"incomplete_items":        report.Incomplete,
		"total_entries_processed": report.TotalProcessed,
	})
}

type correctionRequest struct {
	BatchID string                      `json:"batch_id"`
	Entries []ingestion.IncompleteEntry `json:"entries" binding:"required"`
}

func (h *UploadHandler) ResubmitBank(c *gin.Context) {
	h.resubmit(c, models.SourceBank)
}

func (h *UploadHandler) ResubmitCompany(c *gin.Context) {
	h.resubmit(c, models.SourceCompany)
}

func (h *UploadHandler) resubmit(c *gin.Context, sourceKind string) {
	var payload correctionRequest
	if err := c.BindJSON(&payload); err != nil {
		respondError(c, apperrors.Validation("invalid payload", nil))
		return
	}

	batchID := uuid.Nil
	if payload.BatchID != "" {
		parsed, err := uuid.Parse(payload.BatchID)
		if err != nil {
			respondError(c, apperrors.Validation("invalid batch_id", nil))
			return
		}
		batchID = parsed
	}

	report, err := h.service.Resubmit(c.Request.Context(), batchID, payload.Entries, sourceKind)
	if err != nil {
		respondError(c, err)
		return
	}

	data := gin.H{
		"items_imported":   report.Imported,
		"items_incomplete": len(report.Incomplete),
		"incomplete_items": report.Incomplete,
		"duplicates_found": report.DuplicatesFound,
	}
	if report.Message != "" {
		data["message"] = report.Message
	}
	respondData(c, data)
}

// Health is the liveness probe.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
