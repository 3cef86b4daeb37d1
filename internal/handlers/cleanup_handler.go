package handler

import (
	"strconv"

	"ledger-reconciliation-backend/internal/apperrors"
	"ledger-reconciliation-backend/internal/services/cleanup"

	"github.com/gin-gonic/gin"
)

type CleanupHandler struct {
	service *cleanup.Service
}

func NewCleanupHandler(s *cleanup.Service) *CleanupHandler {
	return &CleanupHandler{service: s}
}

// Handle dispatches the three-step deletion flow on ?mode=.
func (h *CleanupHandler) Handle(c *gin.Context) {
	daysOld, err := strconv.Atoi(c.DefaultQuery("days_old", "0"))
	if err != nil {
		respondError(c, apperrors.Validation("days_old must be an integer", nil))
		return
	}

	ctx := c.Request.Context()
	switch mode := c.Query("mode"); mode {
	case "preview":
		result, err := h.service.Preview(ctx, daysOld)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, gin.H{"mode": mode, "preview": result})
	case "confirmation":
		result, err := h.service.Confirmation(ctx, daysOld)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, gin.H{"mode": mode, "confirmation": result})
	case "execution":
		force := c.Query("force") == "true"
		token := c.Query("confirmation_token")
		result, err := h.service.Execute(ctx, daysOld, force, token)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, gin.H{"mode": mode, "execution": result})
	default:
		respondError(c, apperrors.Validation("mode must be preview, confirmation or execution", nil))
	}
}
