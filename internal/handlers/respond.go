package handler

import (
	"errors"
	"log"
	"net/http"

	"ledger-reconciliation-backend/internal/apperrors"

	"github.com/gin-gonic/gin"
)

func respondData(c *gin.Context, data gin.H) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func respondError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus(), gin.H{
			"success":    false,
			"error_code": appErr.Code,
			"message":    appErr.Message,
			"details":    appErr.Details,
		})
		return
	}
	log.Printf("unhandled error: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"success":    false,
		"error_code": "INTERNAL",
		"message":    "internal server error",
	})
}

func operatorFrom(c *gin.Context) string {
	if op := c.GetHeader("X-Operator"); op != "" {
		return op
	}
	return "operator"
}
