package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ledger-reconciliation-backend/internal/config"
	"ledger-reconciliation-backend/internal/models"
	"ledger-reconciliation-backend/internal/services/ingestion"
	mock_ingestion "ledger-reconciliation-backend/internal/services/ingestion/mocks"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newUploadRouter(t *testing.T) (*gin.Engine, *mock_ingestion.MockBatchStore, *mock_ingestion.MockTransactionStore) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	batches := mock_ingestion.NewMockBatchStore(ctrl)
	transactions := mock_ingestion.NewMockTransactionStore(ctrl)
	entries := mock_ingestion.NewMockEntryStore(ctrl)

	cfg := config.Config{
		UploadMaxBytes:    1 << 20,
		BankExtensions:    []string{".csv", ".ofx", ".qfx"},
		CompanyExtensions: []string{".csv"},
	}
	h := NewUploadHandler(ingestion.NewService(batches, transactions, entries, cfg))

	r := gin.New()
	r.POST("/api/upload/bank", h.UploadBank)
	r.GET("/api/health", Health)
	return r, batches, transactions
}

func multipartUpload(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload
}

func TestUploadBank_MissingFilePart(t *testing.T) {
	r, _, _ := newUploadRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/upload/bank", strings.NewReader(""))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	payload := decodeBody(t, rec)
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, "VALIDATION_ERROR", payload["error_code"])
}

func TestUploadBank_RejectedExtension(t *testing.T) {
	r, _, _ := newUploadRouter(t)

	body, contentType := multipartUpload(t, "statement.pdf", "%PDF-1.4")
	req := httptest.NewRequest(http.MethodPost, "/api/upload/bank", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	payload := decodeBody(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", payload["error_code"])
}

func TestUploadBank_DuplicateFile(t *testing.T) {
	r, batches, _ := newUploadRouter(t)

	uploadedAt := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	batches.EXPECT().Reserve(gomock.Any(), gomock.Any()).Return(&models.UploadBatch{
		Filename:   "march.csv",
		UploadedAt: uploadedAt,
	}, nil)

	body, contentType := multipartUpload(t, "march-again.csv",
		"date,description,amount\n2024-03-01,PIX ACME,120.00\n")
	req := httptest.NewRequest(http.MethodPost, "/api/upload/bank", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	payload := decodeBody(t, rec)
	assert.Equal(t, "DUPLICATE_FILE", payload["error_code"])

	details, ok := payload["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "march.csv", details["filename"])
	assert.Equal(t, uploadedAt.Format(time.RFC3339), details["original_upload_date"])
}

func TestUploadBank_Success(t *testing.T) {
	r, batches, transactions := newUploadRouter(t)

	batches.EXPECT().Reserve(gomock.Any(), gomock.Any()).Return(nil, nil)
	transactions.EXPECT().CreateIgnoreDuplicate(gomock.Any(), gomock.Any()).Return(true, nil).Times(2)
	batches.EXPECT().Finalize(gomock.Any(), gomock.Any(), models.BatchStatusProcessed, 2, 2, 0, 0).Return(nil)

	body, contentType := multipartUpload(t, "march.csv",
		"date,description,amount\n2024-03-01,PIX ACME,120.00\n2024-03-02,TED BETA,-45.50\n")
	req := httptest.NewRequest(http.MethodPost, "/api/upload/bank", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	payload := decodeBody(t, rec)
	assert.Equal(t, true, payload["success"])

	data, ok := payload["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "processed", data["status"])
	assert.Equal(t, float64(2), data["items_imported"])
	assert.Equal(t, float64(2), data["total_entries_processed"])
	assert.Equal(t, float64(0), data["duplicates_found"])
}

func TestHealth(t *testing.T) {
	r, _, _ := newUploadRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
