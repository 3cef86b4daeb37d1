package ingestion_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"ledger-reconciliation-backend/internal/apperrors"
	"ledger-reconciliation-backend/internal/config"
	"ledger-reconciliation-backend/internal/models"
	"ledger-reconciliation-backend/internal/services/ingestion"
	mock_ingestion "ledger-reconciliation-backend/internal/services/ingestion/mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() config.Config {
	return config.Config{
		UploadMaxBytes:    1 << 20,
		BankExtensions:    []string{".csv", ".ofx", ".qfx"},
		CompanyExtensions: []string{".csv"},
	}
}

func newTestService(t *testing.T) (*ingestion.Service, *mock_ingestion.MockBatchStore, *mock_ingestion.MockTransactionStore, *mock_ingestion.MockEntryStore) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	batches := mock_ingestion.NewMockBatchStore(ctrl)
	transactions := mock_ingestion.NewMockTransactionStore(ctrl)
	entries := mock_ingestion.NewMockEntryStore(ctrl)
	svc := ingestion.NewService(batches, transactions, entries, testConfig())
	return svc, batches, transactions, entries
}

func ofxStatement(rows int) []byte {
	var b strings.Builder
	b.WriteString("OFXHEADER:100\n\n<OFX>\n<BANKTRANLIST>\n")
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&b, "<STMTTRN>\n<TRNTYPE>DEBIT\n<DTPOSTED>202403%02d\n<TRNAMT>-%d.50\n<MEMO>PAYMENT %d\n</STMTTRN>\n", i+1, (i+1)*10, i+1)
	}
	b.WriteString("</BANKTRANLIST>\n</OFX>\n")
	return []byte(b.String())
}

func TestIngest_FullStatement(t *testing.T) {
	svc, batches, transactions, _ := newTestService(t)
	content := ofxStatement(10)

	batches.EXPECT().Reserve(gomock.Any(), gomock.Any()).Return(nil, nil)
	transactions.EXPECT().CreateIgnoreDuplicate(gomock.Any(), gomock.Any()).Return(true, nil).Times(10)
	batches.EXPECT().Finalize(gomock.Any(), gomock.Any(), models.BatchStatusProcessed, 10, 10, 0, 0).Return(nil)

	report, err := svc.Ingest(context.Background(), "statement.ofx", content, models.SourceBank)
	require.NoError(t, err)

	assert.Equal(t, 10, report.Imported)
	assert.Empty(t, report.Incomplete)
	assert.Equal(t, 0, report.DuplicatesFound)
	assert.Equal(t, models.BatchStatusProcessed, report.Status)
	assert.Equal(t, report.TotalProcessed, report.Imported+report.DuplicatesFound+len(report.Incomplete))
}

func TestIngest_IdenticalContentIsDuplicate(t *testing.T) {
	svc, batches, _, _ := newTestService(t)
	content := ofxStatement(10)
	originalDate := time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)

	batches.EXPECT().Reserve(gomock.Any(), gomock.Any()).Return(&models.UploadBatch{
		ID:         uuid.New(),
		Filename:   "statement.ofx",
		Status:     models.BatchStatusProcessed,
		UploadedAt: originalDate,
	}, nil)

	_, err := svc.Ingest(context.Background(), "statement.ofx", content, models.SourceBank)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeDuplicateFile, appErr.Code)
	assert.Equal(t, "statement.ofx", appErr.Details["filename"])
	assert.Equal(t, originalDate.Format(time.RFC3339), appErr.Details["original_upload_date"])
}

func TestIngest_PartialBatch(t *testing.T) {
	svc, batches, _, entries := newTestService(t)

	var b strings.Builder
	b.WriteString("date,description,amount\n")
	for i := 1; i <= 10; i++ {
		desc := fmt.Sprintf("ENTRY %d", i)
		if i == 5 {
			desc = "" // row 5 lacks a description
		}
		fmt.Fprintf(&b, "2024-03-%02d,%s,%d.00\n", i, desc, i*100)
	}

	batches.EXPECT().Reserve(gomock.Any(), gomock.Any()).Return(nil, nil)
	entries.EXPECT().CreateIgnoreDuplicate(gomock.Any(), gomock.Any()).Return(true, nil).Times(9)
	batches.EXPECT().Finalize(gomock.Any(), gomock.Any(), models.BatchStatusPartial, 10, 9, 0, 1).Return(nil)

	report, err := svc.Ingest(context.Background(), "ledger.csv", []byte(b.String()), models.SourceCompany)
	require.NoError(t, err)

	assert.Equal(t, 9, report.Imported)
	require.Len(t, report.Incomplete, 1)
	assert.Equal(t, 5, report.Incomplete[0].RowNumber)
	assert.Contains(t, report.Incomplete[0].Error, "description")
	assert.Equal(t, models.BatchStatusPartial, report.Status)
	assert.Equal(t, report.TotalProcessed, report.Imported+report.DuplicatesFound+len(report.Incomplete))
}

func TestIngest_CountsRowLevelDuplicates(t *testing.T) {
	svc, batches, transactions, _ := newTestService(t)
	content := []byte("date,description,amount\n" +
		"2024-03-01,A,1.00\n2024-03-02,B,2.00\n2024-03-03,C,3.00\n")

	batches.EXPECT().Reserve(gomock.Any(), gomock.Any()).Return(nil, nil)
	gomock.InOrder(
		transactions.EXPECT().CreateIgnoreDuplicate(gomock.Any(), gomock.Any()).Return(true, nil),
		transactions.EXPECT().CreateIgnoreDuplicate(gomock.Any(), gomock.Any()).Return(false, nil),
		transactions.EXPECT().CreateIgnoreDuplicate(gomock.Any(), gomock.Any()).Return(true, nil),
	)
	batches.EXPECT().Finalize(gomock.Any(), gomock.Any(), models.BatchStatusProcessed, 3, 2, 1, 0).Return(nil)

	report, err := svc.Ingest(context.Background(), "statement.csv", content, models.SourceBank)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Imported)
	assert.Equal(t, 1, report.DuplicatesFound)
	assert.Equal(t, 3, report.TotalProcessed)
}

func TestIngest_InputGates(t *testing.T) {
	tests := []struct {
		name       string
		filename   string
		content    []byte
		sourceKind string
	}{
		{
			name:       "oversized file",
			filename:   "big.csv",
			content:    make([]byte, (1<<20)+1),
			sourceKind: models.SourceBank,
		},
		{
			name:       "extension not accepted for bank",
			filename:   "statement.pdf",
			content:    []byte("x"),
			sourceKind: models.SourceBank,
		},
		{
			name:       "company set is narrower than bank",
			filename:   "ledger.ofx",
			content:    []byte("x"),
			sourceKind: models.SourceCompany,
		},
		{
			name:       "unknown source kind",
			filename:   "file.csv",
			content:    []byte("x"),
			sourceKind: "crypto",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _, _ := newTestService(t)

			_, err := svc.Ingest(context.Background(), tt.filename, tt.content, tt.sourceKind)
			require.Error(t, err)

			var appErr *apperrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperrors.CodeValidationError, appErr.Code)
		})
	}
}

func TestIngest_StructuralParseFailureReleasesFingerprint(t *testing.T) {
	svc, batches, _, _ := newTestService(t)
	content := []byte("no,recognizable,columns\n1,2,3\n")

	batches.EXPECT().Reserve(gomock.Any(), gomock.Any()).Return(nil, nil)
	batches.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

	_, err := svc.Ingest(context.Background(), "broken.csv", content, models.SourceBank)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeValidationError, appErr.Code)
}

func TestIngest_StorageFailureReleasesReservation(t *testing.T) {
	svc, batches, transactions, _ := newTestService(t)
	content := []byte("date,description,amount\n" +
		"2024-03-01,A,1.00\n2024-03-02,B,2.00\n")

	batches.EXPECT().Reserve(gomock.Any(), gomock.Any()).Return(nil, nil)
	gomock.InOrder(
		transactions.EXPECT().CreateIgnoreDuplicate(gomock.Any(), gomock.Any()).Return(true, nil),
		transactions.EXPECT().CreateIgnoreDuplicate(gomock.Any(), gomock.Any()).Return(false, errors.New("connection reset")),
	)
	// the fingerprint must come free again so the caller can retry the file
	batches.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

	_, err := svc.Ingest(context.Background(), "statement.csv", content, models.SourceBank)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeConnectionError, appErr.Code)
}

func TestIngest_RetryAfterStorageFailureCompletes(t *testing.T) {
	svc, batches, transactions, _ := newTestService(t)
	content := []byte("date,description,amount\n" +
		"2024-03-01,A,1.00\n2024-03-02,B,2.00\n2024-03-03,C,3.00\n")

	// First attempt: row 1 commits, row 2 hits a storage failure, the
	// reservation is released.
	batches.EXPECT().Reserve(gomock.Any(), gomock.Any()).Return(nil, nil)
	gomock.InOrder(
		transactions.EXPECT().CreateIgnoreDuplicate(gomock.Any(), gomock.Any()).Return(true, nil),
		transactions.EXPECT().CreateIgnoreDuplicate(gomock.Any(), gomock.Any()).Return(false, errors.New("connection reset")),
	)
	batches.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

	_, err := svc.Ingest(context.Background(), "statement.csv", content, models.SourceBank)
	require.Error(t, err)

	// Retry of the identical file: not a duplicate upload, the already
	// committed row dedupes at row level, the rest goes through.
	batches.EXPECT().Reserve(gomock.Any(), gomock.Any()).Return(nil, nil)
	gomock.InOrder(
		transactions.EXPECT().CreateIgnoreDuplicate(gomock.Any(), gomock.Any()).Return(false, nil),
		transactions.EXPECT().CreateIgnoreDuplicate(gomock.Any(), gomock.Any()).Return(true, nil),
		transactions.EXPECT().CreateIgnoreDuplicate(gomock.Any(), gomock.Any()).Return(true, nil),
	)
	batches.EXPECT().Finalize(gomock.Any(), gomock.Any(), models.BatchStatusProcessed, 3, 2, 1, 0).Return(nil)

	report, err := svc.Ingest(context.Background(), "statement.csv", content, models.SourceBank)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Imported)
	assert.Equal(t, 1, report.DuplicatesFound)
	assert.Equal(t, 3, report.TotalProcessed)
}

func TestCheckFingerprint(t *testing.T) {
	svc, batches, _, _ := newTestService(t)
	uploaded := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)

	batches.EXPECT().FindOriginal(gomock.Any(), "abc123").Return(&models.UploadBatch{
		Filename:   "statement.ofx",
		UploadedAt: uploaded,
	}, nil)
	batches.EXPECT().FindOriginal(gomock.Any(), "new-fp").Return(nil, nil)

	check, err := svc.CheckFingerprint(context.Background(), "abc123")
	require.NoError(t, err)
	assert.True(t, check.IsDuplicate)
	assert.Equal(t, "statement.ofx", check.Filename)
	require.NotNil(t, check.OriginalUploadDate)
	assert.Equal(t, uploaded, *check.OriginalUploadDate)

	check, err = svc.CheckFingerprint(context.Background(), "new-fp")
	require.NoError(t, err)
	assert.False(t, check.IsDuplicate)
	assert.Nil(t, check.OriginalUploadDate)
}

func TestResubmit_NothingCorrectedIsExplicitNoop(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	entries := []ingestion.IncompleteEntry{
		{RowNumber: 5, Error: "missing required field: description", Date: "2024-03-05", Amount: "10"},
		{RowNumber: 7, Error: "invalid amount \"x\"", Date: "2024-03-07", Description: "A", Amount: "x"},
	}

	report, err := svc.Resubmit(context.Background(), uuid.New(), entries, models.SourceBank)
	require.NoError(t, err)

	assert.Equal(t, 0, report.Imported)
	assert.Equal(t, 0, report.TotalProcessed)
	assert.NotEmpty(t, report.Message, "a no-op resubmission must say so, not silently succeed")
	assert.Contains(t, report.Message, "nothing to save")
}

func TestResubmit_IterativeCorrection(t *testing.T) {
	svc, _, transactions, _ := newTestService(t)

	entries := []ingestion.IncompleteEntry{
		// corrected and now valid
		{RowNumber: 5, Date: "2024-03-05", Description: "FIXED DESC", Amount: "10.00", Corrected: true},
		// corrected but still invalid
		{RowNumber: 7, Date: "2024-03-07", Description: "B", Amount: "not-a-number", Corrected: true},
		// untouched rows are dropped, not resubmitted stale
		{RowNumber: 9, Date: "", Description: "", Amount: ""},
	}

	transactions.EXPECT().CreateIgnoreDuplicate(gomock.Any(), gomock.Any()).Return(true, nil)

	report, err := svc.Resubmit(context.Background(), uuid.New(), entries, models.SourceBank)
	require.NoError(t, err)

	assert.Equal(t, 2, report.TotalProcessed)
	assert.Equal(t, 1, report.Imported)
	require.Len(t, report.Incomplete, 1)
	assert.Equal(t, 7, report.Incomplete[0].RowNumber)
	assert.Contains(t, report.Incomplete[0].Error, "amount")
	assert.Equal(t, models.BatchStatusPartial, report.Status)
}
