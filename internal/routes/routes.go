package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ledger-reconciliation-backend/internal/config"
	handler "ledger-reconciliation-backend/internal/handlers"
	"ledger-reconciliation-backend/internal/repository"
	"ledger-reconciliation-backend/internal/services/cleanup"
	"ledger-reconciliation-backend/internal/services/ingestion"
	"ledger-reconciliation-backend/internal/services/matching"
	"ledger-reconciliation-backend/internal/services/reconciliation"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	batchRepo := repository.NewUploadBatchRepository(db)
	transactionRepo := repository.NewBankTransactionRepository(db)
	entryRepo := repository.NewCompanyEntryRepository(db)
	matchRepo := repository.NewReconciliationMatchRepository(db)

	ingestService := ingestion.NewService(batchRepo, transactionRepo, entryRepo, cfg)
	reconService := reconciliation.NewService(
		matchRepo,
		transactionRepo,
		entryRepo,
		matching.NewEngine(),
		matching.NewZScoreDetector(),
		cfg.MatchTimeout,
	)
	cleanupService := cleanup.NewService(transactionRepo, entryRepo, batchRepo, cfg)

	uploadHandler := handler.NewUploadHandler(ingestService)
	reconHandler := handler.NewReconciliationHandler(reconService)
	cleanupHandler := handler.NewCleanupHandler(cleanupService)

	api := r.Group("/api")

	api.GET("/health", handler.Health)

	upload := api.Group("/upload")
	upload.POST("/bank", uploadHandler.UploadBank)
	upload.POST("/bank/corrected", uploadHandler.ResubmitBank)
	upload.POST("/company", uploadHandler.UploadCompany)
	upload.POST("/company/corrected", uploadHandler.ResubmitCompany)

	recon := api.Group("/reconciliation")
	recon.GET("/pending", reconHandler.ListPending)
	recon.POST("/start", reconHandler.Start)
	recon.POST("/start-anomaly", reconHandler.StartAnomalyAware)
	recon.POST("/:id/confirm", reconHandler.Confirm)
	recon.POST("/:id/reject", reconHandler.Reject)
	recon.GET("/report", reconHandler.Report)

	api.GET("/cleanup", cleanupHandler.Handle)
}
