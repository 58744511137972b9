package main

import (
	"log"
	"net/http"

	"github.com/ferreirogomes/recupera/config"
	"github.com/ferreirogomes/recupera/handlers"
	"github.com/ferreirogomes/recupera/services"
	"github.com/ferreirogomes/recupera/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Falha ao inicializar o logger: %v", err)
	}
	defer zapLogger.Sync()
	logger := zapLogger.Sugar()

	db, err := storage.NewDB(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalw("falha fatal ao conectar ao banco de dados e aplicar migrações", "erro", err)
	}
	defer db.Close()

	emailLog := storage.NewEmailLog(cfg.EmailLogPath)
	ollama := services.NewOllamaIntegrationService(cfg.OllamaURL, cfg.OllamaModel)

	ingestionService := services.NewIngestionService(db, logger)
	lifecycleService := services.NewLifecycleService(db)
	valuationService := services.NewValuationService(db, lifecycleService)
	assistantService := services.NewAssistantService(db, ollama, lifecycleService, emailLog, logger)

	assetHandler := handlers.NewAssetHandler(ingestionService, lifecycleService, valuationService, db)
	emailHandler := handlers.NewEmailHandler(assistantService)
	chatHandler := handlers.NewChatHandler(assistantService)
	dashboardHandler := handlers.NewDashboardHandler(db)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.URLFormat)

	r.Route("/api", func(r chi.Router) {
		r.Route("/assets", func(r chi.Router) {
			r.Post("/bulk_upload", assetHandler.BulkUpload)
			r.Post("/", assetHandler.CreateAsset)
			r.Get("/", assetHandler.ListAssets)
			r.Post("/{id}/flag_missing", assetHandler.FlagMissing)
			r.Post("/{id}/mark_recovered", assetHandler.MarkRecovered)
			r.Post("/{id}/estimate_value", assetHandler.EstimateValue)
			r.Post("/{id}/draft_email", emailHandler.DraftEmail)
			r.Post("/{id}/send_email", emailHandler.SendEmail)
		})
		r.Post("/chat", chatHandler.Chat)
		r.Get("/dashboard", dashboardHandler.Dashboard)
	})

	logger.Infow("servidor backend iniciado", "porta", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		logger.Fatalw("servidor encerrado com erro", "erro", err)
	}
}
