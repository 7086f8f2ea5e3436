package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/ZORO-69-max/MyXpenseAPP-sub001/docs"
	"github.com/ZORO-69-max/MyXpenseAPP-sub001/internal/config"
	"github.com/ZORO-69-max/MyXpenseAPP-sub001/internal/database"
	"github.com/ZORO-69-max/MyXpenseAPP-sub001/internal/group"
	"github.com/ZORO-69-max/MyXpenseAPP-sub001/internal/ledger"
	"github.com/ZORO-69-max/MyXpenseAPP-sub001/internal/ledger/split"
	"github.com/ZORO-69-max/MyXpenseAPP-sub001/internal/report"
	"github.com/ZORO-69-max/MyXpenseAPP-sub001/internal/settle"
	mw "github.com/ZORO-69-max/MyXpenseAPP-sub001/pkg/middleware"
)

// @title           Xpense Ledger API
// @version         1.0
// @description     Group expense ledger with a minimum-transaction settlement engine.
// @BasePath        /api/v1
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg := config.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	// Initialize database connection
	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		logger.Error("Failed to apply migrations", "error", err)
		os.Exit(1)
	}

	logger.Info("Connected to database")

	// Split Strategy Factory (Factory Pattern)
	splitFactory := split.NewSplitStrategyFactory()

	// Group feature (groups + participant directory)
	groupRepo := group.NewRepository(db)
	groupService := group.NewService(groupRepo)
	groupHandler := group.NewHandler(groupService)

	// Ledger feature (events, with split factory injected)
	ledgerRepo := ledger.NewRepository(db)
	ledgerService := ledger.NewService(ledgerRepo, splitFactory)
	ledgerHandler := ledger.NewHandler(ledgerService)

	// Settlement engine
	engine := settle.NewEngine(logger.With("component", "settle"))
	settleService := settle.NewService(groupRepo, ledgerRepo, engine)
	settleHandler := settle.NewHandler(settleService)

	// Reports (breakdown + shareable narrative)
	reportService := report.NewService(settleService, engine)
	reportHandler := report.NewHandler(reportService)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(mw.ViewerMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/groups", groupHandler.Routes())
		r.Mount("/events", ledgerHandler.Routes())
		r.Mount("/settlements", settleHandler.Routes())
		r.Mount("/reports", reportHandler.Routes())
	})

	logger.Info("Server starting", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
