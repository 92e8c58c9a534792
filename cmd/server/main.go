package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mnakagawa/kakei/internal/auth"
	"github.com/mnakagawa/kakei/internal/config"
	"github.com/mnakagawa/kakei/internal/middleware"
	"github.com/mnakagawa/kakei/internal/service"
	"github.com/mnakagawa/kakei/internal/storage"
	"github.com/mnakagawa/kakei/internal/storage/csvstore"
	"github.com/mnakagawa/kakei/internal/storage/pgstore"
	"github.com/mnakagawa/kakei/internal/storage/sqlitestore"
	"github.com/mnakagawa/kakei/pkg/logging"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	logging.Setup()

	cfg, err := config.Load(getEnv("KAKEI_CONFIG", "kakei.yaml"))
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	store, err := openStore(cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "driver", cfg.Storage.Driver)

	pins, err := auth.NewPINAuthenticator(cfg.PINHash)
	if err != nil {
		slog.Error("Failed to load PIN hash", "error", err)
		os.Exit(1)
	}
	sessions := auth.NewSessionManager(cfg.JWTSecret, cfg.SessionTimeout())

	authSvc := service.NewAuthService(pins, sessions)
	ledgerSvc := service.NewLedgerService(store, cfg.Participants[0], cfg.Participants[1])
	assetSvc := service.NewAssetService(store, cfg.AssetCategories)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/login", authSvc.Login)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Everything else under /api/ requires a live session.
	secured := http.NewServeMux()
	secured.HandleFunc("GET /api/expenses", ledgerSvc.ListExpenses)
	secured.HandleFunc("POST /api/expenses", ledgerSvc.AddExpense)
	secured.HandleFunc("GET /api/settlements", ledgerSvc.ListSettlements)
	secured.HandleFunc("POST /api/settlements", ledgerSvc.Settle)
	secured.HandleFunc("GET /api/assets", assetSvc.ListSnapshots)
	secured.HandleFunc("POST /api/assets", assetSvc.CreateSnapshot)
	mux.Handle("/api/", middleware.RequireAuth(sessions)(secured))

	// Serve the form frontend when configured.
	if cfg.StaticDir != "" {
		slog.Info("Serving static files", "path", cfg.StaticDir)
		mux.Handle("/", http.FileServer(http.Dir(cfg.StaticDir)))
	}

	handler := middleware.Logging(middleware.Metrics(middleware.CORS(mux)))

	// h2c lets clients speak HTTP/2 without TLS behind the reverse proxy.
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	slog.Info("Server starting", "address", cfg.ListenAddr, "url", fmt.Sprintf("http://localhost%s", cfg.ListenAddr))
	if err := http.ListenAndServe(cfg.ListenAddr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func openStore(cfg *config.Config) (storage.RowStore, error) {
	tables := []storage.Table{
		storage.LedgerTable(),
		storage.SettlementTable(),
		storage.AssetTable(cfg.AssetCategories),
	}
	switch cfg.Storage.Driver {
	case config.DriverCSV:
		return csvstore.New(cfg.Storage.CSVDir)
	case config.DriverSQLite:
		return sqlitestore.New(cfg.Storage.SQLitePath, tables...)
	case config.DriverPostgres:
		return pgstore.New(cfg.Storage.PostgresDSN, tables...)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
