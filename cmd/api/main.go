package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sltavares/estoqueGo/internal/config"
	"github.com/sltavares/estoqueGo/pkg/inventory"
	"github.com/sltavares/estoqueGo/pkg/inventory/spreadsheet"
	"github.com/sltavares/estoqueGo/pkg/inventory/storage"
)

func main() {
	// Configuração
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("falha ao carregar configuração:", err)
	}

	// Log estruturado
	logger, err := buildLogger(cfg.Logging)
	if err != nil {
		log.Fatal("falha ao inicializar log:", err)
	}
	defer logger.Sync()

	// Conexão com o banco
	store, err := storage.NewPostgreSQLStorage(cfg.DSN(), logger)
	if err != nil {
		logger.Fatal("falha ao conectar ao banco de dados", zap.Error(err))
	}
	defer store.Close()

	// Gerenciadores de domínio
	ledger := inventory.NewLedger(store, logger)
	catalog := inventory.NewCatalog(store, logger)
	registry := inventory.NewRegistry(store, logger)
	orders := inventory.NewOrderBook(store, logger)
	dashboard := inventory.NewDashboard(store, logger)
	trace := inventory.NewTraceManager(store, logger)
	importer := spreadsheet.NewImporter(store, catalog, orders, registry, logger, cfg.Import.Actor)
	exporter := spreadsheet.NewExporter(store, catalog, logger)

	handlers := NewHandlers(ledger, catalog, registry, orders, dashboard, trace, importer, exporter, store, logger)
	router := setupRouter(handlers, cfg.API)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.API.Port),
		Handler:      router,
		ReadTimeout:  cfg.API.ReadTimeout,
		WriteTimeout: cfg.API.WriteTimeout,
		IdleTimeout:  cfg.API.IdleTimeout,
	}

	// Encerramento gracioso
	go func() {
		logger.Info("servidor da API de estoque iniciado", zap.Int("port", cfg.API.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("falha ao iniciar o servidor", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("encerrando o servidor...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("falha no encerramento do servidor", zap.Error(err))
	}

	logger.Info("servidor encerrado")
}

// buildLogger builds the zap logger from the logging configuration
// Monta o logger zap a partir da configuração de log
func buildLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("nível de log inválido: %w", err)
	}

	zapCfg := zap.NewProductionConfig()
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	if cfg.Output != "" && cfg.Output != "stdout" {
		zapCfg.OutputPaths = []string{cfg.Output}
	}

	return zapCfg.Build()
}

// setupRouter sets up the HTTP routes
// Configura as rotas HTTP
func setupRouter(handlers *Handlers, apiCfg config.APIConfig) *mux.Router {
	router := mux.NewRouter()

	// Saúde e métricas
	router.HandleFunc("/health", handlers.HealthCheck).Methods("GET")
	if apiCfg.EnableMetrics {
		router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	}

	// Rotas da API v1
	api := router.PathPrefix("/api/v1").Subrouter()

	// Catálogo
	api.HandleFunc("/items", handlers.CreateItem).Methods("POST")
	api.HandleFunc("/items", handlers.ListItems).Methods("GET")
	api.HandleFunc("/items/search", handlers.SearchItems).Methods("GET")
	api.HandleFunc("/items/{itemId}", handlers.GetItem).Methods("GET")
	api.HandleFunc("/items/{itemId}", handlers.UpdateItem).Methods("PUT")
	api.HandleFunc("/items/{itemId}", handlers.DeleteItem).Methods("DELETE")
	api.HandleFunc("/items/{itemId}/total", handlers.GetTotalQuantity).Methods("GET")
	api.HandleFunc("/items/{itemId}/timeline", handlers.GetItemTimeline).Methods("GET")

	// Equivalências
	api.HandleFunc("/items/{itemId}/equivalents", handlers.GetEquivalents).Methods("GET")
	api.HandleFunc("/items/{itemId}/equivalents", handlers.AddEquivalence).Methods("POST")
	api.HandleFunc("/items/{itemId}/equivalents/{equivalentId}", handlers.RemoveEquivalence).Methods("DELETE")

	// OMs e localizações
	api.HandleFunc("/sites", handlers.CreateSite).Methods("POST")
	api.HandleFunc("/sites", handlers.ListSites).Methods("GET")
	api.HandleFunc("/sites/{siteId}/locations", handlers.ListSiteLocations).Methods("GET")
	api.HandleFunc("/locations", handlers.CreateLocation).Methods("POST")

	// Estoque e movimentações
	api.HandleFunc("/stock", handlers.ListStock).Methods("GET")
	api.HandleFunc("/stock/inflow", handlers.RegisterInflow).Methods("POST")
	api.HandleFunc("/stock/outflow", handlers.RegisterOutflow).Methods("POST")
	api.HandleFunc("/stock/expiring", handlers.GetExpiringStock).Methods("GET")
	api.HandleFunc("/stock/expired", handlers.GetExpiredStock).Methods("GET")
	api.HandleFunc("/stock/{stockId}", handlers.GetStock).Methods("GET")
	api.HandleFunc("/stock/{stockId}/add", handlers.AddToStock).Methods("POST")
	api.HandleFunc("/stock/{stockId}/trace", handlers.GetUnitTrace).Methods("GET")
	api.HandleFunc("/movements/inflows", handlers.ListInflows).Methods("GET")
	api.HandleFunc("/movements/outflows", handlers.ListOutflows).Methods("GET")

	// Pedidos
	api.HandleFunc("/orders", handlers.CreateOrder).Methods("POST")
	api.HandleFunc("/orders", handlers.ListOrders).Methods("GET")
	api.HandleFunc("/orders/{orderId}", handlers.GetOrder).Methods("GET")
	api.HandleFunc("/orders/{orderId}", handlers.UpdateOrder).Methods("PUT")
	api.HandleFunc("/orders/{orderId}/items", handlers.ListOrderItems).Methods("GET")
	api.HandleFunc("/orders/{orderId}/items", handlers.AddOrderItem).Methods("POST")
	api.HandleFunc("/orders/{orderId}/stats", handlers.GetOrderStatistics).Methods("GET")
	api.HandleFunc("/orders/{orderId}/export", handlers.ExportOrder).Methods("GET")
	api.HandleFunc("/order-items/{lineId}", handlers.UpdateOrderItem).Methods("PUT")

	// Importações de planilha
	api.HandleFunc("/import/orders", handlers.ImportOrders).Methods("POST")
	api.HandleFunc("/import/contract", handlers.ImportContractOrders).Methods("POST")
	api.HandleFunc("/import/kanban", handlers.ImportKanban).Methods("POST")

	// Painel e frota
	api.HandleFunc("/dashboard", handlers.GetDashboard).Methods("GET")
	api.HandleFunc("/aircraft", handlers.ListAircraft).Methods("GET")

	// CORS (desenvolvimento)
	if apiCfg.EnableCORS {
		router.Use(corsMiddleware)
	}

	router.Use(loggingMiddleware(handlers.logger))

	return router
}

// corsMiddleware allows cross origin requests
// Libera requisições de outras origens
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs HTTP requests
// Registra as requisições HTTP
func loggingMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			logger.Info("requisição HTTP",
				zap.String("method", r.Method),
				zap.String("url", r.URL.Path),
				zap.String("remote_addr", r.RemoteAddr),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
