package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cinegraph/cinegraph-api/internal/config"
	neo4jpkg "github.com/cinegraph/cinegraph-api/internal/neo4j"
	"github.com/cinegraph/cinegraph-api/internal/resilience"
	"github.com/cinegraph/cinegraph-api/internal/usecase/recommend"
)

// App owns the process lifecycle of the HTTP API: dependency wiring,
// serving, and graceful shutdown.
type App struct {
	cfg        *config.Config
	httpServer *http.Server
}

func New(cfg *config.Config) *App {
	return &App{cfg: cfg}
}

func (a *App) Run() error {
	ctx := context.Background()

	// ==========================================
	// Initialize Dependencies (Dependency Injection)
	// ==========================================

	graphClient, err := neo4jpkg.NewClient(ctx, a.cfg.Neo4jURI, a.cfg.Neo4jUser, a.cfg.Neo4jPassword)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := graphClient.Close(ctx); closeErr != nil {
			log.Printf("[Warning] Failed to close graph store: %v", closeErr)
		}
	}()

	// Circuit breaker in front of the graph store
	breaker := resilience.NewCircuitBreaker(a.cfg.BreakerThreshold, a.cfg.BreakerCooldown)
	store := resilience.NewGuardedStore(graphClient, breaker)

	weights := recommend.Weights{Genre: a.cfg.GenreWeight, Cast: a.cfg.CastWeight}
	recommender := recommend.NewRecommender(store, weights, a.cfg.DefaultLimit)

	// ==========================================
	// Initialize and Start HTTP Server
	// ==========================================

	apiServer := NewServer(store, recommender, a.cfg.RequestTimeout)
	handler := apiServer.RegisterRoutes()

	a.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", a.cfg.HTTPPort),
		Handler: handler,
	}

	// Listen for shutdown signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		log.Printf("[System] 🌐 Starting REST API Server on :%d", a.cfg.HTTPPort)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[Error] HTTP server failed: %v", err)
		}
	}()

	<-stop
	log.Println("[System] 🛑 Shutdown signal received. Draining connections...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("[Error] HTTP shutdown error: %v", err)
	}

	log.Println("[System] ✅ Server stopped gracefully.")
	return nil
}
