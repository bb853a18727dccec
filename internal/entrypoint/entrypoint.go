package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"librarium/internal/auth"
	"librarium/internal/books"
	"librarium/internal/config"
	"librarium/internal/database"
	booksrepo "librarium/internal/database/books"
	usersrepo "librarium/internal/database/users"
	http_controllers "librarium/internal/http"
	"librarium/internal/weather"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until an interrupt arrives, then shuts down
// gracefully within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// Run wires the application together and serves it. The database decision
// (primary vs embedded fallback) happens exactly once, here, and the
// resulting handle is injected into every request-scoped component.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting Librarium v%s", version)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	tokenService, err := auth.NewTokenService(cfg.Auth)
	if err != nil {
		log.Fatalf("Failed to initialize token service: %v", err)
	}

	revocations := auth.NewRevocationStore(db.DB)
	purgeCron, err := revocations.StartPurgeSchedule(cfg.Auth.CleanupSchedule)
	if err != nil {
		log.Fatalf("Failed to start revoked token cleanup: %v", err)
	}

	authService := auth.NewService(usersrepo.NewRepository(db.DB), cfg.Auth)
	bookService := books.NewService(booksrepo.NewRepository(db.DB))

	if cfg.Weather.APIKey == "" {
		log.Printf("WARNING: RapidAPI key is not set. Weather endpoints will fail upstream. Set 'RAPIDAPI_KEY' environment variable to enable.")
	}
	weatherClient := weather.NewClient(cfg.Weather)

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Database:      db,
		AuthService:   authService,
		TokenService:  tokenService,
		Revocations:   revocations,
		BookService:   bookService,
		WeatherClient: weatherClient,
		Version:       version,
	})

	onShutdown := func(ctx context.Context) {
		cronCtx := purgeCron.Stop()
		select {
		case <-cronCtx.Done():
		case <-ctx.Done():
		}
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}

	Serve(router, cfg, onShutdown)
}
