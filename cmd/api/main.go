package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/glucoamigo/backend/internal/config"
	"github.com/glucoamigo/backend/internal/handler"
	"github.com/glucoamigo/backend/internal/model/mission"
	"github.com/glucoamigo/backend/internal/service/ai"
	chatservice "github.com/glucoamigo/backend/internal/service/chat"
	missionservice "github.com/glucoamigo/backend/internal/service/mission"
	"github.com/glucoamigo/backend/internal/storage/conversation"
	"github.com/glucoamigo/backend/internal/storage/local"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Conversation gateway: Postgres when configured, in-memory otherwise.
	var gateway conversation.Gateway
	if cfg.Database.URL != "" {
		db, err := sql.Open("postgres", cfg.Database.URL)
		if err != nil {
			log.Fatalf("failed to open database: %v", err)
		}
		if err := db.PingContext(ctx); err != nil {
			log.Fatalf("failed to reach database: %v", err)
		}
		defer db.Close()
		runMigrations(cfg.Database.URL)
		gateway = conversation.NewPostgresGateway(db)
		log.Println("conversation gateway backed by Postgres")
	} else {
		gateway = conversation.NewMemoryGateway()
		log.Println("DATABASE_URL not set, conversations held in memory only")
	}

	// Remote model. Without credentials the companion still runs and
	// every turn gets the canned fallback reply.
	var responder chatservice.Responder
	if cfg.AI.Enabled() {
		aiService, err := ai.NewService(ctx, cfg.AI)
		if err != nil {
			log.Printf("warning: failed to initialize AI service: %v", err)
			log.Println("continuing without model access, replies will use the fallback sentence")
		} else {
			responder = aiService
			log.Println("AI service initialized successfully")
		}
	} else {
		log.Println("model credentials not configured, replies will use the fallback sentence")
	}

	chatSvc := chatservice.NewService(gateway, responder)

	localStore, err := local.NewStore(cfg.Missions.DataDir)
	if err != nil {
		log.Fatalf("failed to open local store: %v", err)
	}
	missions := missionservice.NewSelector(localStore, mission.Catalog())

	router := handler.NewRouter(chatSvc, missions)

	startServer(ctx, cfg.Server, router)
}

func runMigrations(databaseURL string) {
	m, err := migrate.New("file://migrations", databaseURL)
	if err != nil {
		log.Printf("migration init failed: %v", err)
		return
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Printf("migration up failed: %v", err)
		return
	}
	log.Println("migrations applied")
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Gluco Amigo backend listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
