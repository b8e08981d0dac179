package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/talitapaixao/terapia-com-deus-api/internal/database"
	"github.com/talitapaixao/terapia-com-deus-api/internal/server"
	"github.com/talitapaixao/terapia-com-deus-api/pkg/config"
)

func main() {
	cfg := config.LoadConfig()

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	srv, err := server.NewServer(db, cfg)
	if err != nil {
		log.Fatalf("failed to initialize server: %v", err)
	}

	srv.StartBackgroundJobs()

	httpServer := srv.HTTPServer()
	go func() {
		log.Printf("Server listening on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	srv.StopBackgroundJobs()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}

	log.Println("Server stopped gracefully")
}
