package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/talitapaixao/terapia-com-deus-api/internal/chat"
	"github.com/talitapaixao/terapia-com-deus-api/internal/database"
	"github.com/talitapaixao/terapia-com-deus-api/internal/devotional"
	"github.com/talitapaixao/terapia-com-deus-api/internal/journal"
	"github.com/talitapaixao/terapia-com-deus-api/internal/narration"
	"github.com/talitapaixao/terapia-com-deus-api/internal/view"
	"github.com/talitapaixao/terapia-com-deus-api/pkg/config"
)

type Server struct {
	port    string
	db      database.Service
	cfg     *config.Config
	handler http.Handler

	devotionalService *devotional.Service
	devotionalHandler devotional.Handler
	journalHandler    journal.Handler
	chatHandler       chat.Handler
	viewHandler       view.Handler

	cancel context.CancelFunc
}

// NewServer constructs the app server with all dependencies injected.
func NewServer(db database.Service, cfg *config.Config) (*Server, error) {
	stats := db.Health()
	fmt.Println("Database Health:", stats)

	if stats["status"] != "up" {
		return nil, fmt.Errorf("database connection failed: %s", stats["error"])
	}
	log.Println("Database connection successful")

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid reference timezone %q: %w", cfg.Timezone, err)
	}

	repo := devotional.NewRepository(db)
	if err := repo.EnsureSchema(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	cache, err := devotional.NewCache(cfg.DataDir, loc)
	if err != nil {
		return nil, err
	}

	generator := devotional.NewOpenAIGenerator(cfg)

	var narrator devotional.Narrator
	if cfg.ElevenLabsAPIKey != "" {
		narrator = narration.NewClient(cfg.ElevenLabsBaseURL, cfg.ElevenLabsAPIKey, cfg.ElevenLabsVoiceID)
	} else {
		log.Println("ELEVEN_LABS_API_KEY not set, narration disabled")
	}

	var audio devotional.AudioStore
	if cfg.AudioAccessKeyID != "" {
		store, err := narration.NewStore(narration.StoreOptions{
			Bucket:          cfg.AudioBucket,
			Region:          cfg.AudioRegion,
			AccessKeyID:     cfg.AudioAccessKeyID,
			SecretAccessKey: cfg.AudioSecretKey,
			Endpoint:        cfg.AudioEndpoint,
			CustomDomain:    cfg.AudioCustomDomain,
		})
		if err != nil {
			return nil, err
		}
		audio = store
	} else {
		log.Println("AUDIO_ACCESS_KEY_ID not set, shared narration assets disabled")
	}

	devotionalService := devotional.NewService(repo, cache, generator, narrator, audio, loc)

	notesStore, err := journal.NewStore(cfg.DataDir, loc)
	if err != nil {
		return nil, err
	}

	s := &Server{
		port: cfg.Port,
		db:   db,
		cfg:  cfg,

		devotionalService: devotionalService,
		devotionalHandler: devotional.NewHandler(devotionalService, cache),
		journalHandler:    journal.NewHandler(notesStore),
		chatHandler:       chat.NewHandler(chat.NewClient(cfg)),
		viewHandler:       view.NewHandler(view.NewTracker()),
	}

	s.handler = s.RegisterRoutes()
	return s, nil
}

// HTTPServer returns the actual *http.Server instance
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%s", s.port),
		Handler:      s.handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// StartBackgroundJobs runs scheduled jobs
func (s *Server) StartBackgroundJobs() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	go s.devotionalService.StartScheduler(ctx)
	log.Println("Devotional pre-generation scheduler started")
}

func (s *Server) StopBackgroundJobs() {
	if s.cancel != nil {
		s.cancel()
		log.Println("Background jobs stopped gracefully")
	}
}
