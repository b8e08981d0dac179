package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/talitapaixao/terapia-com-deus-api/pkg/response"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Get home route
	r.Get("/", s.ServerIsWorking)

	r.Route("/terapia-api/v1", func(r chi.Router) {
		s.loadDevotionalRoutes(r)
		s.loadJournalRoutes(r)
		s.loadChatRoutes(r)
		s.loadViewRoutes(r)
	})
	r.Get("/terapia-api/v1", s.ServerIsWorking)

	return r
}

func (s *Server) ServerIsWorking(w http.ResponseWriter, r *http.Request) {
	resp := make(map[string]string)
	resp["message"] = "Welcome to Terapia com Deus api"
	response.Success(w, resp, "Success")
}

func (s *Server) loadDevotionalRoutes(router chi.Router) {
	router.Get("/devotional/daily", s.devotionalHandler.GetDailyHandler)
	router.Get("/devotional/topics", s.devotionalHandler.GetTopicsHandler)
	router.Post("/devotional/topic", s.devotionalHandler.GenerateTopicHandler)
	router.Post("/devotional/narrate", s.devotionalHandler.NarrateHandler)
	router.Post("/devotional/share", s.devotionalHandler.ShareHandler)

	router.Get("/notifications", s.devotionalHandler.GetNotificationsHandler)
	router.Put("/notifications", s.devotionalHandler.SetNotificationsHandler)

	router.Group(func(r chi.Router) {
		r.Use(AdminMiddleware(s.cfg.AdminToken))
		r.Post("/admin/regenerate", s.devotionalHandler.RegenerateHandler)
	})
}

func (s *Server) loadJournalRoutes(router chi.Router) {
	router.Get("/notes", s.journalHandler.ListNotesHandler)
	router.Post("/notes", s.journalHandler.SaveNoteHandler)
	router.Delete("/notes/{id}", s.journalHandler.DeleteNoteHandler)
}

func (s *Server) loadChatRoutes(router chi.Router) {
	router.Post("/chat/message", s.chatHandler.SendMessageHandler)
}

func (s *Server) loadViewRoutes(router chi.Router) {
	router.Get("/view", s.viewHandler.GetViewHandler)
	router.Put("/view", s.viewHandler.NavigateHandler)
	router.Put("/view/loading", s.viewHandler.SetLoadingHandler)
}
