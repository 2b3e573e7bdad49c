package songs

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	db  DB
	rdb *redis.Client
}

func NewServer(db DB, rdb *redis.Client) *Server {
	return &Server{
		db:  db,
		rdb: rdb,
	}
}

func (s *Server) Router(middlewares ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "endpoint not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/", s.handleIndex)

	r.Route("/api", func(r chi.Router) {
		r.Get("/songs", s.handleListSongs)
		r.Get("/songs/search", s.handleSearchSongs)
		r.Get("/songs/{id}", s.handleGetSong)
		r.Put("/songs/{id}/rating", s.handleUpdateRating)
		r.Post("/songs/upload", s.handleUpload)
		r.Get("/stats", s.handleStats)
	})

	return r
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"message": "Song Library API is running",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"GET /api/songs":             "List songs with pagination",
			"GET /api/songs/{id}":        "Get song by ID",
			"GET /api/songs/search":      "Search songs by title",
			"PUT /api/songs/{id}/rating": "Update song rating",
			"POST /api/songs/upload":     "Upload pivoted JSON data",
			"GET /api/stats":             "Library statistics",
		},
	})
}
