package songs

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// sortColumns whitelists sort_by values and maps them to SQL identifiers.
var sortColumns = map[string]string{
	"index":        `"index"`,
	"id":           "id",
	"title":        "title",
	"danceability": "danceability",
	"energy":       "energy",
	"tempo":        "tempo",
	"duration_ms":  "duration_ms",
	"star_rating":  "star_rating",
	"created_at":   "created_at",
}

type pagination struct {
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	TotalPages int  `json:"total_pages"`
	TotalItems int  `json:"total_items"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

func (s *Server) handleListSongs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	page, err := queryInt(q.Get("page"), 1)
	if err != nil || page < 1 {
		writeError(w, http.StatusBadRequest, "page must be an integer >= 1")
		return
	}

	perPage, err := queryInt(q.Get("per_page"), defaultPageSize)
	if err != nil || perPage < 1 || perPage > maxPageSize {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("per_page must be between 1 and %d", maxPageSize))
		return
	}

	sortBy := q.Get("sort_by")
	if sortBy == "" {
		sortBy = "index"
	}
	column, ok := sortColumns[sortBy]
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid sort_by column")
		return
	}

	order := strings.ToLower(q.Get("order"))
	if order == "" {
		order = "asc"
	}
	if order != "asc" && order != "desc" {
		writeError(w, http.StatusBadRequest, `order must be "asc" or "desc"`)
		return
	}

	var total int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM songs`).Scan(&total); err != nil {
		log.Printf("song-service: count songs: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	query := fmt.Sprintf(
		`SELECT %s FROM songs ORDER BY %s %s LIMIT $1 OFFSET $2`,
		songColumns, column, strings.ToUpper(order),
	)
	rows, err := s.db.Query(ctx, query, perPage, (page-1)*perPage)
	if err != nil {
		log.Printf("song-service: list songs: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	defer rows.Close()

	list, err := scanSongs(rows)
	if err != nil {
		log.Printf("song-service: list songs scan: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + perPage - 1) / perPage
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"data":   list,
		"pagination": pagination{
			Page:       page,
			PerPage:    perPage,
			TotalPages: totalPages,
			TotalItems: total,
			HasNext:    page < totalPages,
			HasPrev:    page > 1,
		},
	})
}

func (s *Server) handleGetSong(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	song, err := s.findSongByID(ctx, id)
	if errors.Is(err, ErrSongNotFound) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("song with id %s not found", id))
		return
	}
	if err != nil {
		log.Printf("song-service: get song %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	writeData(w, http.StatusOK, song)
}

func (s *Server) handleSearchSongs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	title := r.URL.Query().Get("title")
	if title == "" {
		writeError(w, http.StatusBadRequest, "title parameter is required")
		return
	}
	exact := strings.EqualFold(r.URL.Query().Get("exact"), "true")

	var (
		rows pgx.Rows
		err  error
	)
	if exact {
		rows, err = s.db.Query(ctx,
			`SELECT `+songColumns+` FROM songs WHERE title = $1 ORDER BY "index"`, title)
	} else {
		rows, err = s.db.Query(ctx,
			`SELECT `+songColumns+` FROM songs WHERE title ILIKE '%' || $1 || '%' ORDER BY "index"`, title)
	}
	if err != nil {
		log.Printf("song-service: search songs: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	defer rows.Close()

	list, err := scanSongs(rows)
	if err != nil {
		log.Printf("song-service: search songs scan: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"data":   list,
		"count":  len(list),
	})
}

func queryInt(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
