package songs

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleUpdateRating(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	var body struct {
		Rating *int `json:"rating"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "rating must be an integer")
		return
	}
	if body.Rating == nil {
		writeError(w, http.StatusBadRequest, "rating is required in request body")
		return
	}
	if err := validateRating(*body.Rating); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	tag, err := s.db.Exec(ctx,
		`UPDATE songs SET star_rating = $1, updated_at = now() WHERE id = $2`,
		*body.Rating, id)
	if err != nil {
		log.Printf("song-service: update rating %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	if tag.RowsAffected() == 0 {
		writeError(w, http.StatusNotFound, fmt.Sprintf("song with id %s not found", id))
		return
	}

	song, err := s.findSongByID(ctx, id)
	if err != nil {
		log.Printf("song-service: reload song %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	s.publishEvent(ctx, "rating.updated", map[string]any{
		"id":     id,
		"rating": *body.Rating,
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"message": "rating updated",
		"data":    song,
	})
}
