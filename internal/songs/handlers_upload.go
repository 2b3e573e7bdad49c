package songs

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
)

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var doc Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be a pivoted JSON document")
		return
	}

	records, err := Normalize(doc)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	inserted, err := Load(ctx, s.db, records, defaultBatchSize)
	if err != nil {
		log.Printf("song-service: upload: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load songs")
		return
	}

	s.publishEvent(ctx, "songs.uploaded", map[string]any{
		"inserted_count": inserted,
		"record_count":   len(records),
	})

	writeJSON(w, http.StatusCreated, map[string]any{
		"status":         "success",
		"message":        fmt.Sprintf("successfully uploaded %d songs", inserted),
		"inserted_count": inserted,
	})
}
