package songs

import (
	"log"
	"net/http"
	"strconv"
)

type LibraryStats struct {
	TotalSongs          int            `json:"total_songs"`
	AverageDanceability float64        `json:"average_danceability"`
	AverageEnergy       float64        `json:"average_energy"`
	AverageTempo        float64        `json:"average_tempo"`
	AverageDurationMs   float64        `json:"average_duration_ms"`
	MinDurationMs       *int           `json:"min_duration_ms"`
	MaxDurationMs       *int           `json:"max_duration_ms"`
	RatingDistribution  map[string]int `json:"rating_distribution"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats := LibraryStats{RatingDistribution: map[string]int{}}

	var avgDance, avgEnergy, avgTempo, avgDuration *float64
	err := s.db.QueryRow(ctx, `
		SELECT COUNT(*),
		       AVG(danceability), AVG(energy), AVG(tempo), AVG(duration_ms),
		       MIN(duration_ms), MAX(duration_ms)
		FROM songs
	`).Scan(
		&stats.TotalSongs,
		&avgDance, &avgEnergy, &avgTempo, &avgDuration,
		&stats.MinDurationMs, &stats.MaxDurationMs,
	)
	if err != nil {
		log.Printf("song-service: stats aggregates: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	stats.AverageDanceability = floatOrZero(avgDance)
	stats.AverageEnergy = floatOrZero(avgEnergy)
	stats.AverageTempo = floatOrZero(avgTempo)
	stats.AverageDurationMs = floatOrZero(avgDuration)

	rows, err := s.db.Query(ctx, `
		SELECT star_rating, COUNT(*) FROM songs GROUP BY star_rating
	`)
	if err != nil {
		log.Printf("song-service: stats distribution: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	defer rows.Close()

	for rows.Next() {
		var rating, count int
		if err := rows.Scan(&rating, &count); err != nil {
			log.Printf("song-service: stats distribution scan: %v", err)
			writeError(w, http.StatusInternalServerError, "database error")
			return
		}
		stats.RatingDistribution[strconv.Itoa(rating)] = count
	}
	if err := rows.Err(); err != nil {
		log.Printf("song-service: stats distribution rows: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	writeData(w, http.StatusOK, stats)
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
