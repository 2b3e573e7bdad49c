package songs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// Song is one row of the songs table. Audio features and musical attributes
// are pointers because source documents may omit them or carry unparseable
// values; an absent value stays NULL all the way through.
type Song struct {
	Index            int       `json:"index"`
	ID               string    `json:"id"`
	Title            *string   `json:"title"`
	Danceability     *float64  `json:"danceability"`
	Energy           *float64  `json:"energy"`
	Loudness         *float64  `json:"loudness"`
	Acousticness     *float64  `json:"acousticness"`
	Instrumentalness *float64  `json:"instrumentalness"`
	Liveness         *float64  `json:"liveness"`
	Valence          *float64  `json:"valence"`
	Tempo            *float64  `json:"tempo"`
	Key              *int      `json:"key"`
	Mode             *int      `json:"mode"`
	TimeSignature    *int      `json:"time_signature"`
	DurationMs       *int      `json:"duration_ms"`
	NumBars          *int      `json:"num_bars"`
	NumSections      *int      `json:"num_sections"`
	NumSegments      *int      `json:"num_segments"`
	Class            *int      `json:"class"`
	StarRating       int       `json:"star_rating"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

var ErrSongNotFound = errors.New("song not found")

// songColumns is the canonical select list; scanSong expects this order.
// "index" is quoted because it is an SQL keyword.
const songColumns = `"index", id, title, danceability, energy, loudness,
	acousticness, instrumentalness, liveness, valence, tempo,
	key, mode, time_signature, duration_ms, num_bars, num_sections,
	num_segments, class, star_rating, created_at, updated_at`

func validateRating(rating int) error {
	if rating < 0 || rating > 5 {
		return fmt.Errorf("rating must be between 0 and 5, got %d", rating)
	}
	return nil
}

func scanSong(row pgx.Row) (Song, error) {
	var s Song
	err := row.Scan(
		&s.Index,
		&s.ID,
		&s.Title,
		&s.Danceability,
		&s.Energy,
		&s.Loudness,
		&s.Acousticness,
		&s.Instrumentalness,
		&s.Liveness,
		&s.Valence,
		&s.Tempo,
		&s.Key,
		&s.Mode,
		&s.TimeSignature,
		&s.DurationMs,
		&s.NumBars,
		&s.NumSections,
		&s.NumSegments,
		&s.Class,
		&s.StarRating,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	return s, err
}

func scanSongs(rows pgx.Rows) ([]Song, error) {
	list := []Song{}
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, song)
	}
	return list, rows.Err()
}

func (s *Server) findSongByID(ctx context.Context, id string) (Song, error) {
	row := s.db.QueryRow(ctx, `SELECT `+songColumns+` FROM songs WHERE id = $1`, id)
	song, err := scanSong(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Song{}, ErrSongNotFound
	}
	return song, err
}
