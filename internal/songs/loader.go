package songs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5"
)

const defaultBatchSize = 100

var ErrMalformedDocument = errors.New("malformed song document")

const insertSongSQL = `
	INSERT INTO songs (
		id, "index", title, danceability, energy, loudness, acousticness,
		instrumentalness, liveness, valence, tempo, key, mode, time_signature,
		duration_ms, num_bars, num_sections, num_segments, class, star_rating
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		$11, $12, $13, $14, $15, $16, $17, $18, $19, COALESCE($20, 0)
	)`

const updateSongSQL = `
	UPDATE songs SET
		"index" = $2, title = $3, danceability = $4, energy = $5,
		loudness = $6, acousticness = $7, instrumentalness = $8,
		liveness = $9, valence = $10, tempo = $11, key = $12, mode = $13,
		time_signature = $14, duration_ms = $15, num_bars = $16,
		num_sections = $17, num_segments = $18, class = $19,
		star_rating = COALESCE($20, 0), updated_at = now()
	WHERE id = $1`

// Load upserts records into the songs table in row order, committing in
// batches. A failed batch rolls back and aborts the load; batches committed
// before it stay persisted. Returns the number of newly created rows.
func Load(ctx context.Context, db DB, records []Record, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	inserted := 0
	for start := 0; start < len(records); start += batchSize {
		end := start + batchSize
		if end > len(records) {
			end = len(records)
		}
		n, err := loadBatch(ctx, db, records[start:end])
		if err != nil {
			return inserted, err
		}
		inserted += n
	}
	return inserted, nil
}

func loadBatch(ctx context.Context, db DB, batch []Record) (int, error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin batch: %w", err)
	}

	inserted := 0
	for _, rec := range batch {
		args := songArgs(rec)

		var existing string
		err := tx.QueryRow(ctx, `SELECT id FROM songs WHERE id = $1`, rec.ID).Scan(&existing)
		switch {
		case err == nil:
			if _, err := tx.Exec(ctx, updateSongSQL, args...); err != nil {
				_ = tx.Rollback(ctx)
				return 0, fmt.Errorf("update song: %w", err)
			}
		case errors.Is(err, pgx.ErrNoRows):
			if _, err := tx.Exec(ctx, insertSongSQL, args...); err != nil {
				_ = tx.Rollback(ctx)
				return 0, fmt.Errorf("insert song: %w", err)
			}
			inserted++
		default:
			_ = tx.Rollback(ctx)
			return 0, fmt.Errorf("lookup song: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit batch: %w", err)
	}
	return inserted, nil
}

// songArgs lines up with the $1..$20 placeholders shared by the insert and
// update statements.
func songArgs(rec Record) []any {
	return []any{
		rec.ID,
		rec.Index,
		rec.Title,
		rec.Danceability,
		rec.Energy,
		rec.Loudness,
		rec.Acousticness,
		rec.Instrumentalness,
		rec.Liveness,
		rec.Valence,
		rec.Tempo,
		rec.Key,
		rec.Mode,
		rec.TimeSignature,
		rec.DurationMs,
		rec.NumBars,
		rec.NumSections,
		rec.NumSegments,
		rec.Class,
		rec.StarRating,
	}
}

// ProcessFile reads a pivoted JSON document from disk and loads it.
// Used at startup to seed an empty database.
func ProcessFile(ctx context.Context, db DB, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	records, err := Normalize(doc)
	if err != nil {
		return 0, err
	}

	log.Printf("song-service: loading %d records from %s", len(records), path)
	return Load(ctx, db, records, defaultBatchSize)
}
