package songs

import (
	"context"
	"log"
)

func AutoMigrate(ctx context.Context, db DB) error {
	_, err := db.Exec(ctx, `
      CREATE TABLE IF NOT EXISTS songs (
          id               TEXT PRIMARY KEY,
          "index"          INT NOT NULL DEFAULT 0,
          title            TEXT,
          danceability     DOUBLE PRECISION,
          energy           DOUBLE PRECISION,
          loudness         DOUBLE PRECISION,
          acousticness     DOUBLE PRECISION,
          instrumentalness DOUBLE PRECISION,
          liveness         DOUBLE PRECISION,
          valence          DOUBLE PRECISION,
          tempo            DOUBLE PRECISION,
          key              INT,
          mode             INT,
          time_signature   INT,
          duration_ms      INT,
          num_bars         INT,
          num_sections     INT,
          num_segments     INT,
          class            INT,
          star_rating      INT NOT NULL DEFAULT 0 CHECK (star_rating BETWEEN 0 AND 5),
          created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
          updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
      )
    `)
	if err != nil {
		log.Printf("song-service: migrate songs: %v", err)
		return err
	}

	if _, err := db.Exec(ctx, `
      CREATE INDEX IF NOT EXISTS idx_songs_title ON songs (lower(title))
    `); err != nil {
		return err
	}

	return nil
}
