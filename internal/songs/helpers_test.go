package songs

import (
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

func setupMockServer(t *testing.T) (*Server, pgxmock.PgxPoolIface) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return NewServer(mock, nil), mock
}

func ptr[T any](v T) *T { return &v }

// anyArgs returns n AnyArg matchers for expectations whose exact argument
// values the test does not care about; pgxmock requires the argument count
// to match even when the values are irrelevant.
func anyArgs(n int) []any {
	args := make([]any, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

var songColumnNames = []string{
	"index", "id", "title", "danceability", "energy", "loudness",
	"acousticness", "instrumentalness", "liveness", "valence", "tempo",
	"key", "mode", "time_signature", "duration_ms", "num_bars",
	"num_sections", "num_segments", "class", "star_rating",
	"created_at", "updated_at",
}

func songRows() *pgxmock.Rows {
	return pgxmock.NewRows(songColumnNames)
}

// addSong appends a row with the columns the tests care about; every other
// attribute stays NULL.
func addSong(rows *pgxmock.Rows, index int, id, title string, tempo *float64, rating int) *pgxmock.Rows {
	now := time.Now()
	return rows.AddRow(
		index, id, ptr(title), nil, nil, nil,
		nil, nil, nil, nil, tempo,
		nil, nil, nil, nil, nil,
		nil, nil, nil, rating,
		now, now,
	)
}
