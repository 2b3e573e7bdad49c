package songs

import (
	"errors"
	"strconv"
)

// Document is the pivoted upload format: column name -> stringified row
// position -> raw cell value. Each column is a sparse, column-major slice
// of the table.
type Document map[string]map[string]string

// Record is one normalized row of a Document before it is persisted.
// Everything except the injected row position is optional.
type Record struct {
	Index            int
	ID               *string
	Title            *string
	Danceability     *float64
	Energy           *float64
	Loudness         *float64
	Acousticness     *float64
	Instrumentalness *float64
	Liveness         *float64
	Valence          *float64
	Tempo            *float64
	Key              *int
	Mode             *int
	TimeSignature    *int
	DurationMs       *int
	NumBars          *int
	NumSections      *int
	NumSegments      *int
	Class            *int
	StarRating       *int
}

var ErrEmptyDocument = errors.New("document has no columns")

// Normalize converts a pivoted document into row records. The row count is
// the widest column's cardinality, so columns with unequal lengths never
// change the result depending on which one happens to be visited first.
// Columns outside the song schema are dropped.
func Normalize(doc Document) ([]Record, error) {
	if len(doc) == 0 {
		return nil, ErrEmptyDocument
	}

	n := 0
	for _, col := range doc {
		if len(col) > n {
			n = len(col)
		}
	}

	records := make([]Record, 0, n)
	for i := 0; i < n; i++ {
		key := strconv.Itoa(i)
		records = append(records, Record{
			Index:            i,
			ID:               stringCell(doc, "id", key),
			Title:            stringCell(doc, "title", key),
			Danceability:     floatCell(doc, "danceability", key),
			Energy:           floatCell(doc, "energy", key),
			Loudness:         floatCell(doc, "loudness", key),
			Acousticness:     floatCell(doc, "acousticness", key),
			Instrumentalness: floatCell(doc, "instrumentalness", key),
			Liveness:         floatCell(doc, "liveness", key),
			Valence:          floatCell(doc, "valence", key),
			Tempo:            floatCell(doc, "tempo", key),
			Key:              intCell(doc, "key", key),
			Mode:             intCell(doc, "mode", key),
			TimeSignature:    intCell(doc, "time_signature", key),
			DurationMs:       intCell(doc, "duration_ms", key),
			NumBars:          intCell(doc, "num_bars", key),
			NumSections:      intCell(doc, "num_sections", key),
			NumSegments:      intCell(doc, "num_segments", key),
			Class:            intCell(doc, "class", key),
			StarRating:       ratingCell(doc, "star_rating", key),
		})
	}
	return records, nil
}

func stringCell(doc Document, column, key string) *string {
	raw, ok := doc[column][key]
	if !ok || raw == "" {
		return nil
	}
	return &raw
}

// intCell and floatCell turn malformed numerics into NULL instead of
// aborting the load; the record count is never affected by bad cells.
func intCell(doc Document, column, key string) *int {
	raw, ok := doc[column][key]
	if !ok || raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}

// ratingCell enforces the 0..5 star range on ingest; out-of-range ratings
// are treated like any other bad cell and fall back to the column default.
func ratingCell(doc Document, column, key string) *int {
	n := intCell(doc, column, key)
	if n != nil && validateRating(*n) != nil {
		return nil
	}
	return n
}

func floatCell(doc Document, column, key string) *float64 {
	raw, ok := doc[column][key]
	if !ok || raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &f
}
