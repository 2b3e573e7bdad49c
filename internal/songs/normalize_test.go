package songs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	doc := Document{
		"id":    {"0": "a", "1": "b"},
		"title": {"0": "S1", "1": "S2"},
	}

	records, err := Normalize(doc)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, 0, records[0].Index)
	assert.Equal(t, "a", *records[0].ID)
	assert.Equal(t, "S1", *records[0].Title)

	assert.Equal(t, 1, records[1].Index)
	assert.Equal(t, "b", *records[1].ID)
	assert.Equal(t, "S2", *records[1].Title)
}

func TestNormalizeEmptyDocument(t *testing.T) {
	_, err := Normalize(Document{})
	assert.ErrorIs(t, err, ErrEmptyDocument)

	_, err = Normalize(nil)
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestNormalizeCoercion(t *testing.T) {
	doc := Document{
		"id":          {"0": "a", "1": "b", "2": "c"},
		"tempo":       {"0": "120.5", "1": "", "2": "abc"},
		"duration_ms": {"0": "200000", "1": "12.7", "2": "fast"},
		"star_rating": {"0": "4", "2": "7"},
	}

	records, err := Normalize(doc)
	require.NoError(t, err)
	require.Len(t, records, 3)

	require.NotNil(t, records[0].Tempo)
	assert.Equal(t, 120.5, *records[0].Tempo)
	assert.Nil(t, records[1].Tempo, "empty string becomes NULL")
	assert.Nil(t, records[2].Tempo, "unparseable float becomes NULL")

	require.NotNil(t, records[0].DurationMs)
	assert.Equal(t, 200000, *records[0].DurationMs)
	assert.Nil(t, records[1].DurationMs, "fractional value is not an integer")
	assert.Nil(t, records[2].DurationMs)

	require.NotNil(t, records[0].StarRating)
	assert.Equal(t, 4, *records[0].StarRating)
	assert.Nil(t, records[1].StarRating)
	assert.Nil(t, records[2].StarRating, "out-of-range ratings are dropped")
}

func TestNormalizeMissingCells(t *testing.T) {
	doc := Document{
		"id":    {"0": "a", "1": "b"},
		"title": {"0": "only first"},
	}

	records, err := Normalize(doc)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "only first", *records[0].Title)
	assert.Nil(t, records[1].Title)
}

func TestNormalizeRowCountUsesWidestColumn(t *testing.T) {
	doc := Document{
		"title": {"0": "S1"},
		"id":    {"0": "a", "1": "b", "2": "c"},
	}

	records, err := Normalize(doc)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestNormalizeDropsUnknownColumns(t *testing.T) {
	doc := Document{
		"id":        {"0": "a"},
		"playcount": {"0": "999"},
	}

	records, err := Normalize(doc)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "a", *records[0].ID)
}
