package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vhybzOS/vibe-search/internal/search"
	"github.com/vhybzOS/vibe-search/internal/store"
)

func TestParseDateRange(t *testing.T) {
	t.Run("empty bounds", func(t *testing.T) {
		dr, err := parseDateRange("", "")
		require.NoError(t, err)
		assert.Nil(t, dr)
	})

	t.Run("since only", func(t *testing.T) {
		dr, err := parseDateRange("2026-01-15", "")
		require.NoError(t, err)
		require.NotNil(t, dr.Start)
		assert.Nil(t, dr.End)

		want := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC).UnixMilli()
		assert.Equal(t, want, *dr.Start)
	})

	t.Run("until covers the whole day", func(t *testing.T) {
		dr, err := parseDateRange("", "2026-01-15")
		require.NoError(t, err)
		require.NotNil(t, dr.End)

		endOfDay := time.Date(2026, 1, 16, 0, 0, 0, 0, time.UTC).UnixMilli() - 1
		assert.Equal(t, endOfDay, *dr.End)
	})

	t.Run("invalid date", func(t *testing.T) {
		_, err := parseDateRange("not-a-date", "")
		assert.Error(t, err)
	})
}

func TestBuildRequest(t *testing.T) {
	req, err := buildRequest("error handling", searchOptions{
		limit:    5,
		offset:   10,
		docType:  "diary",
		tags:     []string{"backend"},
		priority: "high",
		category: "arch",
		mode:     "hybrid",
	})

	require.NoError(t, err)
	assert.Equal(t, "error handling", req.Term)
	assert.Equal(t, 5, req.Limit)
	assert.Equal(t, 10, req.Offset)
	assert.Equal(t, search.ModeHybrid, req.Mode)
	assert.Equal(t, store.DocTypeDiary, req.Filters.DocType)
	assert.Equal(t, store.PriorityHigh, req.Filters.Priority)
	assert.Equal(t, []string{"backend"}, req.Filters.Tags)
	assert.Equal(t, "arch", req.Filters.Category)
	assert.Nil(t, req.Filters.DateRange)
}
