package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solacehq/solace/pkg/types"
	"github.com/solacehq/solace/web/handlers"
)

func TestCheckInCreateDefaultsToToday(t *testing.T) {
	fx := newFixture(t)
	h := handlers.NewCheckInHandlers(fx.store)

	w := doJSON(t, h.Create, http.MethodPost, "/api/checkins", map[string]any{
		"mood_rating": 7,
		"note":        "Decent day overall.",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	checkIn := decodeBody[types.DailyCheckIn](t, w)
	assert.Equal(t, time.Now().Format("2006-01-02"), checkIn.Date)
	assert.Equal(t, 7, checkIn.MoodRating)
}

func TestCheckInCreateValidatesRating(t *testing.T) {
	fx := newFixture(t)
	h := handlers.NewCheckInHandlers(fx.store)

	for _, rating := range []int{0, 11, -3} {
		w := doJSON(t, h.Create, http.MethodPost, "/api/checkins", map[string]any{
			"mood_rating": rating,
		}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, "rating %d should be rejected", rating)
	}
}

func TestCheckInCreateValidatesDate(t *testing.T) {
	fx := newFixture(t)
	h := handlers.NewCheckInHandlers(fx.store)

	w := doJSON(t, h.Create, http.MethodPost, "/api/checkins", map[string]any{
		"mood_rating": 5,
		"date":        "31/12/2026",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckInListRange(t *testing.T) {
	fx := newFixture(t)
	h := handlers.NewCheckInHandlers(fx.store)

	for _, date := range []string{"2026-08-01", "2026-08-10", "2026-08-20"} {
		w := doJSON(t, h.Create, http.MethodPost, "/api/checkins", map[string]any{
			"mood_rating": 6,
			"date":        date,
		}, nil)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(t, h.List, http.MethodGet, "/api/checkins?from=2026-08-05&to=2026-08-15", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	checkIns := decodeBody[[]*types.DailyCheckIn](t, w)
	require.Len(t, checkIns, 1)
	assert.Equal(t, "2026-08-10", checkIns[0].Date)
}
