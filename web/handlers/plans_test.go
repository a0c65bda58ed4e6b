package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solacehq/solace/pkg/types"
	"github.com/solacehq/solace/web/handlers"
)

func TestPlanGenerateAndFetch(t *testing.T) {
	fx := newFixture(t)
	h := handlers.NewPlanHandlers(fx.store, fx.engine, true)

	w := doJSON(t, h.Generate, http.MethodPost, "/api/plans", nil, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	plan := decodeBody[types.WeeklyPlan](t, w)
	assert.NotEmpty(t, plan.ID)
	assert.Equal(t, testUser, plan.UserID)
	require.GreaterOrEqual(t, len(plan.Exercises), 2)
	require.LessOrEqual(t, len(plan.Exercises), 6)
	for _, ex := range plan.Exercises {
		assert.GreaterOrEqual(t, ex.DurationMinutes, types.MinExerciseMinutes)
		assert.LessOrEqual(t, ex.DurationMinutes, types.MaxExerciseMinutes)
		assert.False(t, ex.Completed)
	}

	w = doJSON(t, h.Get, http.MethodGet, "/api/plans/"+plan.ID, nil, map[string]string{"id": plan.ID})
	require.Equal(t, http.StatusOK, w.Code)
	fetched := decodeBody[types.WeeklyPlan](t, w)
	assert.Equal(t, plan.ID, fetched.ID)
	assert.Len(t, fetched.Exercises, len(plan.Exercises))
}

func TestPlanDisabledGenerationRejected(t *testing.T) {
	fx := newFixture(t)
	h := handlers.NewPlanHandlers(fx.store, fx.engine, false)

	w := doJSON(t, h.Generate, http.MethodPost, "/api/plans", nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	// Reads still work while generation is off.
	w = doJSON(t, h.List, http.MethodGet, "/api/plans", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPlanExerciseCompletion(t *testing.T) {
	fx := newFixture(t)
	h := handlers.NewPlanHandlers(fx.store, fx.engine, true)

	w := doJSON(t, h.Generate, http.MethodPost, "/api/plans", nil, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	plan := decodeBody[types.WeeklyPlan](t, w)
	exerciseID := plan.Exercises[0].ID

	w = doJSON(t, h.SetExerciseCompleted, http.MethodPatch, "/api/plans/exercises/"+exerciseID,
		map[string]bool{"completed": true}, map[string]string{"id": exerciseID})
	require.Equal(t, http.StatusOK, w.Code)

	stored, err := fx.store.GetPlan(context.Background(), testUser, plan.ID)
	require.NoError(t, err)
	assert.True(t, stored.Exercises[0].Completed)
}

func TestPlanExerciseCompletionUnknownID(t *testing.T) {
	fx := newFixture(t)
	h := handlers.NewPlanHandlers(fx.store, fx.engine, true)

	w := doJSON(t, h.SetExerciseCompleted, http.MethodPatch, "/api/plans/exercises/missing",
		map[string]bool{"completed": true}, map[string]string{"id": "missing"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
