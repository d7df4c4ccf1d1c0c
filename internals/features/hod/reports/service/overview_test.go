package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"obehod_backend/internals/hodapi"
	"obehod_backend/internals/hodapi/hodapitest"
)

func TestLoadOverview(t *testing.T) {
	be := hodapitest.New(t)
	be.JSON("GET /hod/dashboard/stats", http.StatusOK, map[string]any{"stats": map[string]any{"totalProgrammes": 2, "totalCourses": 8}})
	be.JSON("GET /hod/assignments/stats", http.StatusOK, map[string]any{"data": map[string]any{"totalCourses": 8, "unassignedCourses": 3}})

	ov, err := LoadOverview(context.Background(), be.Client())
	require.NoError(t, err)
	assert.Equal(t, 2, ov.Stats.TotalProgrammes)
	require.NotNil(t, ov.Assignments)
	assert.Equal(t, float64(62), ov.Coverage)
	assert.Empty(t, ov.Warning)
}

func TestLoadOverview_AssignmentStatsOptional(t *testing.T) {
	be := hodapitest.New(t)
	be.JSON("GET /hod/dashboard/stats", http.StatusOK, map[string]any{"totalCourses": 8})
	be.JSON("GET /hod/assignments/stats", http.StatusBadGateway, map[string]any{"error": "stats offline"})

	ov, err := LoadOverview(context.Background(), be.Client())
	require.NoError(t, err)
	assert.Nil(t, ov.Assignments)
	assert.Equal(t, "stats offline", ov.Warning)
	assert.Zero(t, ov.Coverage)
}

func TestLoadOverview_StatsFailure(t *testing.T) {
	be := hodapitest.New(t)
	be.JSON("GET /hod/dashboard/stats", http.StatusInternalServerError, nil)
	be.JSON("GET /hod/assignments/stats", http.StatusOK, map[string]any{})

	_, err := LoadOverview(context.Background(), be.Client())
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, hodapi.StatusOf(err))
}

func TestCoverage(t *testing.T) {
	assert.Zero(t, Coverage(nil))
	assert.Zero(t, Coverage(&hodapi.AssignmentStats{}))
	assert.Equal(t, float64(100), Coverage(&hodapi.AssignmentStats{TotalCourses: 4}))
	assert.Zero(t, Coverage(&hodapi.AssignmentStats{TotalCourses: 4, UnassignedCourses: 9}))
}
