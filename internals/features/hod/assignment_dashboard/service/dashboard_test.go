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

const (
	routeList  = "GET /hod/assignments"
	routeStats = "GET /hod/assignments/stats"
)

func semesters(in []hodapi.Assignment) []int {
	out := make([]int, 0, len(in))
	for _, a := range in {
		out = append(out, a.Semester)
	}
	return out
}

func TestFilterParity(t *testing.T) {
	in := []hodapi.Assignment{{Semester: 2}, {Semester: 3}, {Semester: 4}, {Semester: 5}}

	assert.Equal(t, []int{2, 4}, semesters(FilterParity(in, ParityEven)))
	assert.Equal(t, []int{3, 5}, semesters(FilterParity(in, ParityOdd)))
	assert.Equal(t, []int{2, 3, 4, 5}, semesters(FilterParity(in, "")))
}

func TestDashboard_EvenParityAfterServerFilters(t *testing.T) {
	be := hodapitest.New(t)
	be.JSON(routeList, http.StatusOK, map[string]any{"data": map[string]any{"assignments": []map[string]any{
		{"courseId": "c1", "facultyId": "f1", "semester": 2, "year": 2025},
		{"courseId": "c2", "facultyId": "f1", "semester": 3, "year": 2025},
		{"courseId": "c3", "facultyId": "f2", "semester": 4, "year": 2025},
		{"courseId": "c4", "facultyId": "f2", "semester": 5, "year": 2025},
	}}})
	be.JSON(routeStats, http.StatusOK, map[string]any{"stats": map[string]any{"totalAssignments": 4, "totalFaculty": 2}})

	v := New(be.Client()).Load(context.Background(), Filters{Year: 2025, SemesterType: "EVEN"})

	assert.Equal(t, []int{2, 4}, semesters(v.Assignments))
	assert.Equal(t, StateReady, v.State)
	require.NotNil(t, v.Stats)
	assert.Equal(t, 4, v.Stats.TotalAssignments)

	reqs := be.Requests()
	for _, r := range reqs {
		if r.Path == "/hod/assignments" {
			assert.Equal(t, "year=2025", r.Query)
		}
	}
	assert.Equal(t, []Chip{
		{Key: "year", Label: "Year: 2025"},
		{Key: "semesterType", Label: "Even semesters"},
	}, v.ActiveFilters)
}

func TestDashboard_EmptyStates(t *testing.T) {
	be := hodapitest.New(t)
	be.JSON(routeList, http.StatusOK, []any{})
	be.JSON(routeStats, http.StatusOK, map[string]any{})

	d := New(be.Client())

	v := d.Load(context.Background(), Filters{})
	assert.Equal(t, StateEmpty, v.State)
	assert.Empty(t, v.Action)

	v = d.Load(context.Background(), Filters{Semester: 3})
	assert.Equal(t, StateNoResults, v.State)
	assert.Equal(t, ActionClearFilters, v.Action)

	v = d.ClearFilters(context.Background())
	assert.Equal(t, StateEmpty, v.State)
	assert.Empty(t, v.ActiveFilters)
}

func TestDashboard_ErrorOffersRetry(t *testing.T) {
	be := hodapitest.New(t)
	be.JSON(routeList, http.StatusInternalServerError, map[string]any{"message": "Service unavailable"})
	be.JSON(routeStats, http.StatusOK, map[string]any{"totalAssignments": 0})

	d := New(be.Client())
	v := d.Load(context.Background(), Filters{Year: 2025})

	assert.Equal(t, StateError, v.State)
	assert.Equal(t, ActionRetry, v.Action)
	assert.Equal(t, "Service unavailable", v.Error)
	assert.Empty(t, v.Assignments)

	d.Retry(context.Background())
	assert.Equal(t, 2, be.Calls(routeList))
}

func TestDashboard_RemoveFilterReloads(t *testing.T) {
	be := hodapitest.New(t)
	be.JSON(routeList, http.StatusOK, []map[string]any{{"courseId": "c1", "facultyId": "f1", "semester": 1, "year": 2024}})
	be.JSON(routeStats, http.StatusOK, map[string]any{})

	d := New(be.Client())
	d.Load(context.Background(), Filters{Year: 2024, FacultyID: " f1 "})
	v := d.RemoveFilter(context.Background(), "facultyId")

	assert.Equal(t, Filters{Year: 2024}, v.Filters)
	reqs := be.Requests()
	var queries []string
	for _, r := range reqs {
		if r.Path == "/hod/assignments" {
			queries = append(queries, r.Query)
		}
	}
	assert.Equal(t, []string{"facultyId=f1&year=2024", "year=2024"}, queries)
}

func TestDashboard_StatsFailureDoesNotBlockList(t *testing.T) {
	be := hodapitest.New(t)
	be.JSON(routeList, http.StatusOK, []map[string]any{{"courseId": "c1", "facultyId": "f1", "semester": 1, "year": 2024}})
	be.JSON(routeStats, http.StatusBadGateway, nil)

	v := New(be.Client()).Load(context.Background(), Filters{})

	assert.Equal(t, StateReady, v.State)
	assert.Nil(t, v.Stats)
	assert.Equal(t, "Failed to load statistics", v.StatsError)
}

func TestDashboard_PagingIsForwardedAndResetOnFilterChange(t *testing.T) {
	be := hodapitest.New(t)
	be.JSON(routeList, http.StatusOK, []any{})
	be.JSON(routeStats, http.StatusOK, map[string]any{})

	d := New(be.Client())
	v := d.Load(context.Background(), Filters{Year: 2025, FacultyID: "f1", Page: 2, Limit: 10})
	require.Len(t, v.ActiveFilters, 2)
	assert.Equal(t, "year", v.ActiveFilters[0].Key)
	assert.Equal(t, "facultyId", v.ActiveFilters[1].Key)

	v = d.RemoveFilter(context.Background(), "facultyId")
	assert.Zero(t, v.Filters.Page)
	assert.Zero(t, v.Filters.Limit)
	d.ClearFilters(context.Background())

	assert.Equal(t, []string{"facultyId=f1&limit=10&page=2&year=2025", "year=2025", ""}, listQueries(be))
}

func TestFilters_PagingIsAllOrNothing(t *testing.T) {
	cases := []struct {
		name        string
		in          Filters
		page, limit int
	}{
		{"both set", Filters{Page: 3, Limit: 10}, 3, 10},
		{"limit without page", Filters{Limit: 10}, 0, 0},
		{"page without limit", Filters{Page: 2}, 0, 0},
		{"negative page", Filters{Page: -1, Limit: 10}, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.Normalize()
			assert.Equal(t, tc.page, got.Page)
			assert.Equal(t, tc.limit, got.Limit)
		})
	}
}

func TestDashboard_LimitWithoutPageIsNotForwarded(t *testing.T) {
	be := hodapitest.New(t)
	be.JSON(routeList, http.StatusOK, []any{})
	be.JSON(routeStats, http.StatusOK, map[string]any{})

	New(be.Client()).Load(context.Background(), Filters{Year: 2025, Limit: 10})

	assert.Equal(t, []string{"year=2025"}, listQueries(be))
}

func listQueries(be *hodapitest.Backend) []string {
	var out []string
	for _, r := range be.Requests() {
		if r.Path == "/hod/assignments" {
			out = append(out, r.Query)
		}
	}
	return out
}
