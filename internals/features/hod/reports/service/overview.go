package service

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"obehod_backend/internals/hodapi"
)

// Overview is the HOD landing summary: department counters plus the
// assignment counters, loaded together.
type Overview struct {
	Stats       hodapi.DashboardStats   `json:"stats"`
	Assignments *hodapi.AssignmentStats `json:"assignments"`
	Coverage    float64                 `json:"coverage"`
	Warning     string                  `json:"warning,omitempty"`
}

// LoadOverview fails only when the dashboard counters fail. Missing
// assignment counters leave a warning.
func LoadOverview(ctx context.Context, api *hodapi.Client) (Overview, error) {
	var (
		out      Overview
		statsErr error
	)
	var g errgroup.Group
	g.Go(func() error {
		res, err := api.DashboardStats(ctx)
		out.Stats, statsErr = res.Data, err
		return nil
	})
	g.Go(func() error {
		res, err := api.Assignments.Stats(ctx)
		if err != nil {
			log.Printf("[REPORTS] assignment stats failed: %v", err)
			out.Warning = hodapi.Message(err, "Assignment statistics unavailable")
			return nil
		}
		st := res.Data
		out.Assignments = &st
		return nil
	})
	_ = g.Wait()
	if statsErr != nil {
		return Overview{}, statsErr
	}
	out.Coverage = Coverage(out.Assignments)
	return out, nil
}

// Coverage is the share of courses with at least one assignment, in percent
// rounded down to a whole number.
func Coverage(st *hodapi.AssignmentStats) float64 {
	if st == nil || st.TotalCourses <= 0 {
		return 0
	}
	assigned := st.TotalCourses - st.UnassignedCourses
	if assigned < 0 {
		assigned = 0
	}
	return float64(assigned * 100 / st.TotalCourses)
}
