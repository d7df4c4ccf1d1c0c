package service

import (
	"context"
	"sort"

	"obehod_backend/internals/hodapi"
)

// WorkloadView is the read-only workload of one faculty member.
type WorkloadView struct {
	FacultyID    hodapi.ID                `json:"faculty_id"`
	Faculty      *hodapi.Faculty          `json:"faculty,omitempty"`
	Year         int                      `json:"year,omitempty"`
	Summary      []hodapi.WorkloadSummary `json:"summary"`
	Assignments  []hodapi.WorkloadDetail  `json:"assignments"`
	TotalCredits int                      `json:"total_credits"`
	TotalCourses int                      `json:"total_courses"`
}

// LoadWorkload fetches the workload of facultyID, optionally narrowed to
// one year. Summary rows are ordered by year then semester.
func LoadWorkload(ctx context.Context, api *hodapi.Client, facultyID hodapi.ID, year int) (WorkloadView, error) {
	res, err := api.Assignments.Workload(ctx, facultyID, year)
	if err != nil {
		return WorkloadView{}, err
	}

	w := res.Data
	v := WorkloadView{
		FacultyID:   facultyID,
		Faculty:     w.Faculty,
		Year:        year,
		Summary:     w.Summary,
		Assignments: w.Assignments,
	}
	if !w.FacultyID.IsZero() {
		v.FacultyID = w.FacultyID
	}

	sort.SliceStable(v.Summary, func(i, j int) bool {
		if v.Summary[i].Year != v.Summary[j].Year {
			return v.Summary[i].Year < v.Summary[j].Year
		}
		return v.Summary[i].Semester < v.Summary[j].Semester
	})

	if len(v.Summary) > 0 {
		for _, s := range v.Summary {
			v.TotalCredits += s.TotalCredits
			v.TotalCourses += s.CourseCount
		}
	} else {
		for _, d := range v.Assignments {
			v.TotalCredits += d.Credits
		}
		v.TotalCourses = len(v.Assignments)
	}
	return v, nil
}
