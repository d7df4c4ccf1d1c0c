// file: internals/features/hod/assignment_dashboard/service/dashboard.go
package service

import (
	"context"
	"log"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"obehod_backend/internals/features/hod/viewstate"
	"obehod_backend/internals/hodapi"
)

/* ============================================
   Filters
============================================ */

const (
	ParityEven = "even"
	ParityOdd  = "odd"
)

// Filters of the department dashboard. Year, Semester, FacultyID and
// CourseID are sent to the backend; SemesterType is applied afterwards.
// Page and Limit are not filters. They are forwarded only as a pair.
type Filters struct {
	Year         int       `json:"year,omitempty" query:"year"`
	Semester     int       `json:"semester,omitempty" query:"semester"`
	SemesterType string    `json:"semester_type,omitempty" query:"semesterType"`
	FacultyID    hodapi.ID `json:"faculty_id,omitempty" query:"facultyId"`
	CourseID     hodapi.ID `json:"course_id,omitempty" query:"courseId"`
	Page         int       `json:"page,omitempty" query:"-"`
	Limit        int       `json:"limit,omitempty" query:"-"`
}

// Normalize trims ids and drops an unknown parity.
func (f Filters) Normalize() Filters {
	f.FacultyID = hodapi.ID(strings.TrimSpace(f.FacultyID.String()))
	f.CourseID = hodapi.ID(strings.TrimSpace(f.CourseID.String()))
	f.SemesterType = strings.ToLower(strings.TrimSpace(f.SemesterType))
	if f.SemesterType != ParityEven && f.SemesterType != ParityOdd {
		f.SemesterType = ""
	}
	if f.Year < 0 {
		f.Year = 0
	}
	if f.Semester < 0 {
		f.Semester = 0
	}
	// paging is all or nothing
	if f.Page <= 0 || f.Limit <= 0 {
		f.Page, f.Limit = 0, 0
	}
	return f
}

func (f Filters) upstream() hodapi.AssignmentFilter {
	return hodapi.AssignmentFilter{
		Year:      f.Year,
		Semester:  f.Semester,
		FacultyID: f.FacultyID,
		CourseID:  f.CourseID,
		Page:      f.Page,
		Limit:     f.Limit,
	}
}

func (f Filters) Any() bool {
	return len(f.Chips()) > 0
}

// Chip is one removable active filter.
type Chip struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

func (f Filters) Chips() []Chip {
	out := []Chip{}
	if f.Year > 0 {
		out = append(out, Chip{Key: "year", Label: "Year: " + strconv.Itoa(f.Year)})
	}
	if f.Semester > 0 {
		out = append(out, Chip{Key: "semester", Label: "Semester " + strconv.Itoa(f.Semester)})
	}
	switch f.SemesterType {
	case ParityEven:
		out = append(out, Chip{Key: "semesterType", Label: "Even semesters"})
	case ParityOdd:
		out = append(out, Chip{Key: "semesterType", Label: "Odd semesters"})
	}
	if !f.FacultyID.IsZero() {
		out = append(out, Chip{Key: "facultyId", Label: "Faculty: " + f.FacultyID.String()})
	}
	if !f.CourseID.IsZero() {
		out = append(out, Chip{Key: "courseId", Label: "Course: " + f.CourseID.String()})
	}
	return out
}

// Without returns f with the filter named by key cleared and paging reset.
func (f Filters) Without(key string) Filters {
	f.Page, f.Limit = 0, 0
	switch key {
	case "year":
		f.Year = 0
	case "semester":
		f.Semester = 0
	case "semesterType", "semester_type":
		f.SemesterType = ""
	case "facultyId", "faculty_id":
		f.FacultyID = ""
	case "courseId", "course_id":
		f.CourseID = ""
	}
	return f
}

// FilterParity keeps assignments whose semester matches parity. An empty
// parity keeps everything.
func FilterParity(in []hodapi.Assignment, parity string) []hodapi.Assignment {
	out := make([]hodapi.Assignment, 0, len(in))
	for _, a := range in {
		switch parity {
		case ParityEven:
			if a.Semester%2 != 0 {
				continue
			}
		case ParityOdd:
			if a.Semester%2 == 0 {
				continue
			}
		}
		out = append(out, a)
	}
	return out
}

/* ============================================
   View state
============================================ */

const (
	StateReady     = "ready"
	StateEmpty     = "empty"
	StateNoResults = "no_results"
	StateError     = "error"

	ActionRetry        = "retry"
	ActionClearFilters = "clear_filters"
)

type View struct {
	Filters       Filters                 `json:"filters"`
	ActiveFilters []Chip                  `json:"active_filters"`
	Assignments   []hodapi.Assignment     `json:"assignments"`
	Stats         *hodapi.AssignmentStats `json:"stats"`
	State         string                  `json:"state"`
	Action        string                  `json:"action,omitempty"`
	Error         string                  `json:"error,omitempty"`
	StatsError    string                  `json:"stats_error,omitempty"`
}

func (v View) clone() View {
	out := v
	out.Assignments = append([]hodapi.Assignment{}, v.Assignments...)
	out.ActiveFilters = append([]Chip{}, v.ActiveFilters...)
	if v.Stats != nil {
		s := *v.Stats
		out.Stats = &s
	}
	return out
}

/* ============================================
   Dashboard
============================================ */

// Dashboard is the department-wide assignment listing with summary stats.
type Dashboard struct {
	api   *hodapi.Client
	guard viewstate.Guard
	view  View
}

func New(api *hodapi.Client) *Dashboard {
	return &Dashboard{api: api, view: View{State: StateEmpty}}
}

func (d *Dashboard) View() View {
	var out View
	d.guard.Do(func() { out = d.view.clone() })
	return out
}

func (d *Dashboard) Close() { d.guard.Close() }

// Load fetches the filtered assignment list and the stats concurrently.
func (d *Dashboard) Load(ctx context.Context, f Filters) View {
	f = f.Normalize()
	d.guard.Do(func() {
		d.view.Filters = f
		d.view.ActiveFilters = f.Chips()
	})

	var g errgroup.Group
	g.Go(func() error { d.loadList(ctx, f); return nil })
	g.Go(func() error { d.loadStats(ctx); return nil })
	_ = g.Wait()
	return d.View()
}

// Retry reloads with the current filters.
func (d *Dashboard) Retry(ctx context.Context) View {
	return d.Load(ctx, d.View().Filters)
}

// RemoveFilter drops one active filter and reloads.
func (d *Dashboard) RemoveFilter(ctx context.Context, key string) View {
	return d.Load(ctx, d.View().Filters.Without(key))
}

// ClearFilters drops every filter and reloads.
func (d *Dashboard) ClearFilters(ctx context.Context) View {
	return d.Load(ctx, Filters{})
}

func (d *Dashboard) loadList(ctx context.Context, f Filters) {
	t := d.guard.Begin("list")

	res, err := d.api.Assignments.Department(ctx, f.upstream())
	if err != nil && hodapi.IsNotFound(err) {
		res.Data, err = []hodapi.Assignment{}, nil
	}

	d.guard.Commit(t, func() {
		if err != nil {
			d.view.Assignments = []hodapi.Assignment{}
			d.view.State = StateError
			d.view.Action = ActionRetry
			d.view.Error = hodapi.Message(err, "Failed to load assignments")
			return
		}

		list := FilterParity(res.Data, f.SemesterType)
		d.view.Assignments = list
		d.view.Error = ""
		switch {
		case len(list) > 0:
			d.view.State, d.view.Action = StateReady, ""
		case f.Any():
			d.view.State, d.view.Action = StateNoResults, ActionClearFilters
		default:
			d.view.State, d.view.Action = StateEmpty, ""
		}
	})
}

func (d *Dashboard) loadStats(ctx context.Context) {
	t := d.guard.Begin("stats")

	res, err := d.api.Assignments.Stats(ctx)
	d.guard.Commit(t, func() {
		if err != nil {
			log.Printf("[DASHBOARD] stats failed: %v", err)
			d.view.Stats = nil
			d.view.StatsError = hodapi.Message(err, "Failed to load statistics")
			return
		}
		stats := res.Data
		d.view.Stats = &stats
		d.view.StatsError = ""
	})
}
