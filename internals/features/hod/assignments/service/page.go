// file: internals/features/hod/assignments/service/page.go
package service

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"obehod_backend/internals/features/hod/viewstate"
	helper "obehod_backend/internals/helpers"
	"obehod_backend/internals/hodapi"
)

/* ============================================
   View state
============================================ */

type View struct {
	CourseID         hodapi.ID           `json:"course_id"`
	Course           *hodapi.Course      `json:"course"`
	Semester         int                 `json:"semester"`
	Year             int                 `json:"year"`
	Assignments      []hodapi.Assignment `json:"assignments"`
	Faculty          []hodapi.Faculty    `json:"faculty"`
	Available        []hodapi.Faculty    `json:"available_faculty"`
	AvailableEnabled bool                `json:"available_enabled"`
	CreateOpen       bool                `json:"create_open"`
	FieldErrors      helper.FieldErrors  `json:"field_errors,omitempty"`

	// Error is the inline banner of the assignment list.
	Error string `json:"error,omitempty"`
	// Alerts are the blocking notifications raised by other loads and
	// mutations, oldest first.
	Alerts []string `json:"alerts,omitempty"`
	Notice string   `json:"notice,omitempty"`
}

func (v View) clone() View {
	out := v
	out.Assignments = append([]hodapi.Assignment(nil), v.Assignments...)
	out.Faculty = append([]hodapi.Faculty(nil), v.Faculty...)
	out.Available = append([]hodapi.Faculty(nil), v.Available...)
	out.Alerts = append([]string(nil), v.Alerts...)
	if v.FieldErrors != nil {
		out.FieldErrors = helper.FieldErrors{}
		for k, m := range v.FieldErrors {
			out.FieldErrors[k] = m
		}
	}
	if out.Assignments == nil {
		out.Assignments = []hodapi.Assignment{}
	}
	if out.Faculty == nil {
		out.Faculty = []hodapi.Faculty{}
	}
	if out.Available == nil {
		out.Available = []hodapi.Faculty{}
	}
	return out
}

/* ============================================
   Page
============================================ */

// Page manages the faculty assignments of one course.
type Page struct {
	api      *hodapi.Client
	courseID hodapi.ID

	guard viewstate.Guard
	view  View
}

func NewPage(api *hodapi.Client, courseID hodapi.ID, semester, year int) *Page {
	return &Page{
		api:      api,
		courseID: courseID,
		view: View{
			CourseID:         courseID,
			Semester:         semester,
			Year:             year,
			AvailableEnabled: semester > 0 && year > 0,
		},
	}
}

// View returns a copy of the current view state.
func (p *Page) View() View {
	var out View
	p.guard.Do(func() { out = p.view.clone() })
	return out
}

// Close marks the page unmounted; responses still in flight are dropped.
func (p *Page) Close() { p.guard.Close() }

func (p *Page) term() (int, int) {
	var sem, yr int
	p.guard.Do(func() { sem, yr = p.view.Semester, p.view.Year })
	return sem, yr
}

func (p *Page) alert(msg string) {
	p.guard.Do(func() { p.view.Alerts = append(p.view.Alerts, msg) })
}

// Mount loads course detail, the term's assignments and the faculty roster
// concurrently, plus available faculty when a term is selected.
func (p *Page) Mount(ctx context.Context) View {
	var g errgroup.Group
	g.Go(func() error { p.loadCourse(ctx); return nil })
	g.Go(func() error { p.loadAssignments(ctx); return nil })
	g.Go(func() error { p.loadFaculty(ctx); return nil })
	g.Go(func() error { p.loadAvailable(ctx); return nil })
	_ = g.Wait()
	return p.View()
}

// SelectTerm changes the semester/year selection and reloads what depends
// on it. Available faculty stay disabled until both are set.
func (p *Page) SelectTerm(ctx context.Context, semester, year int) View {
	p.guard.Do(func() {
		p.view.Semester = semester
		p.view.Year = year
	})

	p.refresh(ctx, true)
	return p.View()
}

/* ============================================
   Loads
============================================ */

func (p *Page) loadCourse(ctx context.Context) {
	t := p.guard.Begin("course")

	res, err := p.api.Courses.Get(ctx, p.courseID)
	if err == nil && !res.Data.ID.IsZero() {
		course := res.Data
		p.guard.Commit(t, func() { p.view.Course = &course })
		return
	}
	if err != nil {
		log.Printf("[ASSIGNMENTS] course %s lookup failed, scanning all courses: %v", p.courseID, err)
	}

	all, err := p.api.Courses.All(ctx)
	if err != nil {
		p.guard.Commit(t, func() {
			p.view.Course = nil
			p.view.Alerts = append(p.view.Alerts, hodapi.Message(err, "Failed to load course details"))
		})
		return
	}
	for _, c := range all.Data {
		if c.ID == p.courseID {
			course := c
			p.guard.Commit(t, func() { p.view.Course = &course })
			return
		}
	}
	p.guard.Commit(t, func() {
		p.view.Course = nil
		p.view.Alerts = append(p.view.Alerts, "Course not found")
	})
}

func (p *Page) loadAssignments(ctx context.Context) {
	t := p.guard.Begin("assignments")
	sem, yr := p.term()

	res, err := p.api.Assignments.ForCourse(ctx, p.courseID, sem, yr)
	p.guard.Commit(t, func() {
		switch {
		case err == nil:
			p.view.Assignments = res.Data
			p.view.Error = ""
		case hodapi.IsNotFound(err):
			p.view.Assignments = []hodapi.Assignment{}
			p.view.Error = ""
		default:
			p.view.Assignments = []hodapi.Assignment{}
			p.view.Error = hodapi.Message(err, "Failed to fetch assignments")
		}
	})
}

func (p *Page) loadFaculty(ctx context.Context) {
	t := p.guard.Begin("faculty")

	res, err := p.api.Assignments.Faculties(ctx)
	p.guard.Commit(t, func() {
		if err != nil {
			p.view.Faculty = []hodapi.Faculty{}
			p.view.Alerts = append(p.view.Alerts, hodapi.Message(err, "Failed to fetch faculty list"))
			return
		}
		p.view.Faculty = res.Data
	})
}

func (p *Page) loadAvailable(ctx context.Context) {
	t := p.guard.Begin("available")
	sem, yr := p.term()

	if sem <= 0 || yr <= 0 {
		p.guard.Commit(t, func() {
			p.view.Available = []hodapi.Faculty{}
			p.view.AvailableEnabled = false
		})
		return
	}

	res, err := p.api.Assignments.AvailableFaculties(ctx, p.courseID, sem, yr)
	p.guard.Commit(t, func() {
		p.view.AvailableEnabled = true
		if err != nil {
			p.view.Available = []hodapi.Faculty{}
			p.view.Alerts = append(p.view.Alerts, hodapi.Message(err, "Failed to fetch available faculty"))
			return
		}
		p.view.Available = res.Data
	})
}

// refresh reloads the assignment list and, when withAvailable, the available
// faculty, concurrently.
func (p *Page) refresh(ctx context.Context, withAvailable bool) {
	var g errgroup.Group
	g.Go(func() error { p.loadAssignments(ctx); return nil })
	if withAvailable {
		g.Go(func() error { p.loadAvailable(ctx); return nil })
	}
	_ = g.Wait()
}
