// file: internals/features/hod/clos/service/list.go
package service

import (
	"context"
	"log"
	"math"
	"strings"

	"golang.org/x/sync/errgroup"

	"obehod_backend/internals/features/hod/viewstate"
	helper "obehod_backend/internals/helpers"
	"obehod_backend/internals/hodapi"
)

const (
	EmptyNone          = "none_created"
	EmptyNoMatch       = "no_match"
	ActionCreate       = "create"
	ActionClearFilters = "clear_filters"
)

// Stats are derived from the loaded list only.
type Stats struct {
	Total            int     `json:"total"`
	Active           int     `json:"active"`
	AverageThreshold float64 `json:"average_threshold"`
	BloomLevels      int     `json:"bloom_levels"`
}

func ComputeStats(list []hodapi.CLO) Stats {
	s := Stats{Total: len(list)}
	if len(list) == 0 {
		return s
	}
	sum := 0
	levels := map[hodapi.BloomLevel]struct{}{}
	for _, c := range list {
		if c.IsActive {
			s.Active++
		}
		sum += c.Threshold
		if c.BloomLevel != "" {
			levels[c.BloomLevel] = struct{}{}
		}
	}
	s.AverageThreshold = math.Round(float64(sum)/float64(len(list))*10) / 10
	s.BloomLevels = len(levels)
	return s
}

// Match applies the free-text search (code or description, case and
// diacritic insensitive) and the exact bloom filter.
func Match(list []hodapi.CLO, search string, bloom hodapi.BloomLevel) []hodapi.CLO {
	out := make([]hodapi.CLO, 0, len(list))
	for _, c := range list {
		if bloom != "" && c.BloomLevel != bloom {
			continue
		}
		if !helper.MatchesAny(search, c.CLOCode, c.Description) {
			continue
		}
		out = append(out, c)
	}
	return out
}

type View struct {
	CourseID   hodapi.ID         `json:"course_id"`
	Course     *hodapi.Course    `json:"course"`
	CLOs       []hodapi.CLO      `json:"clos"`
	Visible    []hodapi.CLO      `json:"visible"`
	Stats      Stats             `json:"stats"`
	Search     string            `json:"search,omitempty"`
	Bloom      hodapi.BloomLevel `json:"bloom_level,omitempty"`
	EmptyState string            `json:"empty_state,omitempty"`
	Action     string            `json:"action,omitempty"`
	Error      string            `json:"error,omitempty"`
}

func (v View) clone() View {
	out := v
	out.CLOs = append([]hodapi.CLO{}, v.CLOs...)
	out.Visible = append([]hodapi.CLO{}, v.Visible...)
	return out
}

// ListPage browses the CLOs of one course.
type ListPage struct {
	api      *hodapi.Client
	courseID hodapi.ID
	guard    viewstate.Guard
	view     View
}

func NewListPage(api *hodapi.Client, courseID hodapi.ID) *ListPage {
	return &ListPage{api: api, courseID: courseID, view: View{CourseID: courseID}}
}

func (p *ListPage) View() View {
	var out View
	p.guard.Do(func() { out = p.view.clone() })
	return out
}

func (p *ListPage) Close() { p.guard.Close() }

// Load fetches the CLO list and course metadata concurrently. A course
// failure is logged and leaves the page usable.
func (p *ListPage) Load(ctx context.Context) View {
	var g errgroup.Group
	g.Go(func() error { p.loadCLOs(ctx); return nil })
	g.Go(func() error { p.loadCourse(ctx); return nil })
	_ = g.Wait()
	return p.View()
}

func (p *ListPage) loadCLOs(ctx context.Context) {
	t := p.guard.Begin("clos")
	res, err := p.api.CLOs.ListByCourse(ctx, p.courseID)
	if err != nil && hodapi.IsNotFound(err) {
		res.Data, err = []hodapi.CLO{}, nil
	}
	p.guard.Commit(t, func() {
		if err != nil {
			p.view.CLOs = []hodapi.CLO{}
			p.view.Error = hodapi.Message(err, "Failed to load CLOs")
		} else {
			p.view.CLOs = res.Data
			p.view.Error = ""
		}
		p.view.Stats = ComputeStats(p.view.CLOs)
		p.apply()
	})
}

func (p *ListPage) loadCourse(ctx context.Context) {
	t := p.guard.Begin("course")
	res, err := p.api.Courses.Get(ctx, p.courseID)
	if err != nil {
		log.Printf("[CLOS] course %s metadata failed: %v", p.courseID, err)
		return
	}
	course := res.Data
	p.guard.Commit(t, func() { p.view.Course = &course })
}

// Filter sets search and bloom filters on the loaded list. No fetch.
func (p *ListPage) Filter(search string, bloom hodapi.BloomLevel) View {
	p.guard.Do(func() {
		p.view.Search = strings.TrimSpace(search)
		p.view.Bloom = hodapi.BloomLevel(strings.ToUpper(strings.TrimSpace(string(bloom))))
		p.apply()
	})
	return p.View()
}

func (p *ListPage) ClearFilters() View { return p.Filter("", "") }

// apply recomputes Visible and the empty state; caller holds the guard.
func (p *ListPage) apply() {
	p.view.Visible = Match(p.view.CLOs, p.view.Search, p.view.Bloom)
	switch {
	case len(p.view.Visible) > 0 || p.view.Error != "":
		p.view.EmptyState, p.view.Action = "", ""
	case len(p.view.CLOs) == 0:
		p.view.EmptyState, p.view.Action = EmptyNone, ActionCreate
	default:
		p.view.EmptyState, p.view.Action = EmptyNoMatch, ActionClearFilters
	}
}

// EditDraft returns the loaded CLO that seeds a one-step edit wizard.
func (p *ListPage) EditDraft(id hodapi.ID) (hodapi.CLO, bool) {
	var (
		out   hodapi.CLO
		found bool
	)
	p.guard.Do(func() {
		for _, c := range p.view.CLOs {
			if c.ID == id {
				out, found = c, true
				return
			}
		}
	})
	return out, found
}
