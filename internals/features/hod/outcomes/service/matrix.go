package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	helper "obehod_backend/internals/helpers"
	"obehod_backend/internals/hodapi"
)

// Correlation strengths accepted in a CLO→PO/PSO cell. 0 clears the cell.
const (
	StrengthNone = 0
	StrengthLow  = 1
	StrengthHigh = 3
)

type Row struct {
	CLO  hodapi.CLO        `json:"clo"`
	POs  map[hodapi.ID]int `json:"pos"`
	PSOs map[hodapi.ID]int `json:"psos"`
}

// Matrix is a course's CLO × PO/PSO grid.
type Matrix struct {
	CourseID hodapi.ID        `json:"course_id"`
	POs      []hodapi.Outcome `json:"pos"`
	PSOs     []hodapi.Outcome `json:"psos"`
	Rows     []Row            `json:"rows"`
	Mapped   int              `json:"mapped"`
	Unmapped []string         `json:"unmapped_clos"`
}

// LoadMatrix fetches CLOs, outcomes and saved mappings concurrently. A 404
// on CLOs or mappings counts as none yet.
func LoadMatrix(ctx context.Context, api *hodapi.Client, courseID hodapi.ID) (Matrix, error) {
	var (
		clos     []hodapi.CLO
		outcomes hodapi.OutcomeSet
		mappings []hodapi.CLOMapping
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := api.CLOs.ListByCourse(gctx, courseID)
		if err != nil && !hodapi.IsNotFound(err) {
			return err
		}
		clos = res.Data
		return nil
	})
	g.Go(func() error {
		res, err := api.POPSO.ForCourse(gctx, courseID)
		if err != nil {
			return err
		}
		outcomes = res.Data
		return nil
	})
	g.Go(func() error {
		res, err := api.CLOs.Mappings(gctx, courseID)
		if err != nil && !hodapi.IsNotFound(err) {
			return err
		}
		mappings = res.Data
		return nil
	})
	if err := g.Wait(); err != nil {
		return Matrix{CourseID: courseID}, err
	}
	return Build(courseID, clos, outcomes, mappings), nil
}

// Build lays the mappings onto the grid. Mappings for unknown CLOs or
// outcomes are dropped.
func Build(courseID hodapi.ID, clos []hodapi.CLO, outcomes hodapi.OutcomeSet, mappings []hodapi.CLOMapping) Matrix {
	m := Matrix{
		CourseID: courseID,
		POs:      nonNil(outcomes.POs),
		PSOs:     nonNil(outcomes.PSOs),
		Rows:     make([]Row, 0, len(clos)),
		Unmapped: []string{},
	}
	pos := idSet(m.POs)
	psos := idSet(m.PSOs)

	byCLO := map[hodapi.ID]int{}
	for i, c := range clos {
		m.Rows = append(m.Rows, Row{CLO: c, POs: map[hodapi.ID]int{}, PSOs: map[hodapi.ID]int{}})
		byCLO[c.ID] = i
	}
	for _, mp := range mappings {
		i, ok := byCLO[mp.CLOID]
		if !ok || mp.Value <= StrengthNone {
			continue
		}
		switch {
		case !mp.POID.IsZero() && pos[mp.POID]:
			m.Rows[i].POs[mp.POID] = mp.Value
		case !mp.PSOID.IsZero() && psos[mp.PSOID]:
			m.Rows[i].PSOs[mp.PSOID] = mp.Value
		}
	}
	for _, r := range m.Rows {
		if len(r.POs)+len(r.PSOs) == 0 {
			m.Unmapped = append(m.Unmapped, r.CLO.CLOCode)
		} else {
			m.Mapped++
		}
	}
	return m
}

// CheckMappings validates a mapping save. Each cell targets exactly one PO or
// PSO with a strength of 0..3; zero cells are dropped from the result.
func CheckMappings(in []hodapi.CLOMapping) ([]hodapi.CLOMapping, helper.FieldErrors) {
	out := make([]hodapi.CLOMapping, 0, len(in))
	var errs helper.FieldErrors
	fail := func(i int, field, msg string) {
		if errs == nil {
			errs = helper.FieldErrors{}
		}
		errs[fmt.Sprintf("mappings[%d].%s", i, field)] = msg
	}
	for i, mp := range in {
		mp.CLOID = hodapi.ID(strings.TrimSpace(mp.CLOID.String()))
		switch {
		case mp.CLOID.IsZero():
			fail(i, "cloId", "CLO is required")
			continue
		case mp.POID.IsZero() == mp.PSOID.IsZero():
			fail(i, "poId", "Map to exactly one PO or PSO")
			continue
		case mp.Value < StrengthNone || mp.Value > StrengthHigh:
			fail(i, "value", "Strength must be between 0 and 3")
			continue
		}
		if mp.Value == StrengthNone {
			continue
		}
		out = append(out, mp)
	}
	if errs != nil {
		return nil, errs
	}
	return out, nil
}

func idSet(list []hodapi.Outcome) map[hodapi.ID]bool {
	out := make(map[hodapi.ID]bool, len(list))
	for _, o := range list {
		out[o.ID] = true
	}
	return out
}

func nonNil(list []hodapi.Outcome) []hodapi.Outcome {
	if list == nil {
		return []hodapi.Outcome{}
	}
	return list
}
