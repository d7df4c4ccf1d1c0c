package service

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	helper "obehod_backend/internals/helpers"
	"obehod_backend/internals/hodapi"
)

/* ============================================
   Create
============================================ */

type CreateForm struct {
	FacultyID           hodapi.ID `json:"faculty_id" validate:"required"`
	Semester            int       `json:"semester" validate:"required,gte=1,lte=12"`
	Year                int       `json:"year" validate:"required,gte=2000,lte=2100"`
	TeachingMethodology string    `json:"teaching_methodology" validate:"omitempty,max=1000"`
	AssessmentMode      string    `json:"assessment_mode" validate:"omitempty,max=1000"`
}

var createMessages = map[string]string{
	"faculty_id":           "Please select a faculty member",
	"semester.required":    "Please select a semester",
	"semester":             "Semester must be between 1 and 12",
	"year.required":        "Please select a year",
	"year":                 "Year is out of range",
	"teaching_methodology": "Teaching methodology is too long",
	"assessment_mode":      "Assessment mode is too long",
}

// ValidateCreate checks the create form without touching the network.
func ValidateCreate(f CreateForm) helper.FieldErrors {
	f.FacultyID = hodapi.ID(strings.TrimSpace(f.FacultyID.String()))
	return helper.CheckForm(f, createMessages)
}

func (p *Page) OpenCreate() View {
	p.guard.Do(func() {
		p.view.CreateOpen = true
		p.view.FieldErrors = nil
	})
	return p.View()
}

func (p *Page) CloseCreate() View {
	p.guard.Do(func() {
		p.view.CreateOpen = false
		p.view.FieldErrors = nil
	})
	return p.View()
}

// Create posts a new assignment. Missing required fields are reported per
// field and nothing is sent. On success the modal closes and the
// assignment and available-faculty lists are reloaded.
func (p *Page) Create(ctx context.Context, f CreateForm) (View, error) {
	if fields := ValidateCreate(f); fields != nil {
		p.guard.Do(func() { p.view.FieldErrors = fields })
		return p.View(), fields
	}

	req := hodapi.AssignRequest{
		FacultyID:           hodapi.ID(strings.TrimSpace(f.FacultyID.String())),
		Semester:            f.Semester,
		Year:                f.Year,
		TeachingMethodology: strings.TrimSpace(f.TeachingMethodology),
		AssessmentMode:      strings.TrimSpace(f.AssessmentMode),
	}
	if _, err := p.api.Assignments.Assign(ctx, p.courseID, req); err != nil {
		p.alert(hodapi.Message(err, "Failed to create assignment"))
		return p.View(), err
	}

	p.guard.Do(func() {
		p.view.CreateOpen = false
		p.view.FieldErrors = nil
		p.view.Notice = "Assignment created"
	})
	p.refresh(ctx, true)
	return p.View(), nil
}

/* ============================================
   Update
============================================ */

// UpdateForm is the edit dialog: an optional reassignment target and the
// two free-text fields. A nil field is left as it is.
type UpdateForm struct {
	NewFacultyID        *hodapi.ID `json:"new_faculty_id"`
	TeachingMethodology *string    `json:"teaching_methodology" validate:"omitempty,max=1000"`
	AssessmentMode      *string    `json:"assessment_mode" validate:"omitempty,max=1000"`
}

var ErrAssignmentNotFound = fiber.NewError(fiber.StatusNotFound, "Assignment not found")

func (p *Page) find(key hodapi.AssignmentKey) (hodapi.Assignment, bool) {
	var (
		out   hodapi.Assignment
		found bool
	)
	p.guard.Do(func() {
		for _, a := range p.view.Assignments {
			if a.Key() == key {
				out, found = a, true
				return
			}
		}
	})
	return out, found
}

// ReassignCandidates lists roster members not already assigned to this
// course in the loaded term.
func (p *Page) ReassignCandidates(key hodapi.AssignmentKey) []hodapi.Faculty {
	out := []hodapi.Faculty{}
	p.guard.Do(func() {
		assigned := map[hodapi.ID]bool{}
		for _, a := range p.view.Assignments {
			if a.Semester == key.Semester && a.Year == key.Year {
				assigned[a.FacultyID] = true
			}
		}
		for _, f := range p.view.Faculty {
			if !assigned[f.ID] {
				out = append(out, f)
			}
		}
	})
	return out
}

// BuildUpdate composes the partial payload: only fields that differ from
// current are included.
func (p *Page) BuildUpdate(current hodapi.Assignment, f UpdateForm) (hodapi.AssignmentUpdate, error) {
	var u hodapi.AssignmentUpdate
	if fields := helper.CheckForm(f, map[string]string{
		"teaching_methodology": "Teaching methodology is too long",
		"assessment_mode":      "Assessment mode is too long",
	}); fields != nil {
		return u, fields
	}

	if f.NewFacultyID != nil {
		target := hodapi.ID(strings.TrimSpace(f.NewFacultyID.String()))
		if !target.IsZero() && target != current.FacultyID {
			ok := false
			for _, c := range p.ReassignCandidates(current.Key()) {
				if c.ID == target {
					ok = true
					break
				}
			}
			if !ok {
				return u, helper.FieldErrors{"new_faculty_id": "Choose a faculty member who is not already assigned"}
			}
			u.NewFacultyID = &target
		}
	}
	if f.TeachingMethodology != nil {
		if v := strings.TrimSpace(*f.TeachingMethodology); v != current.TeachingMethodology {
			u.TeachingMethodology = &v
		}
	}
	if f.AssessmentMode != nil {
		if v := strings.TrimSpace(*f.AssessmentMode); v != current.AssessmentMode {
			u.AssessmentMode = &v
		}
	}
	return u, nil
}

// Update applies the edit dialog to the assignment identified by key. The
// page must be mounted on the key's term. Nothing is sent when nothing
// changed.
func (p *Page) Update(ctx context.Context, key hodapi.AssignmentKey, f UpdateForm) (View, error) {
	current, ok := p.find(key)
	if !ok {
		return p.View(), ErrAssignmentNotFound
	}

	u, err := p.BuildUpdate(current, f)
	if err != nil {
		var fields helper.FieldErrors
		if errors.As(err, &fields) {
			p.guard.Do(func() { p.view.FieldErrors = fields })
		}
		return p.View(), err
	}
	if u.Empty() {
		p.guard.Do(func() { p.view.Notice = "No changes to save" })
		return p.View(), nil
	}

	if _, err := p.api.Assignments.Update(ctx, key, u); err != nil {
		p.alert(hodapi.Message(err, "Failed to update assignment"))
		return p.View(), err
	}

	p.guard.Do(func() {
		p.view.FieldErrors = nil
		p.view.Notice = "Assignment updated"
	})
	p.refresh(ctx, u.NewFacultyID != nil)
	return p.View(), nil
}

/* ============================================
   Delete
============================================ */

// Delete removes the assignment once confirmed. Without confirmation
// nothing is sent and the view is unchanged.
func (p *Page) Delete(ctx context.Context, key hodapi.AssignmentKey, confirmed bool) (View, error) {
	if !confirmed {
		return p.View(), nil
	}

	if _, err := p.api.Assignments.Remove(ctx, key); err != nil {
		p.alert(hodapi.Message(err, "Failed to delete assignment"))
		return p.View(), err
	}

	p.guard.Do(func() { p.view.Notice = "Assignment removed" })
	p.refresh(ctx, true)
	return p.View(), nil
}
