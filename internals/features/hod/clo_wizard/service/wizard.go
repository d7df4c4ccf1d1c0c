// file: internals/features/hod/clo_wizard/service/wizard.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"obehod_backend/internals/features/hod/clo_wizard/model"
	helper "obehod_backend/internals/helpers"
	"obehod_backend/internals/hodapi"
)

// MaxCLOs bounds the count a create wizard may be started with.
const MaxCLOs = 20

const DefaultVersion = "1.0"

/* ============================================
   Form
============================================ */

type Form struct {
	Description string            `json:"description" validate:"required,max=2000"`
	BloomLevel  hodapi.BloomLevel `json:"bloom_level" validate:"required,bloom"`
	Version     string            `json:"version" validate:"max=20"`
	Threshold   int               `json:"threshold"`
}

var formMessages = map[string]string{
	"description.required": "Description is required",
	"description":          "Description is too long",
	"bloom_level.required": "Please select a Bloom's taxonomy level",
	"bloom_level":          "Unknown Bloom's taxonomy level",
	"version":              "Version is too long",
}

func BlankForm() Form {
	return Form{Version: DefaultVersion, Threshold: hodapi.ThresholdDefault}
}

func (f Form) IsZero() bool { return f == Form{} }

// Normalize trims text, fills the default version and clamps the threshold.
func (f Form) Normalize() Form {
	f.Description = strings.TrimSpace(f.Description)
	f.BloomLevel = hodapi.BloomLevel(strings.ToUpper(strings.TrimSpace(string(f.BloomLevel))))
	f.Version = strings.TrimSpace(f.Version)
	if f.Version == "" {
		f.Version = DefaultVersion
	}
	f.Threshold = hodapi.ClampThreshold(f.Threshold)
	return f
}

// FormFromCLO seeds a form from an existing CLO.
func FormFromCLO(c hodapi.CLO) Form {
	return Form{
		Description: c.Description,
		BloomLevel:  c.BloomLevel,
		Version:     c.Version,
		Threshold:   c.Threshold,
	}.Normalize()
}

// Code is the CLO code of step i.
func Code(i int) string { return fmt.Sprintf("CLO%d", i) }

/* ============================================
   Wizard
============================================ */

// CLOSaver is the part of the CLO resource the wizard writes through.
type CLOSaver interface {
	Create(ctx context.Context, courseID hodapi.ID, in hodapi.CLOInput) (hodapi.Result[hodapi.CLO], error)
	Update(ctx context.Context, id hodapi.ID, in hodapi.CLOInput) (hodapi.Result[hodapi.CLO], error)
}

// Wizard walks steps 1..Total, saving one CLO per step as it goes. Steps
// already submitted stay saved when the wizard is abandoned.
type Wizard struct {
	CourseID hodapi.ID `json:"course_id"`
	Mode     string    `json:"mode"`
	Total    int       `json:"total"`
	Step     int       `json:"step"`
	Reached  int       `json:"reached"`
	Done     bool      `json:"done"`

	Drafts    []Form      `json:"drafts"`
	Saved     []hodapi.ID `json:"saved"`
	Submitted []bool      `json:"submitted"`

	Error       string             `json:"error,omitempty"`
	FieldErrors helper.FieldErrors `json:"field_errors,omitempty"`
}

var (
	ErrWizardDone = fiber.NewError(fiber.StatusConflict, "Wizard already finished")
	ErrBadStep    = fiber.NewError(fiber.StatusBadRequest, "Step is not reachable yet")
)

// NewCreate starts a create wizard for n CLOs. drafts, when given, resume
// earlier form state by index; their thresholds are clamped.
func NewCreate(courseID hodapi.ID, n int, drafts ...Form) (*Wizard, error) {
	if n < 1 || n > MaxCLOs {
		return nil, helper.FieldErrors{"count": fmt.Sprintf("Number of CLOs must be between 1 and %d", MaxCLOs)}
	}
	w := &Wizard{
		CourseID:  courseID,
		Mode:      model.WizardModeCreate,
		Total:     n,
		Step:      1,
		Reached:   1,
		Drafts:    make([]Form, n),
		Saved:     make([]hodapi.ID, n),
		Submitted: make([]bool, n),
	}
	for i := 0; i < n && i < len(drafts); i++ {
		if !drafts[i].IsZero() {
			w.Drafts[i] = drafts[i].Normalize()
		}
	}
	w.enter(1)
	return w, nil
}

// NewEdit builds the one-step wizard that edits clo.
func NewEdit(courseID hodapi.ID, clo hodapi.CLO) *Wizard {
	if courseID.IsZero() {
		courseID = clo.CourseID
	}
	return &Wizard{
		CourseID:  courseID,
		Mode:      model.WizardModeEdit,
		Total:     1,
		Step:      1,
		Reached:   1,
		Drafts:    []Form{FormFromCLO(clo)},
		Saved:     []hodapi.ID{clo.ID},
		Submitted: []bool{false},
	}
}

// Restore re-applies invariants after the wizard was decoded from storage.
func (w *Wizard) Restore() {
	for len(w.Drafts) < w.Total {
		w.Drafts = append(w.Drafts, Form{})
	}
	for len(w.Saved) < w.Total {
		w.Saved = append(w.Saved, "")
	}
	for len(w.Submitted) < w.Total {
		w.Submitted = append(w.Submitted, false)
	}
	for i := range w.Drafts {
		if !w.Drafts[i].IsZero() {
			w.Drafts[i] = w.Drafts[i].Normalize()
		}
	}
	if w.Step < 1 {
		w.Step = 1
	}
	if w.Step > w.Total {
		w.Step = w.Total
	}
	if w.Reached < w.Step {
		w.Reached = w.Step
	}
}

func (w *Wizard) editing() bool { return w.Mode == model.WizardModeEdit }

// enter shows step i, loading its draft or a blank form.
func (w *Wizard) enter(i int) {
	w.Step = i
	if i > w.Reached {
		w.Reached = i
	}
	if w.Drafts[i-1].IsZero() {
		w.Drafts[i-1] = BlankForm()
	}
	w.FieldErrors = nil
}

// Form is the current step's form.
func (w *Wizard) Form() Form { return w.Drafts[w.Step-1] }

// SetForm replaces the current step's form, clamping the threshold.
func (w *Wizard) SetForm(f Form) error {
	if w.Done {
		return ErrWizardDone
	}
	f = f.Normalize()
	w.Drafts[w.Step-1] = f
	w.FieldErrors = nil
	return nil
}

// Prev shows the previous step without fetching.
func (w *Wizard) Prev() error {
	if w.Done {
		return ErrWizardDone
	}
	if w.Step > 1 {
		w.enter(w.Step - 1)
	}
	w.Error = ""
	return nil
}

// GoTo shows step i, which must already have been reached.
func (w *Wizard) GoTo(i int) error {
	if w.Done {
		return ErrWizardDone
	}
	if i < 1 || i > w.Reached {
		return ErrBadStep
	}
	w.enter(i)
	w.Error = ""
	return nil
}

// Submit saves the current step. Create mode creates the CLO, or updates it
// if this step was saved before; edit mode updates. On failure the form is
// kept and the step does not advance.
func (w *Wizard) Submit(ctx context.Context, clos CLOSaver) error {
	if w.Done {
		return ErrWizardDone
	}
	idx := w.Step - 1
	f := w.Drafts[idx].Normalize()
	w.Drafts[idx] = f

	if fields := helper.CheckForm(f, formMessages); fields != nil {
		w.FieldErrors = fields
		return fields
	}

	in := hodapi.CLOInput{
		Description: f.Description,
		BloomLevel:  f.BloomLevel,
		Version:     f.Version,
		Threshold:   f.Threshold,
	}

	var (
		res hodapi.Result[hodapi.CLO]
		err error
	)
	switch {
	case w.editing():
		res, err = clos.Update(ctx, w.Saved[idx], in)
	case w.Submitted[idx] && !w.Saved[idx].IsZero():
		in.CLOCode = Code(w.Step)
		res, err = clos.Update(ctx, w.Saved[idx], in)
	default:
		active := true
		in.CLOCode = Code(w.Step)
		in.IsActive = &active
		res, err = clos.Create(ctx, w.CourseID, in)
	}
	if err != nil {
		w.Error = hodapi.Message(err, "Failed to save CLO")
		return err
	}

	w.Error = ""
	w.FieldErrors = nil
	w.Submitted[idx] = true
	if !res.Data.ID.IsZero() {
		w.Saved[idx] = res.Data.ID
	}

	if w.Step == w.Total {
		w.Done = true
		return nil
	}
	w.enter(w.Step + 1)
	return nil
}

/* ============================================
   View
============================================ */

type StepInfo struct {
	Index     int    `json:"index"`
	Code      string `json:"code"`
	Saved     bool   `json:"saved"`
	Reachable bool   `json:"reachable"`
}

type View struct {
	SessionID   string              `json:"session_id,omitempty"`
	CourseID    hodapi.ID           `json:"course_id"`
	Mode        string              `json:"mode"`
	Step        int                 `json:"step"`
	Total       int                 `json:"total"`
	Code        string              `json:"code"`
	Form        Form                `json:"form"`
	Steps       []StepInfo          `json:"steps"`
	Done        bool                `json:"done"`
	Redirect    string              `json:"redirect,omitempty"`
	Error       string              `json:"error,omitempty"`
	FieldErrors helper.FieldErrors  `json:"field_errors,omitempty"`
	BloomLevels []hodapi.BloomLevel `json:"bloom_levels"`
}

func (w *Wizard) View() View {
	v := View{
		CourseID:    w.CourseID,
		Mode:        w.Mode,
		Step:        w.Step,
		Total:       w.Total,
		Code:        Code(w.Step),
		Form:        w.Form(),
		Done:        w.Done,
		Error:       w.Error,
		FieldErrors: w.FieldErrors,
		BloomLevels: hodapi.BloomLevels,
	}
	for i := 1; i <= w.Total; i++ {
		v.Steps = append(v.Steps, StepInfo{
			Index:     i,
			Code:      Code(i),
			Saved:     w.Submitted[i-1],
			Reachable: i <= w.Reached,
		})
	}
	if w.Done {
		v.Redirect = "/hod/courses/" + w.CourseID.String() + "/clos"
	}
	return v
}

// IsValidation reports whether err is a form validation failure.
func IsValidation(err error) bool {
	var fe helper.FieldErrors
	return errors.As(err, &fe)
}
