package dto

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"obehod_backend/internals/features/hod/assignments/service"
	"obehod_backend/internals/hodapi"
)

// TermQuery is ?semester=&year= on the page endpoints.
type TermQuery struct {
	Semester int `query:"semester"`
	Year     int `query:"year"`
}

type WorkloadQuery struct {
	Year int `query:"year"`
}

// CreateAssignmentRequest is the create modal as posted by the page.
type CreateAssignmentRequest struct {
	FacultyID           hodapi.ID `json:"faculty_id"`
	Semester            int       `json:"semester"`
	Year                int       `json:"year"`
	TeachingMethodology string    `json:"teaching_methodology"`
	AssessmentMode      string    `json:"assessment_mode"`
}

func (r CreateAssignmentRequest) ToForm() service.CreateForm {
	return service.CreateForm{
		FacultyID:           r.FacultyID,
		Semester:            r.Semester,
		Year:                r.Year,
		TeachingMethodology: r.TeachingMethodology,
		AssessmentMode:      r.AssessmentMode,
	}
}

// UpdateAssignmentRequest is the edit modal. Omitted fields stay unchanged.
type UpdateAssignmentRequest struct {
	NewFacultyID        *hodapi.ID `json:"new_faculty_id"`
	TeachingMethodology *string    `json:"teaching_methodology"`
	AssessmentMode      *string    `json:"assessment_mode"`
}

func (r UpdateAssignmentRequest) ToForm() service.UpdateForm {
	return service.UpdateForm{
		NewFacultyID:        r.NewFacultyID,
		TeachingMethodology: r.TeachingMethodology,
		AssessmentMode:      r.AssessmentMode,
	}
}

// KeyFromParams reads :courseId/:facultyId/:semester/:year.
func KeyFromParams(c *fiber.Ctx) (hodapi.AssignmentKey, error) {
	courseID := strings.TrimSpace(c.Params("courseId"))
	facultyID := strings.TrimSpace(c.Params("facultyId"))
	if courseID == "" || facultyID == "" {
		return hodapi.AssignmentKey{}, fiber.NewError(fiber.StatusBadRequest, "courseId and facultyId are required")
	}
	sem, err := c.ParamsInt("semester")
	if err != nil || sem < 1 {
		return hodapi.AssignmentKey{}, fiber.NewError(fiber.StatusBadRequest, "Invalid semester")
	}
	year, err := c.ParamsInt("year")
	if err != nil || year < 1 {
		return hodapi.AssignmentKey{}, fiber.NewError(fiber.StatusBadRequest, "Invalid year")
	}
	return hodapi.AssignmentKey{
		CourseID:  hodapi.ID(courseID),
		FacultyID: hodapi.ID(facultyID),
		Semester:  sem,
		Year:      year,
	}, nil
}
