package hodapi

import (
	"bytes"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

/* ===================== ID ===================== */

// ID is a backend identifier. The backend sends some ids as numbers and some
// as strings; both decode to the same ID.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*id = ""
	case b[0] == '"':
		s, err := strconv.Unquote(string(b))
		if err != nil {
			return fmt.Errorf("hodapi: invalid id %s: %w", b, err)
		}
		*id = ID(strings.TrimSpace(s))
	default:
		if _, err := strconv.ParseFloat(string(b), 64); err != nil {
			return fmt.Errorf("hodapi: invalid id %s", b)
		}
		*id = ID(b)
	}
	return nil
}

func (id ID) String() string { return string(id) }

func (id ID) IsZero() bool { return strings.TrimSpace(string(id)) == "" }

/* ===================== Bloom ===================== */

type BloomLevel string

const (
	BloomRemember   BloomLevel = "REMEMBER"
	BloomUnderstand BloomLevel = "UNDERSTAND"
	BloomApply      BloomLevel = "APPLY"
	BloomAnalyze    BloomLevel = "ANALYZE"
	BloomEvaluate   BloomLevel = "EVALUATE"
	BloomCreate     BloomLevel = "CREATE"
)

// BloomLevels in taxonomy order.
var BloomLevels = []BloomLevel{
	BloomRemember, BloomUnderstand, BloomApply, BloomAnalyze, BloomEvaluate, BloomCreate,
}

func (b BloomLevel) Valid() bool {
	for _, l := range BloomLevels {
		if b == l {
			return true
		}
	}
	return false
}

/* ===================== Threshold ===================== */

const (
	ThresholdMin     = 40
	ThresholdMax     = 70
	ThresholdDefault = 50
)

// ClampThreshold keeps a CLO attainment threshold inside [40,70].
func ClampThreshold(v int) int {
	if v < ThresholdMin {
		return ThresholdMin
	}
	if v > ThresholdMax {
		return ThresholdMax
	}
	return v
}

/* ===================== Programme / Course ===================== */

type Programme struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code,omitempty"`
	Description string `json:"description,omitempty"`
}

type ProgrammeInput struct {
	Name        string `json:"name" validate:"required,max=200"`
	Code        string `json:"code,omitempty" validate:"omitempty,max=50"`
	Description string `json:"description,omitempty"`
}

type Course struct {
	ID          ID     `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Credits     int    `json:"credits"`
	Type        string `json:"type"`
	Semester    int    `json:"semester"`
	IsActive    bool   `json:"isActive"`
	ProgrammeID ID     `json:"programmeId"`
}

type CourseInput struct {
	Code        string `json:"code" validate:"required,max=50"`
	Name        string `json:"name" validate:"required,max=200"`
	Credits     int    `json:"credits" validate:"gte=0,lte=40"`
	Type        string `json:"type" validate:"required"`
	Semester    int    `json:"semester" validate:"required,gte=1,lte=12"`
	IsActive    *bool  `json:"isActive,omitempty"`
	ProgrammeID ID     `json:"programmeId" validate:"required"`
}

type CourseFilter struct {
	ProgrammeID ID
	Semester    int
}

func (f CourseFilter) values() url.Values {
	q := url.Values{}
	if !f.ProgrammeID.IsZero() {
		q.Set("programmeId", f.ProgrammeID.String())
	}
	if f.Semester > 0 {
		q.Set("semester", strconv.Itoa(f.Semester))
	}
	return q
}

type AutoCode struct {
	Code string `json:"code"`
}

/* ===================== CLO ===================== */

type CLO struct {
	ID          ID         `json:"id"`
	CourseID    ID         `json:"courseId,omitempty"`
	CLOCode     string     `json:"cloCode"`
	Description string     `json:"description"`
	BloomLevel  BloomLevel `json:"bloomLevel"`
	Version     string     `json:"version"`
	Threshold   int        `json:"threshold"`
	IsActive    bool       `json:"isActive"`
}

type CLOInput struct {
	CLOCode     string     `json:"cloCode,omitempty"`
	Description string     `json:"description"`
	BloomLevel  BloomLevel `json:"bloomLevel"`
	Version     string     `json:"version"`
	Threshold   int        `json:"threshold"`
	IsActive    *bool      `json:"isActive,omitempty"`
}

// CLOCount is the answer of the clo-count check.
type CLOCount struct {
	Valid         *bool  `json:"valid,omitempty"`
	Message       string `json:"message,omitempty"`
	ExistingCount int    `json:"existingCount,omitempty"`
}

// Allowed reports whether the backend accepted the requested count. A 2xx
// reply without an explicit "valid" field counts as accepted.
func (c CLOCount) Allowed() bool {
	return c.Valid == nil || *c.Valid
}

/* ===================== PO / PSO / mappings ===================== */

type Outcome struct {
	ID          ID     `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

type OutcomeSet struct {
	POs  []Outcome `json:"pos"`
	PSOs []Outcome `json:"psos"`
}

type CLOMapping struct {
	CLOID ID  `json:"cloId"`
	POID  ID  `json:"poId,omitempty"`
	PSOID ID  `json:"psoId,omitempty"`
	Value int `json:"value"`
}

type MappingRequest struct {
	CourseID ID           `json:"courseId,omitempty"`
	Mappings []CLOMapping `json:"mappings"`
}

/* ===================== Faculty / assignments ===================== */

type Faculty struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Designation string `json:"designation,omitempty"`
	Department  string `json:"department,omitempty"`
	Email       string `json:"email,omitempty"`
}

type Assignment struct {
	CourseID            ID       `json:"courseId"`
	FacultyID           ID       `json:"facultyId"`
	Semester            int      `json:"semester"`
	Year                int      `json:"year"`
	TeachingMethodology string   `json:"teachingMethodology,omitempty"`
	AssessmentMode      string   `json:"assessmentMode,omitempty"`
	Status              string   `json:"status,omitempty"`
	Faculty             *Faculty `json:"faculty,omitempty"`
	Course              *Course  `json:"course,omitempty"`
}

// AssignmentKey identifies one assignment.
type AssignmentKey struct {
	CourseID  ID  `json:"courseId"`
	FacultyID ID  `json:"facultyId"`
	Semester  int `json:"semester"`
	Year      int `json:"year"`
}

func (a Assignment) Key() AssignmentKey {
	return AssignmentKey{CourseID: a.CourseID, FacultyID: a.FacultyID, Semester: a.Semester, Year: a.Year}
}

func (k AssignmentKey) path() string {
	return "/hod/courses/" + seg(k.CourseID) + "/assignments/" + seg(k.FacultyID) + "/" + seg(k.Semester) + "/" + seg(k.Year)
}

type AssignRequest struct {
	FacultyID           ID     `json:"facultyId"`
	Semester            int    `json:"semester"`
	Year                int    `json:"year"`
	TeachingMethodology string `json:"teachingMethodology,omitempty"`
	AssessmentMode      string `json:"assessmentMode,omitempty"`
}

// AssignmentUpdate is a partial update; nil fields are left untouched.
type AssignmentUpdate struct {
	NewFacultyID        *ID     `json:"newFacultyId,omitempty"`
	TeachingMethodology *string `json:"teachingMethodology,omitempty"`
	AssessmentMode      *string `json:"assessmentMode,omitempty"`
}

func (u AssignmentUpdate) Empty() bool {
	return u.NewFacultyID == nil && u.TeachingMethodology == nil && u.AssessmentMode == nil
}

// AssignmentFilter is the department-wide listing filter.
type AssignmentFilter struct {
	Semester  int
	Year      int
	FacultyID ID
	CourseID  ID
	Page      int
	Limit     int
	Status    string
}

func (f AssignmentFilter) values() url.Values {
	q := url.Values{}
	if f.Semester > 0 {
		q.Set("semester", strconv.Itoa(f.Semester))
	}
	if f.Year > 0 {
		q.Set("year", strconv.Itoa(f.Year))
	}
	if !f.FacultyID.IsZero() {
		q.Set("facultyId", f.FacultyID.String())
	}
	if !f.CourseID.IsZero() {
		q.Set("courseId", f.CourseID.String())
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if s := strings.TrimSpace(f.Status); s != "" {
		q.Set("status", s)
	}
	return q
}

type AssignmentStats struct {
	TotalAssignments  int `json:"totalAssignments"`
	TotalFaculty      int `json:"totalFaculty"`
	TotalCourses      int `json:"totalCourses"`
	UnassignedCourses int `json:"unassignedCourses"`
}

/* ===================== Workload ===================== */

type WorkloadCourse struct {
	ID      ID     `json:"id"`
	Code    string `json:"code"`
	Name    string `json:"name"`
	Credits int    `json:"credits"`
}

type WorkloadSummary struct {
	Year         int              `json:"year"`
	Semester     int              `json:"semester"`
	TotalCredits int              `json:"totalCredits"`
	CourseCount  int              `json:"courseCount"`
	Courses      []WorkloadCourse `json:"courses"`
}

type WorkloadDetail struct {
	CourseID            ID     `json:"courseId"`
	CourseCode          string `json:"courseCode"`
	CourseName          string `json:"courseName"`
	Credits             int    `json:"credits"`
	Semester            int    `json:"semester"`
	Year                int    `json:"year"`
	TeachingMethodology string `json:"teachingMethodology,omitempty"`
	AssessmentMode      string `json:"assessmentMode,omitempty"`
}

type Workload struct {
	FacultyID   ID                `json:"facultyId"`
	Faculty     *Faculty          `json:"faculty,omitempty"`
	Summary     []WorkloadSummary `json:"summary"`
	Assignments []WorkloadDetail  `json:"assignments"`
}

/* ===================== Dashboard ===================== */

type DashboardStats struct {
	TotalProgrammes   int `json:"totalProgrammes"`
	TotalCourses      int `json:"totalCourses"`
	TotalFaculty      int `json:"totalFaculty"`
	TotalCLOs         int `json:"totalClos"`
	ActiveAssignments int `json:"activeAssignments"`
}
