package service

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helper "obehod_backend/internals/helpers"
	"obehod_backend/internals/hodapi"
	"obehod_backend/internals/hodapi/hodapitest"
)

const (
	routeCourse      = "GET /hod/course/{id}"
	routeAllCourses  = "GET /hod/all-courses"
	routeAssignments = "GET /hod/courses/{courseId}/assignments"
	routeFaculties   = "GET /hod/faculties"
	routeAvailable   = "GET /hod/courses/{courseId}/available-faculties"
	routeAssign      = "POST /hod/courses/{courseId}/assign"
	routeUpdate      = "PUT /hod/courses/{courseId}/assignments/{facultyId}/{semester}/{year}"
	routeRemove      = "DELETE /hod/courses/{courseId}/assignments/{facultyId}/{semester}/{year}"
)

const (
	timeout = 2 * time.Second
	tick    = 5 * time.Millisecond
)

var sampleAssignments = []map[string]any{
	{"courseId": "c1", "facultyId": "f1", "semester": 3, "year": 2025, "teachingMethodology": "Lecture"},
	{"courseId": "c1", "facultyId": 2, "semester": 3, "year": 2025},
}

func stubCoursePage(be *hodapitest.Backend, assignments any) {
	be.JSON(routeCourse, http.StatusOK, map[string]any{"id": "c1", "code": "CS301", "name": "Databases", "credits": 4})
	be.JSON(routeAssignments, http.StatusOK, assignments)
	be.JSON(routeFaculties, http.StatusOK, map[string]any{"faculties": []map[string]any{
		{"id": "f1", "name": "Dr. Rao"},
		{"id": 2, "name": "Dr. Iyer"},
		{"id": "f3", "name": "Dr. Menon"},
	}})
	be.JSON(routeAvailable, http.StatusOK, map[string]any{"faculties": []map[string]any{{"id": "f3", "name": "Dr. Menon"}}})
}

func TestPage_AssignmentEnvelopesGiveSameList(t *testing.T) {
	shapes := map[string]any{
		"bare":       sampleAssignments,
		"keyed":      map[string]any{"assignments": sampleAssignments},
		"data":       map[string]any{"data": sampleAssignments},
		"data+keyed": map[string]any{"data": map[string]any{"assignments": sampleAssignments}},
	}

	var want []hodapi.Assignment
	for name, body := range shapes {
		t.Run(name, func(t *testing.T) {
			be := hodapitest.New(t)
			stubCoursePage(be, body)

			p := NewPage(be.Client(), "c1", 3, 2025)
			v := p.Mount(context.Background())

			require.Len(t, v.Assignments, 2)
			assert.Equal(t, hodapi.ID("2"), v.Assignments[1].FacultyID)
			assert.Empty(t, v.Error)
			if want == nil {
				want = v.Assignments
			}
			assert.Equal(t, want, v.Assignments)
		})
	}
}

func TestPage_MountLoadsEverything(t *testing.T) {
	be := hodapitest.New(t)
	stubCoursePage(be, sampleAssignments)

	v := NewPage(be.Client(), "c1", 3, 2025).Mount(context.Background())

	require.NotNil(t, v.Course)
	assert.Equal(t, "CS301", v.Course.Code)
	assert.Len(t, v.Faculty, 3)
	assert.True(t, v.AvailableEnabled)
	require.Len(t, v.Available, 1)
	assert.Equal(t, hodapi.ID("f3"), v.Available[0].ID)
	assert.Empty(t, v.Alerts)
}

func TestPage_NoTermDisablesAvailableFaculty(t *testing.T) {
	be := hodapitest.New(t)
	stubCoursePage(be, sampleAssignments)

	v := NewPage(be.Client(), "c1", 0, 0).Mount(context.Background())

	assert.False(t, v.AvailableEnabled)
	assert.Empty(t, v.Available)
	assert.Equal(t, 0, be.Calls(routeAvailable))
}

func TestPage_CourseFallsBackToAllCourses(t *testing.T) {
	be := hodapitest.New(t)
	be.JSON(routeCourse, http.StatusInternalServerError, map[string]any{"message": "boom"})
	be.JSON(routeAllCourses, http.StatusOK, map[string]any{"data": map[string]any{"courses": []map[string]any{
		{"id": "c0", "code": "CS100"},
		{"id": "c1", "code": "CS301"},
	}}})
	be.JSON(routeAssignments, http.StatusOK, []any{})
	be.JSON(routeFaculties, http.StatusOK, []any{})
	be.JSON(routeAvailable, http.StatusOK, []any{})

	v := NewPage(be.Client(), "c1", 3, 2025).Mount(context.Background())

	require.NotNil(t, v.Course)
	assert.Equal(t, "CS301", v.Course.Code)
	assert.Empty(t, v.Alerts)
	assert.Equal(t, 1, be.Calls(routeAllCourses))
}

func TestPage_NotFoundIsEmptyWithoutBanner(t *testing.T) {
	be := hodapitest.New(t)
	be.JSON(routeCourse, http.StatusOK, map[string]any{"id": "c1"})
	be.JSON(routeAssignments, http.StatusNotFound, map[string]any{"message": "No assignments"})
	be.JSON(routeFaculties, http.StatusOK, []any{})
	be.JSON(routeAvailable, http.StatusOK, []any{})

	v := NewPage(be.Client(), "c1", 3, 2025).Mount(context.Background())

	assert.Empty(t, v.Assignments)
	assert.NotNil(t, v.Assignments)
	assert.Empty(t, v.Error)
}

func TestPage_ServerErrorSetsBannerAndEmptiesList(t *testing.T) {
	be := hodapitest.New(t)
	be.JSON(routeCourse, http.StatusOK, map[string]any{"id": "c1"})
	be.JSON(routeAssignments, http.StatusInternalServerError, map[string]any{"error": "database unavailable"})
	be.JSON(routeFaculties, http.StatusOK, []any{})
	be.JSON(routeAvailable, http.StatusOK, []any{})

	v := NewPage(be.Client(), "c1", 3, 2025).Mount(context.Background())

	assert.Empty(t, v.Assignments)
	assert.Equal(t, "database unavailable", v.Error)
}

func TestPage_CreateWithMissingFieldsSendsNothing(t *testing.T) {
	be := hodapitest.New(t)
	stubCoursePage(be, sampleAssignments)
	be.JSON(routeAssign, http.StatusCreated, map[string]any{"success": true})

	p := NewPage(be.Client(), "c1", 3, 2025)
	p.OpenCreate()

	v, err := p.Create(context.Background(), CreateForm{})
	require.Error(t, err)

	var fields helper.FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Equal(t, "Please select a faculty member", v.FieldErrors["faculty_id"])
	assert.Equal(t, "Please select a semester", v.FieldErrors["semester"])
	assert.Equal(t, "Please select a year", v.FieldErrors["year"])
	assert.True(t, v.CreateOpen)
	assert.Equal(t, 0, be.Calls(routeAssign))
}

func TestPage_CreateSuccessClosesModalAndRefreshes(t *testing.T) {
	be := hodapitest.New(t)
	stubCoursePage(be, sampleAssignments)
	be.JSON(routeAssign, http.StatusCreated, map[string]any{"success": true})

	p := NewPage(be.Client(), "c1", 3, 2025)
	p.Mount(context.Background())
	p.OpenCreate()

	v, err := p.Create(context.Background(), CreateForm{FacultyID: "f3", Semester: 3, Year: 2025, AssessmentMode: " Quiz "})
	require.NoError(t, err)

	assert.False(t, v.CreateOpen)
	assert.Equal(t, 1, be.Calls(routeAssign))
	assert.Equal(t, 2, be.Calls(routeAssignments))
	assert.Equal(t, 2, be.Calls(routeAvailable))

	var sent map[string]any
	for _, r := range be.Requests() {
		if r.Method == http.MethodPost {
			require.NoError(t, json.Unmarshal(r.Body, &sent))
		}
	}
	assert.Equal(t, "f3", sent["facultyId"])
	assert.Equal(t, "Quiz", sent["assessmentMode"])
	assert.NotContains(t, sent, "teachingMethodology")
}

func TestPage_CreateFailureRaisesAlert(t *testing.T) {
	be := hodapitest.New(t)
	stubCoursePage(be, sampleAssignments)
	be.JSON(routeAssign, http.StatusConflict, map[string]any{"error": "Faculty already assigned"})

	p := NewPage(be.Client(), "c1", 3, 2025)
	p.OpenCreate()

	v, err := p.Create(context.Background(), CreateForm{FacultyID: "f1", Semester: 3, Year: 2025})
	require.Error(t, err)
	assert.True(t, v.CreateOpen)
	assert.Equal(t, []string{"Faculty already assigned"}, v.Alerts)
}

func TestPage_UpdateSendsOnlyChangedFields(t *testing.T) {
	be := hodapitest.New(t)
	stubCoursePage(be, sampleAssignments)
	be.JSON(routeUpdate, http.StatusOK, map[string]any{"success": true})

	p := NewPage(be.Client(), "c1", 3, 2025)
	p.Mount(context.Background())
	key := hodapi.AssignmentKey{CourseID: "c1", FacultyID: "f1", Semester: 3, Year: 2025}

	same := hodapi.ID("f1")
	lecture := "Lecture"
	v, err := p.Update(context.Background(), key, UpdateForm{NewFacultyID: &same, TeachingMethodology: &lecture})
	require.NoError(t, err)
	assert.Equal(t, "No changes to save", v.Notice)
	assert.Equal(t, 0, be.Calls(routeUpdate))

	target := hodapi.ID("f3")
	_, err = p.Update(context.Background(), key, UpdateForm{NewFacultyID: &target, TeachingMethodology: &lecture})
	require.NoError(t, err)
	require.Equal(t, 1, be.Calls(routeUpdate))

	var sent map[string]any
	for _, r := range be.Requests() {
		if r.Method == http.MethodPut {
			assert.Equal(t, "/hod/courses/c1/assignments/f1/3/2025", r.Path)
			require.NoError(t, json.Unmarshal(r.Body, &sent))
		}
	}
	assert.Equal(t, map[string]any{"newFacultyId": "f3"}, sent)
}

func TestPage_UpdateRejectsAlreadyAssignedFaculty(t *testing.T) {
	be := hodapitest.New(t)
	stubCoursePage(be, sampleAssignments)
	be.JSON(routeUpdate, http.StatusOK, map[string]any{"success": true})

	p := NewPage(be.Client(), "c1", 3, 2025)
	p.Mount(context.Background())
	key := hodapi.AssignmentKey{CourseID: "c1", FacultyID: "f1", Semester: 3, Year: 2025}

	candidates := p.ReassignCandidates(key)
	require.Len(t, candidates, 1)
	assert.Equal(t, hodapi.ID("f3"), candidates[0].ID)

	taken := hodapi.ID("2")
	v, err := p.Update(context.Background(), key, UpdateForm{NewFacultyID: &taken})
	require.Error(t, err)
	assert.Contains(t, v.FieldErrors, "new_faculty_id")
	assert.Equal(t, 0, be.Calls(routeUpdate))
}

func TestPage_DeleteRequiresConfirmation(t *testing.T) {
	be := hodapitest.New(t)
	stubCoursePage(be, sampleAssignments)
	be.JSON(routeRemove, http.StatusOK, map[string]any{"success": true})

	p := NewPage(be.Client(), "c1", 3, 2025)
	before := p.Mount(context.Background())
	key := hodapi.AssignmentKey{CourseID: "c1", FacultyID: "f1", Semester: 3, Year: 2025}

	after, err := p.Delete(context.Background(), key, false)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, 0, be.Calls(routeRemove))

	_, err = p.Delete(context.Background(), key, true)
	require.NoError(t, err)
	assert.Equal(t, 1, be.Calls(routeRemove))
	assert.Equal(t, 2, be.Calls(routeAssignments))
	assert.Equal(t, 2, be.Calls(routeAvailable))
}

func TestPage_ClosedPageIgnoresResponses(t *testing.T) {
	be := hodapitest.New(t)
	stubCoursePage(be, sampleAssignments)

	p := NewPage(be.Client(), "c1", 3, 2025)
	p.Close()
	v := p.Mount(context.Background())

	assert.Nil(t, v.Course)
	assert.Empty(t, v.Assignments)
	assert.Empty(t, v.Faculty)
	assert.Equal(t, 1, be.Calls(routeAssignments))
}

func TestPage_StaleTermResponseIsDiscarded(t *testing.T) {
	be := hodapitest.New(t)
	be.JSON(routeAvailable, http.StatusOK, []any{})

	release := make(chan struct{})
	be.Handle(routeAssignments, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("semester") == "3" {
			<-release
			hodapitest.Reply(w, http.StatusOK, sampleAssignments)
			return
		}
		hodapitest.Reply(w, http.StatusOK, []any{})
	})

	p := NewPage(be.Client(), "c1", 3, 2025)
	done := make(chan struct{})
	go func() {
		p.loadAssignments(context.Background())
		close(done)
	}()

	require.Eventually(t, func() bool { return be.Calls(routeAssignments) == 1 }, timeout, tick)
	v := p.SelectTerm(context.Background(), 5, 2025)
	assert.Empty(t, v.Assignments)

	close(release)
	<-done
	assert.Empty(t, p.View().Assignments)
	assert.Equal(t, 5, p.View().Semester)
}

func TestLoadWorkload_Totals(t *testing.T) {
	be := hodapitest.New(t)
	be.JSON("GET /hod/faculties/{facultyId}/workload", http.StatusOK, map[string]any{"data": map[string]any{
		"facultyId": 7,
		"summary": []map[string]any{
			{"year": 2025, "semester": 5, "totalCredits": 7, "courseCount": 2},
			{"year": 2025, "semester": 3, "totalCredits": 4, "courseCount": 1},
		},
		"assignments": []map[string]any{
			{"courseId": "c1", "courseCode": "CS301", "credits": 4, "semester": 3, "year": 2025},
			{"courseId": "c2", "courseCode": "CS501", "credits": 3, "semester": 5, "year": 2025},
			{"courseId": "c3", "courseCode": "CS502", "credits": 4, "semester": 5, "year": 2025},
		},
	}})

	v, err := LoadWorkload(context.Background(), be.Client(), "7", 2025)
	require.NoError(t, err)

	assert.Equal(t, hodapi.ID("7"), v.FacultyID)
	assert.Equal(t, 11, v.TotalCredits)
	assert.Equal(t, 3, v.TotalCourses)
	require.Len(t, v.Summary, 2)
	assert.Equal(t, 3, v.Summary[0].Semester)
	assert.Len(t, v.Assignments, 3)
	assert.Equal(t, "year=2025", be.Requests()[0].Query)
}
