package main

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	assignments "obehod_backend/internals/features/hod/assignments/service"
	closService "obehod_backend/internals/features/hod/clos/service"
	"obehod_backend/internals/hodapi"
	"obehod_backend/internals/hodapi/hodapitest"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	asJSON, cloSearch, cloBloom = false, "", ""
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute(), out.String())
	return out.String()
}

func TestRenderWorkload(t *testing.T) {
	var buf bytes.Buffer
	renderWorkload(&buf, assignments.WorkloadView{
		FacultyID: "f1",
		Faculty:   &hodapi.Faculty{Name: "Dr. Rao"},
		Summary: []hodapi.WorkloadSummary{
			{Year: 2025, Semester: 1, CourseCount: 2, TotalCredits: 7},
		},
		Assignments: []hodapi.WorkloadDetail{
			{CourseCode: "CS301", CourseName: "Databases", Credits: 4, Semester: 1, Year: 2025},
		},
		TotalCourses: 2,
		TotalCredits: 7,
	})

	out := buf.String()
	assert.Contains(t, out, "Workload: Dr. Rao")
	assert.Contains(t, out, "CS301")
	assert.Contains(t, out, "S1 2025")
	assert.Contains(t, out, "TOTAL")
}

func TestRenderCLOs_EmptyStates(t *testing.T) {
	var buf bytes.Buffer
	renderCLOs(&buf, closService.View{CourseID: "c1", EmptyState: closService.EmptyNone})
	assert.Contains(t, buf.String(), "No CLOs created for this course yet.")

	buf.Reset()
	renderCLOs(&buf, closService.View{CourseID: "c1", EmptyState: closService.EmptyNoMatch})
	assert.Contains(t, buf.String(), "No CLOs match the search.")
}

func TestCLOsCommand(t *testing.T) {
	be := hodapitest.New(t)
	be.JSON("GET /hod/course/{courseId}/clos", http.StatusOK, map[string]any{"clos": []map[string]any{
		{"id": 1, "cloCode": "CLO1", "description": "Explain normal forms", "bloomLevel": "UNDERSTAND", "threshold": 50, "isActive": true},
		{"id": 2, "cloCode": "CLO2", "description": "Design a schema", "bloomLevel": "CREATE", "threshold": 60, "isActive": true},
	}})
	be.JSON("GET /hod/course/{id}", http.StatusOK, map[string]any{"course": map[string]any{"id": "c1", "code": "CS301", "name": "Databases"}})

	out := run(t, "clos", "c1", "--base-url", be.URL(), "--token", "cli-token", "--bloom", "create")

	assert.Contains(t, out, "CLOs: CS301 Databases")
	assert.Contains(t, out, "CLO2")
	assert.NotContains(t, out, "Explain normal forms")
	assert.Contains(t, out, "1 of 2 shown")
	for _, r := range be.Requests() {
		assert.Equal(t, "Bearer cli-token", r.Auth)
	}
}

func TestReportsOverviewJSON(t *testing.T) {
	be := hodapitest.New(t)
	be.JSON("GET /hod/dashboard/stats", http.StatusOK, map[string]any{"totalProgrammes": 3})
	be.JSON("GET /hod/assignments/stats", http.StatusOK, map[string]any{"totalCourses": 10, "unassignedCourses": 1})

	out := run(t, "reports", "overview", "--base-url", be.URL(), "--json")

	assert.Contains(t, out, `"coverage": 90`)
	assert.Contains(t, out, `"totalProgrammes": 3`)
}
