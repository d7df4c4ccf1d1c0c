package hodapi

import (
	"context"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// AssignmentService covers faculty rosters, course assignments and workload.
type AssignmentService struct{ c *Client }

func termQuery(semester, year int) url.Values {
	q := url.Values{}
	if semester > 0 {
		q.Set("semester", strconv.Itoa(semester))
	}
	if year > 0 {
		q.Set("year", strconv.Itoa(year))
	}
	return q
}

// GET /hod/faculties
func (s *AssignmentService) Faculties(ctx context.Context) (Result[[]Faculty], error) {
	return getList[Faculty](ctx, s.c, "/hod/faculties", nil, "faculties", "faculty")
}

// GET /hod/courses/{courseId}/available-faculties?semester&year
func (s *AssignmentService) AvailableFaculties(ctx context.Context, courseID ID, semester, year int) (Result[[]Faculty], error) {
	path := "/hod/courses/" + seg(courseID) + "/available-faculties"
	return getList[Faculty](ctx, s.c, path, termQuery(semester, year), "faculties", "availableFaculties", "faculty")
}

// GET /hod/courses/{courseId}/assignments?semester&year
func (s *AssignmentService) ForCourse(ctx context.Context, courseID ID, semester, year int) (Result[[]Assignment], error) {
	path := "/hod/courses/" + seg(courseID) + "/assignments"
	return getList[Assignment](ctx, s.c, path, termQuery(semester, year), "assignments")
}

// POST /hod/courses/{courseId}/assign
func (s *AssignmentService) Assign(ctx context.Context, courseID ID, req AssignRequest) (Result[RawJSON], error) {
	return sendRaw(ctx, s.c, fiber.MethodPost, "/hod/courses/"+seg(courseID)+"/assign", nil, req)
}

// PUT /hod/courses/{courseId}/assignments/{facultyId}/{semester}/{year}
func (s *AssignmentService) Update(ctx context.Context, key AssignmentKey, u AssignmentUpdate) (Result[RawJSON], error) {
	return sendRaw(ctx, s.c, fiber.MethodPut, key.path(), nil, u)
}

// DELETE /hod/courses/{courseId}/assignments/{facultyId}/{semester}/{year}
func (s *AssignmentService) Remove(ctx context.Context, key AssignmentKey) (Result[RawJSON], error) {
	return sendRaw(ctx, s.c, fiber.MethodDelete, key.path(), nil, nil)
}

// GET /hod/faculties/{facultyId}/workload?year
func (s *AssignmentService) Workload(ctx context.Context, facultyID ID, year int) (Result[Workload], error) {
	path := "/hod/faculties/" + seg(facultyID) + "/workload"
	res, err := sendObject[Workload](ctx, s.c, fiber.MethodGet, path, termQuery(0, year), nil, "workload")
	if res.Data.Summary == nil {
		res.Data.Summary = []WorkloadSummary{}
	}
	if res.Data.Assignments == nil {
		res.Data.Assignments = []WorkloadDetail{}
	}
	return res, err
}

// GET /hod/assignments?semester&year&facultyId&courseId&page&limit&status
func (s *AssignmentService) Department(ctx context.Context, f AssignmentFilter) (Result[[]Assignment], error) {
	return getList[Assignment](ctx, s.c, "/hod/assignments", f.values(), "assignments")
}

// GET /hod/assignments/stats
func (s *AssignmentService) Stats(ctx context.Context) (Result[AssignmentStats], error) {
	return sendObject[AssignmentStats](ctx, s.c, fiber.MethodGet, "/hod/assignments/stats", nil, nil, "stats")
}
