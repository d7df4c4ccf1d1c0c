package hodapi

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// CourseService covers the course routes. The backend mixes /hod/courses
// (collection) and /hod/course/{id} (item).
type CourseService struct{ c *Client }

// GET /hod/courses
func (s *CourseService) List(ctx context.Context, f CourseFilter) (Result[[]Course], error) {
	return getList[Course](ctx, s.c, "/hod/courses", f.values(), "courses")
}

// GET /hod/all-courses
func (s *CourseService) All(ctx context.Context) (Result[[]Course], error) {
	return getList[Course](ctx, s.c, "/hod/all-courses", nil, "courses")
}

// POST /hod/courses
func (s *CourseService) Create(ctx context.Context, in CourseInput) (Result[Course], error) {
	return sendObject[Course](ctx, s.c, fiber.MethodPost, "/hod/courses", nil, in, "course")
}

// GET /hod/course/{id}
func (s *CourseService) Get(ctx context.Context, id ID) (Result[Course], error) {
	return sendObject[Course](ctx, s.c, fiber.MethodGet, "/hod/course/"+seg(id), nil, nil, "course")
}

// PUT /hod/course/{id}
func (s *CourseService) Update(ctx context.Context, id ID, in CourseInput) (Result[Course], error) {
	return sendObject[Course](ctx, s.c, fiber.MethodPut, "/hod/course/"+seg(id), nil, in, "course")
}

// DELETE /hod/course/{id}
func (s *CourseService) Delete(ctx context.Context, id ID) (Result[RawJSON], error) {
	return sendRaw(ctx, s.c, fiber.MethodDelete, "/hod/course/"+seg(id), nil, nil)
}

// AutoCode asks the backend for the next free course code of a programme.
// GET /hod/program/{id}/auto-code
func (s *CourseService) AutoCode(ctx context.Context, programmeID ID) (Result[AutoCode], error) {
	return sendObject[AutoCode](ctx, s.c, fiber.MethodGet, "/hod/program/"+seg(programmeID)+"/auto-code", nil, nil)
}
