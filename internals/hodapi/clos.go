package hodapi

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type CLOService struct{ c *Client }

// GET /hod/course/{courseId}/clos
func (s *CLOService) ListByCourse(ctx context.Context, courseID ID) (Result[[]CLO], error) {
	return getList[CLO](ctx, s.c, "/hod/course/"+seg(courseID)+"/clos", nil, "clos")
}

// GET /hod/clo/{id}
func (s *CLOService) Get(ctx context.Context, id ID) (Result[CLO], error) {
	return sendObject[CLO](ctx, s.c, fiber.MethodGet, "/hod/clo/"+seg(id), nil, nil, "clo")
}

// POST /hod/clo/createClo/{courseId}
func (s *CLOService) Create(ctx context.Context, courseID ID, in CLOInput) (Result[CLO], error) {
	return sendObject[CLO](ctx, s.c, fiber.MethodPost, "/hod/clo/createClo/"+seg(courseID), nil, in, "clo")
}

// PUT /hod/clo/{id}
func (s *CLOService) Update(ctx context.Context, id ID, in CLOInput) (Result[CLO], error) {
	return sendObject[CLO](ctx, s.c, fiber.MethodPut, "/hod/clo/"+seg(id), nil, in, "clo")
}

// DELETE /hod/clo/{id}
func (s *CLOService) Delete(ctx context.Context, id ID) (Result[RawJSON], error) {
	return sendRaw(ctx, s.c, fiber.MethodDelete, "/hod/clo/"+seg(id), nil, nil)
}

// ValidateCount asks whether count more CLOs may be created for the course.
// POST /hod/course/{courseId}/clo-count
func (s *CLOService) ValidateCount(ctx context.Context, courseID ID, count int) (Result[CLOCount], error) {
	body := map[string]int{"count": count}
	return sendObject[CLOCount](ctx, s.c, fiber.MethodPost, "/hod/course/"+seg(courseID)+"/clo-count", nil, body)
}

// BulkError reports where CreateMany stopped. CLOs created before Index stay
// persisted on the backend; nothing is rolled back.
type BulkError struct {
	Index int
	Err   error
}

func (e *BulkError) Error() string {
	return fmt.Sprintf("create clo %d: %v", e.Index+1, e.Err)
}

func (e *BulkError) Unwrap() error { return e.Err }

// CreateMany creates the CLOs one by one, in order, and stops at the first
// failure. The returned slice holds the CLOs created so far.
func (s *CLOService) CreateMany(ctx context.Context, courseID ID, inputs []CLOInput) ([]CLO, error) {
	created := make([]CLO, 0, len(inputs))
	for i, in := range inputs {
		res, err := s.Create(ctx, courseID, in)
		if err != nil {
			return created, &BulkError{Index: i, Err: err}
		}
		created = append(created, res.Data)
	}
	return created, nil
}

// SaveMappings stores CLO→PO/PSO mappings in one call.
// POST /hod/clo/map
func (s *CLOService) SaveMappings(ctx context.Context, req MappingRequest) (Result[RawJSON], error) {
	if req.Mappings == nil {
		req.Mappings = []CLOMapping{}
	}
	return sendRaw(ctx, s.c, fiber.MethodPost, "/hod/clo/map", nil, req)
}

// GET /hod/clo/mappings/{courseId}
func (s *CLOService) Mappings(ctx context.Context, courseID ID) (Result[[]CLOMapping], error) {
	return getList[CLOMapping](ctx, s.c, "/hod/clo/mappings/"+seg(courseID), nil, "mappings")
}
