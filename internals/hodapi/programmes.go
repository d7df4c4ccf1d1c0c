package hodapi

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// ProgrammeService covers /hod/programmes.
type ProgrammeService struct{ c *Client }

// GET /hod/programmes
func (s *ProgrammeService) List(ctx context.Context) (Result[[]Programme], error) {
	return getList[Programme](ctx, s.c, "/hod/programmes", nil, "programmes")
}

// GET /hod/programmes/{id}
func (s *ProgrammeService) Get(ctx context.Context, id ID) (Result[Programme], error) {
	return sendObject[Programme](ctx, s.c, fiber.MethodGet, "/hod/programmes/"+seg(id), nil, nil, "programme")
}

// POST /hod/programmes
func (s *ProgrammeService) Create(ctx context.Context, in ProgrammeInput) (Result[Programme], error) {
	return sendObject[Programme](ctx, s.c, fiber.MethodPost, "/hod/programmes", nil, in, "programme")
}

// PUT /hod/programmes/{id}
func (s *ProgrammeService) Update(ctx context.Context, id ID, in ProgrammeInput) (Result[Programme], error) {
	return sendObject[Programme](ctx, s.c, fiber.MethodPut, "/hod/programmes/"+seg(id), nil, in, "programme")
}

// DELETE /hod/programmes/{id}
func (s *ProgrammeService) Delete(ctx context.Context, id ID) (Result[RawJSON], error) {
	return sendRaw(ctx, s.c, fiber.MethodDelete, "/hod/programmes/"+seg(id), nil, nil)
}
