package hodapi

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

type POPSOService struct{ c *Client }

// ForCourse lists the POs and PSOs a course's CLOs can map to.
// GET /hod/course/{courseId}/po-pso
func (s *POPSOService) ForCourse(ctx context.Context, courseID ID) (Result[OutcomeSet], error) {
	res, err := sendObject[OutcomeSet](ctx, s.c, fiber.MethodGet, "/hod/course/"+seg(courseID)+"/po-pso", nil, nil)
	if res.Data.POs == nil {
		res.Data.POs = []Outcome{}
	}
	if res.Data.PSOs == nil {
		res.Data.PSOs = []Outcome{}
	}
	return res, err
}

// MapCLOs saves a course's CLO→PO/PSO matrix.
// POST /hod/course/{courseId}/map-clos
func (s *POPSOService) MapCLOs(ctx context.Context, courseID ID, mappings []CLOMapping) (Result[RawJSON], error) {
	body := MappingRequest{CourseID: courseID, Mappings: mappings}
	return sendRaw(ctx, s.c, fiber.MethodPost, "/hod/course/"+seg(courseID)+"/map-clos", nil, body)
}
