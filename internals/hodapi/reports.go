package hodapi

import (
	"context"
	"net/url"

	"github.com/gofiber/fiber/v2"
)

// ReportService returns report payloads as the backend renders them.
type ReportService struct{ c *Client }

// GET /reports/program-report?programId=
func (s *ReportService) ProgramReport(ctx context.Context, programmeID ID) (Result[RawJSON], error) {
	q := url.Values{}
	q.Set("programId", programmeID.String())
	return sendRaw(ctx, s.c, fiber.MethodGet, "/reports/program-report", q, nil)
}

// GET /hod/reports/course/{courseId}/contributions
func (s *ReportService) CourseContributions(ctx context.Context, courseID ID) (Result[RawJSON], error) {
	return sendRaw(ctx, s.c, fiber.MethodGet, "/hod/reports/course/"+seg(courseID)+"/contributions", nil, nil)
}
