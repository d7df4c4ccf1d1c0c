package dto

import (
	"strings"

	"obehod_backend/internals/hodapi"
)

type ProgramReportQuery struct {
	ProgramID   string `query:"programId"`
	ProgrammeID string `query:"programmeId"`
}

// ID accepts either spelling of the programme id.
func (q ProgramReportQuery) ID() hodapi.ID {
	if id := strings.TrimSpace(q.ProgramID); id != "" {
		return hodapi.ID(id)
	}
	return hodapi.ID(strings.TrimSpace(q.ProgrammeID))
}
