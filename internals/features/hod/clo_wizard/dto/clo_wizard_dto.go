package dto

import (
	"obehod_backend/internals/features/hod/clo_wizard/service"
	"obehod_backend/internals/hodapi"
)

type StartWizardRequest struct {
	Count  int        `json:"count"`
	Drafts []FormBody `json:"drafts,omitempty"`
}

func (r StartWizardRequest) DraftForms() []service.Form {
	out := make([]service.Form, 0, len(r.Drafts))
	for _, d := range r.Drafts {
		out = append(out, d.ToForm())
	}
	return out
}

// FormBody is one step's form as the page sends it.
type FormBody struct {
	Description string `json:"description"`
	BloomLevel  string `json:"bloom_level"`
	Version     string `json:"version"`
	Threshold   int    `json:"threshold"`
}

func (b FormBody) ToForm() service.Form {
	return service.Form{
		Description: b.Description,
		BloomLevel:  hodapi.BloomLevel(b.BloomLevel),
		Version:     b.Version,
		Threshold:   b.Threshold,
	}
}
