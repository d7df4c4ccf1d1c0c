package dto

import "obehod_backend/internals/hodapi"

type MappingBody struct {
	CLOID hodapi.ID `json:"cloId"`
	POID  hodapi.ID `json:"poId,omitempty"`
	PSOID hodapi.ID `json:"psoId,omitempty"`
	Value int       `json:"value"`
}

type SaveMappingsRequest struct {
	CourseID hodapi.ID     `json:"courseId,omitempty"`
	Mappings []MappingBody `json:"mappings"`
}

func (r SaveMappingsRequest) ToMappings() []hodapi.CLOMapping {
	out := make([]hodapi.CLOMapping, 0, len(r.Mappings))
	for _, m := range r.Mappings {
		out = append(out, hodapi.CLOMapping{CLOID: m.CLOID, POID: m.POID, PSOID: m.PSOID, Value: m.Value})
	}
	return out
}
