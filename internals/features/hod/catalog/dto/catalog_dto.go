package dto

import (
	"strconv"
	"strings"

	helper "obehod_backend/internals/helpers"
	"obehod_backend/internals/hodapi"
)

var ProgrammeMessages = map[string]string{
	"name.required": "Programme name is required",
	"name.max":      "Programme name is too long",
	"code.max":      "Programme code is too long",
}

var CourseMessages = map[string]string{
	"code.required":        "Course code is required",
	"name.required":        "Course name is required",
	"type.required":        "Please select a course type",
	"semester":             "Semester must be between 1 and 12",
	"credits":              "Credits must be between 0 and 40",
	"programmeId.required": "Please select a programme",
}

func NormalizeProgramme(in hodapi.ProgrammeInput) hodapi.ProgrammeInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Code = strings.ToUpper(strings.TrimSpace(in.Code))
	in.Description = strings.TrimSpace(in.Description)
	return in
}

func NormalizeCourse(in hodapi.CourseInput) hodapi.CourseInput {
	in.Code = strings.ToUpper(strings.TrimSpace(in.Code))
	in.Name = strings.TrimSpace(in.Name)
	in.Type = strings.TrimSpace(in.Type)
	in.ProgrammeID = hodapi.ID(strings.TrimSpace(in.ProgrammeID.String()))
	return in
}

type CourseQuery struct {
	ProgrammeID string `query:"programmeId"`
	Semester    string `query:"semester"`
}

// Filter drops values the backend would reject instead of failing the call.
func (q CourseQuery) Filter() hodapi.CourseFilter {
	f := hodapi.CourseFilter{ProgrammeID: hodapi.ID(strings.TrimSpace(q.ProgrammeID))}
	if n, err := strconv.Atoi(strings.TrimSpace(q.Semester)); err == nil && n > 0 {
		f.Semester = n
	}
	return f
}

type CLOCountRequest struct {
	Count int `json:"count"`
}

type CLOBody struct {
	CLOCode     string `json:"clo_code" validate:"omitempty,max=20"`
	Description string `json:"description" validate:"required,max=2000"`
	BloomLevel  string `json:"bloom_level" validate:"required,bloom"`
	Version     string `json:"version" validate:"omitempty,max=20"`
	Threshold   int    `json:"threshold"`
}

type BulkCLORequest struct {
	CLOs []CLOBody `json:"clos"`
}

var cloMessages = map[string]string{
	"description.required": "Description is required",
	"bloom_level.required": "Bloom's level is required",
	"bloom_level.bloom":    "Unknown Bloom's level",
}

// Inputs validates every CLO and numbers them CLO1..CLOn when no code is
// given. Field errors are keyed "clos[i].field".
func (r BulkCLORequest) Inputs() ([]hodapi.CLOInput, helper.FieldErrors) {
	if len(r.CLOs) == 0 {
		return nil, helper.FieldErrors{"clos": "Add at least one CLO"}
	}
	active := true
	out := make([]hodapi.CLOInput, 0, len(r.CLOs))
	var errs helper.FieldErrors
	for i, b := range r.CLOs {
		b.BloomLevel = strings.ToUpper(strings.TrimSpace(b.BloomLevel))
		b.Description = strings.TrimSpace(b.Description)
		if fe := helper.CheckForm(b, cloMessages); fe != nil {
			if errs == nil {
				errs = helper.FieldErrors{}
			}
			for k, v := range fe {
				errs["clos["+strconv.Itoa(i)+"]."+k] = v
			}
			continue
		}
		code := strings.TrimSpace(b.CLOCode)
		if code == "" {
			code = "CLO" + strconv.Itoa(i+1)
		}
		version := strings.TrimSpace(b.Version)
		if version == "" {
			version = "1.0"
		}
		threshold := b.Threshold
		if threshold == 0 {
			threshold = hodapi.ThresholdDefault
		}
		out = append(out, hodapi.CLOInput{
			CLOCode:     code,
			Description: b.Description,
			BloomLevel:  hodapi.BloomLevel(b.BloomLevel),
			Version:     version,
			Threshold:   hodapi.ClampThreshold(threshold),
			IsActive:    &active,
		})
	}
	if errs != nil {
		return nil, errs
	}
	return out, nil
}
