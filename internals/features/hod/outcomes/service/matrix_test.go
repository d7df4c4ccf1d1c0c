package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"obehod_backend/internals/hodapi"
	"obehod_backend/internals/hodapi/hodapitest"
)

func TestLoadMatrix(t *testing.T) {
	be := hodapitest.New(t)
	be.JSON("GET /hod/course/{courseId}/clos", http.StatusOK, map[string]any{"clos": []map[string]any{
		{"id": 1, "cloCode": "CLO1"},
		{"id": 2, "cloCode": "CLO2"},
	}})
	be.JSON("GET /hod/course/{courseId}/po-pso", http.StatusOK, map[string]any{
		"pos":  []map[string]any{{"id": "po1", "label": "PO1"}, {"id": "po2", "label": "PO2"}},
		"psos": []map[string]any{{"id": "pso1", "label": "PSO1"}},
	})
	be.JSON("GET /hod/clo/mappings/{courseId}", http.StatusOK, map[string]any{"mappings": []map[string]any{
		{"cloId": 1, "poId": "po2", "value": 3},
		{"cloId": 1, "psoId": "pso1", "value": 1},
		{"cloId": 9, "poId": "po1", "value": 2},
		{"cloId": 2, "poId": "po-unknown", "value": 2},
	}})

	m, err := LoadMatrix(context.Background(), be.Client(), "c1")
	require.NoError(t, err)

	require.Len(t, m.Rows, 2)
	assert.Equal(t, map[hodapi.ID]int{"po2": 3}, m.Rows[0].POs)
	assert.Equal(t, map[hodapi.ID]int{"pso1": 1}, m.Rows[0].PSOs)
	assert.Empty(t, m.Rows[1].POs)
	assert.Equal(t, 1, m.Mapped)
	assert.Equal(t, []string{"CLO2"}, m.Unmapped)
}

func TestLoadMatrix_NothingMappedYet(t *testing.T) {
	be := hodapitest.New(t)
	be.JSON("GET /hod/course/{courseId}/clos", http.StatusNotFound, map[string]any{"error": "no clos"})
	be.JSON("GET /hod/course/{courseId}/po-pso", http.StatusOK, map[string]any{})
	be.JSON("GET /hod/clo/mappings/{courseId}", http.StatusNotFound, nil)

	m, err := LoadMatrix(context.Background(), be.Client(), "c1")
	require.NoError(t, err)
	assert.Empty(t, m.Rows)
	assert.NotNil(t, m.POs)
	assert.NotNil(t, m.PSOs)
}

func TestLoadMatrix_OutcomeFailure(t *testing.T) {
	be := hodapitest.New(t)
	be.JSON("GET /hod/course/{courseId}/clos", http.StatusOK, []any{})
	be.JSON("GET /hod/course/{courseId}/po-pso", http.StatusInternalServerError, map[string]any{"message": "programme missing"})
	be.JSON("GET /hod/clo/mappings/{courseId}", http.StatusOK, []any{})

	_, err := LoadMatrix(context.Background(), be.Client(), "c1")
	require.Error(t, err)
	assert.Equal(t, "programme missing", hodapi.Message(err, "fallback"))
}

func TestCheckMappings(t *testing.T) {
	ok, errs := CheckMappings([]hodapi.CLOMapping{
		{CLOID: "1", POID: "po1", Value: 2},
		{CLOID: "1", PSOID: "pso1", Value: 0},
	})
	assert.Nil(t, errs)
	assert.Equal(t, []hodapi.CLOMapping{{CLOID: "1", POID: "po1", Value: 2}}, ok)

	_, errs = CheckMappings([]hodapi.CLOMapping{
		{POID: "po1", Value: 1},
		{CLOID: "1", POID: "po1", PSOID: "pso1", Value: 1},
		{CLOID: "1", Value: 1},
		{CLOID: "1", POID: "po1", Value: 4},
	})
	assert.Equal(t, "CLO is required", errs["mappings[0].cloId"])
	assert.Equal(t, "Map to exactly one PO or PSO", errs["mappings[1].poId"])
	assert.Equal(t, "Map to exactly one PO or PSO", errs["mappings[2].poId"])
	assert.Equal(t, "Strength must be between 0 and 3", errs["mappings[3].value"])
}
