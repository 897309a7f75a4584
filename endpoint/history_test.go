package endpoint

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_CreateRules(t *testing.T) {
	s := setupTestServer(t)

	code, resp := s.do(t, http.MethodPost, "/api/histories", map[string]interface{}{})
	require.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "This field is required.", fieldErrors(t, resp)["patient_id"])

	code, resp = s.do(t, http.MethodPost, "/api/histories", map[string]interface{}{"patient_id": 999})
	require.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Select a valid choice. That choice is not one of the available choices.", fieldErrors(t, resp)["patient_id"])

	patientID := s.createID(t, "/api/patients", map[string]interface{}{"name": "Jane Doe"})
	code, resp = s.do(t, http.MethodPost, "/api/histories", map[string]interface{}{
		"patient_id": patientID,
		"height":     "1234.56",
		"weight":     "64.123",
	})
	require.Equal(t, http.StatusBadRequest, code)
	errs := fieldErrors(t, resp)
	assert.Equal(t, "Ensure that there are no more than 5 digits in total.", errs["height"])
	assert.Equal(t, "Ensure that there are no more than 2 decimal places.", errs["weight"])

	id := s.createID(t, "/api/histories", map[string]interface{}{
		"patient_id": patientID,
		"height":     "165.50",
		"gestation":  true,
	})
	code, resp = s.do(t, http.MethodGet, fmt.Sprintf("/api/histories/%d", id), nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, dataMap(t, resp)["gestation"])
	assert.Equal(t, false, dataMap(t, resp)["menstruation"])
}

func TestHistory_ListByPatient(t *testing.T) {
	s := setupTestServer(t)
	a := s.createID(t, "/api/patients", map[string]interface{}{"name": "A"})
	b := s.createID(t, "/api/patients", map[string]interface{}{"name": "B"})
	s.createID(t, "/api/histories", map[string]interface{}{"patient_id": a})
	s.createID(t, "/api/histories", map[string]interface{}{"patient_id": a})
	s.createID(t, "/api/histories", map[string]interface{}{"patient_id": b})

	_, resp := s.do(t, http.MethodGet, fmt.Sprintf("/api/histories?patient_id=%d", a), nil)
	assert.Equal(t, 2.0, dataMap(t, resp)["total"])
	_, resp = s.do(t, http.MethodGet, "/api/histories", nil)
	assert.Equal(t, 3.0, dataMap(t, resp)["total"])

	code, resp := s.do(t, http.MethodGet, "/api/histories?patient_id=abc", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid patient_id", resp["msg"])
}

func TestHistory_SoftDeleteAndRestore(t *testing.T) {
	s := setupTestServer(t)
	patientID := s.createID(t, "/api/patients", map[string]interface{}{"name": "Jane Doe"})
	id := s.createID(t, "/api/histories", map[string]interface{}{"patient_id": patientID, "observation": "Stable"})
	path := fmt.Sprintf("/api/histories/%d", id)

	code, _ := s.do(t, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, code)

	_, resp := s.do(t, http.MethodGet, "/api/histories", nil)
	assert.Equal(t, 0.0, dataMap(t, resp)["total"])
	_, resp = s.do(t, http.MethodGet, "/api/histories?include_deleted=1", nil)
	assert.Equal(t, 1.0, dataMap(t, resp)["total"])

	code, resp = s.do(t, http.MethodPost, path+"/restore", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Nil(t, dataMap(t, resp)["deleted_at"])
	assert.Equal(t, "Stable", dataMap(t, resp)["observation"])

	code, _ = s.do(t, http.MethodDelete, path+"/purge", nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = s.do(t, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, code)
}
