package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Status string `json:"status"`
	}

	var p payload
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"status":"Confirmed"}`))
	require.NoError(t, DecodeJSON(r, &p))
	assert.Equal(t, "Confirmed", p.Status)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(``))
	assert.ErrorIs(t, DecodeJSON(r, &p), ErrEmptyBody)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"state":"x"}`))
	assert.Error(t, DecodeJSON(r, &p))
}

func TestRespondValidationError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondValidationError(rec, "invalid booking", []FieldIssue{{Field: "phone", Message: "is required"}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 400, body.Code)
	assert.Equal(t, "invalid booking", body.Message)
	assert.Equal(t, []FieldIssue{{Field: "phone", Message: "is required"}}, body.Details)
}

func TestRespondInternalError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondInternalError(rec)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"code":500,"message":"internal server error"}`, rec.Body.String())
}
