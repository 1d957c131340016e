package responses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/dgrayson/cardkeeper-backend/pkg/errors"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorEnvelope {
	t.Helper()
	var envelope ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

func TestWriteSuccessIsBarePayload(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccess(rec, map[string]any{"cards": []string{}, "total_count": 0})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "cards")
	assert.NotContains(t, body, "data", "success payloads are not enveloped")
}

func TestWriteSuccessStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccessStatus(rec, http.StatusCreated, map[string]string{"message": "ok"})
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestWriteErrorValidation(t *testing.T) {
	rec := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeValidation, "scryfall_id or name is required")
	WriteError(context.Background(), nil, rec, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	envelope := decodeError(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", envelope.Error.Code)
	assert.Equal(t, "scryfall_id or name is required", envelope.Error.Message)
}

func TestWriteErrorNotFoundSurfacesMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(context.Background(), nil, rec, pkgerrors.New(pkgerrors.CodeNotFound, "card not found"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "card not found", decodeError(t, rec).Error.Message)
}

func TestWriteErrorUpstreamSurfacesCause(t *testing.T) {
	rec := httptest.NewRecorder()
	cause := errors.New("status 503: service unavailable")
	WriteError(context.Background(), nil, rec, pkgerrors.Wrap(pkgerrors.CodeUpstream, cause, "scryfall request failed"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	envelope := decodeError(t, rec)
	assert.Equal(t, "UPSTREAM_ERROR", envelope.Error.Code)
	assert.Equal(t, "scryfall request failed: status 503: service unavailable", envelope.Error.Message)
}

func TestWriteErrorImportFailedSurfacesCause(t *testing.T) {
	rec := httptest.NewRecorder()
	cause := errors.New("deck 999 not found on archidekt")
	WriteError(context.Background(), nil, rec, pkgerrors.Wrap(pkgerrors.CodeImportFailed, cause, "deck import failed"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "deck import failed: deck 999 not found on archidekt", decodeError(t, rec).Error.Message)
}

func TestWriteErrorInternalHidesMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(context.Background(), nil, rec, pkgerrors.New(pkgerrors.CodeInternal, "pool exhausted on node 3"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	envelope := decodeError(t, rec)
	assert.Equal(t, "internal server error", envelope.Error.Message)
}

func TestWriteErrorUntypedBecomesInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(context.Background(), nil, rec, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL_ERROR", decodeError(t, rec).Error.Code)
}

func TestWriteErrorDetailsOnlyWhenAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
		WithDetails(map[string]string{"quantity": "must be at least 1"})
	WriteError(context.Background(), nil, rec, err)
	assert.NotNil(t, decodeError(t, rec).Error.Details)

	rec = httptest.NewRecorder()
	err = pkgerrors.New(pkgerrors.CodeInternal, "boom").WithDetails("secret")
	WriteError(context.Background(), nil, rec, err)
	assert.Nil(t, decodeError(t, rec).Error.Details)
}
