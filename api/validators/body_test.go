package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/dgrayson/cardkeeper-backend/pkg/errors"
)

type samplePayload struct {
	URL      string `json:"url" validate:"required"`
	Quantity int    `json:"quantity" validate:"omitempty,gte=1"`
}

func TestDecodeJSONBodyValid(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"url":"https://archidekt.com/decks/1","quantity":2}`))

	var payload samplePayload
	require.NoError(t, DecodeJSONBody(req, &payload))
	assert.Equal(t, 2, payload.Quantity)
}

func TestDecodeJSONBodyMalformed(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"url":`))

	var payload samplePayload
	err := DecodeJSONBody(req, &payload)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestDecodeJSONBodyUnknownField(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"url":"x","bogus":true}`))

	var payload samplePayload
	err := DecodeJSONBody(req, &payload)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestDecodeJSONBodyFieldErrorsUseJSONNames(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"quantity":0,"url":""}`))

	var payload samplePayload
	err := DecodeJSONBody(req, &payload)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "url")
}
