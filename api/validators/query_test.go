package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/baxterbids/bidboard/pkg/errors"
)

func TestParseQueryInt(t *testing.T) {
	r := httptest.NewRequest("GET", "/rfqs?limit=25&bad=x&big=900", nil)

	value, err := ParseQueryInt(r, "limit", 50, 1, 200)
	require.NoError(t, err)
	assert.Equal(t, 25, value)

	value, err = ParseQueryInt(r, "missing", 50, 1, 200)
	require.NoError(t, err)
	assert.Equal(t, 50, value)

	_, err = ParseQueryInt(r, "bad", 50, 1, 200)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = ParseQueryInt(r, "big", 50, 1, 200)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "abc", SanitizeString("  abcdef ", 3))
	assert.Equal(t, "rotary", SanitizeString(" rotary ", 0))
	assert.Equal(t, "acme supply co", SanitizeString("acme \t  supply\nco", 0))
	assert.Equal(t, "acmesupply", SanitizeString("acme\x00supply\x1b", 0))
	assert.Equal(t, "Müller", SanitizeString("Müller GmbH", 6))
	assert.Equal(t, "acme", SanitizeString("acme supply", 5))
}

type statusBody struct {
	Status string `json:"status" validate:"required,quote_status"`
	Notes  string `json:"notes" validate:"max=5"`
}

func TestDecodeJSONBody(t *testing.T) {
	var body statusBody
	r := httptest.NewRequest("PATCH", "/", strings.NewReader(`{"status":"accepted"}`))
	require.NoError(t, DecodeJSONBody(r, &body))
	assert.Equal(t, "accepted", body.Status)

	r = httptest.NewRequest("PATCH", "/", strings.NewReader(`{"status":"maybe","notes":"too long"}`))
	err := DecodeJSONBody(r, &statusBody{})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "must be a known quote status", details["statusBody.status"])
	assert.Equal(t, "must be at most 5", details["statusBody.notes"])

	r = httptest.NewRequest("PATCH", "/", strings.NewReader(`{"status":"accepted","extra":1}`))
	assert.True(t, pkgerrors.IsCode(DecodeJSONBody(r, &statusBody{}), pkgerrors.CodeValidation))
}
