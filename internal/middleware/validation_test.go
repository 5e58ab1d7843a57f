package middleware

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test struct with validation tags
type testRequest struct {
	Username string  `json:"username" validate:"required"`
	Password string  `json:"password" validate:"required"`
	Rating   float64 `json:"rating" validate:"gte=0,lte=5"`
}

func decode(t *testing.T, body map[string]interface{}) error {
	t.Helper()
	reqBody, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", "/test", bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")

	var v testRequest
	return DecodeAndValidate(req, &v)
}

func TestProperty_RequiredFieldValidationWorks(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("missing required fields are rejected", prop.ForAll(
		func(includeUsername bool, includePassword bool) bool {
			body := map[string]interface{}{}
			if includeUsername {
				body["username"] = "admin"
			}
			if includePassword {
				body["password"] = "secret"
			}

			err := decode(t, body)
			if includeUsername && includePassword {
				return err == nil
			}
			return err != nil && IsValidationError(err)
		},
		gen.Bool(),
		gen.Bool(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_RatingRangeValidation(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("rating outside 0..5 is rejected", prop.ForAll(
		func(rating float64) bool {
			err := decode(t, map[string]interface{}{"username": "admin", "password": "secret", "rating": rating})
			if rating >= 0 && rating <= 5 {
				return err == nil
			}
			return err != nil
		},
		gen.Float64Range(-10, 10),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestFormatValidationErrors_UsesJSONNames(t *testing.T) {
	err := decode(t, map[string]interface{}{"rating": 7})
	require.Error(t, err)

	errs := FormatValidationErrors(err)
	fields := make([]string, len(errs))
	for i, e := range errs {
		fields[i] = e.Field
		assert.NotEmpty(t, e.Message)
	}
	assert.ElementsMatch(t, []string{"username", "password", "rating"}, fields)
}

func TestDecodeAndValidate_MalformedJSON(t *testing.T) {
	req := httptest.NewRequest("POST", "/test", strings.NewReader("{not json"))
	var v testRequest

	err := DecodeAndValidate(req, &v)
	require.Error(t, err)
	assert.False(t, IsValidationError(err))
	assert.Empty(t, FormatValidationErrors(err))
}
