// AngelaMos | 2026
// response_test.go

package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestJSONError_AppError(t *testing.T) {
	rec := httptest.NewRecorder()
	JSONError(rec, UnauthorizedError("token not found"))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	resp := decode(t, rec)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "UNAUTHORIZED", resp.Error.Code)
	assert.Equal(t, "token not found", resp.Error.Message)
}

func TestJSONError_InternalDetailsHidden(t *testing.T) {
	rec := httptest.NewRecorder()
	JSONError(rec, fmt.Errorf("query users: %w", errors.New("pq: relation missing")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "relation")
	resp := decode(t, rec)
	assert.Equal(t, "INTERNAL_ERROR", resp.Error.Code)
	assert.Equal(t, "internal server error", resp.Error.Message)
}

func TestJSONError_SentinelMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("x: %w", ErrInvalidInput), http.StatusBadRequest},
		{fmt.Errorf("x: %w", ErrTokenInvalid), http.StatusUnauthorized},
		{fmt.Errorf("x: %w", ErrForbidden), http.StatusForbidden},
		{fmt.Errorf("x: %w", ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("x: %w", ErrDuplicateKey), http.StatusConflict},
		{fmt.Errorf("x: %w", ErrConflict), http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		JSONError(rec, tt.err)
		assert.Equal(t, tt.status, rec.Code, tt.err.Error())
	}
}

func TestTokenInvalidIsUnauthorized(t *testing.T) {
	assert.ErrorIs(t, ErrTokenInvalid, ErrUnauthorized)
	assert.ErrorIs(t, TokenInvalidError(), ErrUnauthorized)
}

func TestPaginated(t *testing.T) {
	rec := httptest.NewRecorder()
	Paginated(rec, []string{"a"}, 2, 10, 21)

	resp := decode(t, rec)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 3, resp.Meta.TotalPages)
	assert.True(t, resp.Success)
}

func TestFormatValidationError(t *testing.T) {
	type req struct {
		Email string `validate:"required,email"`
		Title string `validate:"min=3"`
	}

	err := validator.New().Struct(req{Email: "nope", Title: "ab"})
	msg := FormatValidationError(err)

	assert.Contains(t, msg, "email must be a valid email")
	assert.Contains(t, msg, "title must be at least 3 characters")
	assert.Equal(t, "invalid request", FormatValidationError(errors.New("x")))
}
