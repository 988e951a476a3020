package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	cases := []struct {
		errType ErrorType
		want    int
	}{
		{ValidationError, http.StatusBadRequest},
		{InvalidStatusTransitionError, http.StatusBadRequest},
		{ExceedsTotalError, http.StatusBadRequest},
		{NotFoundError, http.StatusNotFound},
		{AuthError, http.StatusUnauthorized},
		{ForbiddenError, http.StatusForbidden},
		{ConflictError, http.StatusConflict},
		{DatabaseError, http.StatusInternalServerError},
		{ServerError, http.StatusInternalServerError},
		{ErrorType("SOMETHING_NEW"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(string(tc.errType), func(t *testing.T) {
			err := New(tc.errType, "message", "")
			assert.Equal(t, tc.want, err.GetHTTPStatus())
		})
	}
}

func TestWrap(t *testing.T) {
	raw := fmt.Errorf("connection refused")
	err := Wrap(raw, DatabaseError, "query failed")

	require.NotNil(t, err)
	assert.Equal(t, DatabaseError, err.Type)
	assert.ErrorIs(t, err, raw)
	assert.Contains(t, err.Error(), "query failed")

	assert.Nil(t, Wrap(nil, DatabaseError, "no-op"))
}

func TestNotFound(t *testing.T) {
	err := NotFound("trip", "trip-1")

	assert.Equal(t, NotFoundError, err.Type)
	assert.Equal(t, "trip not found", err.Message)
	assert.Equal(t, http.StatusNotFound, err.GetHTTPStatus())
}

func TestInvalidStatusTransition(t *testing.T) {
	err := InvalidStatusTransition("COMPLETED", "ONGOING")

	assert.Equal(t, InvalidStatusTransitionError, err.Type)
	assert.Equal(t, http.StatusBadRequest, err.GetHTTPStatus())
	assert.Contains(t, err.Detail, "COMPLETED")
	assert.Contains(t, err.Detail, "ONGOING")
}

func TestExceedsTotal(t *testing.T) {
	err := ExceedsTotal("100.01", "100.00")

	assert.Equal(t, ExceedsTotalError, err.Type)
	assert.Equal(t, http.StatusBadRequest, err.GetHTTPStatus())
	assert.Contains(t, err.Detail, "100.01")
}

func TestErrorStringIncludesDetail(t *testing.T) {
	withDetail := New(ValidationError, "invalid expense", "amount must be positive")
	assert.Equal(t, "VALIDATION_ERROR: invalid expense (amount must be positive)", withDetail.Error())

	withoutDetail := New(ValidationError, "invalid expense", "")
	assert.Equal(t, "VALIDATION_ERROR: invalid expense", withoutDetail.Error())
}
