package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindToStatus(t *testing.T) {
	testCases := []struct {
		err    error
		status int
	}{
		{Validation("bad input"), http.StatusBadRequest},
		{Conflict("already exists"), http.StatusBadRequest},
		{Authentication("invalid credentials"), http.StatusUnauthorized},
		{Authorization("forbidden"), http.StatusForbidden},
		{NotFound("missing"), http.StatusNotFound},
		{Storage(errors.New("connection refused")), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.status, HTTPStatus(KindOf(tc.err)))
	}
}

func TestUnclassifiedErrorIsStorage(t *testing.T) {
	err := errors.New("raw driver error")

	assert.Equal(t, KindStorage, KindOf(err))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(KindOf(err)))
}

func TestStorageMessageNotLeaked(t *testing.T) {
	cause := errors.New("pq: password authentication failed for user postgres")
	err := Storage(cause)

	assert.Equal(t, "internal server error", Message(err))
	assert.NotContains(t, Message(err), "postgres")
	// The cause stays reachable for logging
	assert.True(t, errors.Is(err, cause))
}

func TestMessagePassthrough(t *testing.T) {
	assert.Equal(t, "post not found", Message(NotFound("post not found")))
}

func TestWrappedKindSurvives(t *testing.T) {
	err := fmt.Errorf("while reacting: %w", Authorization("not yours"))

	assert.Equal(t, KindAuthorization, KindOf(err))
}
