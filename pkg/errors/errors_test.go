// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessageFormatting(t *testing.T) {
	t.Run("message only", func(t *testing.T) {
		err := NewValidation("mapping file is malformed")
		assert.Equal(t, "mapping file is malformed", err.Error())
	})

	t.Run("message with cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := NewServiceUnavailable("registry unreachable", cause)
		assert.Equal(t, "registry unreachable: connection refused", err.Error())
	})

	t.Run("multiple causes are joined", func(t *testing.T) {
		first := errors.New("first failure")
		second := errors.New("second failure")
		err := NewUnexpected("sync aborted", first, second)

		assert.ErrorIs(t, err, first)
		assert.ErrorIs(t, err, second)
	})
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("token rejected")

	tests := []struct {
		name string
		err  error
	}{
		{name: "Validation", err: NewValidation("bad input", cause)},
		{name: "BadRequest", err: NewBadRequest("bad request", cause)},
		{name: "NotFound", err: NewNotFound("missing", cause)},
		{name: "Conflict", err: NewConflict("already exists", cause)},
		{name: "Unauthorized", err: NewUnauthorized("denied", cause)},
		{name: "Unexpected", err: NewUnexpected("broken", cause)},
		{name: "ServiceUnavailable", err: NewServiceUnavailable("down", cause)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.err, cause, "errors.Is traverses the wrapped cause")

			u, ok := tc.err.(interface{ Unwrap() error })
			require.True(t, ok)
			require.NotNil(t, u.Unwrap())
			assert.ErrorIs(t, u.Unwrap(), cause)
		})
	}

	t.Run("no cause unwraps to nil", func(t *testing.T) {
		err := NewNotFound("nothing wrapped")
		assert.Nil(t, err.Unwrap())
	})
}

// apiStatusError mimics a transport error carrying a status code, the shape
// the HTTP clients surface.
type apiStatusError struct {
	status int
}

func (e apiStatusError) Error() string {
	return fmt.Sprintf("status %d", e.status)
}

func TestErrorsAs(t *testing.T) {
	cause := apiStatusError{status: 429}
	wrapped := NewServiceUnavailable("rate limited by the registry", cause)

	var extracted apiStatusError
	require.True(t, errors.As(wrapped, &extracted))
	assert.Equal(t, 429, extracted.status)
}
