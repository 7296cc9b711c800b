package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSentinelMatching(t *testing.T) {
	cases := []struct {
		err      error
		sentinel error
	}{
		{NotFound("subscription %s not found", "abc"), ErrNotFound},
		{Conflict("user already has a pending subscription"), ErrConflict},
		{Validation("price must be >= 0"), ErrValidation},
		{Unauthorized("missing token"), ErrUnauthorized},
		{Internal("boom"), ErrInternal},
	}
	for _, tc := range cases {
		require.ErrorIs(t, tc.err, tc.sentinel)
	}
}

func TestWrappedErrorsStillMatch(t *testing.T) {
	inner := NotFound("package missing")
	wrapped := fmt.Errorf("subscribe: %w", inner)
	require.ErrorIs(t, wrapped, ErrNotFound)
	require.NotErrorIs(t, wrapped, ErrConflict)
}

func TestMessageFormatting(t *testing.T) {
	err := NotFound("subscription %s not found", "sub-1")
	require.Contains(t, err.Error(), "sub-1")
	require.False(t, errors.Is(err, ErrValidation))
}
