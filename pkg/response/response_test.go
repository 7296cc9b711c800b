package response

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clapboard/membership/pkg/apperr"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		err        error
		wantStatus int
		wantCode   APIResponseCode
	}{
		{apperr.NotFound("missing"), http.StatusNotFound, APIResponseCodeNotFound},
		{apperr.Conflict("dup"), http.StatusConflict, APIResponseCodeConflict},
		{apperr.Validation("bad"), http.StatusBadRequest, APIResponseCodeBadRequest},
		{apperr.Unauthorized("nope"), http.StatusUnauthorized, APIResponseCodeUnauthorized},
		{errors.New("anything else"), http.StatusInternalServerError, APIResponseCodeError},
	}
	for _, tc := range cases {
		status, code := Classify(tc.err)
		require.Equal(t, tc.wantStatus, status)
		require.Equal(t, tc.wantCode, code)
	}
}

func TestEnvelopeHelpers(t *testing.T) {
	ok := OKT(map[string]int{"n": 1})
	require.Equal(t, APIResponseCodeOK, ok.Code)
	require.Equal(t, 1, ok.Data["n"])

	bad := ErrorT[any](APIResponseCodeBadRequest, "missing field")
	require.Equal(t, APIResponseCodeBadRequest, bad.Code)
	require.Equal(t, "bad request", bad.Message)
}
