package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"campusswap/internal/domain"
)

func TestWriteErrorMapsDomainErrors(t *testing.T) {
	m := messages{validation: "bad input", notFound: "gone"}
	cases := []struct {
		err    error
		status int
		msg    string
	}{
		{fmt.Errorf("%w: title required", domain.ErrValidation), http.StatusBadRequest, "bad input"},
		{domain.ErrConflict, http.StatusConflict, msgEmailInUse},
		{domain.ErrUnauthenticated, http.StatusUnauthorized, "Unauthorized: No token provided."},
		{fmt.Errorf("%w: %w", domain.ErrForbidden, domain.ErrTokenExpired), http.StatusForbidden, "Forbidden: Invalid token."},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, msgInvalidCredentials},
		{domain.ErrNotFound, http.StatusNotFound, "gone"},
		{domain.ErrNotFoundOrForbidden, http.StatusNotFound, "gone"},
		{errors.New("disk on fire"), http.StatusInternalServerError, msgInternal},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		writeError(rec, httptest.NewRequest(http.MethodGet, "/api/items", nil), tc.err, m)
		if rec.Code != tc.status {
			t.Fatalf("%v: status = %d, want %d", tc.err, rec.Code, tc.status)
		}
		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["error"] != tc.msg {
			t.Fatalf("%v: error = %q, want %q", tc.err, body["error"], tc.msg)
		}
	}
}
