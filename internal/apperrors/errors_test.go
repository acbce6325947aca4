package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validation("bad"), http.StatusBadRequest},
		{InvalidState("bad state"), http.StatusBadRequest},
		{Unauthenticated("who"), http.StatusUnauthorized},
		{Forbidden("no"), http.StatusForbidden},
		{NotFound("gone"), http.StatusNotFound},
		{Conflict("dup"), http.StatusConflict},
		{Internal(errors.New("boom")), http.StatusInternalServerError},
		{errors.New("unclassified"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestInternalHidesCause(t *testing.T) {
	cause := errors.New("pq: connection refused")
	err := Internal(cause)

	if msg := ClientMessage(err); msg != "internal server error" {
		t.Fatalf("client message leaks: %q", msg)
	}
	if !errors.Is(err, cause) {
		t.Fatal("cause not wrapped for server-side logs")
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("applying: %w", Conflict("already applied"))
	if KindOf(err) != KindConflict {
		t.Fatalf("expected conflict kind through wrap, got %d", KindOf(err))
	}
	if ClientMessage(err) != "already applied" {
		t.Fatalf("unexpected message %q", ClientMessage(err))
	}
}
