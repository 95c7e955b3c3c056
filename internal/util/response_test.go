package util

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, rec
}

func TestFromErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{E(KindValidation, "bad"), http.StatusBadRequest},
		{ErrInvalidCredentials, http.StatusUnauthorized},
		{ErrPermissionDenied, http.StatusForbidden},
		{ErrQuizNotFound, http.StatusNotFound},
		{ErrAttemptCompleted, http.StatusConflict},
		{ErrTooManyLogins, http.StatusTooManyRequests},
	}

	for _, tc := range cases {
		c, rec := newTestContext()
		FromError(c, tc.err)
		if rec.Code != tc.want {
			t.Fatalf("FromError(%v) wrote %d, want %d", tc.err, rec.Code, tc.want)
		}
	}
}

func TestFailWritesEnvelope(t *testing.T) {
	c, rec := newTestContext()
	Fail(c, http.StatusServiceUnavailable, "Database unavailable")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rec.Code)
	}
	if body := rec.Body.String(); body == "" {
		t.Fatal("empty response body")
	}
}
