package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type trackingBody struct {
	*bytes.Reader
	closed bool
}

func (b *trackingBody) Close() error {
	b.closed = true
	return nil
}

func TestDrainAndCloseRequest(t *testing.T) {
	body := &trackingBody{Reader: bytes.NewReader([]byte(`{"steps": 1200}`))}
	req := httptest.NewRequest(http.MethodPost, "/workouts", nil)
	req.Body = body

	handler := DrainAndCloseRequest()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.True(t, body.closed)
	assert.Zero(t, body.Len())
}

func TestDrainAndCloseRequest_LargeBodyIsCapped(t *testing.T) {
	body := &trackingBody{Reader: bytes.NewReader([]byte(strings.Repeat("x", maxDrainBytes+100)))}
	req := httptest.NewRequest(http.MethodPut, "/profile", nil)
	req.Body = body

	DrainAndCloseRequest()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).
		ServeHTTP(httptest.NewRecorder(), req)

	assert.True(t, body.closed)
	assert.Equal(t, 100, body.Len())
}
