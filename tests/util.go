package testutil

import (
	"net/http/httptest"
	"testing"
)

// StartBackend spins up the API double and returns it with its base URL.
// The server is torn down with the test.
func StartBackend(t *testing.T) (*Backend, string) {
	t.Helper()
	b := NewBackend()
	srv := httptest.NewServer(b.App)
	t.Cleanup(srv.Close)
	return b, srv.URL
}
