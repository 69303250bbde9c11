package common

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.5:4431"
	require.Equal(t, "10.0.0.5", ClientIP(req))

	req.Header.Set("X-Real-IP", "198.51.100.7")
	require.Equal(t, "198.51.100.7", ClientIP(req))

	req.Header.Set("X-Forwarded-For", " 203.0.113.1 , 10.0.0.1")
	require.Equal(t, "203.0.113.1", ClientIP(req))

	require.Equal(t, "", ClientIP(nil))
	empty := httptest.NewRequest(http.MethodGet, "/", nil)
	empty.RemoteAddr = ""
	require.Equal(t, "anonymous", ClientKey(empty))
}
