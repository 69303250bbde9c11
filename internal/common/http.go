package common

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP returns the best guess of the caller address: the first
// X-Forwarded-For hop, then X-Real-IP, then the socket peer.
func ClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	addr := strings.TrimSpace(r.RemoteAddr)
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}

// ClientKey is ClientIP with a stable fallback, suitable as a rate limit key.
func ClientKey(r *http.Request) string {
	if ip := ClientIP(r); ip != "" {
		return ip
	}
	return "anonymous"
}
