package resilience

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBreakerTransitions(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	breaker := NewBreaker(2, 0.5, time.Minute).WithTarget("form_relay")
	breaker.now = func() time.Time { return now }
	ctx := context.Background()

	require.True(t, breaker.Allow(ctx))
	breaker.Report(ctx, false)
	require.True(t, breaker.Allow(ctx))
	breaker.Report(ctx, false)
	require.Equal(t, Open, breaker.State())
	require.False(t, breaker.Allow(ctx), "breaker should open after threshold exceeded")

	now = now.Add(2 * time.Minute)
	require.True(t, breaker.Allow(ctx), "breaker should admit a probe after cool off")
	require.Equal(t, HalfOpen, breaker.State())
	require.False(t, breaker.Allow(ctx), "only one probe at a time")

	breaker.Report(ctx, true)
	require.Equal(t, Closed, breaker.State())
	require.True(t, breaker.Allow(ctx))
}

func TestBreakerFailedProbeReopens(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	breaker := NewBreaker(1, 1, time.Second)
	breaker.now = func() time.Time { return now }
	ctx := context.Background()

	breaker.Report(ctx, false)
	require.Equal(t, Open, breaker.State())
	now = now.Add(2 * time.Second)
	require.True(t, breaker.Allow(ctx))
	breaker.Report(ctx, false)
	require.Equal(t, Open, breaker.State())
	require.False(t, breaker.Allow(ctx))
}

func TestBackoffWithJitter(t *testing.T) {
	base := 100 * time.Millisecond
	require.Equal(t, base, Backoff(base, 1, 0))
	require.Equal(t, base*4, Backoff(base, 3, 0))

	d := Backoff(base, 2, 0.2)
	require.GreaterOrEqual(t, d, base*2-(base*2/5))
	require.LessOrEqual(t, d, base*2+(base*2/5))
}

func TestHTTPClientSingleAttemptByDefault(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	cl := HTTPClient{Client: srv.Client(), Breaker: NewBreaker(5, 0.5, time.Minute)}
	req, err := http.NewRequest(http.MethodPost, srv.URL, strings.NewReader("a=1"))
	require.NoError(t, err)
	_, err = cl.Do(context.Background(), req)
	require.Error(t, err)
	require.Equal(t, int32(1), hits.Load())
}

func TestHTTPClientRetriesReplayBody(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if string(body) != "a=1" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cl := HTTPClient{Client: srv.Client(), MaxAttempts: 2, BaseBackoff: time.Millisecond, Timeout: time.Second}
	req, err := http.NewRequest(http.MethodPost, srv.URL, strings.NewReader("a=1"))
	require.NoError(t, err)
	resp, err := cl.Do(context.Background(), req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, int32(2), hits.Load())
}

func TestHTTPClientOpenBreakerShortCircuits(t *testing.T) {
	breaker := NewBreaker(1, 1, time.Hour)
	breaker.Report(context.Background(), false)
	cl := HTTPClient{Client: http.DefaultClient, Breaker: breaker}
	req, err := http.NewRequest(http.MethodGet, "http://127.0.0.1:0", nil)
	require.NoError(t, err)
	_, err = cl.Do(context.Background(), req)
	require.ErrorIs(t, err, ErrOpenCircuit)
}
