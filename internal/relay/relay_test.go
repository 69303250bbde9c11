package relay

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/bouquet-order/internal/resilience"
)

func orderFields() url.Values {
	v := url.Values{}
	v.Set("order_ref", "ref-1")
	v.Set("total_price", "45.50")
	v.Set("name", "Ana")
	return v
}

func TestFormRelayPostsFields(t *testing.T) {
	received := make(chan *http.Request, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		received <- r
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":"true","message":"The form was submitted successfully."}`))
	}))
	defer srv.Close()

	relay, err := NewFormRelay(srv.URL, time.Second, nil)
	require.NoError(t, err)
	require.NoError(t, relay.Submit(context.Background(), orderFields()))

	r := <-received
	require.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
	require.Equal(t, "application/json", r.Header.Get("Accept"))
	require.Equal(t, "45.50", r.PostForm.Get("total_price"))
	require.Equal(t, "ref-1", r.PostForm.Get("order_ref"))
}

func TestFormRelayFailures(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"server error": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
		"client error": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		},
		"explicit rejection": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"success":"false","message":"This form needs Activation."}`))
		},
		"boolean rejection": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"success":false}`))
		},
	}
	for name, handler := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(handler)
			defer srv.Close()
			relay, err := NewFormRelay(srv.URL, time.Second, nil)
			require.NoError(t, err)
			require.Error(t, relay.Submit(context.Background(), orderFields()))
		})
	}
}

func TestFormRelayAcceptsHTMLConfirmation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>Thanks!</html>"))
	}))
	defer srv.Close()
	relay, err := NewFormRelay(srv.URL, time.Second, nil)
	require.NoError(t, err)
	require.NoError(t, relay.Submit(context.Background(), orderFields()))
}

func TestFormRelayOpenBreaker(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	breaker := resilience.NewBreaker(1, 1, time.Hour)
	relay, err := NewFormRelay(srv.URL, time.Second, breaker)
	require.NoError(t, err)
	require.Error(t, relay.Submit(context.Background(), orderFields()))
	err = relay.Submit(context.Background(), orderFields())
	require.ErrorIs(t, err, resilience.ErrOpenCircuit)
	require.Equal(t, int32(1), calls.Load())
}

func TestValidateEndpoint(t *testing.T) {
	require.NoError(t, ValidateEndpoint("https://formsubmit.co/ajax/orders@example.com"))
	require.NoError(t, ValidateEndpoint("http://localhost:8081/relay"))
	require.Error(t, ValidateEndpoint("http://relay.example.com"))
	require.Error(t, ValidateEndpoint("ftp://relay.example.com"))
	require.Error(t, ValidateEndpoint("https://"))
}

func TestStubLogsAndSucceeds(t *testing.T) {
	var buf bytes.Buffer
	stub := Stub{Logger: zerolog.New(&buf)}
	require.NoError(t, stub.Submit(context.Background(), orderFields()))
	require.Contains(t, buf.String(), `"order_ref":"ref-1"`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, stub.Submit(ctx, orderFields()), context.Canceled)
}
