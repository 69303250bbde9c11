package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/noah-isme/bouquet-order/internal/resilience"
)

const maxResponseBody = 64 << 10

// FormRelay posts order fields to a FormSubmit style relay, the same request a
// native HTML form post would make.
type FormRelay struct {
	Endpoint  string
	HTTP      resilience.HTTPClient
	UserAgent string
}

// NewFormRelay validates the endpoint and builds a relay with a traced client.
func NewFormRelay(endpoint string, timeout time.Duration, breaker *resilience.Breaker) (*FormRelay, error) {
	if err := ValidateEndpoint(endpoint); err != nil {
		return nil, err
	}
	return &FormRelay{
		Endpoint: endpoint,
		HTTP: resilience.HTTPClient{
			Client:  HTTPClient(timeout),
			Breaker: breaker,
			Timeout: timeout,
		},
	}, nil
}

// relayResponse is the JSON answer of the relay's ajax endpoint. success is a
// string in practice but booleans are accepted too.
type relayResponse struct {
	Success json.RawMessage `json:"success"`
	Message string          `json:"message"`
}

// Submit sends fields once. Transport errors, non-2xx responses and an explicit
// success=false answer are failures.
func (f *FormRelay) Submit(ctx context.Context, fields url.Values) error {
	ctx, span := otel.Tracer("relay.FormRelay").Start(ctx, "FormRelay.Submit")
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.Endpoint, strings.NewReader(fields.Encode()))
	if err != nil {
		span.RecordError(err)
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	ua := f.UserAgent
	if ua == "" {
		ua = "bouquet-order-relay/1.0"
	}
	req.Header.Set("User-Agent", ua)

	resp, err := f.HTTP.Do(ctx, req)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("relay post: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("relay read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("relay rejected order: status %d", resp.StatusCode)
		span.RecordError(err)
		return err
	}
	if err := checkRelayBody(body); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

func checkRelayBody(body []byte) error {
	var parsed relayResponse
	if len(strings.TrimSpace(string(body))) == 0 || json.Unmarshal(body, &parsed) != nil {
		// plain text or HTML confirmation pages count as accepted
		return nil
	}
	switch strings.Trim(strings.ToLower(string(parsed.Success)), `"`) {
	case "false", "0":
		msg := strings.TrimSpace(parsed.Message)
		if msg == "" {
			msg = "no reason given"
		}
		return fmt.Errorf("relay rejected order: %s", msg)
	}
	return nil
}

// ValidateEndpoint accepts https URLs, and plain http only for loopback hosts.
func ValidateEndpoint(raw string) error {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid relay url: %w", err)
	}
	if parsed.Host == "" {
		return errors.New("relay url must include host")
	}
	switch parsed.Scheme {
	case "https":
		return nil
	case "http":
		host := parsed.Hostname()
		if host == "localhost" || host == "127.0.0.1" || host == "::1" {
			return nil
		}
		return errors.New("http relay url only allowed for localhost")
	default:
		return errors.New("relay url must be http or https")
	}
}

// HTTPClient returns an http.Client whose outbound calls are traced.
func HTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport.(*http.Transport).Clone()),
	}
}
