package order

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/noah-isme/bouquet-order/internal/obs"
	"github.com/noah-isme/bouquet-order/internal/pricing"
)

// ErrSubmitFailed is returned when a valid order could not be handed to the relay.
var ErrSubmitFailed = errors.New("order submission failed")

// MsgSubmitFailed is shown to the customer when the relay rejects or loses an order.
const MsgSubmitFailed = "Sorry, we couldn't send your order. Please try again."

// ValidationError carries every validation message for a rejected order.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Messages) == 0 {
		return "order invalid"
	}
	return strings.Join(e.Messages, "\n")
}

// Submitter hands relay fields to the external order relay.
type Submitter interface {
	Submit(ctx context.Context, fields url.Values) error
}

// QuoteResult is the live price shown while the customer edits the form.
type QuoteResult struct {
	Counts    pricing.DerivedCounts `json:"counts"`
	Breakdown pricing.Breakdown     `json:"breakdown"`
	Display   Display               `json:"display"`
}

// SubmitResult describes an accepted order.
type SubmitResult struct {
	Reference string `json:"reference"`
	Total     string `json:"total"`
}

// Service prices and submits orders.
type Service struct {
	Tables    pricing.Tables
	Submitter Submitter
	Subject   string
	Logger    zerolog.Logger
	NewRef    func() string
}

// Quote prices the selection.
func (s *Service) Quote(sel pricing.Selection) QuoteResult {
	counts, bd := pricing.Quote(sel, s.Tables)
	if obs.QuotesTotal != nil {
		obs.QuotesTotal.Inc()
	}
	return QuoteResult{
		Counts:    counts,
		Breakdown: bd,
		Display:   NewDisplay(counts, bd),
	}
}

// Submit validates the selection and relays it. Validation failures return a
// *ValidationError; relay failures return ErrSubmitFailed.
func (s *Service) Submit(ctx context.Context, sel pricing.Selection) (SubmitResult, error) {
	if s == nil || s.Submitter == nil {
		return SubmitResult{}, errors.New("order service not configured")
	}
	ctx, span := otel.Tracer("order.Service").Start(ctx, "Service.Submit")
	defer span.End()

	counts, bd := pricing.Quote(sel, s.Tables)
	if msgs := Validate(sel); len(msgs) > 0 {
		recordSubmission("invalid")
		span.SetAttributes(attribute.Int("order.validation_errors", len(msgs)))
		return SubmitResult{}, &ValidationError{Messages: msgs}
	}

	ref := s.newRef()
	span.SetAttributes(
		attribute.String("order.ref", ref),
		attribute.Int64("order.total_cents", bd.Total),
	)
	payload := Project(ref, s.Subject, sel, counts, bd)

	start := time.Now()
	err := s.Submitter.Submit(ctx, payload.Fields())
	elapsed := time.Since(start)
	if err != nil {
		span.RecordError(err)
		recordSubmission("failed")
		observeRelay("failed", elapsed)
		s.Logger.Error().Err(err).Str("order_ref", ref).Msg("relay order")
		return SubmitResult{}, errors.Join(ErrSubmitFailed, err)
	}
	recordSubmission("accepted")
	observeRelay("accepted", elapsed)
	s.Logger.Info().
		Str("order_ref", ref).
		Int("bouquet_size", counts.BaseTotal).
		Int("rose_count", counts.RoseCount).
		Str("total", pricing.FormatMoney(bd.Total)).
		Msg("order relayed")
	return SubmitResult{Reference: ref, Total: pricing.FormatCurrency(bd.Total)}, nil
}

func (s *Service) newRef() string {
	if s.NewRef != nil {
		return s.NewRef()
	}
	return uuid.NewString()
}

func recordSubmission(result string) {
	if obs.OrderSubmissionsTotal != nil {
		obs.OrderSubmissionsTotal.WithLabelValues(result).Inc()
	}
}

func observeRelay(result string, d time.Duration) {
	if obs.RelayAttemptLatency != nil {
		obs.RelayAttemptLatency.WithLabelValues(result).Observe(obs.DurationMillis(d))
	}
}
