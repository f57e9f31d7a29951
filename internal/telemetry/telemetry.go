/*
Package telemetry reports parse outcomes to an optional backend. Emission
must never block or fail an analysis: success events are sampled to bound
volume, fallback and error events always go out, and any transport error is
logged and swallowed.
*/
package telemetry

import (
	"context"
	"log/slog"
	"math/rand"
)

// DefaultSampleRate is the fraction of parse_success events reported.
const DefaultSampleRate = 0.12

type Status string

const (
	StatusParseSuccess  Status = "parse_success"
	StatusParseFallback Status = "parse_fallback"
	StatusParseError    Status = "parse_error"
	StatusAPIError      Status = "api_error"
)

// Event is one structured telemetry record.
type Event struct {
	Stage             string `json:"stage"`
	Status            Status `json:"status"`
	PageURL           string `json:"pageUrl,omitempty"`
	PageTitle         string `json:"pageTitle,omitempty"`
	ErrorMessage      string `json:"errorMessage,omitempty"`
	FinishReason      string `json:"finishReason,omitempty"`
	SampleReason      string `json:"sampleReason,omitempty"`
	RawResponseText   string `json:"rawResponseText,omitempty"`
	RecoveredJSONText string `json:"recoveredJsonText,omitempty"`
	ParsedEventName   string `json:"parsedEventName,omitempty"`
	ParsedStartDate   string `json:"parsedStartDate,omitempty"`
}

// Sink delivers an event to wherever telemetry lives.
type Sink interface {
	Report(ctx context.Context, ev Event) error
}

// Reporter decides whether an event is sent and swallows delivery errors.
type Reporter struct {
	sink       Sink
	sampleRate float64
	sample     func() float64
	logger     *slog.Logger
}

// NewReporter builds a reporter. A nil sink disables emission entirely.
func NewReporter(sink Sink, sampleRate float64, logger *slog.Logger) *Reporter {
	if sampleRate <= 0 || sampleRate > 1 {
		sampleRate = DefaultSampleRate
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Reporter{
		sink:       sink,
		sampleRate: sampleRate,
		sample:     rand.Float64,
		logger:     logger,
	}
}

// Emit reports one event. parse_success events are sampled at the
// configured rate; everything else is always reported.
func (r *Reporter) Emit(ctx context.Context, ev Event) {
	if r == nil || r.sink == nil {
		return
	}
	if ev.Status == StatusParseSuccess && r.sample() >= r.sampleRate {
		return
	}
	if err := r.sink.Report(ctx, ev); err != nil {
		r.logger.Warn("failed to report parse telemetry",
			"stage", ev.Stage, "status", ev.Status, "error", err)
	}
}
