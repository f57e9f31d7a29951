package telemetry

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type captureSink struct {
	events []Event
	err    error
}

func (s *captureSink) Report(ctx context.Context, ev Event) error {
	s.events = append(s.events, ev)
	return s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEmitSamplesSuccessEvents(t *testing.T) {
	sink := &captureSink{}
	r := NewReporter(sink, 0.12, discardLogger())

	r.sample = func() float64 { return 0.5 }
	r.Emit(context.Background(), Event{Stage: "analyze_event", Status: StatusParseSuccess})
	if len(sink.events) != 0 {
		t.Fatalf("out-of-sample success event emitted: %+v", sink.events)
	}

	r.sample = func() float64 { return 0.05 }
	r.Emit(context.Background(), Event{Stage: "analyze_event", Status: StatusParseSuccess})
	if len(sink.events) != 1 {
		t.Fatalf("in-sample success event dropped, got %d events", len(sink.events))
	}
}

func TestEmitAlwaysReportsNonSuccess(t *testing.T) {
	sink := &captureSink{}
	r := NewReporter(sink, 0.12, discardLogger())
	r.sample = func() float64 { return 0.99 }

	for _, status := range []Status{StatusParseFallback, StatusParseError, StatusAPIError} {
		r.Emit(context.Background(), Event{Stage: "analyze_event", Status: status})
	}

	if len(sink.events) != 3 {
		t.Fatalf("expected 3 events regardless of sampling, got %d", len(sink.events))
	}
}

func TestEmitSwallowsSinkErrors(t *testing.T) {
	sink := &captureSink{err: errors.New("endpoint down")}
	r := NewReporter(sink, 0.12, discardLogger())

	// Must not panic or propagate anything.
	r.Emit(context.Background(), Event{Stage: "precheck", Status: StatusAPIError})
	if len(sink.events) != 1 {
		t.Fatalf("delivery not attempted, got %d events", len(sink.events))
	}
}

func TestEmitNilSinkIsNoop(t *testing.T) {
	r := NewReporter(nil, 0.12, discardLogger())
	r.Emit(context.Background(), Event{Status: StatusParseError})

	var nilReporter *Reporter
	nilReporter.Emit(context.Background(), Event{Status: StatusParseError})
}

func TestNewReporterClampsSampleRate(t *testing.T) {
	for _, rate := range []float64{0, -1, 1.5} {
		r := NewReporter(&captureSink{}, rate, discardLogger())
		if r.sampleRate != DefaultSampleRate {
			t.Errorf("rate %v not clamped to default, got %v", rate, r.sampleRate)
		}
	}
}

func TestHTTPSinkReport(t *testing.T) {
	var gotAuth, gotContentType string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		gotAuth = req.Header.Get("Authorization")
		gotContentType = req.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(req.Body)
	}))
	defer srv.Close()

	sink := NewHTTPSink(srv.URL, "secret-token")
	err := sink.Report(context.Background(), Event{Stage: "analyze_event", Status: StatusParseFallback})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer secret-token" {
		t.Errorf("unexpected auth header %q", gotAuth)
	}
	if gotContentType != "application/json" {
		t.Errorf("unexpected content type %q", gotContentType)
	}
	if want := `"status":"parse_fallback"`; !strings.Contains(string(gotBody), want) {
		t.Errorf("body %s missing %q", gotBody, want)
	}
}

func TestHTTPSinkReportErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	sink := NewHTTPSink(srv.URL, "")
	if err := sink.Report(context.Background(), Event{Status: StatusParseError}); err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}
