/*
Package pipeline orchestrates a full page analysis: host profile lookup,
the model call, best-effort response recovery, reconciliation against the
scraped signals, the bounded repair cycle, and final normalization. Every
stage outcome is reported through the telemetry reporter.
*/
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kbygtools/eventscout/internal/ai"
	"github.com/kbygtools/eventscout/internal/hostprofile"
	"github.com/kbygtools/eventscout/internal/reconcile"
	"github.com/kbygtools/eventscout/internal/recovery"
	"github.com/kbygtools/eventscout/internal/repair"
	"github.com/kbygtools/eventscout/internal/telemetry"
	"github.com/kbygtools/eventscout/internal/types"
)

const (
	stagePreCheck = "precheck"
	stageAnalyze  = "analyze_event"
	stageRepair   = "repair_missing_fields"
)

// ModelClient is the slice of the model client the pipeline drives.
type ModelClient interface {
	PreCheckEventPage(ctx context.Context, sig types.PageSignals, hostHints string) (ai.PreCheckResult, error)
	AnalyzeEventPage(ctx context.Context, sig types.PageSignals, profile ai.UserProfile, hostHints string) (types.ModelResponse, error)
	RepairMissingFields(ctx context.Context, missing []string, current types.EventRecord, sig types.PageSignals) (types.ModelResponse, error)
	CoachForPersona(ctx context.Context, persona types.Persona, rec types.EventRecord, profile ai.UserProfile, history []ai.ChatMessage, question string) (string, error)
	CoachForPerson(ctx context.Context, person types.Person, rec types.EventRecord, profile ai.UserProfile, history []ai.ChatMessage, question string) (string, error)
}

// Analyzer runs the end-to-end analysis for one page.
type Analyzer struct {
	ai        ModelClient
	hosts     *hostprofile.Service
	telemetry *telemetry.Reporter
	profile   ai.UserProfile
	logger    *slog.Logger
}

func New(client ModelClient, hosts *hostprofile.Service, reporter *telemetry.Reporter, profile ai.UserProfile, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{
		ai:        client,
		hosts:     hosts,
		telemetry: reporter,
		profile:   profile,
		logger:    logger,
	}
}

// PreCheck classifies whether the page is dedicated to a single event.
func (a *Analyzer) PreCheck(ctx context.Context, sig types.PageSignals) (ai.PreCheckResult, error) {
	hints := hostprofile.BuildHints(a.hosts.ProfileFor(ctx, sig.URL))

	result, err := a.ai.PreCheckEventPage(ctx, sig, hints)
	if err != nil {
		a.telemetry.Emit(ctx, telemetry.Event{
			Stage:        stagePreCheck,
			Status:       telemetry.StatusAPIError,
			PageURL:      sig.URL,
			PageTitle:    sig.Title,
			ErrorMessage: err.Error(),
		})
		return ai.PreCheckResult{}, fmt.Errorf("pre-check failed: %w", err)
	}
	return result, nil
}

// Analyze produces the final event record for a page. The returned record is
// always complete in shape; a non-nil error means no usable record exists.
func (a *Analyzer) Analyze(ctx context.Context, sig types.PageSignals) (types.EventRecord, error) {
	hints := hostprofile.BuildHints(a.hosts.ProfileFor(ctx, sig.URL))

	resp, err := a.ai.AnalyzeEventPage(ctx, sig, a.profile, hints)
	if err != nil {
		a.telemetry.Emit(ctx, telemetry.Event{
			Stage:        stageAnalyze,
			Status:       telemetry.StatusAPIError,
			PageURL:      sig.URL,
			PageTitle:    sig.Title,
			ErrorMessage: err.Error(),
		})
		return types.EventRecord{}, fmt.Errorf("event analysis failed: %w", err)
	}

	res, err := recovery.ParseModelText(resp)
	if err != nil {
		a.emitParseFailure(ctx, sig, resp, err)
		switch {
		case errors.Is(err, recovery.ErrBlockedBySafety):
			return types.EventRecord{}, fmt.Errorf("the model declined to analyze this page: %w", err)
		case errors.Is(err, recovery.ErrNoUsableSignal):
			return types.EventRecord{}, fmt.Errorf("this page does not appear to describe an event: %w", err)
		default:
			return types.EventRecord{}, fmt.Errorf("could not recover a usable response: %w", err)
		}
	}
	a.emitParseOutcome(ctx, sig, resp, res)

	rec := reconcile.Reconcile(res.Record, sig)

	outcome := repair.Run(ctx, rec, func(ctx context.Context, missing []string) (types.ModelResponse, error) {
		return a.ai.RepairMissingFields(ctx, missing, rec, sig)
	})
	a.emitRepairOutcome(ctx, sig, outcome)

	return reconcile.Normalize(outcome.Record), nil
}

// Coach answers a one-shot engagement question about an analyzed record.
// target names a person on the roster or an expected persona bucket; when
// empty, the top persona is coached, then the first person.
func (a *Analyzer) Coach(ctx context.Context, rec types.EventRecord, target, question string) (string, error) {
	if target != "" {
		for _, p := range rec.People {
			if strings.EqualFold(p.Name, target) {
				return a.ai.CoachForPerson(ctx, p, rec, a.profile, nil, question)
			}
		}
		for _, p := range rec.ExpectedPersonas {
			if strings.EqualFold(p.Persona, target) {
				return a.ai.CoachForPersona(ctx, p, rec, a.profile, nil, question)
			}
		}
		return "", fmt.Errorf("no person or persona named %q in the analyzed record", target)
	}

	if len(rec.ExpectedPersonas) > 0 {
		return a.ai.CoachForPersona(ctx, rec.ExpectedPersonas[0], rec, a.profile, nil, question)
	}
	if len(rec.People) > 0 {
		return a.ai.CoachForPerson(ctx, rec.People[0], rec, a.profile, nil, question)
	}
	return "", errors.New("the analyzed record has no people or personas to coach on")
}

func (a *Analyzer) emitParseOutcome(ctx context.Context, sig types.PageSignals, resp types.ModelResponse, res recovery.Result) {
	ev := telemetry.Event{
		Stage:           stageAnalyze,
		PageURL:         sig.URL,
		PageTitle:       sig.Title,
		FinishReason:    resp.FinishReason,
		ParsedEventName: res.Record.EventName,
		ParsedStartDate: res.Record.StartDate,
	}

	switch res.Status {
	case recovery.StatusParseSuccess:
		ev.Status = telemetry.StatusParseSuccess
		ev.SampleReason = "random_sample"
	case recovery.StatusParseFallback:
		ev.Status = telemetry.StatusParseFallback
		ev.SampleReason = "fallback"
		ev.RawResponseText = resp.Text
		ev.RecoveredJSONText = res.RecoveredJSON
		if res.DecodeErr != nil {
			ev.ErrorMessage = res.DecodeErr.Error()
		}
	default:
		return
	}

	a.telemetry.Emit(ctx, ev)
}

func (a *Analyzer) emitParseFailure(ctx context.Context, sig types.PageSignals, resp types.ModelResponse, err error) {
	a.telemetry.Emit(ctx, telemetry.Event{
		Stage:           stageAnalyze,
		Status:          telemetry.StatusParseError,
		PageURL:         sig.URL,
		PageTitle:       sig.Title,
		ErrorMessage:    err.Error(),
		FinishReason:    resp.FinishReason,
		RawResponseText: resp.Text,
	})
}

func (a *Analyzer) emitRepairOutcome(ctx context.Context, sig types.PageSignals, outcome repair.Outcome) {
	if !outcome.Attempted {
		return
	}

	if outcome.Repaired {
		a.telemetry.Emit(ctx, telemetry.Event{
			Stage:     stageRepair,
			Status:    telemetry.StatusParseSuccess,
			PageURL:   sig.URL,
			PageTitle: sig.Title,
			SampleReason: fmt.Sprintf("missing_before:%d_after:%d",
				len(outcome.MissingBefore), len(outcome.MissingAfter)),
		})
		return
	}

	// A fruitless repair is not an error; only a failed model call or an
	// unrecoverable patch response is worth reporting.
	if outcome.Err != nil && !errors.Is(outcome.Err, repair.ErrNoProgress) {
		a.telemetry.Emit(ctx, telemetry.Event{
			Stage:        stageRepair,
			Status:       telemetry.StatusParseError,
			PageURL:      sig.URL,
			PageTitle:    sig.Title,
			ErrorMessage: outcome.Err.Error(),
		})
		a.logger.Warn("field repair failed", "url", sig.URL, "error", outcome.Err)
	}
}
