/*
Package repair drives the one-shot re-query cycle that fills fields still
missing after reconciliation. At most one re-query ever runs per analysis;
a patch is kept only when it measurably shrinks the missing-field set, and
a failed or fruitless repair is never fatal.
*/
package repair

import (
	"context"
	"errors"

	"github.com/kbygtools/eventscout/internal/recovery"
	"github.com/kbygtools/eventscout/internal/types"
)

// ErrNoProgress means the re-query ran but did not reduce the number of
// missing fields. Non-fatal: the pre-repair record is kept.
var ErrNoProgress = errors.New("repair made no measurable progress")

// Requery issues one model call asking to fill only the named missing
// fields. It is the pipeline's single suspension point.
type Requery func(ctx context.Context, missing []string) (types.ModelResponse, error)

// Outcome reports what the repair cycle did. Err is informational; the
// returned Record is always usable.
type Outcome struct {
	Record        types.EventRecord
	Attempted     bool
	Repaired      bool
	MissingBefore []string
	MissingAfter  []string
	Err           error
}

// MissingFields lists the canonical fields currently unsatisfied: blank
// scalars, empty required collections, and an event name still equal to the
// default placeholder.
func MissingFields(rec types.EventRecord) []string {
	var missing []string

	if rec.EventName == "" || rec.EventName == types.DefaultEventName {
		missing = append(missing, "eventName")
	}
	if rec.StartDate == "" {
		missing = append(missing, "startDate")
	}
	if rec.EndDate == "" {
		missing = append(missing, "endDate")
	}
	if rec.Location == "" {
		missing = append(missing, "location")
	}
	if rec.Description == "" {
		missing = append(missing, "description")
	}
	if len(rec.People) == 0 {
		missing = append(missing, "people")
	}
	if len(rec.Sponsors) == 0 {
		missing = append(missing, "sponsors")
	}
	if len(rec.ExpectedPersonas) == 0 {
		missing = append(missing, "expectedPersonas")
	}
	if len(rec.NextBestActions) == 0 {
		missing = append(missing, "nextBestActions")
	}

	return missing
}

// Run performs the bounded repair cycle: compute the missing set, issue at
// most one re-query, merge the patch without regressing known-good fields,
// and keep the merge only if it strictly shrank the missing set.
func Run(ctx context.Context, rec types.EventRecord, requery Requery) Outcome {
	missingBefore := MissingFields(rec)
	if len(missingBefore) == 0 {
		return Outcome{Record: rec}
	}

	out := Outcome{Record: rec, Attempted: true, MissingBefore: missingBefore, MissingAfter: missingBefore}

	resp, err := requery(ctx, missingBefore)
	if err != nil {
		out.Err = err
		return out
	}

	res, err := recovery.ParseModelText(resp)
	if err != nil {
		out.Err = err
		return out
	}

	merged := merge(rec, res.Record)
	missingAfter := MissingFields(merged)
	if len(missingAfter) >= len(missingBefore) {
		out.Err = ErrNoProgress
		return out
	}

	out.Record = merged
	out.Repaired = true
	out.MissingAfter = missingAfter
	return out
}

// merge applies a patch record: scalar patch values are used only where the
// original was missing, and a patch collection replaces the original only
// when the patch's is non-empty. Collections are never partially appended,
// which would accumulate duplicates across two independently-generated
// lists.
func merge(original, patch types.EventRecord) types.EventRecord {
	out := original

	if (out.EventName == "" || out.EventName == types.DefaultEventName) &&
		patch.EventName != "" && patch.EventName != types.DefaultEventName {
		out.EventName = patch.EventName
	}
	if out.Date == "" {
		out.Date = patch.Date
	}
	if out.StartDate == "" {
		out.StartDate = patch.StartDate
	}
	if out.EndDate == "" {
		out.EndDate = patch.EndDate
	}
	if out.Location == "" {
		out.Location = patch.Location
	}
	if out.Description == "" {
		out.Description = patch.Description
	}
	if out.EstimatedAttendees == 0 {
		out.EstimatedAttendees = patch.EstimatedAttendees
	}

	if len(patch.People) > 0 {
		out.People = patch.People
	}
	if len(patch.Sponsors) > 0 {
		out.Sponsors = patch.Sponsors
	}
	if len(patch.ExpectedPersonas) > 0 {
		out.ExpectedPersonas = patch.ExpectedPersonas
	}
	if len(patch.NextBestActions) > 0 {
		out.NextBestActions = patch.NextBestActions
	}
	if len(patch.RelatedEvents) > 0 {
		out.RelatedEvents = patch.RelatedEvents
	}

	return out
}
