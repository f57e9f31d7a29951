package repair

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/kbygtools/eventscout/internal/types"
)

func completeRecord() types.EventRecord {
	return types.EventRecord{
		EventName:        "DevConf 2026",
		StartDate:        "2026-03-15",
		EndDate:          "2026-03-17",
		Location:         "Austin, TX",
		Description:      "Three days of talks.",
		People:           []types.Person{{Name: "Ada"}},
		Sponsors:         []types.Sponsor{{Name: "Acme"}},
		ExpectedPersonas: []types.Persona{{Persona: "CTO"}},
		NextBestActions:  []types.NextBestAction{{Priority: 1, Action: "Reach out"}},
	}
}

func TestMissingFields(t *testing.T) {
	if got := MissingFields(completeRecord()); len(got) != 0 {
		t.Errorf("complete record reported missing fields: %v", got)
	}

	got := MissingFields(types.EventRecord{EventName: types.DefaultEventName})
	want := []string{
		"eventName", "startDate", "endDate", "location", "description",
		"people", "sponsors", "expectedPersonas", "nextBestActions",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MissingFields = %v, want %v", got, want)
	}
}

func TestRunNothingMissing(t *testing.T) {
	called := false
	requery := func(ctx context.Context, missing []string) (types.ModelResponse, error) {
		called = true
		return types.ModelResponse{}, nil
	}

	out := Run(context.Background(), completeRecord(), requery)

	if called {
		t.Error("requery invoked with nothing missing")
	}
	if out.Attempted || out.Repaired || out.Err != nil {
		t.Errorf("unexpected outcome: %+v", out)
	}
}

func TestRunRepairsMissingFields(t *testing.T) {
	rec := completeRecord()
	rec.Location = ""
	rec.Sponsors = nil

	calls := 0
	var askedFor []string
	requery := func(ctx context.Context, missing []string) (types.ModelResponse, error) {
		calls++
		askedFor = missing
		return types.ModelResponse{
			Text:         `{"location": "Austin, TX", "sponsors": [{"name": "Initech"}]}`,
			FinishReason: types.FinishReasonStop,
		}, nil
	}

	out := Run(context.Background(), rec, requery)

	if calls != 1 {
		t.Fatalf("expected exactly one requery, got %d", calls)
	}
	if !reflect.DeepEqual(askedFor, []string{"location", "sponsors"}) {
		t.Errorf("requery asked for %v", askedFor)
	}
	if !out.Repaired || out.Err != nil {
		t.Fatalf("expected a clean repair, got %+v", out)
	}
	if out.Record.Location != "Austin, TX" {
		t.Errorf("location not patched: %q", out.Record.Location)
	}
	if len(out.Record.Sponsors) != 1 || out.Record.Sponsors[0].Name != "Initech" {
		t.Errorf("sponsors not patched: %+v", out.Record.Sponsors)
	}
	if len(out.MissingAfter) != 0 {
		t.Errorf("expected empty missing set after repair, got %v", out.MissingAfter)
	}
}

func TestRunNoProgressKeepsOriginal(t *testing.T) {
	rec := completeRecord()
	rec.Location = ""

	requery := func(ctx context.Context, missing []string) (types.ModelResponse, error) {
		return types.ModelResponse{
			Text:         `{"eventName": "Something Else Entirely"}`,
			FinishReason: types.FinishReasonStop,
		}, nil
	}

	out := Run(context.Background(), rec, requery)

	if !errors.Is(out.Err, ErrNoProgress) {
		t.Fatalf("expected ErrNoProgress, got %v", out.Err)
	}
	if out.Repaired {
		t.Error("no-progress outcome marked as repaired")
	}
	if out.Record.EventName != "DevConf 2026" {
		t.Errorf("original record regressed: %q", out.Record.EventName)
	}
}

func TestRunRequeryErrorIsNonFatal(t *testing.T) {
	rec := completeRecord()
	rec.Description = ""

	requeryErr := errors.New("model unavailable")
	requery := func(ctx context.Context, missing []string) (types.ModelResponse, error) {
		return types.ModelResponse{}, requeryErr
	}

	out := Run(context.Background(), rec, requery)

	if !errors.Is(out.Err, requeryErr) {
		t.Fatalf("expected requery error surfaced, got %v", out.Err)
	}
	if !out.Attempted || out.Repaired {
		t.Errorf("unexpected outcome flags: %+v", out)
	}
	if out.Record.EventName != "DevConf 2026" {
		t.Errorf("record lost on requery failure: %q", out.Record.EventName)
	}
}

func TestMergeNeverRegresses(t *testing.T) {
	original := completeRecord()
	original.EndDate = ""

	patch := types.EventRecord{
		EventName:   "Rebranded Conf",
		EndDate:     "2026-03-18",
		Location:    "Denver, CO",
		Description: "Different description.",
		People:      []types.Person{{Name: "Grace"}, {Name: "Katherine"}},
	}

	got := merge(original, patch)

	if got.EventName != "DevConf 2026" {
		t.Errorf("present eventName overwritten: %q", got.EventName)
	}
	if got.Location != "Austin, TX" {
		t.Errorf("present location overwritten: %q", got.Location)
	}
	if got.EndDate != "2026-03-18" {
		t.Errorf("missing endDate not patched: %q", got.EndDate)
	}
	// Non-empty patch collections replace wholesale rather than append.
	if len(got.People) != 2 || got.People[0].Name != "Grace" {
		t.Errorf("people not replaced by patch: %+v", got.People)
	}
}

func TestMergeTreatsDefaultNameAsMissing(t *testing.T) {
	original := completeRecord()
	original.EventName = types.DefaultEventName

	got := merge(original, types.EventRecord{EventName: "DevConf 2026"})
	if got.EventName != "DevConf 2026" {
		t.Errorf("placeholder name not patched: %q", got.EventName)
	}

	// A placeholder in the patch never displaces a real name.
	got = merge(completeRecord(), types.EventRecord{EventName: types.DefaultEventName})
	if got.EventName != "DevConf 2026" {
		t.Errorf("placeholder patch applied: %q", got.EventName)
	}
}

func TestMergeEmptyPatchCollectionsKeepOriginal(t *testing.T) {
	got := merge(completeRecord(), types.EventRecord{})
	if len(got.People) != 1 || len(got.Sponsors) != 1 {
		t.Errorf("empty patch cleared collections: %+v", got)
	}
}
