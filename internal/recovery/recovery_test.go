package recovery

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kbygtools/eventscout/internal/types"
)

func TestBestEffortJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "clean object passes through",
			in:   `{"eventName": "DevCon"}`,
			want: `{"eventName": "DevCon"}`,
		},
		{
			name: "strips code fences",
			in:   "```json\n{\"eventName\": \"DevCon\"}\n```",
			want: `{"eventName": "DevCon"}`,
		},
		{
			name: "drops preamble prose and trailing chatter",
			in:   "Here is the JSON you asked for:\n{\"eventName\": \"DevCon\"}\nHope that helps!",
			want: `{"eventName": "DevCon"}`,
		},
		{
			name: "removes trailing comma before closer",
			in:   `{"people": [{"name": "A"},]}`,
			want: `{"people": [{"name": "A"}]}`,
		},
		{
			name: "closes object truncated after complete pair",
			in:   `{"eventName": "DevCon", "people": [{"name": "A"`,
			want: `{"eventName": "DevCon", "people": [{"name": "A"}]}`,
		},
		{
			name: "drops dangling key cut mid string value",
			in:   `{"eventName": "DevCon", "description": "A confer`,
			want: `{"eventName": "DevCon"}`,
		},
		{
			name: "drops object key cut before its colon",
			in:   `{"eventName": "DevCon", "location"`,
			want: `{"eventName": "DevCon"}`,
		},
		{
			name: "keeps complete string element in truncated array",
			in:   `{"eventName": "DevCon", "keywords": ["go", "json"`,
			want: `{"eventName": "DevCon", "keywords": ["go", "json"]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BestEffortJSON(tt.in)
			if got != tt.want {
				t.Fatalf("BestEffortJSON(%q) = %q, want %q", tt.in, got, tt.want)
			}
			var doc map[string]any
			if err := json.Unmarshal([]byte(got), &doc); err != nil {
				t.Fatalf("recovered text does not decode: %v", err)
			}
		})
	}
}

func TestBestEffortJSONTruncatedAlwaysDecodes(t *testing.T) {
	full := `{"eventName": "DevCon 2026", "keywords": ["golang", "json"], "people": [{"name": "Ada Lovelace", "title": "CTO"}, {"name": "Grace Hopper"}], "sponsors": [{"name": "Acme"}]}`

	// Every truncation point past the first complete pair must still yield
	// decodable JSON carrying that pair.
	for i := 30; i < len(full); i++ {
		recovered := BestEffortJSON(full[:i])
		var doc map[string]any
		if err := json.Unmarshal([]byte(recovered), &doc); err != nil {
			t.Fatalf("cut at %d: %q does not decode: %v", i, recovered, err)
		}
		if doc["eventName"] != "DevCon 2026" {
			t.Fatalf("cut at %d: lost eventName, got %v", i, doc["eventName"])
		}
	}
}

func TestParseModelTextSuccess(t *testing.T) {
	resp := types.ModelResponse{
		Text:         "```json\n{\"eventName\": \"DevCon\", \"startDate\": \"2026-03-15\", \"speakers\": [{\"name\": \"Ada\"}]}\n```",
		FinishReason: types.FinishReasonStop,
	}

	res, err := ParseModelText(resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != StatusParseSuccess {
		t.Fatalf("expected status %q, got %q", StatusParseSuccess, res.Status)
	}
	if res.Record.EventName != "DevCon" {
		t.Errorf("expected eventName 'DevCon', got %q", res.Record.EventName)
	}
	if res.Record.StartDate != "2026-03-15" {
		t.Errorf("expected startDate '2026-03-15', got %q", res.Record.StartDate)
	}
	// legacy alias
	if len(res.Record.People) != 1 || res.Record.People[0].Name != "Ada" {
		t.Errorf("expected speakers alias to populate people, got %+v", res.Record.People)
	}
}

func TestParseModelTextFallback(t *testing.T) {
	// Unbalanced quoting defeats structural recovery, but the fields are
	// still visible to per-field extraction.
	resp := types.ModelResponse{
		Text:         `event details: "eventName": "DevCon", "location": "Austin, TX", "estimatedAttendees": 400 and some trailing " junk`,
		FinishReason: types.FinishReasonStop,
	}

	res, err := ParseModelText(resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != StatusParseFallback {
		t.Fatalf("expected status %q, got %q", StatusParseFallback, res.Status)
	}
	if res.Record.EventName != "DevCon" {
		t.Errorf("expected eventName 'DevCon', got %q", res.Record.EventName)
	}
	if res.Record.Location != "Austin, TX" {
		t.Errorf("expected location 'Austin, TX', got %q", res.Record.Location)
	}
	if res.Record.EstimatedAttendees != 400 {
		t.Errorf("expected 400 attendees, got %d", res.Record.EstimatedAttendees)
	}
	if !errors.Is(res.DecodeErr, ErrStructuralDecode) {
		t.Errorf("expected the decode failure to be kept, got %v", res.DecodeErr)
	}
}

func TestParseModelTextSafetyBlocked(t *testing.T) {
	resp := types.ModelResponse{Text: "whatever", FinishReason: types.FinishReasonSafety}

	_, err := ParseModelText(resp)
	if !errors.Is(err, ErrBlockedBySafety) {
		t.Fatalf("expected ErrBlockedBySafety, got %v", err)
	}
}

func TestParseModelTextEmpty(t *testing.T) {
	_, err := ParseModelText(types.ModelResponse{Text: "  \n ", FinishReason: types.FinishReasonStop})
	if !errors.Is(err, ErrNoUsableSignal) {
		t.Fatalf("expected ErrNoUsableSignal, got %v", err)
	}
}

func TestParseModelTextNoSignal(t *testing.T) {
	resp := types.ModelResponse{
		Text:         `I could not find any event information on this page. "foo": "bar`,
		FinishReason: types.FinishReasonStop,
	}

	_, err := ParseModelText(resp)
	if !errors.Is(err, ErrNoUsableSignal) {
		t.Fatalf("expected ErrNoUsableSignal, got %v", err)
	}
}

func TestFallbackExtract(t *testing.T) {
	rec, err := FallbackExtract(`"eventName": "Ops Summit", "date": "March 3, 2026", "description": "Line one.\nLine two."`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.EventName != "Ops Summit" {
		t.Errorf("expected 'Ops Summit', got %q", rec.EventName)
	}
	if rec.Description != "Line one. Line two." {
		t.Errorf("expected newline escapes flattened, got %q", rec.Description)
	}
}

func TestFallbackExtractDefaultsEventName(t *testing.T) {
	rec, err := FallbackExtract(`"location": "Denver, CO"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.EventName != types.DefaultEventName {
		t.Errorf("expected default event name, got %q", rec.EventName)
	}
}

func TestProjectRecordTotality(t *testing.T) {
	// Wrong-typed fields project to defaults, never panic.
	doc := map[string]any{
		"eventName":          42,
		"estimatedAttendees": "250",
		"people":             "not a list",
		"expectedPersonas": []any{
			map[string]any{"persona": "CTO", "count": float64(40)},
		},
	}

	got := ProjectRecord(doc)
	want := types.EventRecord{
		EventName:          types.DefaultEventName,
		EstimatedAttendees: 250,
		ExpectedPersonas: []types.Persona{
			{Persona: "CTO", Count: "40"},
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ProjectRecord mismatch (-want +got):\n%s", diff)
	}
}
