package ai

import (
	"context"
	"strings"
	"testing"

	"github.com/kbygtools/eventscout/internal/types"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient(context.Background(), Config{}); err == nil {
		t.Fatal("expected error for missing API key")
	}
}

func TestParsePreCheckResponse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want PreCheckResult
	}{
		{
			name: "plain json",
			in:   `{"isEvent": true, "confidence": "high", "eventName": "DevConf"}`,
			want: PreCheckResult{IsEvent: true, Confidence: "high", EventName: "DevConf"},
		},
		{
			name: "fenced json",
			in:   "```json\n{\"isEvent\": true, \"confidence\": \"medium\"}\n```",
			want: PreCheckResult{IsEvent: true, Confidence: "medium"},
		},
		{
			name: "garbled response degrades to low confidence",
			in:   "I think this might be an event page?",
			want: PreCheckResult{Confidence: "low"},
		},
		{
			name: "missing confidence defaults to low",
			in:   `{"isEvent": true}`,
			want: PreCheckResult{IsEvent: true, Confidence: "low"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parsePreCheckResponse(tt.in); got != tt.want {
				t.Errorf("parsePreCheckResponse(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestBuildUserContext(t *testing.T) {
	if got := buildUserContext(UserProfile{Role: "AE"}); got != "" {
		t.Errorf("profile without company or product rendered context: %q", got)
	}

	got := buildUserContext(UserProfile{CompanyName: "Acme", Product: "Widgets"})
	for _, want := range []string{"Acme", "Widgets", "Not specified"} {
		if !strings.Contains(got, want) {
			t.Errorf("context missing %q:\n%s", want, got)
		}
	}
}

func TestBuildPersonaGuidance(t *testing.T) {
	if got := buildPersonaGuidance(UserProfile{}); got != "" {
		t.Errorf("empty personas rendered guidance: %q", got)
	}

	got := buildPersonaGuidance(UserProfile{TargetPersonas: " CTO , , VP of Ops "})
	if !strings.Contains(got, "CTO, VP of Ops") {
		t.Errorf("guidance missing cleaned persona list:\n%s", got)
	}
}

func TestBuildAnalysisPrompt(t *testing.T) {
	sig := types.PageSignals{
		URL:      "https://events.example.com/devconf",
		Title:    "DevConf 2026",
		MainText: "Welcome to DevConf.",
		SpeakerDirectory: []types.SpeakerEntry{
			{Name: "Ada Lovelace", ProfileURL: "/speaker/ada"},
		},
	}

	got := buildAnalysisPrompt(sig, UserProfile{}, "HOST PARSING DICTIONARY: prefer json-ld")

	for _, want := range []string{
		"https://events.example.com/devconf",
		"DevConf 2026",
		"Ada Lovelace",
		"HOST PARSING DICTIONARY: prefer json-ld",
		"relatedEvents",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("analysis prompt missing %q", want)
		}
	}
}

func TestBuildPreCheckPromptTruncatesContent(t *testing.T) {
	sig := types.PageSignals{
		URL:      "https://events.example.com/devconf",
		Title:    "DevConf 2026",
		MainText: strings.Repeat("x", preCheckContentLimit+500),
	}

	got := buildPreCheckPrompt(sig, "")
	if strings.Contains(got, strings.Repeat("x", preCheckContentLimit+1)) {
		t.Error("pre-check prompt carries untruncated page content")
	}
	if !strings.Contains(got, strings.Repeat("x", preCheckContentLimit)) {
		t.Error("pre-check prompt missing truncated page content")
	}
}

func TestBuildRepairPrompt(t *testing.T) {
	rec := types.EventRecord{EventName: "DevConf 2026"}
	sig := types.PageSignals{MainText: "March 15-17, 2026 in Austin."}

	got := buildRepairPrompt([]string{"startDate", "location"}, rec, sig)

	if !strings.Contains(got, "startDate, location") {
		t.Error("repair prompt missing the named fields")
	}
	if !strings.Contains(got, "DevConf 2026") {
		t.Error("repair prompt missing the current record")
	}
	if !strings.Contains(got, "March 15-17, 2026 in Austin.") {
		t.Error("repair prompt missing the source content")
	}
}

func TestBuildPersonaCoachPrompt(t *testing.T) {
	persona := types.Persona{
		Persona:              "Technology Leader",
		PainPoints:           []string{"Limited bandwidth"},
		ConversationStarters: []string{"What are your top priorities?"},
	}
	rec := types.EventRecord{EventName: "DevConf 2026"}
	profile := UserProfile{CompanyName: "Acme", Product: "Widgets"}

	got := buildPersonaCoachPrompt(persona, rec, profile, nil, "How do I open?")

	for _, want := range []string{
		"DevConf 2026",
		"Technology Leader",
		"Limited bandwidth",
		"What are your top priorities?",
		"None yet",
		"How do I open?",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("persona coach prompt missing %q", want)
		}
	}
}

func TestBuildTargetCoachPrompt(t *testing.T) {
	person := types.Person{Name: "Ada Lovelace", Role: "Speaker", Company: "Analytical Engines"}
	rec := types.EventRecord{EventName: "DevConf 2026", Location: "Austin, TX"}

	got := buildTargetCoachPrompt(person, rec, UserProfile{}, nil, "What should I ask?")

	for _, want := range []string{
		"Ada Lovelace",
		"Analytical Engines",
		"Austin, TX",
		"What should I ask?",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("target coach prompt missing %q", want)
		}
	}
	// With no title, the role stands in for it.
	if !strings.Contains(got, "Title/Role: Speaker") {
		t.Errorf("role not used as title fallback:\n%s", got)
	}
}

func TestRenderHistory(t *testing.T) {
	if got := renderHistory(nil); got != "None yet" {
		t.Errorf("empty history = %q", got)
	}

	got := renderHistory([]ChatMessage{
		{Role: "user", Content: "How do I open?"},
		{Role: "assistant", Content: "Reference their talk."},
	})
	want := "User: How do I open?\nAssistant: Reference their talk."
	if got != want {
		t.Errorf("renderHistory = %q, want %q", got, want)
	}
}
