package reconcile

import (
	"testing"

	"github.com/kbygtools/eventscout/internal/types"
)

func TestDerivePersonas(t *testing.T) {
	people := []types.Person{
		{Name: "A", Title: "VP of Marketing"},
		{Name: "B", Title: "Chief Executive Officer"},
		{Name: "C", Title: "Director of Operations"},
		{Name: "D", Title: "VP of Marketing"},
	}

	got := derivePersonas(people)

	// Buckets surface in roster order and never repeat. "VP of Marketing"
	// hits both the VP/Director and marketing buckets.
	want := []string{"VP/Director", "Marketing & Growth Leader", "Executive Leader", "Operations Leader"}
	if len(got) != len(want) {
		t.Fatalf("expected %d personas, got %+v", len(want), got)
	}
	for i, name := range want {
		if got[i].Persona != name {
			t.Errorf("persona[%d] = %q, want %q", i, got[i].Persona, name)
		}
	}
	for _, p := range got {
		if p.LinkedInMessage == "" || p.IceBreaker == "" || len(p.ConversationStarters) == 0 {
			t.Errorf("persona %q missing outreach boilerplate: %+v", p.Persona, p)
		}
	}
}

func TestDerivePersonasEmptyInputs(t *testing.T) {
	if got := derivePersonas(nil); got != nil {
		t.Errorf("expected nil for empty roster, got %+v", got)
	}

	// People without any title or role text contribute nothing.
	got := derivePersonas([]types.Person{{Name: "Anonymous"}})
	if len(got) != 0 {
		t.Errorf("expected no personas for untitled roster, got %+v", got)
	}
}

func TestDefaultNextBestActions(t *testing.T) {
	got := defaultNextBestActions("DevConf")
	if len(got) != 3 {
		t.Fatalf("expected 3 actions, got %d", len(got))
	}
	for i, action := range got {
		if action.Priority != i+1 {
			t.Errorf("action[%d] priority = %d, want %d", i, action.Priority, i+1)
		}
		if action.Action == "" || action.Reason == "" {
			t.Errorf("action[%d] incomplete: %+v", i, action)
		}
	}

	unnamed := defaultNextBestActions("")
	if unnamed[0].Action == got[0].Action {
		t.Error("expected placeholder wording when the event is unnamed")
	}
}
