package reconcile

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kbygtools/eventscout/internal/types"
)

const (
	maxPersonaTitles  = 25
	maxPersonaBuckets = 5
)

// Keyword buckets for persona classification. The bucket set and keyword
// lists are fixed; classification quality depends on keeping them stable.
var personaBuckets = []struct {
	name string
	re   *regexp.Regexp
}{
	{"Executive Leader", regexp.MustCompile(`(ceo|chief|president|founder|cofounder)`)},
	{"VP/Director", regexp.MustCompile(`(vp|vice president|director|head of)`)},
	{"Marketing & Growth Leader", regexp.MustCompile(`(marketing|growth|brand|go[- ]to[- ]market|sales)`)},
	{"Operations Leader", regexp.MustCompile(`(operations|operator|franchise|franchising|restaurant excellence)`)},
	{"Technology Leader", regexp.MustCompile(`(technology|it|digital|innovation|ai)`)},
}

// derivePersonas classifies the roster's combined title/role text into
// keyword buckets and emits boilerplate outreach per bucket. At most the
// first 25 people are considered and at most 5 buckets emitted.
func derivePersonas(people []types.Person) []types.Persona {
	if len(people) == 0 {
		return nil
	}

	var titles []string
	for _, p := range people {
		combined := strings.TrimSpace(strings.TrimSpace(p.Title) + " " + strings.TrimSpace(p.Role))
		if combined == "" {
			continue
		}
		titles = append(titles, combined)
		if len(titles) == maxPersonaTitles {
			break
		}
	}

	var personas []types.Persona
	seen := make(map[string]bool)

	for _, title := range titles {
		lower := strings.ToLower(title)
		for _, bucket := range personaBuckets {
			if seen[bucket.name] || !bucket.re.MatchString(lower) {
				continue
			}
			seen[bucket.name] = true
			personas = append(personas, boilerplatePersona(bucket.name))
		}
	}

	if len(personas) > maxPersonaBuckets {
		personas = personas[:maxPersonaBuckets]
	}
	return personas
}

func boilerplatePersona(name string) types.Persona {
	lower := strings.ToLower(name)
	return types.Persona{
		Persona:         name,
		Likelihood:      "High",
		Count:           "Many",
		LinkedInMessage: fmt.Sprintf("Enjoyed seeing %s represented at this event—open to connecting?", lower),
		IceBreaker:      fmt.Sprintf("What is the biggest priority for %s in 2026?", lower),
		ConversationStarters: []string{
			"What are your top priorities this quarter?",
			"Which strategy is working best right now?",
			"Where do you see the biggest execution gap?",
		},
		Keywords:   []string{"growth", "operations", "technology"},
		PainPoints: []string{"Limited bandwidth", "Need measurable ROI"},
	}
}

// defaultNextBestActions is the fixed-priority action list used when the
// model supplied none.
func defaultNextBestActions(eventName string) []types.NextBestAction {
	if eventName == "" {
		eventName = "this event"
	}
	return []types.NextBestAction{
		{
			Priority: 1,
			Action:   fmt.Sprintf("Identify top 10 speaker targets for %s and draft outreach", eventName),
			Reason:   "Speakers are high-context connectors and often influence buying committees.",
		},
		{
			Priority: 2,
			Action:   "Build role-based talk tracks for operations, marketing, and technology leaders",
			Reason:   "Role-specific messaging improves conversion from first conversation to follow-up.",
		},
		{
			Priority: 3,
			Action:   "Schedule post-event follow-up sequence within 48 hours",
			Reason:   "Fast follow-up preserves context and increases response rates.",
		},
	}
}
