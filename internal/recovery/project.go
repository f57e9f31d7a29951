package recovery

import (
	"strconv"
	"strings"

	"github.com/kbygtools/eventscout/internal/types"
)

// ProjectRecord turns an untyped decoded document into a typed EventRecord.
// It is total: absent or wrong-typed fields become their defaults, never an
// error. The legacy "speakers" key is accepted as an alias for "people".
func ProjectRecord(doc map[string]any) types.EventRecord {
	rec := types.EventRecord{
		EventName:          asString(doc["eventName"]),
		Date:               asString(doc["date"]),
		StartDate:          asString(doc["startDate"]),
		EndDate:            asString(doc["endDate"]),
		Location:           asString(doc["location"]),
		Description:        asString(doc["description"]),
		EstimatedAttendees: asCount(doc["estimatedAttendees"]),
	}
	if rec.EventName == "" {
		rec.EventName = types.DefaultEventName
	}

	peopleRaw := asSlice(doc["people"])
	if peopleRaw == nil {
		peopleRaw = asSlice(doc["speakers"])
	}
	for _, entry := range peopleRaw {
		m := asMap(entry)
		if m == nil {
			continue
		}
		rec.People = append(rec.People, types.Person{
			Name:            asString(m["name"]),
			Role:            asString(m["role"]),
			Title:           asString(m["title"]),
			Company:         asString(m["company"]),
			Persona:         asString(m["persona"]),
			LinkedIn:        asString(m["linkedin"]),
			LinkedInMessage: asString(m["linkedinMessage"]),
			IceBreaker:      asString(m["iceBreaker"]),
		})
	}

	for _, entry := range asSlice(doc["sponsors"]) {
		m := asMap(entry)
		if m == nil {
			continue
		}
		rec.Sponsors = append(rec.Sponsors, types.Sponsor{
			Name: asString(m["name"]),
			Tier: asString(m["tier"]),
		})
	}

	for _, entry := range asSlice(doc["expectedPersonas"]) {
		m := asMap(entry)
		if m == nil {
			continue
		}
		rec.ExpectedPersonas = append(rec.ExpectedPersonas, types.Persona{
			Persona:              asString(m["persona"]),
			Likelihood:           asString(m["likelihood"]),
			Count:                asLooseString(m["count"]),
			LinkedInMessage:      asString(m["linkedinMessage"]),
			IceBreaker:           asString(m["iceBreaker"]),
			ConversationStarters: asStringSlice(m["conversationStarters"]),
			Keywords:             asStringSlice(m["keywords"]),
			PainPoints:           asStringSlice(m["painPoints"]),
		})
	}

	for _, entry := range asSlice(doc["nextBestActions"]) {
		m := asMap(entry)
		if m == nil {
			continue
		}
		rec.NextBestActions = append(rec.NextBestActions, types.NextBestAction{
			Priority: asCount(m["priority"]),
			Action:   asString(m["action"]),
			Reason:   asString(m["reason"]),
		})
	}

	for _, entry := range asSlice(doc["relatedEvents"]) {
		m := asMap(entry)
		if m == nil {
			continue
		}
		rec.RelatedEvents = append(rec.RelatedEvents, types.RelatedEvent{
			Name:      asString(m["name"]),
			URL:       asString(m["url"]),
			Date:      asString(m["date"]),
			Relevance: asString(m["relevance"]),
		})
	}

	return rec
}

func asString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

// asLooseString also accepts numbers, for fields like persona counts where
// models return either "Many" or 40.
func asLooseString(v any) string {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return ""
	}
}

// asCount accepts a JSON number or a digit string; anything else, or a
// negative value, projects to zero.
func asCount(v any) int {
	switch x := v.(type) {
	case float64:
		if x < 0 {
			return 0
		}
		return int(x)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil || n < 0 {
			return 0
		}
		return n
	default:
		return 0
	}
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func asStringSlice(v any) []string {
	var out []string
	for _, item := range asSlice(v) {
		if s := asString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
