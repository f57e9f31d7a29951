/*
Package reconcile merges a model-derived event record with independently
scraped page signals under a fixed precedence order. Fields already present
in the record are never overwritten; only blank fields are backfilled, so
reconciliation is idempotent with respect to its own output.
*/
package reconcile

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/kbygtools/eventscout/internal/types"
)

const maxTextDescription = 320

var attendeesRe = regexp.MustCompile(`(?i)(\d{2,5})\s*\+?\s*(attendees|attending|participants|registered|registrants)`)

var (
	titlePipeSuffixRe = regexp.MustCompile(`\s*\|\s*[^|]+$`)
	titleDotSuffixRe  = regexp.MustCompile(`\s*[·•-]\s*[^·•-]+$`)
)

// Reconcile combines a possibly minimal record with page signals, filling
// every blank field from the best available source. Given the same inputs
// it always produces the same output, and re-running it on its own output
// is a no-op.
func Reconcile(rec types.EventRecord, sig types.PageSignals) types.EventRecord {
	out := rec

	if len(out.People) == 0 {
		out.People = synthesizePeople(sig.SpeakerDirectory)
	} else {
		out.People = enrichPeople(out.People, sig.SpeakerDirectory)
	}
	if len(out.Sponsors) == 0 {
		out.Sponsors = synthesizeSponsors(sig.SponsorCandidates)
	}

	ev := findStructuredEvent(sig.StructuredData)

	out.EventName = pickFirstNonEmpty(
		out.EventName,
		strVal(ev["name"]),
		sig.Meta["og:title"],
		stripTitleSuffix(sig.Title),
	)
	if out.EventName == "" {
		out.EventName = types.DefaultEventName
	}

	out.Description = pickFirstNonEmpty(
		out.Description,
		strVal(ev["description"]),
		sig.Meta["og:description"],
		sig.Meta["description"],
		truncate(sig.MainText, maxTextDescription),
	)

	textStart, textEnd := extractDatesFromText(sig.MainText)
	out.StartDate = pickFirstNonEmpty(
		ParseISODate(out.StartDate),
		ParseISODate(strVal(ev["startDate"])),
		textStart,
	)
	out.EndDate = pickFirstNonEmpty(
		ParseISODate(out.EndDate),
		ParseISODate(strVal(ev["endDate"])),
		textEnd,
		out.StartDate,
	)
	if out.StartDate == "" {
		out.StartDate = out.EndDate
	}
	out.Date = pickFirstNonEmpty(out.Date, displayDate(out.StartDate, out.EndDate))

	out.Location = pickFirstNonEmpty(out.Location, structuredLocation(ev))

	if out.EstimatedAttendees == 0 {
		if m := attendeesRe.FindStringSubmatch(sig.MainText); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				out.EstimatedAttendees = n
			}
		}
	}

	if len(out.ExpectedPersonas) == 0 {
		out.ExpectedPersonas = derivePersonas(out.People)
	}
	if len(out.NextBestActions) == 0 {
		out.NextBestActions = defaultNextBestActions(out.EventName)
	}

	// relatedEvents are never synthesized from signals; only entries the
	// model itself reported pass through.

	// Domain name as location is the very last resort, applied only after
	// everything else has been reconciled.
	if out.Location == "" {
		out.Location = hostFromURL(sig.URL)
	}

	return out
}

// Normalize freezes a reconciled record into its final shape: dates in ISO
// form with endDate never before startDate, and each collection
// de-duplicated by its case-insensitive identity key, first occurrence wins.
func Normalize(rec types.EventRecord) types.EventRecord {
	out := rec

	out.EventName = strings.TrimSpace(out.EventName)
	if out.EventName == "" {
		out.EventName = types.DefaultEventName
	}

	out.StartDate = ParseISODate(out.StartDate)
	out.EndDate = ParseISODate(out.EndDate)
	if out.EndDate == "" {
		out.EndDate = out.StartDate
	}
	if out.StartDate == "" {
		out.StartDate = out.EndDate
	}
	// ISO dates compare correctly as strings.
	if out.StartDate != "" && out.EndDate < out.StartDate {
		out.EndDate = out.StartDate
	}

	if out.EstimatedAttendees < 0 {
		out.EstimatedAttendees = 0
	}

	out.People = dedupeBy(out.People, func(p types.Person) string { return p.Name })
	out.Sponsors = dedupeBy(out.Sponsors, func(s types.Sponsor) string { return s.Name })
	out.ExpectedPersonas = dedupeBy(out.ExpectedPersonas, func(p types.Persona) string { return p.Persona })
	out.NextBestActions = dedupeBy(out.NextBestActions, func(a types.NextBestAction) string { return a.Action })
	out.RelatedEvents = dedupeBy(out.RelatedEvents, func(r types.RelatedEvent) string { return r.Name + "|" + r.URL })

	return out
}

func dedupeBy[T any](items []T, key func(T) string) []T {
	if len(items) == 0 {
		return items
	}
	seen := make(map[string]bool, len(items))
	out := items[:0:0]
	for _, item := range items {
		k := strings.ToLower(strings.TrimSpace(key(item)))
		if k == "" || k == "|" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, item)
	}
	return out
}

func pickFirstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// stripTitleSuffix removes trailing site-branding from a page title, e.g.
// "DevConf 2026 | Eventbrite" or "DevConf 2026 · Meetup".
func stripTitleSuffix(title string) string {
	cleaned := titlePipeSuffixRe.ReplaceAllString(title, "")
	cleaned = titleDotSuffixRe.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(cleaned)
}

func displayDate(startDate, endDate string) string {
	if startDate == "" {
		return ""
	}
	if endDate != "" && endDate != startDate {
		return startDate + " to " + endDate
	}
	return startDate
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func hostFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// findStructuredEvent locates the first JSON-LD or microdata event object in
// the page's structured data, flattening @graph containers. Absent or
// wrong-typed entries are skipped rather than raised.
func findStructuredEvent(entries []map[string]any) map[string]any {
	for _, entry := range flattenStructured(entries) {
		if isEventType(entry["@type"]) || strVal(entry["type"]) == "microdata" {
			return entry
		}
	}
	return nil
}

func flattenStructured(entries []map[string]any) []map[string]any {
	var flat []map[string]any
	for _, entry := range entries {
		if entry == nil {
			continue
		}
		if graph, ok := entry["@graph"].([]any); ok {
			for _, item := range graph {
				if m, ok := item.(map[string]any); ok {
					flat = append(flat, m)
				}
			}
			continue
		}
		flat = append(flat, entry)
	}
	return flat
}

func isEventType(v any) bool {
	switch t := v.(type) {
	case string:
		return t == "Event"
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && s == "Event" {
				return true
			}
		}
	}
	return false
}

// structuredLocation reads an event location that may be a plain string or a
// Place object carrying name/address.
func structuredLocation(ev map[string]any) string {
	switch loc := ev["location"].(type) {
	case string:
		return loc
	case map[string]any:
		if name := strVal(loc["name"]); name != "" {
			return name
		}
		return strVal(loc["address"])
	}
	return ""
}

func strVal(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}
