package reconcile

import (
	"strings"

	"github.com/kbygtools/eventscout/internal/types"
)

// parseRoleAndCompany splits a speaker-directory context line on pipe
// separators: the first segment is the role/title, the rest the company.
func parseRoleAndCompany(context string) (roleTitle, company string) {
	var parts []string
	for _, p := range strings.Split(context, "|") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	if len(parts) >= 2 {
		return parts[0], strings.Join(parts[1:], " | ")
	}
	return strings.TrimSpace(context), ""
}

// enrichPeople backfills null title/company/role on model-supplied people by
// matching names (case-insensitive) against the speaker directory. Existing
// values are never overwritten.
func enrichPeople(people []types.Person, directory []types.SpeakerEntry) []types.Person {
	if len(people) == 0 || len(directory) == 0 {
		return people
	}

	byName := make(map[string]types.SpeakerEntry, len(directory))
	for _, entry := range directory {
		name := strings.ToLower(strings.TrimSpace(entry.Name))
		if name == "" {
			continue
		}
		byName[name] = entry
	}

	out := make([]types.Person, len(people))
	for i, person := range people {
		out[i] = person
		entry, ok := byName[strings.ToLower(strings.TrimSpace(person.Name))]
		if !ok {
			continue
		}
		roleTitle, company := parseRoleAndCompany(entry.Context)
		if out[i].Title == "" {
			out[i].Title = roleTitle
		}
		if out[i].Company == "" {
			out[i].Company = company
		}
		if out[i].Role == "" {
			out[i].Role = "Speaker"
		}
	}
	return out
}

// synthesizePeople builds a roster from the speaker directory when the model
// supplied none: one entry per unique name, first occurrence wins.
func synthesizePeople(directory []types.SpeakerEntry) []types.Person {
	var people []types.Person
	seen := make(map[string]bool)

	for _, entry := range directory {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true

		roleTitle, company := parseRoleAndCompany(entry.Context)
		people = append(people, types.Person{
			Name:    name,
			Role:    "Speaker",
			Title:   roleTitle,
			Company: company,
		})
	}
	return people
}

// synthesizeSponsors builds sponsor entries from raw candidate names, unique
// by case-insensitive name. Tier is unknown for synthesized entries.
func synthesizeSponsors(candidates []string) []types.Sponsor {
	var sponsors []types.Sponsor
	seen := make(map[string]bool)

	for _, candidate := range candidates {
		name := strings.TrimSpace(candidate)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		sponsors = append(sponsors, types.Sponsor{Name: name})
	}
	return sponsors
}
