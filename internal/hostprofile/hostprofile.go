/*
Package hostprofile caches learned parsing profiles per page host and turns
them into prompt hints. A profile is fetched at most once per host per
process; a failed or empty lookup is cached as nil so it is never retried.
The profile is advisory input to prompt construction only; the recovery
and reconciliation pipeline does not depend on it.
*/
package hostprofile

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	gocache "github.com/patrickmn/go-cache"
)

// Profile is a learned parsing dictionary for one host.
type Profile struct {
	SuggestedEntitySources    []string `json:"suggestedEntitySources,omitempty"`
	SuggestedPeopleSelectors  []string `json:"suggestedPeopleSelectors,omitempty"`
	SuggestedSponsorSelectors []string `json:"suggestedSponsorSelectors,omitempty"`
	ConfidenceScore           float64  `json:"confidenceScore,omitempty"`
	TotalSamples              int      `json:"totalSamples,omitempty"`
}

// Fetcher retrieves the profile for a page URL from the backend.
type Fetcher interface {
	FetchProfile(ctx context.Context, pageURL string) (*Profile, error)
}

// Service wraps a fetcher with a process-wide, read-mostly cache keyed by
// normalized host.
type Service struct {
	fetcher Fetcher
	cache   *gocache.Cache
}

func NewService(fetcher Fetcher) *Service {
	return &Service{
		fetcher: fetcher,
		cache:   gocache.New(gocache.NoExpiration, 0),
	}
}

// ProfileFor returns the cached profile for the URL's host, fetching it on
// first use. Any fetch failure caches nil to avoid repeated failed lookups.
func (s *Service) ProfileFor(ctx context.Context, pageURL string) *Profile {
	if s == nil {
		return nil
	}

	host := HostFromURL(pageURL)
	if host == "" {
		return nil
	}

	if cached, found := s.cache.Get(host); found {
		profile, _ := cached.(*Profile)
		return profile
	}

	var profile *Profile
	if s.fetcher != nil {
		if fetched, err := s.fetcher.FetchProfile(ctx, pageURL); err == nil {
			profile = fetched
		}
	}
	s.cache.Set(host, profile, gocache.NoExpiration)
	return profile
}

// HostFromURL extracts the lowercased hostname, or "" for unparseable URLs.
func HostFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// BuildHints renders a profile into the prompt section that steers the
// model toward the host's known extraction patterns. An empty profile
// renders as "".
func BuildHints(p *Profile) string {
	if p == nil {
		return ""
	}
	if len(p.SuggestedEntitySources) == 0 &&
		len(p.SuggestedPeopleSelectors) == 0 &&
		len(p.SuggestedSponsorSelectors) == 0 {
		return ""
	}

	return fmt.Sprintf(`
HOST PARSING DICTIONARY (learned profile for this domain):
- Confidence Score: %g
- Samples Seen: %d
- Preferred Entity Sources: %s
- People Selectors: %s
- Sponsor Selectors: %s

Prioritize these learned host patterns when extracting people/sponsors/event details.`,
		p.ConfidenceScore,
		p.TotalSamples,
		joinOrNone(p.SuggestedEntitySources),
		joinOrNone(p.SuggestedPeopleSelectors),
		joinOrNone(p.SuggestedSponsorSelectors),
	)
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "none"
	}
	return strings.Join(values, ", ")
}
