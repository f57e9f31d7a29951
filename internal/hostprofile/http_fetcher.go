package hostprofile

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// HTTPFetcher retrieves host parsing profiles from a backend endpoint.
type HTTPFetcher struct {
	endpoint  string
	authToken string
	client    *http.Client
}

func NewHTTPFetcher(endpoint, authToken string) *HTTPFetcher {
	return &HTTPFetcher{
		endpoint:  endpoint,
		authToken: authToken,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchProfile requests the profile for the page's host. A 404 means no
// profile has been learned yet and returns nil without error.
func (f *HTTPFetcher) FetchProfile(ctx context.Context, pageURL string) (*Profile, error) {
	reqURL := fmt.Sprintf("%s?url=%s", f.endpoint, url.QueryEscape(pageURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build profile request: %w", err)
	}
	if f.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+f.authToken)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("profile request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("profile endpoint returned status %d", resp.StatusCode)
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile response: %w", err)
	}
	return &profile, nil
}
