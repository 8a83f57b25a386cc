// Package update checks GitHub for newer worldvault releases.
package update

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// DefaultRepo is the GitHub repository queried for releases.
const DefaultRepo = "worldvault/worldvault"

// Release is the subset of the GitHub release payload the tool shows.
type Release struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	Body        string    `json:"body"`
	HTMLURL     string    `json:"html_url"`
	PublishedAt time.Time `json:"published_at"`
}

// Checker queries the GitHub releases API.
type Checker struct {
	client  *http.Client
	baseURL string
	repo    string
}

// NewChecker creates a release checker for the given repo
// ("owner/name"); empty means DefaultRepo.
func NewChecker(repo string) *Checker {
	if repo == "" {
		repo = DefaultRepo
	}
	return &Checker{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: "https://api.github.com",
		repo:    repo,
	}
}

// Latest fetches the most recent release.
func (c *Checker) Latest(ctx context.Context) (*Release, error) {
	url := fmt.Sprintf("%s/repos/%s/releases/latest", c.baseURL, c.repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("release check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("release check failed: %s", resp.Status)
	}

	var rel Release
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return nil, fmt.Errorf("failed to decode release: %w", err)
	}
	return &rel, nil
}

// IsNewer reports whether the latest tag describes a newer version than
// current. Tags are compared as dotted numbers with an optional "v" prefix;
// malformed versions compare as not newer.
func IsNewer(current, latest string) bool {
	cur := parseVersion(current)
	lat := parseVersion(latest)
	if cur == nil || lat == nil {
		return false
	}

	for i := 0; i < len(cur) || i < len(lat); i++ {
		var c, l int
		if i < len(cur) {
			c = cur[i]
		}
		if i < len(lat) {
			l = lat[i]
		}
		if l != c {
			return l > c
		}
	}
	return false
}

func parseVersion(v string) []int {
	v = strings.TrimPrefix(strings.TrimSpace(v), "v")
	if v == "" {
		return nil
	}
	// Ignore pre-release/build suffixes: "1.2.0-rc1" compares as 1.2.0.
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		v = v[:i]
	}

	parts := strings.Split(v, ".")
	nums := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil
		}
		nums = append(nums, n)
	}
	return nums
}
