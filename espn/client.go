// Package espn reads fantasy football league snapshots from the ESPN fantasy API.
package espn

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

const defaultBaseURL = "https://lm-api-reads.fantasy.espn.com/apis/v3/games/ffl"

var leagueViews = []string{"mTeam", "mMatchupScore", "mSettings", "mStatus"}

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	LeagueID   int
	Year       int
	// Private leagues need both cookies. Public leagues leave them empty or "1".
	EspnS2  string
	SWID    string
	Timeout time.Duration
	Logger  *slog.Logger
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	leagueID   int
	year       int
	espnS2     string
	swid       string
	logger     *slog.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}
	if cfg.HTTPClient != nil {
		c := *cfg.HTTPClient
		httpClient = &c
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		leagueID:   cfg.LeagueID,
		year:       cfg.Year,
		espnS2:     credential(strings.TrimSpace(cfg.EspnS2), "1"),
		swid:       credential(NormalizeSWID(cfg.SWID), "{1}"),
		logger:     logger,
	}
}

// NormalizeSWID wraps a SWID cookie value in braces, the form ESPN expects.
func NormalizeSWID(swid string) string {
	swid = strings.TrimSpace(swid)
	if swid == "" {
		return ""
	}
	if !strings.HasPrefix(swid, "{") {
		swid = "{" + swid
	}
	if !strings.HasSuffix(swid, "}") {
		swid = swid + "}"
	}
	return swid
}

// credential drops the "1" placeholder deployments use for an unset cookie.
func credential(value, placeholder string) string {
	if value == placeholder {
		return ""
	}
	return value
}

// Private reports whether the client carries league cookies.
func (c *Client) Private() bool {
	return c.espnS2 != "" && c.swid != ""
}

// League fetches the current snapshot of the configured league.
func (c *Client) League(ctx context.Context) (*League, error) {
	if c.leagueID <= 0 {
		return nil, fmt.Errorf("league id must be greater than zero")
	}

	var resp leagueResponse
	if err := c.doJSON(ctx, c.leagueURL(views(leagueViews...)), nil, &resp); err != nil {
		return nil, fmt.Errorf("fetch league %d season %d: %w", c.leagueID, c.year, err)
	}

	league := resp.toLeague()
	c.logger.Info("Fetched league", "leagueID", league.ID, "teams", len(league.Teams), "currentWeek", league.CurrentWeek)
	return league, nil
}

func views(names ...string) url.Values {
	query := url.Values{}
	for _, v := range names {
		query.Add("view", v)
	}
	return query
}

func (c *Client) leagueURL(query url.Values) string {
	return fmt.Sprintf("%s/seasons/%d/segments/0/leagues/%d?%s", c.baseURL, c.year, c.leagueID, query.Encode())
}

func (c *Client) doJSON(ctx context.Context, rawURL string, header http.Header, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	if c.Private() {
		req.AddCookie(&http.Cookie{Name: "espn_s2", Value: c.espnS2})
		req.AddCookie(&http.Cookie{Name: "SWID", Value: c.swid})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to ESPN failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d from ESPN", resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal ESPN response: %w", err)
	}
	return nil
}
