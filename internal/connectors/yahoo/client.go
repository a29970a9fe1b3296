// Package yahoo reads live league data from the Yahoo Fantasy Sports API.
// All calls are read-only; failures surface as domain.ErrToolUnavailable so
// the assistant can degrade instead of crashing a chat session.
package yahoo

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/gridiron-labs/huddle-cli/internal/core/domain"
	"github.com/gridiron-labs/huddle-cli/internal/core/ports/driven"
	"github.com/gridiron-labs/huddle-cli/internal/logger"
)

const (
	// DefaultBaseURL is the Yahoo Fantasy Sports API root.
	DefaultBaseURL = "https://fantasysports.yahooapis.com/fantasy/v2"

	// DefaultTimeout is the per-request HTTP timeout.
	DefaultTimeout = 15 * time.Second

	// requestsPerSecond keeps the client well under Yahoo's hourly quota.
	requestsPerSecond = 2
)

// authURL and tokenURL are Yahoo's OAuth2 endpoints.
const (
	authURL  = "https://api.login.yahoo.com/oauth2/request_auth"
	tokenURL = "https://api.login.yahoo.com/oauth2/get_token"
)

// Config carries the credentials and league identity for one Yahoo league.
type Config struct {
	// ClientID and ClientSecret identify the registered Yahoo application.
	ClientID     string
	ClientSecret string

	// RefreshToken is a long-lived token from a prior authorisation; the
	// client exchanges it for access tokens as needed.
	RefreshToken string

	// LeagueKey identifies the league, e.g. "nfl.l.123456".
	LeagueKey string

	// TeamKey identifies the user's team, e.g. "nfl.l.123456.t.7".
	TeamKey string
}

// Client is a rate-limited Yahoo Fantasy API client.
type Client struct {
	cfg     Config
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

var _ driven.LeagueClient = (*Client)(nil)

// Option adjusts client construction, mainly for tests.
type Option func(*Client)

// WithBaseURL points the client at an alternate API root.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient replaces the OAuth2-backed HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// NewClient creates a Yahoo client. The OAuth2 transport refreshes access
// tokens from the configured refresh token automatically.
func NewClient(cfg Config, opts ...Option) *Client {
	c := &Client{
		cfg:     cfg,
		baseURL: DefaultBaseURL,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		oc := &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint: oauth2.Endpoint{
				AuthURL:  authURL,
				TokenURL: tokenURL,
			},
		}
		ts := oc.TokenSource(context.Background(), &oauth2.Token{RefreshToken: cfg.RefreshToken})
		c.http = oauth2.NewClient(context.Background(), ts)
		c.http.Timeout = DefaultTimeout
	}
	return c
}

// Roster fetches the user's current roster.
func (c *Client) Roster(ctx context.Context) ([]domain.RosterEntry, error) {
	var payload fantasyContent
	path := fmt.Sprintf("/team/%s/roster", c.cfg.TeamKey)
	if err := c.get(ctx, path, &payload); err != nil {
		return nil, err
	}

	players := payload.Team.Roster.Players.Player
	entries := make([]domain.RosterEntry, 0, len(players))
	for _, p := range players {
		entries = append(entries, domain.RosterEntry{
			Name:      p.Name.Full,
			Positions: splitPositions(p.DisplayPosition),
		})
	}
	return entries, nil
}

// WaiverPlayers fetches players currently available in the league.
func (c *Client) WaiverPlayers(ctx context.Context) ([]domain.WaiverEntry, error) {
	var payload fantasyContent
	path := fmt.Sprintf("/league/%s/players;status=A;sort=AR", c.cfg.LeagueKey)
	if err := c.get(ctx, path, &payload); err != nil {
		return nil, err
	}

	players := payload.League.Players.Player
	entries := make([]domain.WaiverEntry, 0, len(players))
	for _, p := range players {
		entries = append(entries, domain.WaiverEntry{
			Name:      p.Name.Full,
			Positions: splitPositions(p.DisplayPosition),
		})
	}
	return entries, nil
}

// LeagueInfo fetches the current week and standings.
func (c *Client) LeagueInfo(ctx context.Context) (domain.LeagueInfo, error) {
	var payload fantasyContent
	path := fmt.Sprintf("/league/%s/standings", c.cfg.LeagueKey)
	if err := c.get(ctx, path, &payload); err != nil {
		return domain.LeagueInfo{}, err
	}

	teams := payload.League.Standings.Teams.Team
	standings := make([]domain.Standing, 0, len(teams))
	for _, t := range teams {
		standings = append(standings, domain.Standing{
			Rank:     t.TeamStandings.Rank,
			TeamName: t.Name,
			Wins:     t.TeamStandings.OutcomeTotals.Wins,
			Losses:   t.TeamStandings.OutcomeTotals.Losses,
			Ties:     t.TeamStandings.OutcomeTotals.Ties,
		})
	}
	return domain.LeagueInfo{
		CurrentWeek: payload.League.CurrentWeek,
		Standings:   standings,
	}, nil
}

// Close releases resources.
func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// get performs one rate-limited GET and decodes the XML body.
func (c *Client) get(ctx context.Context, path string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrToolUnavailable, err)
	}

	url := c.baseURL + path
	logger.Debug("yahoo GET %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: building request: %v", domain.ErrToolUnavailable, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrToolUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: yahoo returned %d: %s", domain.ErrToolUnavailable, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := xml.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", domain.ErrToolUnavailable, err)
	}
	return nil
}

// splitPositions splits Yahoo's display position ("RB", "WR,TE") into the
// domain's position list.
func splitPositions(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// fantasyContent mirrors the slice of Yahoo's XML envelope this client
// reads. Unused fields are left out.
type fantasyContent struct {
	XMLName xml.Name  `xml:"fantasy_content"`
	Team    xmlTeam   `xml:"team"`
	League  xmlLeague `xml:"league"`
}

type xmlTeam struct {
	Name   string `xml:"name"`
	Roster struct {
		Players xmlPlayers `xml:"players"`
	} `xml:"roster"`
}

type xmlLeague struct {
	CurrentWeek int        `xml:"current_week"`
	Players     xmlPlayers `xml:"players"`
	Standings   struct {
		Teams struct {
			Team []xmlStandingsTeam `xml:"team"`
		} `xml:"teams"`
	} `xml:"standings"`
}

type xmlPlayers struct {
	Player []xmlPlayer `xml:"player"`
}

type xmlPlayer struct {
	Name struct {
		Full string `xml:"full"`
	} `xml:"name"`
	DisplayPosition string `xml:"display_position"`
}

type xmlStandingsTeam struct {
	Name          string `xml:"name"`
	TeamStandings struct {
		Rank          int `xml:"rank"`
		OutcomeTotals struct {
			Wins   int `xml:"wins"`
			Losses int `xml:"losses"`
			Ties   int `xml:"ties"`
		} `xml:"outcome_totals"`
	} `xml:"team_standings"`
}
