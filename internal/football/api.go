package football

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"
)

const defaultBaseURL = "https://v3.football.api-sports.io"

var (
	// ErrFixtureNotFound means the provider has no fixture for the given id.
	ErrFixtureNotFound = errors.New("fixture not found")
	// ErrStandingsUnavailable means the provider returned no table for the league/season.
	ErrStandingsUnavailable = errors.New("standings unavailable")
)

// Client talks to the api-sports v3 football API. The provider is rate
// limited, so standings can be served from an optional cache.
type Client struct {
	apiKey   string
	baseURL  string
	http     *http.Client
	cache    *StandingsCache
	cacheTTL time.Duration
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// UseCache routes standings lookups through cache with the given TTL.
func (c *Client) UseCache(cache *StandingsCache, ttl time.Duration) {
	c.cache = cache
	c.cacheTTL = ttl
}

func (c *Client) get(ctx context.Context, endpoint string, dst interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("x-apisports-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("football API returned %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(dst)
}

type fixtureItem struct {
	Fixture struct {
		ID     int `json:"id"`
		Status struct {
			Short string `json:"short"`
		} `json:"status"`
	} `json:"fixture"`
	League struct {
		ID     int `json:"id"`
		Season int `json:"season"`
	} `json:"league"`
	Teams struct {
		Home struct {
			Name string `json:"name"`
		} `json:"home"`
		Away struct {
			Name string `json:"name"`
		} `json:"away"`
	} `json:"teams"`
	Goals struct {
		Home *int `json:"home"` // null until the match starts
		Away *int `json:"away"`
	} `json:"goals"`
}

type fixturesResponse struct {
	Response []fixtureItem `json:"response"`
}

func (it *fixtureItem) toFixture() Fixture {
	f := Fixture{
		ID:       it.Fixture.ID,
		Status:   it.Fixture.Status.Short,
		LeagueID: it.League.ID,
		Season:   it.League.Season,
		HomeTeam: it.Teams.Home.Name,
		AwayTeam: it.Teams.Away.Name,
	}
	if it.Goals.Home != nil {
		f.HomeGoals = *it.Goals.Home
	}
	if it.Goals.Away != nil {
		f.AwayGoals = *it.Goals.Away
	}
	return f
}

// Fixture fetches a single fixture by provider id.
func (c *Client) Fixture(ctx context.Context, id int) (*Fixture, error) {
	var data fixturesResponse
	if err := c.get(ctx, fmt.Sprintf("fixtures?id=%d", id), &data); err != nil {
		return nil, err
	}
	if len(data.Response) == 0 {
		return nil, ErrFixtureNotFound
	}
	f := data.Response[0].toFixture()
	return &f, nil
}

// Upcoming lists the next n scheduled fixtures.
func (c *Client) Upcoming(ctx context.Context, n int) ([]Fixture, error) {
	var data fixturesResponse
	if err := c.get(ctx, fmt.Sprintf("fixtures?next=%d", n), &data); err != nil {
		return nil, err
	}

	fixtures := make([]Fixture, 0, len(data.Response))
	for i := range data.Response {
		fixtures = append(fixtures, data.Response[i].toFixture())
	}
	return fixtures, nil
}

type standingsResponse struct {
	Response []struct {
		League struct {
			Standings [][]struct {
				Rank int `json:"rank"`
				Team struct {
					Name string `json:"name"`
				} `json:"team"`
				Points    int    `json:"points"`
				GoalsDiff int    `json:"goalsDiff"`
				Form      string `json:"form"`
			} `json:"standings"`
		} `json:"league"`
	} `json:"response"`
}

// Standings fetches the league table for a league and season.
func (c *Client) Standings(ctx context.Context, league, season int) ([]Standing, error) {
	if c.cache != nil {
		table, ok, err := c.cache.Get(ctx, league, season)
		if err != nil {
			log.Printf("[Standings] cache read failed: %v", err)
		} else if ok {
			return table, nil
		}
	}

	var data standingsResponse
	if err := c.get(ctx, fmt.Sprintf("standings?league=%d&season=%d", league, season), &data); err != nil {
		return nil, err
	}
	if len(data.Response) == 0 || len(data.Response[0].League.Standings) == 0 {
		return nil, ErrStandingsUnavailable
	}

	rowsIn := data.Response[0].League.Standings[0]
	table := make([]Standing, 0, len(rowsIn))
	for _, row := range rowsIn {
		table = append(table, Standing{
			Rank:      row.Rank,
			Team:      row.Team.Name,
			Points:    row.Points,
			GoalsDiff: row.GoalsDiff,
			Form:      row.Form,
		})
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, league, season, table, c.cacheTTL); err != nil {
			log.Printf("[Standings] cache write failed: %v", err)
		}
	}
	return table, nil
}
