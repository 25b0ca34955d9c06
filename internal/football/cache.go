package football

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// StandingsCache keeps league tables in Redis so repeated bets on the same
// league don't burn through the provider's rate limit.
type StandingsCache struct {
	r *redis.Client
}

func NewStandingsCache(r *redis.Client) *StandingsCache {
	return &StandingsCache{r: r}
}

func standingsKey(league, season int) string {
	return fmt.Sprintf("standings:%d:%d", league, season)
}

func (c *StandingsCache) Get(ctx context.Context, league, season int) ([]Standing, bool, error) {
	b, err := c.r.Get(ctx, standingsKey(league, season)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var table []Standing
	if err := json.Unmarshal(b, &table); err != nil {
		return nil, false, err
	}
	return table, true, nil
}

func (c *StandingsCache) Set(ctx context.Context, league, season int, table []Standing, ttl time.Duration) error {
	b, err := json.Marshal(table)
	if err != nil {
		return err
	}
	return c.r.Set(ctx, standingsKey(league, season), b, ttl).Err()
}
