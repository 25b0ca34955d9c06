package store

import "time"

// Side tags for the favored team of a bet.
const (
	SideHome = "home"
	SideAway = "away"
)

// Outcome labels recorded in the history log.
const (
	OutcomeWin  = "win"
	OutcomeLoss = "loss"
)

// Bet is an open or settled wager on a football fixture. The handicap line and
// favored side are frozen at placement and never change afterwards.
type Bet struct {
	ID        string
	UserID    string
	FixtureID int
	Team      string
	Amount    int
	Handicap  float64
	Stronger  string // SideHome or SideAway
	Settled   bool
	CreatedAt time.Time
}

// HistoryEntry is one settled outcome in a user's append-only history.
type HistoryEntry struct {
	UserID    string
	Outcome   string // OutcomeWin or OutcomeLoss
	Amount    int
	CreatedAt time.Time
}

// UserStats is a user row as shown to the presentation layer.
type UserStats struct {
	ID     string
	Cash   int
	Wins   int
	Losses int
}
