package betting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"verdictcash/internal/football"
	"verdictcash/internal/store"
)

var (
	// ErrInvalidStake rejects zero or negative stakes.
	ErrInvalidStake = errors.New("stake must be a positive amount")
	// ErrTeamNotInStandings means a fixture team has no row in the league table
	// under the provider's exact name.
	ErrTeamNotInStandings = errors.New("team not found in standings")
	// ErrTeamNotInFixture means the chosen team plays in neither side of the
	// fixture.
	ErrTeamNotInFixture = errors.New("team does not play in this fixture")
)

// Oracle is the slice of the fixture provider the wagering engine needs.
type Oracle interface {
	Fixture(ctx context.Context, id int) (*football.Fixture, error)
	Standings(ctx context.Context, league, season int) ([]football.Standing, error)
}

// Intake validates a placement request, freezes the handicap and opens the
// bet. notify, if set, receives every successfully opened bet.
type Intake struct {
	store  *store.Store
	oracle Oracle
	notify func(*store.Bet)
}

func NewIntake(st *store.Store, oracle Oracle, notify func(*store.Bet)) *Intake {
	return &Intake{store: st, oracle: oracle, notify: notify}
}

// Receipt is a freshly opened bet plus the fixture details the presentation
// layer needs to render the ticket.
type Receipt struct {
	Bet     *store.Bet
	Fixture *football.Fixture
	Favored string // favored team's name, as the provider spells it
}

// PlaceBet reserves stake from the user and opens a bet on the fixture with
// the line computed from the current standings. On any error nothing is
// debited and no bet is recorded. The oracle is consulted before the store
// transaction starts, so slow provider calls never hold up the ledger.
func (in *Intake) PlaceBet(ctx context.Context, userID string, fixtureID int, team string, stake int) (*Receipt, error) {
	if stake <= 0 {
		return nil, ErrInvalidStake
	}

	// Early funds check so we don't spend oracle calls on a bet that can't be
	// covered. The authoritative check is the conditional debit below.
	balance, err := in.store.Balance(userID)
	if err != nil {
		return nil, err
	}
	if balance < stake {
		return nil, store.ErrInsufficientFunds
	}

	fx, err := in.oracle.Fixture(ctx, fixtureID)
	if err != nil {
		return nil, err
	}

	// Resolve the pick to the provider's spelling up front; settlement compares
	// against the provider's names, so a bet on an unresolved pick could never win.
	pick, ok := resolvePick(fx, team)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTeamNotInFixture, team)
	}

	table, err := in.oracle.Standings(ctx, fx.LeagueID, fx.Season)
	if err != nil {
		return nil, err
	}

	home, ok := football.FindTeam(table, fx.HomeTeam)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTeamNotInStandings, fx.HomeTeam)
	}
	away, ok := football.FindTeam(table, fx.AwayTeam)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTeamNotInStandings, fx.AwayTeam)
	}

	stronger, line := football.Handicap(home, away)

	bet := &store.Bet{
		ID:        uuid.New().String(),
		UserID:    userID,
		FixtureID: fixtureID,
		Team:      pick,
		Amount:    stake,
		Handicap:  line,
		Stronger:  stronger,
		CreatedAt: time.Now(),
	}

	if err := in.store.PlaceBet(bet); err != nil {
		return nil, err
	}

	if in.notify != nil {
		in.notify(bet)
	}

	favored := fx.HomeTeam
	if stronger == football.Away {
		favored = fx.AwayTeam
	}
	return &Receipt{Bet: bet, Fixture: fx, Favored: favored}, nil
}

// resolvePick matches the user's team spelling against the fixture's sides,
// ignoring case, and returns the provider's canonical name.
func resolvePick(fx *football.Fixture, team string) (string, bool) {
	switch {
	case strings.EqualFold(team, fx.HomeTeam):
		return fx.HomeTeam, true
	case strings.EqualFold(team, fx.AwayTeam):
		return fx.AwayTeam, true
	}
	return "", false
}
