package betting

import (
	"context"
	"errors"
	"testing"

	"verdictcash/internal/football"
	"verdictcash/internal/store"
)

// fakeOracle serves fixtures and standings from memory.
type fakeOracle struct {
	fixtures  map[int]football.Fixture
	standings []football.Standing
	err       error
}

func (f *fakeOracle) Fixture(ctx context.Context, id int) (*football.Fixture, error) {
	if f.err != nil {
		return nil, f.err
	}
	fx, ok := f.fixtures[id]
	if !ok {
		return nil, football.ErrFixtureNotFound
	}
	return &fx, nil
}

func (f *fakeOracle) Standings(ctx context.Context, league, season int) ([]football.Standing, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.standings == nil {
		return nil, football.ErrStandingsUnavailable
	}
	return f.standings, nil
}

func testStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open("sqlite", ":memory:", 100000)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func defaultOracle() *fakeOracle {
	return &fakeOracle{
		fixtures: map[int]football.Fixture{
			42: {
				ID:       42,
				Status:   "NS",
				LeagueID: 39,
				Season:   2023,
				HomeTeam: "Arsenal",
				AwayTeam: "Chelsea",
			},
		},
		standings: []football.Standing{
			// Powers 75 and 52.5, diff 22.5: line 0.5, home favored.
			{Rank: 1, Team: "Arsenal", Points: 50},
			{Rank: 2, Team: "Chelsea", Points: 35},
		},
	}
}

func TestPlaceBetFreezesLine(t *testing.T) {
	s := testStore(t)
	in := NewIntake(s, defaultOracle(), nil)

	r, err := in.PlaceBet(context.Background(), "u1", 42, "Arsenal", 10000)
	if err != nil {
		t.Fatalf("PlaceBet: %v", err)
	}

	if r.Bet.Handicap != 0.5 || r.Bet.Stronger != football.Home {
		t.Fatalf("line=(%v,%s) want=(0.5,home)", r.Bet.Handicap, r.Bet.Stronger)
	}
	if r.Bet.ID == "" {
		t.Fatal("bet must carry a generated id")
	}
	if r.Favored != "Arsenal" {
		t.Fatalf("favored=%q want=Arsenal", r.Favored)
	}

	bal, _ := s.Balance("u1")
	if bal != 90000 {
		t.Fatalf("balance=%d want=90000", bal)
	}
	open, _ := s.OpenBets()
	if len(open) != 1 {
		t.Fatalf("len(open)=%d want=1", len(open))
	}
}

func TestPlaceBetInvalidStake(t *testing.T) {
	s := testStore(t)
	in := NewIntake(s, defaultOracle(), nil)

	for _, stake := range []int{0, -5} {
		_, err := in.PlaceBet(context.Background(), "u1", 42, "Arsenal", stake)
		if !errors.Is(err, ErrInvalidStake) {
			t.Fatalf("stake=%d err=%v want ErrInvalidStake", stake, err)
		}
	}
}

func TestPlaceBetInsufficientFunds(t *testing.T) {
	s := testStore(t)
	in := NewIntake(s, defaultOracle(), nil)

	_, err := in.PlaceBet(context.Background(), "u1", 42, "Arsenal", 100001)
	if !errors.Is(err, store.ErrInsufficientFunds) {
		t.Fatalf("err=%v want ErrInsufficientFunds", err)
	}

	bal, _ := s.Balance("u1")
	if bal != 100000 {
		t.Fatalf("balance=%d want=100000", bal)
	}
}

func TestPlaceBetFixtureNotFound(t *testing.T) {
	s := testStore(t)
	in := NewIntake(s, defaultOracle(), nil)

	_, err := in.PlaceBet(context.Background(), "u1", 999, "Arsenal", 10000)
	if !errors.Is(err, football.ErrFixtureNotFound) {
		t.Fatalf("err=%v want ErrFixtureNotFound", err)
	}

	bal, _ := s.Balance("u1")
	if bal != 100000 {
		t.Fatalf("balance=%d want=100000 (no debit on failure)", bal)
	}
	open, _ := s.OpenBets()
	if len(open) != 0 {
		t.Fatal("no bet may be recorded on a failed placement")
	}
}

func TestPlaceBetResolvesPickSpelling(t *testing.T) {
	s := testStore(t)
	in := NewIntake(s, defaultOracle(), nil)

	r, err := in.PlaceBet(context.Background(), "u1", 42, "chelsea", 10000)
	if err != nil {
		t.Fatalf("PlaceBet: %v", err)
	}
	if r.Bet.Team != "Chelsea" {
		t.Fatalf("pick=%q want provider spelling %q", r.Bet.Team, "Chelsea")
	}
}

func TestPlaceBetTeamNotInFixture(t *testing.T) {
	s := testStore(t)
	in := NewIntake(s, defaultOracle(), nil)

	_, err := in.PlaceBet(context.Background(), "u1", 42, "Tottenham", 10000)
	if !errors.Is(err, ErrTeamNotInFixture) {
		t.Fatalf("err=%v want ErrTeamNotInFixture", err)
	}

	bal, _ := s.Balance("u1")
	if bal != 100000 {
		t.Fatalf("balance=%d want=100000 (no debit on failure)", bal)
	}
}

func TestPlaceBetTeamMissingFromTable(t *testing.T) {
	s := testStore(t)
	oracle := defaultOracle()
	oracle.standings = []football.Standing{{Rank: 1, Team: "Arsenal", Points: 50}}
	in := NewIntake(s, oracle, nil)

	_, err := in.PlaceBet(context.Background(), "u1", 42, "Chelsea", 10000)
	if !errors.Is(err, ErrTeamNotInStandings) {
		t.Fatalf("err=%v want ErrTeamNotInStandings", err)
	}

	bal, _ := s.Balance("u1")
	if bal != 100000 {
		t.Fatalf("balance=%d want=100000 (no debit on failure)", bal)
	}
}

func TestPlaceBetNotifies(t *testing.T) {
	s := testStore(t)

	var notified *store.Bet
	in := NewIntake(s, defaultOracle(), func(b *store.Bet) { notified = b })

	r, err := in.PlaceBet(context.Background(), "u1", 42, "Chelsea", 5000)
	if err != nil {
		t.Fatalf("PlaceBet: %v", err)
	}
	if notified == nil || notified.ID != r.Bet.ID {
		t.Fatal("receipt hook did not fire for the created bet")
	}
}
