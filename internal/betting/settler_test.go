package betting

import (
	"context"
	"testing"
	"time"

	"verdictcash/internal/football"
	"verdictcash/internal/store"
)

func placeOn(t *testing.T, s *store.Store, oracle Oracle, userID, team string, stake int) *store.Bet {
	t.Helper()
	r, err := NewIntake(s, oracle, nil).PlaceBet(context.Background(), userID, 42, team, stake)
	if err != nil {
		t.Fatalf("PlaceBet: %v", err)
	}
	return r.Bet
}

func finish(oracle *fakeOracle, homeGoals, awayGoals int) {
	fx := oracle.fixtures[42]
	fx.Status = "FT"
	fx.HomeGoals = homeGoals
	fx.AwayGoals = awayGoals
	oracle.fixtures[42] = fx
}

func newTestSettler(s *store.Store, oracle Oracle) *Settler {
	return NewSettler(s, oracle, time.Minute, 2, nil)
}

func TestSettleWinPaysDouble(t *testing.T) {
	s := testStore(t)
	oracle := defaultOracle()
	placeOn(t, s, oracle, "u1", "Arsenal", 10000)

	// Arsenal favored at -0.5; 2-1 adjusted 1.5-1 keeps them the winner.
	finish(oracle, 2, 1)
	newTestSettler(s, oracle).RunOnce(context.Background())

	stats, _ := s.Stats("u1")
	if stats.Cash != 110000 {
		t.Fatalf("cash=%d want=110000", stats.Cash)
	}
	if stats.Wins != 1 {
		t.Fatalf("wins=%d want=1", stats.Wins)
	}
	open, _ := s.OpenBets()
	if len(open) != 0 {
		t.Fatal("winning bet left open")
	}
}

func TestSettleLossDoesNotDebitAgain(t *testing.T) {
	s := testStore(t)
	oracle := defaultOracle()
	placeOn(t, s, oracle, "u1", "Arsenal", 10000)

	finish(oracle, 0, 2)
	newTestSettler(s, oracle).RunOnce(context.Background())

	// Placement already took the stake; the loss must cost nothing more.
	stats, _ := s.Stats("u1")
	if stats.Cash != 90000 {
		t.Fatalf("cash=%d want=90000", stats.Cash)
	}
	if stats.Losses != 1 {
		t.Fatalf("losses=%d want=1", stats.Losses)
	}
}

func TestSettleTieAfterHandicapIsLoss(t *testing.T) {
	s := testStore(t)
	oracle := defaultOracle()
	// Force a full-goal line: powers 150 vs 45, diff 105, line 2, home favored.
	oracle.standings = []football.Standing{
		{Rank: 1, Team: "Arsenal", Points: 100},
		{Rank: 2, Team: "Chelsea", Points: 30},
	}
	placeOn(t, s, oracle, "u1", "Arsenal", 10000)

	// 3-1 adjusted by -2 is 1-1: dead heat, bettor loses.
	finish(oracle, 3, 1)
	newTestSettler(s, oracle).RunOnce(context.Background())

	stats, _ := s.Stats("u1")
	if stats.Cash != 90000 {
		t.Fatalf("cash=%d want=90000", stats.Cash)
	}
	if stats.Losses != 1 {
		t.Fatalf("losses=%d want=1", stats.Losses)
	}
	open, _ := s.OpenBets()
	if len(open) != 0 {
		t.Fatal("tied bet must still settle as a loss")
	}
}

func TestSettleSkipsUnfinishedFixtures(t *testing.T) {
	s := testStore(t)
	oracle := defaultOracle()
	placeOn(t, s, oracle, "u1", "Arsenal", 10000)

	newTestSettler(s, oracle).RunOnce(context.Background())

	open, _ := s.OpenBets()
	if len(open) != 1 {
		t.Fatal("bet on an unfinished fixture must stay open")
	}
	hist, _ := s.History("u1", 10)
	if len(hist) != 0 {
		t.Fatal("nothing may be recorded before the fixture finishes")
	}
}

func TestSettleSkipsUnresolvableFixtures(t *testing.T) {
	s := testStore(t)
	oracle := defaultOracle()
	placeOn(t, s, oracle, "u1", "Arsenal", 10000)

	// Provider forgets the fixture: silent retry, not a failure.
	delete(oracle.fixtures, 42)
	newTestSettler(s, oracle).RunOnce(context.Background())

	open, _ := s.OpenBets()
	if len(open) != 1 {
		t.Fatal("bet must stay open while the provider cannot resolve the fixture")
	}
}

func TestSettleRunTwiceIsIdempotent(t *testing.T) {
	s := testStore(t)
	oracle := defaultOracle()
	placeOn(t, s, oracle, "u1", "Arsenal", 10000)
	finish(oracle, 2, 1)

	settler := newTestSettler(s, oracle)
	settler.RunOnce(context.Background())
	settler.RunOnce(context.Background())

	bal, _ := s.Balance("u1")
	if bal != 110000 {
		t.Fatalf("balance=%d want=110000 (no double credit)", bal)
	}
	hist, _ := s.History("u1", 10)
	if len(hist) != 1 {
		t.Fatalf("len(history)=%d want=1 (no double append)", len(hist))
	}
}

func TestSettleSiblingBetsOnSameFixture(t *testing.T) {
	s := testStore(t)
	oracle := defaultOracle()
	winner := placeOn(t, s, oracle, "u1", "Arsenal", 10000)
	loser := placeOn(t, s, oracle, "u2", "Chelsea", 10000)

	finish(oracle, 2, 1)
	newTestSettler(s, oracle).RunOnce(context.Background())

	u1, _ := s.Stats(winner.UserID)
	if u1.Cash != 110000 || u1.Wins != 1 {
		t.Fatalf("u1 = %+v", u1)
	}
	u2, _ := s.Stats(loser.UserID)
	if u2.Cash != 90000 || u2.Losses != 1 {
		t.Fatalf("u2 = %+v", u2)
	}
}

func TestSettleNotifies(t *testing.T) {
	s := testStore(t)
	oracle := defaultOracle()
	bet := placeOn(t, s, oracle, "u1", "Arsenal", 10000)
	finish(oracle, 2, 1)

	var gotID string
	var gotPayout int
	settler := NewSettler(s, oracle, time.Minute, 2, func(b store.Bet, won bool, payout int) {
		gotID = b.ID
		gotPayout = payout
	})
	settler.RunOnce(context.Background())

	if gotID != bet.ID || gotPayout != 20000 {
		t.Fatalf("notified (%q,%d) want (%q,20000)", gotID, gotPayout, bet.ID)
	}
}

func TestAdjustedWinner(t *testing.T) {
	fx := &football.Fixture{HomeTeam: "Arsenal", AwayTeam: "Chelsea", HomeGoals: 3, AwayGoals: 2}

	cases := []struct {
		line        float64
		stronger    string
		wantWinner  string
		wantDecided bool
	}{
		{0, football.Home, "Arsenal", true},
		{0.5, football.Home, "Arsenal", true},
		{1, football.Home, "", false}, // 2-2 after the line: dead heat
		{1.5, football.Home, "Chelsea", true},
		{2, football.Away, "Arsenal", true},
	}

	for _, tc := range cases {
		winner, decided := AdjustedWinner(fx, tc.line, tc.stronger)
		if winner != tc.wantWinner || decided != tc.wantDecided {
			t.Fatalf("AdjustedWinner(line=%v, stronger=%s)=(%q,%v) want=(%q,%v)",
				tc.line, tc.stronger, winner, decided, tc.wantWinner, tc.wantDecided)
		}
	}
}
