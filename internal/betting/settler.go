package betting

import (
	"context"
	"errors"
	"log"
	"time"

	"verdictcash/internal/football"
	"verdictcash/internal/store"
)

// Settler polls the fixture provider for results of open bets and closes each
// bet whose fixture has reached full time. Every bet is settled by its own id
// in its own transaction, so a failure mid-run leaves earlier settlements
// committed and the failed bet open for the next cycle.
type Settler struct {
	store     *store.Store
	oracle    Oracle
	interval  time.Duration
	winMult   int
	onSettled func(bet store.Bet, won bool, payout int)
}

func NewSettler(st *store.Store, oracle Oracle, interval time.Duration, winMult int, onSettled func(store.Bet, bool, int)) *Settler {
	if winMult <= 0 {
		winMult = 2
	}
	return &Settler{
		store:     st,
		oracle:    oracle,
		interval:  interval,
		winMult:   winMult,
		onSettled: onSettled,
	}
}

// Start runs the settlement loop until ctx is cancelled. Blocks; run it in a
// goroutine.
func (s *Settler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Initial pass on startup
	s.RunOnce(ctx)

	for {
		select {
		case <-ticker.C:
			s.RunOnce(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// RunOnce performs a single settlement pass over all open bets. Fixtures that
// are not finished yet, or that the provider cannot resolve right now, are
// skipped and retried on a later pass.
func (s *Settler) RunOnce(ctx context.Context) {
	bets, err := s.store.OpenBets()
	if err != nil {
		log.Printf("[Settle] loading open bets: %v", err)
		return
	}
	if len(bets) == 0 {
		return
	}

	// One provider call per fixture, shared by every bet on it.
	byFixture := make(map[int][]store.Bet)
	for _, b := range bets {
		byFixture[b.FixtureID] = append(byFixture[b.FixtureID], b)
	}

	for fixtureID, group := range byFixture {
		if ctx.Err() != nil {
			return
		}

		fx, err := s.oracle.Fixture(ctx, fixtureID)
		if err != nil {
			if !errors.Is(err, football.ErrFixtureNotFound) {
				log.Printf("[Settle] fixture %d: %v", fixtureID, err)
			}
			continue
		}
		if !fx.Finished() {
			continue
		}

		for _, bet := range group {
			if err := s.settle(bet, fx); err != nil {
				log.Printf("[Settle] bet %s: %v", bet.ID, err)
			}
		}
	}
}

func (s *Settler) settle(bet store.Bet, fx *football.Fixture) error {
	winner, decided := AdjustedWinner(fx, bet.Handicap, bet.Stronger)

	// A dead heat after the line pays nobody, so the bettor's pick loses.
	won := decided && bet.Team == winner
	payout := 0
	if won {
		payout = bet.Amount * s.winMult
	}

	err := s.store.SettleBet(bet.ID, bet.UserID, bet.Amount, won, payout)
	if errors.Is(err, store.ErrBetSettled) {
		// An earlier pass already closed this bet.
		return nil
	}
	if err != nil {
		return err
	}

	outcome := store.OutcomeLoss
	if won {
		outcome = store.OutcomeWin
	}
	log.Printf("[Settle] bet %s on fixture %d: %s (stake %d, payout %d)",
		bet.ID, bet.FixtureID, outcome, bet.Amount, payout)

	if s.onSettled != nil {
		s.onSettled(bet, won, payout)
	}
	return nil
}

// AdjustedWinner subtracts the handicap line from the favored side's goals and
// names the side left with strictly more. decided is false on an exact tie.
func AdjustedWinner(fx *football.Fixture, line float64, stronger string) (winner string, decided bool) {
	homeGoals := float64(fx.HomeGoals)
	awayGoals := float64(fx.AwayGoals)

	if stronger == football.Home {
		homeGoals -= line
	} else {
		awayGoals -= line
	}

	switch {
	case homeGoals > awayGoals:
		return fx.HomeTeam, true
	case awayGoals > homeGoals:
		return fx.AwayTeam, true
	}
	return "", false
}
