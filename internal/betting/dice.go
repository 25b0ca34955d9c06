package betting

import (
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"

	"verdictcash/internal/store"
)

// Sides of the Tài/Xỉu dice game: tài (high) wins on a sum of 7 or more.
const (
	DiceHigh = "tài"
	DiceLow  = "xỉu"
)

// ErrInvalidChoice rejects anything other than tài or xỉu.
var ErrInvalidChoice = errors.New("choice must be tài or xỉu")

// DiceGame is the instant side game: two dice, high or low, resolved in one
// call against the ledger. The house wins outright with probability houseEdge
// before the dice are even compared.
type DiceGame struct {
	store     *store.Store
	houseEdge float64

	mu  sync.Mutex // guards rng, which is not safe for concurrent use
	rng *rand.Rand
}

func NewDiceGame(st *store.Store, houseEdge float64) *DiceGame {
	return &DiceGame{
		store:     st,
		houseEdge: houseEdge,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// DiceResult is one resolved round.
type DiceResult struct {
	Roll    int    // sum of both dice, 2..12
	Side    string // DiceHigh or DiceLow, from the roll
	Won     bool
	Balance int // balance after the round
}

// Play resolves one round for the user: validates the request, rolls, applies
// the house edge and settles the stake atomically. Win credits the stake,
// loss debits it; both append to the user's history.
func (g *DiceGame) Play(userID, choice string, stake int) (*DiceResult, error) {
	if stake <= 0 {
		return nil, ErrInvalidStake
	}
	choice = strings.ToLower(choice)
	if choice != DiceHigh && choice != DiceLow {
		return nil, ErrInvalidChoice
	}

	balance, err := g.store.Balance(userID)
	if err != nil {
		return nil, err
	}
	if balance < stake {
		return nil, store.ErrInsufficientFunds
	}

	g.mu.Lock()
	roll, won := playRound(g.rng, g.houseEdge, choice)
	g.mu.Unlock()

	side := DiceLow
	if roll >= 7 {
		side = DiceHigh
	}

	newBalance, err := g.store.SettleDice(userID, stake, won)
	if err != nil {
		return nil, err
	}

	return &DiceResult{Roll: roll, Side: side, Won: won, Balance: newBalance}, nil
}

// playRound draws the dice and decides the round. The forced-loss draw happens
// first: with probability houseEdge the bettor loses no matter the dice.
func playRound(rng *rand.Rand, houseEdge float64, choice string) (roll int, won bool) {
	roll = rng.Intn(6) + 1 + rng.Intn(6) + 1

	if rng.Float64() < houseEdge {
		return roll, false
	}

	side := DiceLow
	if roll >= 7 {
		side = DiceHigh
	}
	return roll, choice == side
}
