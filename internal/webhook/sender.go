package webhook

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"verdictcash/internal/store"
)

// Payload is the JSON body posted to the configured notification URL.
type Payload struct {
	Event     string    `json:"event"`
	UserID    string    `json:"user_id"`
	FixtureID int       `json:"fixture_id"`
	Team      string    `json:"team"`
	Amount    int       `json:"amount"`
	Handicap  float64   `json:"handicap"`
	Stronger  string    `json:"stronger"`
	Outcome   string    `json:"outcome,omitempty"`
	Payout    int       `json:"payout,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// SendBetReceipt notifies the presentation side that a bet was opened.
func SendBetReceipt(url string, bet *store.Bet) {
	if url == "" {
		return
	}
	send(url, Payload{
		Event:     "bet_placed",
		UserID:    bet.UserID,
		FixtureID: bet.FixtureID,
		Team:      bet.Team,
		Amount:    bet.Amount,
		Handicap:  bet.Handicap,
		Stronger:  bet.Stronger,
		Timestamp: time.Now(),
	})
}

// SendSettlement notifies the presentation side that a bet was closed.
func SendSettlement(url string, bet store.Bet, won bool, payout int) {
	if url == "" {
		return
	}
	outcome := store.OutcomeLoss
	if won {
		outcome = store.OutcomeWin
	}
	send(url, Payload{
		Event:     "bet_settled",
		UserID:    bet.UserID,
		FixtureID: bet.FixtureID,
		Team:      bet.Team,
		Amount:    bet.Amount,
		Handicap:  bet.Handicap,
		Stronger:  bet.Stronger,
		Outcome:   outcome,
		Payout:    payout,
		Timestamp: time.Now(),
	})
}

// send posts asynchronously; delivery is best effort and failures only log.
func send(url string, p Payload) {
	go func() {
		jsonBytes, _ := json.Marshal(p)

		client := http.Client{
			Timeout: 5 * time.Second,
		}

		resp, err := client.Post(url, "application/json", bytes.NewBuffer(jsonBytes))
		if err != nil {
			log.Printf("Failed to trigger webhook for user %s: %v", p.UserID, err)
			return
		}
		defer resp.Body.Close()
	}()
}
