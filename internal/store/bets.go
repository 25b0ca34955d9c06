package store

import (
	"time"
)

// PlaceBet reserves the stake and records the open bet in one transaction.
// Either both happen or neither does. Returns ErrInsufficientFunds without
// side effects when the user cannot cover the stake.
func (s *Store) PlaceBet(bet *Bet) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.ensureUser(tx, bet.UserID); err != nil {
		return err
	}

	if err := s.debit(tx, bet.UserID, bet.Amount); err != nil {
		return err
	}

	query := s.prepare(`INSERT INTO bets (id, user_id, fixture_id, team, amount, handicap, stronger, settled, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, FALSE, ?)`)
	if _, err := tx.Exec(query, bet.ID, bet.UserID, bet.FixtureID, bet.Team,
		bet.Amount, bet.Handicap, bet.Stronger, bet.CreatedAt); err != nil {
		return err
	}

	return tx.Commit()
}

// OpenBets returns every bet that has not been settled yet.
func (s *Store) OpenBets() ([]Bet, error) {
	query := s.prepare("SELECT id, user_id, fixture_id, team, amount, handicap, stronger, settled, created_at FROM bets WHERE settled = FALSE")
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bets []Bet
	for rows.Next() {
		var b Bet
		if err := rows.Scan(&b.ID, &b.UserID, &b.FixtureID, &b.Team,
			&b.Amount, &b.Handicap, &b.Stronger, &b.Settled, &b.CreatedAt); err != nil {
			return nil, err
		}
		bets = append(bets, b)
	}
	return bets, rows.Err()
}

// SettleBet closes one bet by its own id: flips the settled flag, pays out on
// a win, bumps the win/loss counter and appends the history row, all in one
// transaction. The stake was consumed at placement, so a loss debits nothing.
// Returns ErrBetSettled (and changes nothing) if the bet is already closed,
// which makes settlement runs safe to repeat.
func (s *Store) SettleBet(betID, userID string, stake int, won bool, payout int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(s.prepare("UPDATE bets SET settled = TRUE WHERE id = ? AND settled = FALSE"), betID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrBetSettled
	}

	outcome := OutcomeLoss
	if won {
		outcome = OutcomeWin
		query := s.prepare("UPDATE users SET cash = cash + ?, wins = wins + 1 WHERE id = ?")
		if _, err := tx.Exec(query, payout, userID); err != nil {
			return err
		}
	} else {
		query := s.prepare("UPDATE users SET losses = losses + 1 WHERE id = ?")
		if _, err := tx.Exec(query, userID); err != nil {
			return err
		}
	}

	query := s.prepare("INSERT INTO history (user_id, outcome, amount, created_at) VALUES (?, ?, ?, ?)")
	if _, err := tx.Exec(query, userID, outcome, stake, time.Now()); err != nil {
		return err
	}

	return tx.Commit()
}

// SettleDice applies an instant side-game result: credit the stake on a win,
// debit it on a loss, bump the counter and append history, atomically.
// Returns the new balance.
func (s *Store) SettleDice(userID string, stake int, won bool) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if err := s.ensureUser(tx, userID); err != nil {
		return 0, err
	}

	outcome := OutcomeLoss
	if won {
		outcome = OutcomeWin
		query := s.prepare("UPDATE users SET cash = cash + ?, wins = wins + 1 WHERE id = ?")
		if _, err := tx.Exec(query, stake, userID); err != nil {
			return 0, err
		}
	} else {
		if err := s.debit(tx, userID, stake); err != nil {
			return 0, err
		}
		query := s.prepare("UPDATE users SET losses = losses + 1 WHERE id = ?")
		if _, err := tx.Exec(query, userID); err != nil {
			return 0, err
		}
	}

	query := s.prepare("INSERT INTO history (user_id, outcome, amount, created_at) VALUES (?, ?, ?, ?)")
	if _, err := tx.Exec(query, userID, outcome, stake, time.Now()); err != nil {
		return 0, err
	}

	var cash int
	if err := tx.QueryRow(s.prepare("SELECT cash FROM users WHERE id = ?"), userID).Scan(&cash); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return cash, nil
}
