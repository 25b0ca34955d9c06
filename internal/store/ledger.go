package store

import (
	"database/sql"
	"errors"
)

var (
	// ErrInsufficientFunds means a debit would have taken the balance below zero.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrBetSettled means the bet was already closed by an earlier settlement run.
	ErrBetSettled = errors.New("bet already settled")
)

// Balance returns the user's cash, creating the account with the starting
// balance on first reference.
func (s *Store) Balance(userID string) (int, error) {
	if err := s.ensureUser(s.db, userID); err != nil {
		return 0, err
	}

	var cash int
	query := s.prepare("SELECT cash FROM users WHERE id = ?")
	if err := s.db.QueryRow(query, userID).Scan(&cash); err != nil {
		return 0, err
	}
	return cash, nil
}

// Stats returns the user's cash and win/loss counters, creating the account
// on first reference.
func (s *Store) Stats(userID string) (UserStats, error) {
	if err := s.ensureUser(s.db, userID); err != nil {
		return UserStats{}, err
	}

	var u UserStats
	query := s.prepare("SELECT id, cash, wins, losses FROM users WHERE id = ?")
	err := s.db.QueryRow(query, userID).Scan(&u.ID, &u.Cash, &u.Wins, &u.Losses)
	return u, err
}

// AddCash credits a user unconditionally (administrative top-up).
func (s *Store) AddCash(userID string, amount int) error {
	if err := s.ensureUser(s.db, userID); err != nil {
		return err
	}
	query := s.prepare("UPDATE users SET cash = cash + ? WHERE id = ?")
	_, err := s.db.Exec(query, amount, userID)
	return err
}

// TopBalances returns up to limit users ordered by cash, richest first.
func (s *Store) TopBalances(limit int) ([]UserStats, error) {
	query := s.prepare("SELECT id, cash, wins, losses FROM users ORDER BY cash DESC LIMIT ?")
	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []UserStats
	for rows.Next() {
		var u UserStats
		if err := rows.Scan(&u.ID, &u.Cash, &u.Wins, &u.Losses); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// History returns up to limit of the user's settled outcomes, newest first.
func (s *Store) History(userID string, limit int) ([]HistoryEntry, error) {
	query := s.prepare("SELECT user_id, outcome, amount, created_at FROM history WHERE user_id = ? ORDER BY created_at DESC LIMIT ?")
	rows, err := s.db.Query(query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.UserID, &e.Outcome, &e.Amount, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// debit subtracts amount inside tx, refusing to go below zero.
func (s *Store) debit(tx *sql.Tx, userID string, amount int) error {
	query := s.prepare("UPDATE users SET cash = cash - ? WHERE id = ? AND cash >= ?")
	res, err := tx.Exec(query, amount, userID, amount)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrInsufficientFunds
	}
	return nil
}
