package store

import (
	"database/sql"
	"fmt"
	"log"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

// Store owns the database handle for users, bets and history. It is created in
// main and passed into every component that needs it.
type Store struct {
	db           *sql.DB
	dbType       string
	startingCash int
}

// Open connects to the configured database, creates missing tables and returns
// a ready Store. dbType is "sqlite" or "postgres".
func Open(dbType, connString string, startingCash int) (*Store, error) {
	if startingCash <= 0 {
		startingCash = 100000
	}

	var driver string
	switch dbType {
	case "postgres":
		log.Println("Initializing PostgreSQL store...")
		driver = "pgx"
	case "sqlite":
		fallthrough
	default:
		log.Println("Initializing SQLite store...")
		dbType = "sqlite"
		driver = "sqlite3"
	}

	db, err := sql.Open(driver, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if dbType == "postgres" {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(0)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{db: db, dbType: dbType, startingCash: startingCash}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	log.Printf("Store initialized successfully (type: %s)", dbType)
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// prepare converts ? placeholders to $N when running against PostgreSQL.
func (s *Store) prepare(query string) string {
	if s.dbType != "postgres" {
		return query
	}

	var b strings.Builder
	placeholderIndex := 1
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			fmt.Fprintf(&b, "$%d", placeholderIndex)
			placeholderIndex++
		} else {
			b.WriteByte(query[i])
		}
	}
	return b.String()
}

func (s *Store) createTables() error {
	createUsersSQL := `CREATE TABLE IF NOT EXISTS users (
		id TEXT NOT NULL PRIMARY KEY,
		cash INTEGER NOT NULL DEFAULT 0,
		wins INTEGER NOT NULL DEFAULT 0,
		losses INTEGER NOT NULL DEFAULT 0
	);`
	if _, err := s.db.Exec(createUsersSQL); err != nil {
		return err
	}

	createBetsSQL := `CREATE TABLE IF NOT EXISTS bets (
		id TEXT NOT NULL PRIMARY KEY,
		user_id TEXT NOT NULL,
		fixture_id INTEGER NOT NULL,
		team TEXT NOT NULL,
		amount INTEGER NOT NULL,
		handicap REAL NOT NULL,
		stronger TEXT NOT NULL,
		settled BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP NOT NULL
	);`
	if _, err := s.db.Exec(createBetsSQL); err != nil {
		return err
	}

	createHistorySQL := `CREATE TABLE IF NOT EXISTS history (
		user_id TEXT NOT NULL,
		outcome TEXT NOT NULL,
		amount INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL
	);`
	if _, err := s.db.Exec(createHistorySQL); err != nil {
		return err
	}

	createAPIKeysSQL := `CREATE TABLE IF NOT EXISTS api_keys (
		key TEXT NOT NULL PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT,
		created_at TIMESTAMP NOT NULL
	);`
	if _, err := s.db.Exec(createAPIKeysSQL); err != nil {
		return err
	}

	return nil
}

// ensureUser creates the account with the starting balance if it does not
// exist yet. Safe to call inside a transaction via any execer.
func (s *Store) ensureUser(q execer, userID string) error {
	query := s.prepare("INSERT INTO users (id, cash) VALUES (?, ?) ON CONFLICT(id) DO NOTHING")
	_, err := q.Exec(query, userID, s.startingCash)
	return err
}

type execer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
}
