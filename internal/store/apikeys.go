package store

import "time"

// APIKey grants read access to the HTTP API on behalf of a user.
type APIKey struct {
	Key       string
	Name      string
	CreatedAt time.Time
}

func (s *Store) CreateAPIKey(key, userID, name string) error {
	query := s.prepare("INSERT INTO api_keys (key, user_id, name, created_at) VALUES (?, ?, ?, ?)")
	_, err := s.db.Exec(query, key, userID, name, time.Now())
	return err
}

func (s *Store) UserByAPIKey(key string) (string, error) {
	var userID string
	query := s.prepare("SELECT user_id FROM api_keys WHERE key = ?")
	err := s.db.QueryRow(query, key).Scan(&userID)
	if err != nil {
		return "", err
	}
	return userID, nil
}

func (s *Store) ListAPIKeys(userID string) ([]APIKey, error) {
	query := s.prepare("SELECT key, name, created_at FROM api_keys WHERE user_id = ?")
	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []APIKey
	for rows.Next() {
		var k APIKey
		if err := rows.Scan(&k.Key, &k.Name, &k.CreatedAt); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
