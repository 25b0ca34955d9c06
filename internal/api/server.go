package api

import (
	"encoding/json"
	"log"
	"net/http"

	"verdictcash/internal/store"
)

// Server exposes read-only wallet data over HTTP, authenticated by API keys
// created through the bot. Balances are only ever mutated by the wagering
// engine; this surface never writes.
type Server struct {
	store *store.Store
}

func NewServer(st *store.Store) *Server {
	return &Server{store: st}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type BalanceResponse struct {
	UserID  string `json:"user_id"`
	Balance int    `json:"balance"`
	Wins    int    `json:"wins"`
	Losses  int    `json:"losses"`
}

type HistoryItem struct {
	Outcome   string `json:"outcome"`
	Amount    int    `json:"amount"`
	CreatedAt string `json:"created_at"`
}

type LeaderboardItem struct {
	UserID  string `json:"user_id"`
	Balance int    `json:"balance"`
}

func (srv *Server) authMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("X-API-Key")
		if key == "" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Missing API Key"})
			return
		}

		userID, err := srv.store.UserByAPIKey(key)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Invalid API Key"})
			return
		}

		r.Header.Set("X-User-ID", userID)
		next(w, r)
	}
}

func (srv *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	userID := r.Header.Get("X-User-ID")
	stats, err := srv.store.Stats(userID)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "Lookup failed"})
		return
	}

	json.NewEncoder(w).Encode(BalanceResponse{
		UserID:  userID,
		Balance: stats.Cash,
		Wins:    stats.Wins,
		Losses:  stats.Losses,
	})
}

func (srv *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	userID := r.Header.Get("X-User-ID")
	entries, err := srv.store.History(userID, 50)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "Lookup failed"})
		return
	}

	items := make([]HistoryItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, HistoryItem{
			Outcome:   e.Outcome,
			Amount:    e.Amount,
			CreatedAt: e.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	json.NewEncoder(w).Encode(items)
}

func (srv *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	users, err := srv.store.TopBalances(10)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "Lookup failed"})
		return
	}

	items := make([]LeaderboardItem, 0, len(users))
	for _, u := range users {
		items = append(items, LeaderboardItem{UserID: u.ID, Balance: u.Cash})
	}
	json.NewEncoder(w).Encode(items)
}

// Start blocks serving the API; run it in a goroutine.
func (srv *Server) Start(port string) {
	if port == "" {
		port = "8080"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/me", srv.authMiddleware(srv.handleMe))
	mux.HandleFunc("/history", srv.authMiddleware(srv.handleHistory))
	mux.HandleFunc("/leaderboard", srv.authMiddleware(srv.handleLeaderboard))

	log.Printf("API listening on :%s", port)
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		log.Printf("API server stopped: %v", err)
	}
}
