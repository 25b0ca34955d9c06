package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
)

type EconomyConfig struct {
	StartingBalance          int     `json:"starting_balance"`
	WinMultiplier            int     `json:"win_multiplier"`
	DiceHouseEdge            float64 `json:"dice_house_edge"`
	SettleIntervalMinutes    int     `json:"settle_interval_minutes"`
	MatchIntervalMinutes     int     `json:"match_interval_minutes"`
	RankIntervalHours        int     `json:"rank_interval_hours"`
	StandingsCacheTTLMinutes int     `json:"standings_cache_ttl_minutes"`
	UpcomingFixtureCount     int     `json:"upcoming_fixture_count"`
}

type DatabaseConfig struct {
	Type string `json:"type"` // "sqlite" or "postgres"
}

type GeneralConfig struct {
	BotName           string         `json:"bot_name"`
	CurrencyName      string         `json:"currency_name"`
	CurrencySymbol    string         `json:"currency_symbol"`
	EnableAPI         bool           `json:"enable_api"`
	ApiPort           string         `json:"api_port"`
	MatchChannelID    string         `json:"match_channel_id"`
	RankChannelID     string         `json:"rank_channel_id"`
	RedisAddr         string         `json:"redis_addr"`
	ReceiptWebhookURL string         `json:"receipt_webhook_url"`
	Database          DatabaseConfig `json:"database"`
}

var (
	Economy    EconomyConfig
	Bot        GeneralConfig
	DBType     string
	ConnString string
)

func Load() {
	loadJSON("economy.json", &Economy)
	loadJSON("config.json", &Bot)

	applyEconomyDefaults()
	setupDatabaseConfig()
}

func applyEconomyDefaults() {
	if Economy.StartingBalance <= 0 {
		Economy.StartingBalance = 100000
	}
	if Economy.WinMultiplier <= 0 {
		Economy.WinMultiplier = 2
	}
	if Economy.DiceHouseEdge <= 0 || Economy.DiceHouseEdge >= 1 {
		Economy.DiceHouseEdge = 0.53
	}
	if Economy.SettleIntervalMinutes <= 0 {
		Economy.SettleIntervalMinutes = 5
	}
	if Economy.MatchIntervalMinutes <= 0 {
		Economy.MatchIntervalMinutes = 30
	}
	if Economy.RankIntervalHours <= 0 {
		Economy.RankIntervalHours = 1
	}
	if Economy.StandingsCacheTTLMinutes <= 0 {
		Economy.StandingsCacheTTLMinutes = 15
	}
	if Economy.UpcomingFixtureCount <= 0 {
		Economy.UpcomingFixtureCount = 5
	}
}

func setupDatabaseConfig() {
	// DB_TYPE from .env overrides config.json
	DBType = os.Getenv("DB_TYPE")
	if DBType == "" {
		DBType = Bot.Database.Type
	}
	if DBType == "" {
		DBType = "sqlite"
	}

	switch DBType {
	case "postgres":
		ConnString = buildPostgresConnectionString()
	case "sqlite":
		fallthrough
	default:
		ConnString = os.Getenv("SQLITE_PATH")
		if ConnString == "" {
			ConnString = "./verdict.db"
		}
		DBType = "sqlite"
	}
}

func buildPostgresConnectionString() string {
	// A full DATABASE_URL wins when present (works as-is with pgx)
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		log.Println("Using DATABASE_URL from environment")
		return dbURL
	}

	host := os.Getenv("DB_HOST")
	if host == "" {
		log.Fatal("DB_HOST is required for PostgreSQL. Set it in .env file or use DATABASE_URL")
	}

	portStr := os.Getenv("DB_PORT")
	port := 5432
	if portStr != "" {
		if p, err := strconv.Atoi(portStr); err == nil {
			port = p
		}
	}

	user := os.Getenv("DB_USER")
	if user == "" {
		log.Fatal("DB_USER is required for PostgreSQL. Set it in .env file")
	}

	password := os.Getenv("DB_PASSWORD")
	if password == "" {
		log.Fatal("DB_PASSWORD is required for PostgreSQL. Set it in .env file")
	}

	dbname := os.Getenv("DB_NAME")
	if dbname == "" {
		dbname = "postgres"
	}

	sslmode := os.Getenv("DB_SSLMODE")
	if sslmode == "" {
		sslmode = "require"
	}

	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)
}

func loadJSON(filename string, target interface{}) {
	file, err := os.ReadFile(filename)
	if err != nil {
		log.Fatalf("Error reading %s: %v", filename, err)
	}

	err = json.Unmarshal(file, target)
	if err != nil {
		log.Fatalf("Error parsing %s: %v", filename, err)
	}
}
