package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"verdictcash/internal/announce"
	"verdictcash/internal/api"
	"verdictcash/internal/betting"
	"verdictcash/internal/commands"
	"verdictcash/internal/football"
	"verdictcash/internal/store"
	"verdictcash/internal/webhook"
	"verdictcash/pkg/config"
)

func main() {
	_ = godotenv.Load()

	config.Load()

	token := os.Getenv("DISCORD_TOKEN")
	if token == "" {
		log.Fatal("DISCORD_TOKEN not found in environment variables")
	}
	footballKey := os.Getenv("FOOTBALL_API")
	if footballKey == "" {
		log.Fatal("FOOTBALL_API not found in environment variables")
	}

	st, err := store.Open(config.DBType, config.ConnString, config.Economy.StartingBalance)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	oracle := football.NewClient(footballKey)
	if config.Bot.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: config.Bot.RedisAddr})
		oracle.UseCache(football.NewStandingsCache(rdb),
			time.Duration(config.Economy.StandingsCacheTTLMinutes)*time.Minute)
		log.Println("Standings cache enabled")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	receiptURL := config.Bot.ReceiptWebhookURL
	intake := betting.NewIntake(st, oracle, func(bet *store.Bet) {
		webhook.SendBetReceipt(receiptURL, bet)
	})
	dice := betting.NewDiceGame(st, config.Economy.DiceHouseEdge)

	settler := betting.NewSettler(st, oracle,
		time.Duration(config.Economy.SettleIntervalMinutes)*time.Minute,
		config.Economy.WinMultiplier,
		func(bet store.Bet, won bool, payout int) {
			webhook.SendSettlement(receiptURL, bet, won, payout)
		})
	go settler.Start(ctx)

	// Start API Server
	if config.Bot.EnableAPI {
		go api.NewServer(st).Start(config.Bot.ApiPort)
	} else {
		log.Println("API is disabled in config.json")
	}

	// Create Discord Session
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		log.Fatal("Error creating Discord session: ", err)
	}

	handler := commands.New(st, intake, dice)
	dg.AddHandler(handler.MessageCreate)

	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentsMessageContent

	err = dg.Open()
	if err != nil {
		log.Fatal("Error opening connection: ", err)
	}

	announcer := announce.New(dg, st, oracle, announce.Config{
		MatchChannelID: config.Bot.MatchChannelID,
		RankChannelID:  config.Bot.RankChannelID,
		MatchInterval:  time.Duration(config.Economy.MatchIntervalMinutes) * time.Minute,
		RankInterval:   time.Duration(config.Economy.RankIntervalHours) * time.Hour,
		FixtureCount:   config.Economy.UpcomingFixtureCount,
		CurrencySymbol: config.Bot.CurrencySymbol,
	})
	announcer.Start(ctx)

	log.Println("Bot is now running. Press CTRL-C to exit.")

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	cancel()
	dg.Close()
}
