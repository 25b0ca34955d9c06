package announce

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"

	"verdictcash/internal/football"
	"verdictcash/internal/store"
	"verdictcash/pkg/utils"
)

// Oracle is the slice of the fixture provider the announcement jobs need.
type Oracle interface {
	Upcoming(ctx context.Context, n int) ([]football.Fixture, error)
	Standings(ctx context.Context, league, season int) ([]football.Standing, error)
}

// Config carries channel ids and intervals for the periodic announcements.
// An empty channel id disables that job.
type Config struct {
	MatchChannelID string
	RankChannelID  string
	MatchInterval  time.Duration
	RankInterval   time.Duration
	FixtureCount   int
	CurrencySymbol string
}

// Announcer posts upcoming fixtures with their advertised lines, and the
// balance leaderboard, to their configured channels on independent timers.
type Announcer struct {
	session *discordgo.Session
	store   *store.Store
	oracle  Oracle
	cfg     Config
}

func New(session *discordgo.Session, st *store.Store, oracle Oracle, cfg Config) *Announcer {
	if cfg.FixtureCount <= 0 {
		cfg.FixtureCount = 5
	}
	return &Announcer{session: session, store: st, oracle: oracle, cfg: cfg}
}

// Start launches both announcement loops. They stop when ctx is cancelled.
func (a *Announcer) Start(ctx context.Context) {
	if a.cfg.MatchChannelID != "" {
		go a.loop(ctx, a.cfg.MatchInterval, a.announceMatches)
	}
	if a.cfg.RankChannelID != "" {
		go a.loop(ctx, a.cfg.RankInterval, a.announceRank)
	}
}

func (a *Announcer) loop(ctx context.Context, interval time.Duration, job func(context.Context)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	job(ctx)

	for {
		select {
		case <-ticker.C:
			job(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *Announcer) announceMatches(ctx context.Context) {
	fixtures, err := a.oracle.Upcoming(ctx, a.cfg.FixtureCount)
	if err != nil {
		log.Printf("[Announce] fetching upcoming fixtures: %v", err)
		return
	}

	embed := utils.NewEmbed()
	embed.Title = "⚽ UPCOMING FIXTURES"
	embed.Color = utils.ColorGold

	for _, fx := range fixtures {
		table, err := a.oracle.Standings(ctx, fx.LeagueID, fx.Season)
		if err != nil {
			log.Printf("[Announce] standings for league %d: %v", fx.LeagueID, err)
			continue
		}

		home, okHome := football.FindTeam(table, fx.HomeTeam)
		away, okAway := football.FindTeam(table, fx.AwayTeam)
		if !okHome || !okAway {
			continue
		}

		stronger, line := football.Handicap(home, away)
		strongName := fx.HomeTeam
		if stronger == football.Away {
			strongName = fx.AwayTeam
		}

		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("%s vs %s", fx.HomeTeam, fx.AwayTeam),
			Value:  fmt.Sprintf("ID: %d\nLine: %s -%.1f", fx.ID, strongName, line),
			Inline: false,
		})
	}

	if len(embed.Fields) == 0 {
		return
	}
	if _, err := a.session.ChannelMessageSendEmbed(a.cfg.MatchChannelID, embed); err != nil {
		log.Printf("[Announce] posting fixtures: %v", err)
	}
}

func (a *Announcer) announceRank(ctx context.Context) {
	users, err := a.store.TopBalances(10)
	if err != nil {
		log.Printf("[Announce] loading leaderboard: %v", err)
		return
	}

	embed := utils.NewEmbed()
	embed.Title = "✨ VERDICT CASH LEADERBOARD ✨"
	embed.Color = utils.ColorGold
	for i, u := range users {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("#%d", i+1),
			Value:  fmt.Sprintf("<@%s>: %d %s", u.ID, u.Cash, a.cfg.CurrencySymbol),
			Inline: false,
		})
	}

	if len(embed.Fields) == 0 {
		return
	}
	if _, err := a.session.ChannelMessageSendEmbed(a.cfg.RankChannelID, embed); err != nil {
		log.Printf("[Announce] posting leaderboard: %v", err)
	}
}
