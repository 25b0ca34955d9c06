package commands

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"verdictcash/internal/store"
	"verdictcash/pkg/config"
	"verdictcash/pkg/utils"
)

func (h *Handler) cmdHelp(s *discordgo.Session, m *discordgo.MessageCreate) {
	help := "`!wallet` - your balance and record\n" +
		"`!bet <fixture_id> <team> <amount>` - bet on a fixture\n" +
		"`!tx <tài|xỉu> <amount>` - dice side game\n" +
		"`!history` - your last settled bets\n" +
		"`!rank` - richest players\n" +
		"`!apikey create <name>` - API access"
	s.ChannelMessageSendEmbed(m.ChannelID, utils.InfoEmbed(config.Bot.BotName, help))
}

func (h *Handler) cmdWallet(s *discordgo.Session, m *discordgo.MessageCreate) {
	stats, err := h.store.Stats(m.Author.ID)
	if err != nil {
		s.ChannelMessageSendEmbed(m.ChannelID, utils.ErrorEmbed("Could not load your wallet."))
		return
	}

	s.ChannelMessageSendEmbed(m.ChannelID, utils.GoldEmbed("Wallet",
		fmt.Sprintf("Balance: %d %s\nRecord: %dW / %dL",
			stats.Cash, config.Bot.CurrencyName, stats.Wins, stats.Losses)))
}

func (h *Handler) cmdHistory(s *discordgo.Session, m *discordgo.MessageCreate) {
	entries, err := h.store.History(m.Author.ID, 10)
	if err != nil {
		s.ChannelMessageSendEmbed(m.ChannelID, utils.ErrorEmbed("Could not load your history."))
		return
	}
	if len(entries) == 0 {
		s.ChannelMessageSendEmbed(m.ChannelID, utils.InfoEmbed("History", "No settled bets yet."))
		return
	}

	var b strings.Builder
	for _, e := range entries {
		icon := "❌"
		if e.Outcome == store.OutcomeWin {
			icon = "✅"
		}
		fmt.Fprintf(&b, "%s %s - %d %s (%s)\n",
			icon, e.Outcome, e.Amount, config.Bot.CurrencySymbol, e.CreatedAt.Format("Jan 02 15:04"))
	}
	s.ChannelMessageSendEmbed(m.ChannelID, utils.InfoEmbed("History", b.String()))
}

func (h *Handler) cmdRank(s *discordgo.Session, m *discordgo.MessageCreate) {
	users, err := h.store.TopBalances(10)
	if err != nil {
		s.ChannelMessageSendEmbed(m.ChannelID, utils.ErrorEmbed("Could not load the leaderboard."))
		return
	}

	embed := utils.NewEmbed()
	embed.Title = fmt.Sprintf("✨ %s LEADERBOARD ✨", strings.ToUpper(config.Bot.CurrencyName))
	embed.Color = utils.ColorGold
	for i, u := range users {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("#%d", i+1),
			Value:  fmt.Sprintf("<@%s> - %d %s", u.ID, u.Cash, config.Bot.CurrencySymbol),
			Inline: false,
		})
	}
	s.ChannelMessageSendEmbed(m.ChannelID, embed)
}
