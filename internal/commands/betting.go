package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"verdictcash/internal/betting"
	"verdictcash/internal/football"
	"verdictcash/internal/store"
	"verdictcash/pkg/config"
	"verdictcash/pkg/utils"
)

const placementTimeout = 15 * time.Second

// cmdBet handles `!bet <fixture_id> <team> <amount>`. The team name may span
// multiple words; the amount is always the last argument.
func (h *Handler) cmdBet(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) < 3 {
		s.ChannelMessageSendEmbed(m.ChannelID, utils.InfoEmbed("Betting", "Usage: `!bet <fixture_id> <team> <amount>`"))
		return
	}

	fixtureID, err := strconv.Atoi(args[0])
	if err != nil {
		s.ChannelMessageSendEmbed(m.ChannelID, utils.ErrorEmbed("Invalid fixture id."))
		return
	}

	amount, err := strconv.Atoi(args[len(args)-1])
	if err != nil || amount <= 0 {
		s.ChannelMessageSendEmbed(m.ChannelID, utils.ErrorEmbed("Invalid amount."))
		return
	}

	team := strings.Join(args[1:len(args)-1], " ")

	ctx, cancel := context.WithTimeout(context.Background(), placementTimeout)
	defer cancel()

	r, err := h.intake.PlaceBet(ctx, m.Author.ID, fixtureID, team, amount)
	if err != nil {
		s.ChannelMessageSendEmbed(m.ChannelID, utils.ErrorEmbed(placementErrorMessage(err)))
		return
	}

	// Ticket goes to DM like a betting slip; the channel just gets an ack.
	receipt := utils.GoldEmbed("Bet Ticket", fmt.Sprintf(
		"%s vs %s\nLine: %s -%.1f\nYour pick: %s\nStake: %s %d",
		r.Fixture.HomeTeam, r.Fixture.AwayTeam, r.Favored, r.Bet.Handicap,
		r.Bet.Team, config.Bot.CurrencySymbol, r.Bet.Amount))

	if dm, err := s.UserChannelCreate(m.Author.ID); err == nil {
		s.ChannelMessageSendEmbed(dm.ID, receipt)
		s.ChannelMessageSendEmbed(m.ChannelID, utils.SuccessEmbed("Bet placed", "Ticket sent via DM."))
	} else {
		s.ChannelMessageSendEmbed(m.ChannelID, receipt)
	}
}

// cmdDice handles `!tx <tài|xỉu> <amount>`.
func (h *Handler) cmdDice(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) < 2 {
		s.ChannelMessageSendEmbed(m.ChannelID, utils.InfoEmbed("Dice", "Usage: `!tx <tài|xỉu> <amount>`"))
		return
	}

	amount, err := strconv.Atoi(args[1])
	if err != nil || amount <= 0 {
		s.ChannelMessageSendEmbed(m.ChannelID, utils.ErrorEmbed("Invalid amount."))
		return
	}

	result, err := h.dice.Play(m.Author.ID, args[0], amount)
	if err != nil {
		s.ChannelMessageSendEmbed(m.ChannelID, utils.ErrorEmbed(placementErrorMessage(err)))
		return
	}

	if result.Won {
		s.ChannelMessageSend(m.ChannelID, fmt.Sprintf("🎲 Rolled %d (%s) → ✅ You win %s %d! Balance: %d",
			result.Roll, result.Side, config.Bot.CurrencySymbol, amount, result.Balance))
	} else {
		s.ChannelMessageSend(m.ChannelID, fmt.Sprintf("🎲 Rolled %d (%s) → ❌ You lose %s %d. Balance: %d",
			result.Roll, result.Side, config.Bot.CurrencySymbol, amount, result.Balance))
	}
}

func placementErrorMessage(err error) string {
	switch {
	case errors.Is(err, betting.ErrInvalidStake):
		return "Stake must be a positive amount."
	case errors.Is(err, store.ErrInsufficientFunds):
		return "Insufficient funds."
	case errors.Is(err, football.ErrFixtureNotFound):
		return "No fixture with that id."
	case errors.Is(err, football.ErrStandingsUnavailable):
		return "Standings are unavailable for that league right now."
	case errors.Is(err, betting.ErrTeamNotInFixture):
		return "That team is not playing in this fixture."
	case errors.Is(err, betting.ErrTeamNotInStandings):
		return "One of the teams is missing from the league table."
	case errors.Is(err, betting.ErrInvalidChoice):
		return "Pick tài or xỉu."
	}
	return "The result feed is unavailable. Try again in a moment."
}
