package commands

import (
	"strings"

	"github.com/bwmarrin/discordgo"

	"verdictcash/internal/betting"
	"verdictcash/internal/store"
)

// Handler routes prefix commands to the wagering engine. It is the only place
// raw user input is parsed; everything past it gets validated arguments.
type Handler struct {
	store  *store.Store
	intake *betting.Intake
	dice   *betting.DiceGame
}

func New(st *store.Store, intake *betting.Intake, dice *betting.DiceGame) *Handler {
	return &Handler{store: st, intake: intake, dice: dice}
}

func (h *Handler) MessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author.ID == s.State.User.ID {
		return
	}

	if !strings.HasPrefix(m.Content, "!") {
		return
	}

	args := strings.Fields(m.Content)
	command := strings.ToLower(args[0])
	args = args[1:]

	switch command {
	case "!help":
		h.cmdHelp(s, m)
	case "!wallet", "!balance", "!cash":
		h.cmdWallet(s, m)
	case "!bet":
		h.cmdBet(s, m, args)
	case "!tx":
		h.cmdDice(s, m, args)
	case "!history":
		h.cmdHistory(s, m)
	case "!rank", "!top":
		h.cmdRank(s, m)
	case "!apikey":
		h.cmdAPIKey(s, m, args)
	}
}
