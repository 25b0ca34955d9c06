package commands

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"

	"verdictcash/pkg/utils"
)

// cmdAPIKey handles `!apikey create <name>` and `!apikey list`. Keys are only
// ever shown in DM.
func (h *Handler) cmdAPIKey(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) == 0 {
		s.ChannelMessageSendEmbed(m.ChannelID, utils.InfoEmbed("API Keys", "Usage: `!apikey create <name>` or `!apikey list`"))
		return
	}

	switch strings.ToLower(args[0]) {
	case "create":
		name := "default"
		if len(args) > 1 {
			name = strings.Join(args[1:], " ")
		}

		key := "vc_" + uuid.New().String()
		if err := h.store.CreateAPIKey(key, m.Author.ID, name); err != nil {
			s.ChannelMessageSendEmbed(m.ChannelID, utils.ErrorEmbed("Could not create the key."))
			return
		}

		dm, err := s.UserChannelCreate(m.Author.ID)
		if err != nil {
			s.ChannelMessageSendEmbed(m.ChannelID, utils.ErrorEmbed("Could not open a DM to send the key."))
			return
		}
		s.ChannelMessageSendEmbed(dm.ID, utils.SuccessEmbed("API Key",
			fmt.Sprintf("Name: %s\nKey: `%s`\n\nSend it as the X-API-Key header.", name, key)))
		s.ChannelMessageSendEmbed(m.ChannelID, utils.SuccessEmbed("API Key", "Key sent via DM."))

	case "list":
		keys, err := h.store.ListAPIKeys(m.Author.ID)
		if err != nil {
			s.ChannelMessageSendEmbed(m.ChannelID, utils.ErrorEmbed("Could not list your keys."))
			return
		}
		if len(keys) == 0 {
			s.ChannelMessageSendEmbed(m.ChannelID, utils.InfoEmbed("API Keys", "You have no keys."))
			return
		}

		var b strings.Builder
		for _, k := range keys {
			fmt.Fprintf(&b, "%s - `%s...` (%s)\n", k.Name, k.Key[:11], k.CreatedAt.Format("Jan 02 2006"))
		}
		s.ChannelMessageSendEmbed(m.ChannelID, utils.InfoEmbed("API Keys", b.String()))

	default:
		s.ChannelMessageSendEmbed(m.ChannelID, utils.InfoEmbed("API Keys", "Usage: `!apikey create <name>` or `!apikey list`"))
	}
}
