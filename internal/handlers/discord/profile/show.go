package profile

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/hiddenleafgames/shinobi-bot-discord/internal/handlers/discord/helpers"
	"github.com/hiddenleafgames/shinobi-bot-discord/internal/rulebook"
	"github.com/hiddenleafgames/shinobi-bot-discord/internal/services"
)

type ShowRequest struct {
	Session     *discordgo.Session
	Interaction *discordgo.InteractionCreate
}

type ShowHandler struct {
	services *services.Provider
}

func NewShowHandler(services *services.Provider) *ShowHandler {
	return &ShowHandler{
		services: services,
	}
}

func (h *ShowHandler) Handle(req *ShowRequest) error {
	err := req.Session.InteractionRespond(req.Interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		return fmt.Errorf("failed to acknowledge interaction: %w", err)
	}

	player, err := h.services.ShinobiService.Get(context.Background(), interactionUserID(req.Interaction))
	if err != nil {
		content := helpers.ErrorMessage(err)
		if strings.Contains(content, "not found") {
			content = "❌ You have not enrolled in a village yet. Use `/shinobi enroll` first."
		}
		_, err = req.Session.InteractionResponseEdit(req.Interaction.Interaction, &discordgo.WebhookEdit{
			Content: &content,
		})
		return err
	}

	village := rulebook.Villages[player.Village]
	knownJutsu := make([]string, 0, len(player.KnownJutsu))
	for _, key := range player.KnownJutsu {
		if jutsu := rulebook.GetJutsu(key); jutsu != nil {
			knownJutsu = append(knownJutsu, fmt.Sprintf("%s (🌀%d)", jutsu.Name, jutsu.ChakraCost))
		}
	}

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s %s", village.Icon, player.DisplayTag()),
		Color: 0x3498db,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name: "Condition",
				Value: fmt.Sprintf("%s\n%s",
					helpers.FormatResource("❤️", player.CurrentHP, player.MaxHP),
					helpers.FormatResource("🌀", player.CurrentChakra, player.MaxChakra)),
				Inline: true,
			},
			{
				Name: "Stats",
				Value: fmt.Sprintf("💪 %d  💨 %d\n🧠 %d  🛡️ %d",
					player.Strength, player.Speed, player.Intelligence, player.Stamina),
				Inline: true,
			},
			{
				Name: "Progress",
				Value: fmt.Sprintf("Exp %d/%d • 💰 %d ryo\nRecord: %dW / %dL",
					player.Exp, rulebook.ExpForLevel(player.Level), player.Ryo, player.Wins, player.Losses),
				Inline: true,
			},
			{
				Name:  fmt.Sprintf("Known Jutsu (%d/%d)", len(player.KnownJutsu), rulebook.MaxKnownJutsu),
				Value: strings.Join(knownJutsu, "\n"),
			},
		},
	}

	_, err = req.Session.InteractionResponseEdit(req.Interaction.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	})
	return err
}
