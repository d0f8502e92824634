package duel

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/hiddenleafgames/shinobi-bot-discord/internal/handlers/discord/helpers"
	"github.com/hiddenleafgames/shinobi-bot-discord/internal/services"
)

type StatusRequest struct {
	Session     *discordgo.Session
	Interaction *discordgo.InteractionCreate
}

type StatusHandler struct {
	services *services.Provider
}

func NewStatusHandler(services *services.Provider) *StatusHandler {
	return &StatusHandler{
		services: services,
	}
}

// Handle reposts the caller's ongoing battle board, for when the original
// message scrolled away.
func (h *StatusHandler) Handle(req *StatusRequest) error {
	err := req.Session.InteractionRespond(req.Interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		return fmt.Errorf("failed to acknowledge interaction: %w", err)
	}

	battle, err := h.services.BattleService.GetBattleFor(context.Background(), interactionUserID(req.Interaction))
	if err != nil {
		content := helpers.ErrorMessage(err)
		_, err = req.Session.InteractionResponseEdit(req.Interaction.Interaction, &discordgo.WebhookEdit{
			Content: &content,
		})
		return err
	}

	embed := BuildBattleEmbed(battle)
	components := BattleComponents(battle)

	msg, err := req.Session.InteractionResponseEdit(req.Interaction.Interaction, &discordgo.WebhookEdit{
		Embeds:     &[]*discordgo.MessageEmbed{embed},
		Components: &components,
	})
	if err != nil {
		return fmt.Errorf("failed to render battle: %w", err)
	}

	return h.services.BattleService.BindMessage(context.Background(), battle.ID, msg.ChannelID, msg.ID)
}
