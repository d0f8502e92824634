package duel

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/hiddenleafgames/shinobi-bot-discord/internal/handlers/discord/helpers"
	"github.com/hiddenleafgames/shinobi-bot-discord/internal/services"
)

type FleeRequest struct {
	Session     *discordgo.Session
	Interaction *discordgo.InteractionCreate
}

type FleeHandler struct {
	services *services.Provider
}

func NewFleeHandler(services *services.Provider) *FleeHandler {
	return &FleeHandler{
		services: services,
	}
}

// Handle concedes the caller's battle. It serves both the flee button on
// the battle message and the bare slash command.
func (h *FleeHandler) Handle(req *FleeRequest) error {
	// A component interaction updates the battle message in place; a slash
	// command gets its own response.
	fromButton := req.Interaction.Message != nil

	ackType := discordgo.InteractionResponseDeferredChannelMessageWithSource
	if fromButton {
		ackType = discordgo.InteractionResponseDeferredMessageUpdate
	}
	err := req.Session.InteractionRespond(req.Interaction.Interaction, &discordgo.InteractionResponse{
		Type: ackType,
	})
	if err != nil {
		return fmt.Errorf("failed to acknowledge interaction: %w", err)
	}

	actorID := interactionUserID(req.Interaction)
	conclusion, err := h.services.BattleService.Flee(context.Background(), actorID)
	if err != nil {
		content := helpers.ErrorMessage(err)
		if fromButton {
			return respondEphemeral(req.Session, req.Interaction, content)
		}
		_, err = req.Session.InteractionResponseEdit(req.Interaction.Interaction, &discordgo.WebhookEdit{
			Content: &content,
		})
		return err
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🏃 Flight!",
		Description: fmt.Sprintf("<@%s> fled the battle. <@%s> wins!", conclusion.LoserID, conclusion.WinnerID),
		Color:       colorConcluded,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Concluded after %d turns", conclusion.Record.TurnCount),
		},
	}

	if fromButton {
		content := ""
		_, err = req.Session.ChannelMessageEditComplex(&discordgo.MessageEdit{
			ID:         req.Interaction.Message.ID,
			Channel:    req.Interaction.ChannelID,
			Content:    &content,
			Embeds:     &[]*discordgo.MessageEmbed{embed},
			Components: &[]discordgo.MessageComponent{},
		})
		if err != nil {
			return fmt.Errorf("failed to render flee outcome: %w", err)
		}
		return nil
	}

	_, err = req.Session.InteractionResponseEdit(req.Interaction.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	})
	return err
}
