package duel

import (
	"context"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/hiddenleafgames/shinobi-bot-discord/internal/handlers/discord/helpers"
	"github.com/hiddenleafgames/shinobi-bot-discord/internal/services"
	battleService "github.com/hiddenleafgames/shinobi-bot-discord/internal/services/battle"
)

type ChallengeRequest struct {
	Session     *discordgo.Session
	Interaction *discordgo.InteractionCreate
	OpponentID  string
}

type ChallengeHandler struct {
	services *services.Provider
}

func NewChallengeHandler(services *services.Provider) *ChallengeHandler {
	return &ChallengeHandler{
		services: services,
	}
}

func (h *ChallengeHandler) Handle(req *ChallengeRequest) error {
	// Defer acknowledge the interaction
	err := req.Session.InteractionRespond(req.Interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		return fmt.Errorf("failed to acknowledge interaction: %w", err)
	}

	battle, err := h.services.BattleService.Challenge(context.Background(), &battleService.ChallengeInput{
		ChallengerID: interactionUserID(req.Interaction),
		OpponentID:   req.OpponentID,
		ChannelID:    req.Interaction.ChannelID,
	})
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

	// Remember where the battle renders so turn updates edit in place. The
	// battle itself is already committed; a binding failure only costs the
	// in-place edits.
	if err := h.services.BattleService.BindMessage(context.Background(), battle.ID, msg.ChannelID, msg.ID); err != nil {
		log.Printf("failed to bind battle %s to message %s: %v", battle.ID, msg.ID, err)
	}

	return nil
}

// interactionUserID works for both guild and DM interactions.
func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
