package profile

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/hiddenleafgames/shinobi-bot-discord/internal/handlers/discord/helpers"
	"github.com/hiddenleafgames/shinobi-bot-discord/internal/rulebook"
	"github.com/hiddenleafgames/shinobi-bot-discord/internal/services"
	shinobiService "github.com/hiddenleafgames/shinobi-bot-discord/internal/services/shinobi"
)

type EnrollRequest struct {
	Session     *discordgo.Session
	Interaction *discordgo.InteractionCreate
	VillageKey  string
}

type EnrollHandler struct {
	services *services.Provider
}

func NewEnrollHandler(services *services.Provider) *EnrollHandler {
	return &EnrollHandler{
		services: services,
	}
}

func (h *EnrollHandler) Handle(req *EnrollRequest) error {
	err := req.Session.InteractionRespond(req.Interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		return fmt.Errorf("failed to acknowledge interaction: %w", err)
	}

	player, created, err := h.services.ShinobiService.GetOrCreate(context.Background(), &shinobiService.GetOrCreateInput{
		PlayerID:   interactionUserID(req.Interaction),
		Username:   interactionUsername(req.Interaction),
		VillageKey: req.VillageKey,
	})
	if err != nil {
		content := helpers.ErrorMessage(err)
		_, err = req.Session.InteractionResponseEdit(req.Interaction.Interaction, &discordgo.WebhookEdit{
			Content: &content,
		})
		return err
	}

	if !created {
		village := rulebook.Villages[player.Village]
		content := fmt.Sprintf("You are already a shinobi of %s %s!", village.Icon, village.Name)
		_, err = req.Session.InteractionResponseEdit(req.Interaction.Interaction, &discordgo.WebhookEdit{
			Content: &content,
		})
		return err
	}

	village := rulebook.Villages[player.Village]
	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s Welcome to %s!", village.Icon, village.Name),
		Description: fmt.Sprintf("**%s** enrolls as an %s.", player.Username, player.Rank),
		Color:       0x2ecc71,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name: "Starting Gear",
				Value: fmt.Sprintf("❤️ %d HP • 🌀 %d chakra • 💰 %d ryo\nKnown jutsu: %d",
					player.MaxHP, player.MaxChakra, player.Ryo, len(player.KnownJutsu)),
			},
		},
	}

	_, err = req.Session.InteractionResponseEdit(req.Interaction.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	})
	return err
}

func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func interactionUsername(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.Username
	}
	if i.User != nil {
		return i.User.Username
	}
	return ""
}
