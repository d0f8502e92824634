package profile

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/hiddenleafgames/shinobi-bot-discord/internal/errors"
	"github.com/hiddenleafgames/shinobi-bot-discord/internal/handlers/discord/helpers"
	"github.com/hiddenleafgames/shinobi-bot-discord/internal/services"
)

type CombineRequest struct {
	Session     *discordgo.Session
	Interaction *discordgo.InteractionCreate
	// Signs is the raw space-separated hand-sign sequence the player typed.
	Signs string
}

type CombineHandler struct {
	services *services.Provider
}

func NewCombineHandler(services *services.Provider) *CombineHandler {
	return &CombineHandler{
		services: services,
	}
}

func (h *CombineHandler) Handle(req *CombineRequest) error {
	err := req.Session.InteractionRespond(req.Interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		return fmt.Errorf("failed to acknowledge interaction: %w", err)
	}

	signs := strings.Fields(strings.ToLower(req.Signs))
	comboStr := strings.Join(signs, " ")

	result, err := h.services.ShinobiService.DiscoverCombination(
		context.Background(), interactionUserID(req.Interaction), signs)
	if err != nil {
		var content string
		if errors.GetCode(err) == errors.CodeNotFound {
			content = fmt.Sprintf("You perform the signs: `%s`...\nBut nothing happens. It seems this combination is incorrect.", comboStr)
		} else {
			content = helpers.ErrorMessage(err)
		}
		_, err = req.Session.InteractionResponseEdit(req.Interaction.Interaction, &discordgo.WebhookEdit{
			Content: &content,
		})
		return err
	}

	if !result.NewDiscovery {
		content := fmt.Sprintf("You already know this combination.\nIt's for **%s**.", result.Jutsu.Name)
		_, err = req.Session.InteractionResponseEdit(req.Interaction.Interaction, &discordgo.WebhookEdit{
			Content: &content,
		})
		return err
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🌟 New Jutsu Discovered!",
		Description: fmt.Sprintf("You perform the signs: `%s`...\nYou have learned **%s**!", comboStr, result.Jutsu.Name),
		Color:       0xf1c40f,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  "Details",
				Value: fmt.Sprintf("Power %d • 🌀 %d chakra • requires level %d", result.Jutsu.Power, result.Jutsu.ChakraCost, result.Jutsu.LevelRequired),
			},
		},
	}

	_, err = req.Session.InteractionResponseEdit(req.Interaction.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	})
	return err
}
