package profile

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/hiddenleafgames/shinobi-bot-discord/internal/handlers/discord/helpers"
	"github.com/hiddenleafgames/shinobi-bot-discord/internal/services"
)

const historyPageSize = 10

type HistoryRequest struct {
	Session     *discordgo.Session
	Interaction *discordgo.InteractionCreate
}

type HistoryHandler struct {
	services *services.Provider
}

func NewHistoryHandler(services *services.Provider) *HistoryHandler {
	return &HistoryHandler{
		services: services,
	}
}

func (h *HistoryHandler) Handle(req *HistoryRequest) error {
	err := req.Session.InteractionRespond(req.Interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		return fmt.Errorf("failed to acknowledge interaction: %w", err)
	}

	playerID := interactionUserID(req.Interaction)
	records, err := h.services.BattleService.History(context.Background(), playerID, historyPageSize)
	if err != nil {
		content := helpers.ErrorMessage(err)
		_, err = req.Session.InteractionResponseEdit(req.Interaction.Interaction, &discordgo.WebhookEdit{
			Content: &content,
		})
		return err
	}

	if len(records) == 0 {
		content := "No battles fought yet. Challenge someone with `/shinobi duel`!"
		_, err = req.Session.InteractionResponseEdit(req.Interaction.Interaction, &discordgo.WebhookEdit{
			Content: &content,
		})
		return err
	}

	lines := make([]string, 0, len(records))
	for _, record := range records {
		outcome := "🏆 Won"
		if record.WinnerID != playerID {
			outcome = "💀 Lost"
		}
		detail := fmt.Sprintf("%d turns", record.TurnCount)
		if record.Fled {
			detail += ", by flight"
		}
		lines = append(lines, fmt.Sprintf("%s vs <@%s> (%s) — %s",
			outcome, otherParticipant(record.ChallengerID, record.OpponentID, playerID), detail,
			record.ConcludedAt.Format("Jan 2 15:04")))
	}

	embed := &discordgo.MessageEmbed{
		Title:       "📜 Recent Battles",
		Description: strings.Join(lines, "\n"),
		Color:       0x3498db,
	}

	_, err = req.Session.InteractionResponseEdit(req.Interaction.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	})
	return err
}

func otherParticipant(challengerID, opponentID, playerID string) string {
	if challengerID == playerID {
		return opponentID
	}
	return challengerID
}
