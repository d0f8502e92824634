package duel

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/hiddenleafgames/shinobi-bot-discord/internal/handlers/discord/helpers"
	"github.com/hiddenleafgames/shinobi-bot-discord/internal/services"
	battleService "github.com/hiddenleafgames/shinobi-bot-discord/internal/services/battle"
)

type UseJutsuRequest struct {
	Session     *discordgo.Session
	Interaction *discordgo.InteractionCreate
	JutsuKey    string
}

type UseJutsuHandler struct {
	services *services.Provider
}

func NewUseJutsuHandler(services *services.Provider) *UseJutsuHandler {
	return &UseJutsuHandler{
		services: services,
	}
}

func (h *UseJutsuHandler) Handle(req *UseJutsuRequest) error {
	// Acknowledge the component so the turn can take its time.
	err := req.Session.InteractionRespond(req.Interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
	if err != nil {
		return fmt.Errorf("failed to acknowledge interaction: %w", err)
	}

	actorID := interactionUserID(req.Interaction)
	result, err := h.services.BattleService.SubmitTurn(context.Background(), &battleService.SubmitTurnInput{
		PlayerID: actorID,
		JutsuKey: req.JutsuKey,
	})
	if err != nil {
		return respondEphemeral(req.Session, req.Interaction, helpers.ErrorMessage(err))
	}

	// The turn is committed; everything below is presentation and must not
	// be able to undo it.
	channelID := req.Interaction.ChannelID
	messageID := req.Interaction.Message.ID
	actor := result.Battle.SnapshotFor(actorID)

	PlayTurnAnimation(req.Session, channelID, messageID, result.Jutsu, actor.Username)

	return renderBattleMessage(req.Session, channelID, messageID, result)
}

// renderBattleMessage replaces the animation frames with the final view of
// the turn: either the updated battle board or the conclusion.
func renderBattleMessage(s *discordgo.Session, channelID, messageID string, result *battleService.TurnResult) error {
	content := ""
	edit := &discordgo.MessageEdit{
		ID:      messageID,
		Channel: channelID,
		Content: &content,
	}

	if result.Conclusion != nil {
		embed := BuildConclusionEmbed(result.Battle, result.Conclusion.WinnerID, result.Conclusion.Fled)
		edit.Embeds = &[]*discordgo.MessageEmbed{embed}
		edit.Components = &[]discordgo.MessageComponent{}
	} else {
		embed := BuildBattleEmbed(result.Battle)
		components := BattleComponents(result.Battle)
		edit.Embeds = &[]*discordgo.MessageEmbed{embed}
		edit.Components = &components
	}

	if _, err := s.ChannelMessageEditComplex(edit); err != nil {
		return fmt.Errorf("failed to render turn: %w", err)
	}
	return nil
}

// respondEphemeral whispers a rejection to the actor without disturbing the
// battle message.
func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) error {
	_, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	return err
}
