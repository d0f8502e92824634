package duel

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/hiddenleafgames/shinobi-bot-discord/internal/domain/combat"
	"github.com/hiddenleafgames/shinobi-bot-discord/internal/handlers/discord/helpers"
	"github.com/hiddenleafgames/shinobi-bot-discord/internal/rulebook"
)

const (
	colorOngoing   = 0xe67e22 // orange
	colorVictory   = 0x2ecc71 // green
	colorConcluded = 0x95a5a6 // gray

	// Component custom IDs routed by the root handler.
	CustomIDJutsuSelect = "duel:jutsu"
	CustomIDFlee        = "duel:flee"

	// transcriptTail is how many recent log lines the embed shows.
	transcriptTail = 5
)

// BuildBattleEmbed renders the two-participant status view for an ongoing
// battle.
func BuildBattleEmbed(battle *combat.Battle) *discordgo.MessageEmbed {
	challenger := battle.SnapshotFor(battle.ChallengerID)
	opponent := battle.SnapshotFor(battle.OpponentID)

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("⚔️ %s vs %s", challenger.Username, opponent.Username),
		Color: colorOngoing,
		Fields: []*discordgo.MessageEmbedField{
			combatantField(challenger, battle.TurnHolder),
			combatantField(opponent, battle.TurnHolder),
			{
				Name:   "📜 Battle Log",
				Value:  transcriptText(battle.Transcript),
				Inline: false,
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Turn %d • <@%s> to act", battle.TurnCount, battle.TurnHolder),
		},
	}

	return embed
}

// BuildConclusionEmbed renders the final view once a winner is known.
func BuildConclusionEmbed(battle *combat.Battle, winnerID string, fled bool) *discordgo.MessageEmbed {
	winner := battle.SnapshotFor(winnerID)

	title := fmt.Sprintf("🏆 %s wins!", winner.Username)
	if fled {
		loser := battle.OpponentSnapshotFor(winnerID)
		title = fmt.Sprintf("🏃 %s fled. %s wins!", loser.Username, winner.Username)
	}

	return &discordgo.MessageEmbed{
		Title: title,
		Color: colorVictory,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "📜 Battle Log",
				Value:  transcriptText(battle.Transcript),
				Inline: false,
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Concluded after %d turns", battle.TurnCount),
		},
	}
}

func combatantField(c *combat.CombatantSnapshot, turnHolder string) *discordgo.MessageEmbedField {
	name := c.Username
	if c.ID == turnHolder {
		name = "▶️ " + name
	}

	return &discordgo.MessageEmbedField{
		Name: name,
		Value: fmt.Sprintf("%s\n%s%s",
			helpers.FormatResource("❤️", c.CurrentHP, c.MaxHP),
			helpers.FormatResource("🌀", c.CurrentChakra, c.MaxChakra),
			effectsText(c)),
		Inline: true,
	}
}

func effectsText(c *combat.CombatantSnapshot) string {
	if len(c.Effects) == 0 {
		return ""
	}

	parts := make([]string, 0, len(c.Effects))
	for _, tag := range []rulebook.EffectTag{
		rulebook.EffectDefenseUp,
		rulebook.EffectEvasionUp,
		rulebook.EffectStun,
		rulebook.EffectAccuracyDown,
	} {
		if turns, ok := c.Effects[tag]; ok {
			parts = append(parts, fmt.Sprintf("%s (%d)", tag, turns))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "\n✨ " + strings.Join(parts, ", ")
}

func transcriptText(transcript []string) string {
	if len(transcript) == 0 {
		return "*The battle begins...*"
	}
	if len(transcript) > transcriptTail {
		transcript = transcript[len(transcript)-transcriptTail:]
	}
	return strings.Join(transcript, "\n")
}

// BattleComponents builds the jutsu select and flee button for the current
// turn holder.
func BattleComponents(battle *combat.Battle) []discordgo.MessageComponent {
	actor := battle.SnapshotFor(battle.TurnHolder)

	options := make([]discordgo.SelectMenuOption, 0, len(actor.KnownJutsu))
	for _, key := range actor.KnownJutsu {
		jutsu := rulebook.GetJutsu(key)
		if jutsu == nil {
			continue
		}
		options = append(options, discordgo.SelectMenuOption{
			Label:       jutsu.Name,
			Value:       jutsu.Key,
			Description: fmt.Sprintf("🌀 %d chakra • power %d", jutsu.ChakraCost, jutsu.Power),
		})
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					CustomID:    CustomIDJutsuSelect,
					Placeholder: "Choose a jutsu",
					Options:     options,
				},
			},
		},
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Flee",
					Style:    discordgo.DangerButton,
					CustomID: CustomIDFlee,
					Emoji: &discordgo.ComponentEmoji{
						Name: "🏃",
					},
				},
			},
		},
	}
}
