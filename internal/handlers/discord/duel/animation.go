package duel

import (
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/hiddenleafgames/shinobi-bot-discord/internal/rulebook"
)

// frameDelay paces the cosmetic attack animation.
const frameDelay = 700 * time.Millisecond

// elementFrames are the per-element animation sequences played between a
// turn committing and the final battle view. Purely cosmetic.
var elementFrames = map[rulebook.Element][]string{
	rulebook.ElementFire:      {"🔥", "🔥🔥🔥", "🔥💥🔥"},
	rulebook.ElementWater:     {"💧", "🌊🌊", "🌊💥🌊"},
	rulebook.ElementWind:      {"💨", "🌪️🌪️", "🌪️💥🌪️"},
	rulebook.ElementEarth:     {"🪨", "🪨🪨", "🪨💥🪨"},
	rulebook.ElementLightning: {"⚡", "⚡⚡⚡", "⚡💥⚡"},
	rulebook.ElementNone:      {"✨", "✨✨", "✨💥✨"},
}

// PlayTurnAnimation edits the battle message through the element's frames.
// It runs strictly after the turn's state is persisted, so any failure here
// is logged and swallowed; the battle outcome is already committed.
func PlayTurnAnimation(s *discordgo.Session, channelID, messageID string, jutsu *rulebook.Jutsu, actorName string) {
	frames, ok := elementFrames[jutsu.Element]
	if !ok {
		frames = elementFrames[rulebook.ElementNone]
	}

	for _, frame := range frames {
		content := fmt.Sprintf("%s **%s** uses **%s**! %s", frame, actorName, jutsu.Name, frame)
		_, err := s.ChannelMessageEdit(channelID, messageID, content)
		if err != nil {
			log.Printf("turn animation edit failed for message %s: %v", messageID, err)
			return
		}
		time.Sleep(frameDelay)
	}
}
