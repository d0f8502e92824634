package discord

import (
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/hiddenleafgames/shinobi-bot-discord/internal/handlers/discord/duel"
	"github.com/hiddenleafgames/shinobi-bot-discord/internal/handlers/discord/profile"
	"github.com/hiddenleafgames/shinobi-bot-discord/internal/services"
)

// Handler handles all Discord interactions
type Handler struct {
	ServiceProvider *services.Provider

	// Profile handlers
	enrollHandler  *profile.EnrollHandler
	showHandler    *profile.ShowHandler
	combineHandler *profile.CombineHandler
	historyHandler *profile.HistoryHandler

	// Duel handlers
	challengeHandler *duel.ChallengeHandler
	useJutsuHandler  *duel.UseJutsuHandler
	fleeHandler      *duel.FleeHandler
	statusHandler    *duel.StatusHandler
}

// HandlerConfig holds configuration for the Discord handler
type HandlerConfig struct {
	ServiceProvider *services.Provider
}

// NewHandler creates a new Discord handler
func NewHandler(cfg *HandlerConfig) *Handler {
	return &Handler{
		ServiceProvider:  cfg.ServiceProvider,
		enrollHandler:    profile.NewEnrollHandler(cfg.ServiceProvider),
		showHandler:      profile.NewShowHandler(cfg.ServiceProvider),
		combineHandler:   profile.NewCombineHandler(cfg.ServiceProvider),
		historyHandler:   profile.NewHistoryHandler(cfg.ServiceProvider),
		challengeHandler: duel.NewChallengeHandler(cfg.ServiceProvider),
		useJutsuHandler:  duel.NewUseJutsuHandler(cfg.ServiceProvider),
		fleeHandler:      duel.NewFleeHandler(cfg.ServiceProvider),
		statusHandler:    duel.NewStatusHandler(cfg.ServiceProvider),
	}
}

// RegisterCommands registers all slash commands with Discord
func (h *Handler) RegisterCommands(s *discordgo.Session, guildID string) error {
	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "shinobi",
			Description: "Shinobi duel bot commands",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "enroll",
					Description: "Enroll in a hidden village",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "village",
							Description: "Your hidden village",
							Required:    true,
							Choices: []*discordgo.ApplicationCommandOptionChoice{
								{Name: "Konoha (Leaf, fire)", Value: "konoha"},
								{Name: "Suna (Sand, wind)", Value: "suna"},
								{Name: "Kiri (Mist, water)", Value: "kiri"},
								{Name: "Kumo (Cloud, lightning)", Value: "kumo"},
								{Name: "Iwa (Stone, earth)", Value: "iwa"},
							},
						},
					},
				},
				{
					Name:        "profile",
					Description: "Show your shinobi profile",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
				},
				{
					Name:        "duel",
					Description: "Challenge another shinobi to a duel",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "opponent",
							Description: "Who to challenge",
							Required:    true,
						},
					},
				},
				{
					Name:        "combine",
					Description: "Perform a hand-sign combination to discover a jutsu",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "signs",
							Description: "Space-separated hand signs, e.g. tiger snake bird",
							Required:    true,
						},
					},
				},
				{
					Name:        "battle",
					Description: "Repost your ongoing battle",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
				},
				{
					Name:        "flee",
					Description: "Concede your ongoing battle",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
				},
				{
					Name:        "history",
					Description: "Show your recent battles",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
				},
			},
		},
	}

	for _, cmd := range commands {
		_, err := s.ApplicationCommandCreate(s.State.User.ID, guildID, cmd)
		if err != nil {
			return err
		}
		log.Printf("Registered command: %s", cmd.Name)
	}

	return nil
}

// HandleInteraction handles all Discord interactions
func (h *Handler) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		h.handleCommand(s, i)
	case discordgo.InteractionMessageComponent:
		h.handleComponent(s, i)
	}
}

// handleCommand handles slash command interactions
func (h *Handler) handleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	if data.Name != "shinobi" || len(data.Options) == 0 {
		return
	}

	subcommand := data.Options[0]
	switch subcommand.Name {
	case "enroll":
		var village string
		for _, opt := range subcommand.Options {
			if opt.Name == "village" {
				village = opt.StringValue()
			}
		}
		req := &profile.EnrollRequest{
			Session:     s,
			Interaction: i,
			VillageKey:  village,
		}
		if err := h.enrollHandler.Handle(req); err != nil {
			log.Printf("Error handling enroll: %v", err)
		}
	case "profile":
		req := &profile.ShowRequest{
			Session:     s,
			Interaction: i,
		}
		if err := h.showHandler.Handle(req); err != nil {
			log.Printf("Error handling profile: %v", err)
		}
	case "combine":
		var signs string
		for _, opt := range subcommand.Options {
			if opt.Name == "signs" {
				signs = opt.StringValue()
			}
		}
		req := &profile.CombineRequest{
			Session:     s,
			Interaction: i,
			Signs:       signs,
		}
		if err := h.combineHandler.Handle(req); err != nil {
			log.Printf("Error handling combine: %v", err)
		}
	case "duel":
		var opponentID string
		for _, opt := range subcommand.Options {
			if opt.Name == "opponent" {
				opponentID = opt.UserValue(nil).ID
			}
		}
		req := &duel.ChallengeRequest{
			Session:     s,
			Interaction: i,
			OpponentID:  opponentID,
		}
		if err := h.challengeHandler.Handle(req); err != nil {
			log.Printf("Error handling duel: %v", err)
		}
	case "battle":
		req := &duel.StatusRequest{
			Session:     s,
			Interaction: i,
		}
		if err := h.statusHandler.Handle(req); err != nil {
			log.Printf("Error handling battle status: %v", err)
		}
	case "flee":
		// The slash command concedes just like the button; both route to
		// the same handler, which edits the bound battle message.
		req := &duel.FleeRequest{
			Session:     s,
			Interaction: i,
		}
		if err := h.fleeHandler.Handle(req); err != nil {
			log.Printf("Error handling flee: %v", err)
		}
	case "history":
		req := &profile.HistoryRequest{
			Session:     s,
			Interaction: i,
		}
		if err := h.historyHandler.Handle(req); err != nil {
			log.Printf("Error handling history: %v", err)
		}
	}
}

// handleComponent handles button and select menu interactions
func (h *Handler) handleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.MessageComponentData()

	switch data.CustomID {
	case duel.CustomIDJutsuSelect:
		if len(data.Values) == 0 {
			return
		}
		req := &duel.UseJutsuRequest{
			Session:     s,
			Interaction: i,
			JutsuKey:    data.Values[0],
		}
		if err := h.useJutsuHandler.Handle(req); err != nil {
			log.Printf("Error handling jutsu select: %v", err)
		}
	case duel.CustomIDFlee:
		req := &duel.FleeRequest{
			Session:     s,
			Interaction: i,
		}
		if err := h.fleeHandler.Handle(req); err != nil {
			log.Printf("Error handling flee button: %v", err)
		}
	}
}
