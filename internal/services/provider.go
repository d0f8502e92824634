package services

import (
	"time"

	"github.com/hiddenleafgames/shinobi-bot-discord/internal/repositories/battles"
	"github.com/hiddenleafgames/shinobi-bot-discord/internal/repositories/histories"
	"github.com/hiddenleafgames/shinobi-bot-discord/internal/repositories/players"
	battleService "github.com/hiddenleafgames/shinobi-bot-discord/internal/services/battle"
	shinobiService "github.com/hiddenleafgames/shinobi-bot-discord/internal/services/shinobi"
)

// Provider holds all service instances
type Provider struct {
	ShinobiService shinobiService.Service
	BattleService  battleService.Service
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	PlayerRepository  players.Repository
	BattleRepository  battles.Repository
	HistoryRepository histories.Repository

	// BattleTTL bounds how long an idle battle survives. Only used when
	// BattleRepository is nil and the in-memory fallback is built here.
	BattleTTL time.Duration
}

// NewProvider creates a new service provider with all services initialized
func NewProvider(cfg *ProviderConfig) *Provider {
	// Use in-memory repositories if none provided
	playerRepo := cfg.PlayerRepository
	if playerRepo == nil {
		playerRepo = players.NewInMemoryRepository()
	}

	battleRepo := cfg.BattleRepository
	if battleRepo == nil {
		battleRepo = battles.NewInMemoryRepository(&battles.InMemoryConfig{
			TTL: cfg.BattleTTL,
		})
	}

	historyRepo := cfg.HistoryRepository
	if historyRepo == nil {
		historyRepo = histories.NewInMemoryRepository()
	}

	shinobiSvc := shinobiService.NewService(&shinobiService.ServiceConfig{
		Repository: playerRepo,
	})

	battleSvc := battleService.NewService(&battleService.ServiceConfig{
		Repository:    battleRepo,
		PlayerService: shinobiSvc,
		HistoryRepo:   historyRepo,
	})

	return &Provider{
		ShinobiService: shinobiSvc,
		BattleService:  battleSvc,
	}
}
