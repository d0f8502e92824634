package helpers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hiddenleafgames/shinobi-bot-discord/internal/errors"
	"github.com/hiddenleafgames/shinobi-bot-discord/internal/handlers/discord/helpers"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "not your turn",
			err:  errors.NotYourTurn("it is not your turn"),
			want: "❌ it is not your turn",
		},
		{
			name: "insufficient chakra",
			err:  errors.InsufficientChakraf("Fireball Jutsu costs 25 chakra, you have 10"),
			want: "❌ Fireball Jutsu costs 25 chakra, you have 10",
		},
		{
			name: "busy",
			err:  errors.Busyf("player user-1 is already in a battle"),
			want: "❌ player user-1 is already in a battle",
		},
		{
			name: "wrapped validation keeps inner message",
			err:  errors.Wrap(errors.InvalidArgument("you cannot challenge yourself"), "failed to start battle"),
			want: "❌ you cannot challenge yourself",
		},
		{
			name: "unavailable gets retry guidance",
			err:  errors.New(errors.CodeUnavailable, "redis down"),
			want: "⚠️ The village archives are unreachable right now. Try again in a moment.",
		},
		{
			name: "internal stays generic",
			err:  errors.Internal("resolver given nil jutsu"),
			want: "💥 Something went wrong. The battle referees have been notified.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, helpers.ErrorMessage(tt.err))
		})
	}
}

func TestResourceBar(t *testing.T) {
	assert.Equal(t, "[██████████]", helpers.ResourceBar(100, 100, 10))
	assert.Equal(t, "[█████░░░░░]", helpers.ResourceBar(50, 100, 10))
	assert.Equal(t, "[░░░░░░░░░░]", helpers.ResourceBar(0, 100, 10))
	// Overdrawn values clamp instead of overflowing the bar.
	assert.Equal(t, "[██████████]", helpers.ResourceBar(150, 100, 10))
	assert.Equal(t, "[░░░░░░░░░░]", helpers.ResourceBar(-5, 100, 10))
}
