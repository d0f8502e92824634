package helpers

import (
	"fmt"
	"strings"

	"github.com/hiddenleafgames/shinobi-bot-discord/internal/errors"
)

// ErrorMessage maps a service error to the line shown to the user. Each
// error code gets a distinguishable message so players know whether to fix
// their input, wait, or just retry.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	switch errors.GetCode(err) {
	case errors.CodeInvalidArgument,
		errors.CodeNotFound,
		errors.CodeAlreadyExists,
		errors.CodeNotYourTurn,
		errors.CodeNotLearned,
		errors.CodeInsufficientChakra,
		errors.CodeBusy,
		errors.CodeExpired:
		// Validation and state errors carry player-facing messages.
		return "❌ " + userFacing(err)
	case errors.CodeUnavailable:
		return "⚠️ The village archives are unreachable right now. Try again in a moment."
	default:
		return "💥 Something went wrong. The battle referees have been notified."
	}
}

// userFacing strips the wrap prefixes down to the innermost message.
func userFacing(err error) string {
	msg := err.Error()
	if idx := strings.LastIndex(msg, ": "); idx >= 0 {
		msg = msg[idx+2:]
	}
	return msg
}

// ResourceBar renders a fixed-width meter like `[██████░░░░]`.
func ResourceBar(current, max, width int) string {
	if max <= 0 || width <= 0 {
		return ""
	}
	if current < 0 {
		current = 0
	}
	if current > max {
		current = max
	}

	filled := current * width / max
	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < width; i++ {
		if i < filled {
			b.WriteRune('█')
		} else {
			b.WriteRune('░')
		}
	}
	b.WriteByte(']')
	return b.String()
}

// FormatResource renders "current/max" next to its bar.
func FormatResource(label string, current, max int) string {
	return fmt.Sprintf("%s %s %d/%d", label, ResourceBar(current, max, 10), current, max)
}
