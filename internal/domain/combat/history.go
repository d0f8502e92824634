package combat

import "time"

// BattleRecord is the immutable summary of a concluded battle, kept for the
// participants' recent history.
type BattleRecord struct {
	ID           string    `json:"id"`
	BattleID     string    `json:"battle_id"`
	ChallengerID string    `json:"challenger_id"`
	OpponentID   string    `json:"opponent_id"`
	// WinnerID is empty when the battle was abandoned with no winner.
	WinnerID    string    `json:"winner_id,omitempty"`
	TurnCount   int       `json:"turn_count"`
	Fled        bool      `json:"fled,omitempty"`
	ExpAwarded  int       `json:"exp_awarded"`
	RyoAwarded  int       `json:"ryo_awarded"`
	Transcript  []string  `json:"transcript,omitempty"`
	ConcludedAt time.Time `json:"concluded_at"`
}
