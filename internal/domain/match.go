package domain

import "time"

// MatchRecord is one finished game as persisted to match_history.
type MatchRecord struct {
	ID         int64          `json:"id"`
	RoomCode   string         `json:"room_code"`
	Game       string         `json:"game"`
	Players    []string       `json:"players"`
	WinnerID   string         `json:"winner_id,omitempty"`
	WinnerName string         `json:"winner_name,omitempty"`
	Draw       bool           `json:"draw"`
	Detail     map[string]any `json:"detail,omitempty"`
	FinishedAt time.Time      `json:"finished_at"`
}

// LeaderboardEntry aggregates wins per player name across match history.
type LeaderboardEntry struct {
	Name    string `json:"name"`
	Wins    int64  `json:"wins"`
	Matches int64  `json:"matches"`
}
