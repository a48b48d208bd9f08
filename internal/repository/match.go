package repository

import (
	"context"
	"encoding/json"

	"gamehub/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// MatchRepository persists finished games. It is nil-safe: a hub running
// without a database simply keeps no history.
type MatchRepository struct {
	db *pgxpool.Pool
}

func NewMatchRepository(db *pgxpool.Pool) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) Save(ctx context.Context, rec *domain.MatchRecord) error {
	detail, err := json.Marshal(rec.Detail)
	if err != nil {
		return err
	}

	return r.db.QueryRow(ctx, `
		INSERT INTO match_history (room_code, game, players, winner_id, winner_name, draw, detail, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, rec.RoomCode, rec.Game, rec.Players, rec.WinnerID, rec.WinnerName, rec.Draw, detail, rec.FinishedAt).
		Scan(&rec.ID)
}

// Recent returns the latest finished matches, newest first.
func (r *MatchRepository) Recent(ctx context.Context, limit int) ([]domain.MatchRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, room_code, game, players, winner_id, winner_name, draw, detail, finished_at
		FROM match_history
		ORDER BY finished_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.MatchRecord
	for rows.Next() {
		var rec domain.MatchRecord
		var detail []byte
		if err := rows.Scan(&rec.ID, &rec.RoomCode, &rec.Game, &rec.Players,
			&rec.WinnerID, &rec.WinnerName, &rec.Draw, &detail, &rec.FinishedAt); err != nil {
			return nil, err
		}
		if len(detail) > 0 {
			_ = json.Unmarshal(detail, &rec.Detail)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Leaderboard aggregates wins by winner name. Guests have no stable id
// across sessions, so the name is the best join key there is.
func (r *MatchRepository) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	rows, err := r.db.Query(ctx, `
		SELECT winner_name,
		       COUNT(*) FILTER (WHERE NOT draw) AS wins,
		       COUNT(*) AS matches
		FROM match_history
		WHERE winner_name <> ''
		GROUP BY winner_name
		ORDER BY wins DESC, matches DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.LeaderboardEntry
	for rows.Next() {
		var e domain.LeaderboardEntry
		if err := rows.Scan(&e.Name, &e.Wins, &e.Matches); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
