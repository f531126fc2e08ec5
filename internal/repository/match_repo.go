package repository

import (
	"context"

	"rps_arena/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// MatchRepository stores finished matches, append only.
type MatchRepository struct {
	db *pgxpool.Pool
}

func NewMatchRepository(db *pgxpool.Pool) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) Create(ctx context.Context, m *domain.Match) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO matches (room_code, winner_seat, score1, score2, rounds)
         VALUES ($1, $2, $3, $4, $5)
         RETURNING id, finished_at`,
		m.RoomCode,
		m.WinnerSeat,
		m.Score1,
		m.Score2,
		m.Rounds,
	).Scan(&m.ID, &m.FinishedAt)
}

func (r *MatchRepository) Recent(ctx context.Context, limit int) ([]*domain.Match, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, room_code, winner_seat, score1, score2, rounds, finished_at
         FROM matches
         ORDER BY finished_at DESC
         LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Match
	for rows.Next() {
		var m domain.Match
		if err := rows.Scan(&m.ID, &m.RoomCode, &m.WinnerSeat, &m.Score1, &m.Score2, &m.Rounds, &m.FinishedAt); err != nil {
			return nil, err
		}
		res = append(res, &m)
	}
	return res, rows.Err()
}
