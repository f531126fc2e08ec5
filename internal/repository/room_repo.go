package repository

import (
	"context"
	"encoding/json"

	"rps_arena/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RoomRepository mirrors live rooms into postgres. Writes happen on
// every state transition with last-writer-wins semantics; the in-memory
// directory stays authoritative.
type RoomRepository struct {
	db *pgxpool.Pool
}

func NewRoomRepository(db *pgxpool.Pool) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) Upsert(ctx context.Context, room *domain.Room) error {
	pending, err := json.Marshal(room.PendingChoices)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO rooms (code, participant1, participant2, pending_choices, score1, score2, round_number, status, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
         ON CONFLICT (code) DO UPDATE SET
             participant1 = EXCLUDED.participant1,
             participant2 = EXCLUDED.participant2,
             pending_choices = EXCLUDED.pending_choices,
             score1 = EXCLUDED.score1,
             score2 = EXCLUDED.score2,
             round_number = EXCLUDED.round_number,
             status = EXCLUDED.status,
             updated_at = EXCLUDED.updated_at`,
		room.Code,
		room.Participants[0],
		room.Participants[1],
		pending,
		room.Scores[0],
		room.Scores[1],
		room.RoundNumber,
		string(room.Status),
		room.CreatedAt,
		room.UpdatedAt,
	)
	return err
}

func (r *RoomRepository) GetByCode(ctx context.Context, code string) (*domain.Room, error) {
	row := r.db.QueryRow(ctx,
		`SELECT code, participant1, participant2, pending_choices, score1, score2, round_number, status, created_at, updated_at
         FROM rooms
         WHERE code = $1`,
		code,
	)
	return scanRoom(row)
}

// FindWaiting lists rooms with exactly one seated participant, the
// quick-match filter.
func (r *RoomRepository) FindWaiting(ctx context.Context) ([]*domain.Room, error) {
	rows, err := r.db.Query(ctx,
		`SELECT code, participant1, participant2, pending_choices, score1, score2, round_number, status, created_at, updated_at
         FROM rooms
         WHERE status = 'waiting' AND (participant1 = '') <> (participant2 = '')
         ORDER BY created_at`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, room)
	}
	return res, rows.Err()
}

func (r *RoomRepository) Delete(ctx context.Context, code string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM rooms WHERE code = $1`, code)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoom(row rowScanner) (*domain.Room, error) {
	var (
		room         domain.Room
		pendingBytes []byte
		status       string
	)

	err := row.Scan(
		&room.Code,
		&room.Participants[0],
		&room.Participants[1],
		&pendingBytes,
		&room.Scores[0],
		&room.Scores[1],
		&room.RoundNumber,
		&status,
		&room.CreatedAt,
		&room.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	room.Status = domain.RoomStatus(status)
	room.PendingChoices = make(map[string]string)
	if len(pendingBytes) > 0 {
		_ = json.Unmarshal(pendingBytes, &room.PendingChoices)
	}
	return &room, nil
}
