package domain

import "time"

// Match is the append-only record of a finished game, written once the
// room reaches the finished state and is removed from the directory.
type Match struct {
	ID         int64     `db:"id" json:"id"`
	RoomCode   string    `db:"room_code" json:"room_code"`
	WinnerSeat int       `db:"winner_seat" json:"winner_seat"` // 1 or 2
	Score1     int       `db:"score1" json:"score1"`
	Score2     int       `db:"score2" json:"score2"`
	Rounds     int       `db:"rounds" json:"rounds"`
	FinishedAt time.Time `db:"finished_at" json:"finished_at"`
}
