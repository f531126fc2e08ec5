package domain

import "time"

// RoomStatus - lifecycle state of a room
type RoomStatus string

const (
	RoomWaiting  RoomStatus = "waiting"
	RoomActive   RoomStatus = "active"
	RoomFinished RoomStatus = "finished"
)

// Room is the persisted mirror of one live game session, keyed by code.
// Participants are opaque connection IDs; index 0 is seat 1, index 1 is
// seat 2, and a seat stays at its index for the life of the room. Empty
// string means the seat is vacant.
type Room struct {
	Code           string            `db:"code" json:"code"`
	Participants   [2]string         `db:"participants" json:"participants"`
	PendingChoices map[string]string `db:"pending_choices" json:"pending_choices"`
	Scores         [2]int            `db:"scores" json:"scores"`
	RoundNumber    int               `db:"round_number" json:"round_number"`
	Status         RoomStatus        `db:"status" json:"status"`
	CreatedAt      time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time         `db:"updated_at" json:"updated_at"`
}

// Seated reports how many seats are taken.
func (r *Room) Seated() int {
	n := 0
	for _, p := range r.Participants {
		if p != "" {
			n++
		}
	}
	return n
}
