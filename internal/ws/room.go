package ws

import (
	"sync"
	"time"

	"rps_arena/internal/domain"
	"rps_arena/internal/game"
	"rps_arena/internal/logger"
)

// Room owns one match from creation to termination. All state
// transitions for a room happen under its own lock, so submissions,
// joins and disconnects for the same room are serialized while
// independent rooms stay fully parallel.
type Room struct {
	code string
	hub  *Hub

	mu     sync.Mutex
	match  *game.Match
	conns  map[string]Conn
	closed bool
}

func newRoom(code string, hub *Hub) *Room {
	return &Room{
		code:  code,
		hub:   hub,
		match: game.NewMatch(code),
		conns: make(map[string]Conn, 2),
	}
}

func (r *Room) Code() string { return r.code }

// join seats c. The creator gets room_created, a joiner gets
// room_joined; once both seats are taken round_started goes to both.
func (r *Room) join(c Conn, creator bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return domain.ErrRoomNotFound
	}

	seat, err := r.match.Seat(c.ID())
	if err != nil {
		return err
	}
	r.conns[c.ID()] = c

	if creator {
		c.Deliver(Message{Type: EvtRoomCreated, Payload: RoomCreatedPayload{RoomCode: r.code}})
	} else {
		c.Deliver(Message{Type: EvtRoomJoined, Payload: RoomJoinedPayload{RoomCode: r.code, Seat: seat}})
	}

	if r.match.Status() == domain.RoomActive {
		started := Message{Type: EvtRoundStarted, Payload: RoundStartedPayload{
			RoomCode: r.code,
			Round:    r.match.Round(),
		}}
		for _, conn := range r.conns {
			conn.Deliver(started)
		}
	}

	r.hub.persistRoom(r.match.Snapshot())
	logger.Debug("participant seated", "room", r.code, "conn", c.ID(), "seat", seat)
	return nil
}

// submit records c's choice and, when it is the second one for the
// current round, resolves the round in the same critical section.
func (r *Room) submit(c Conn, sym game.Symbol) error {
	r.mu.Lock()

	if r.closed {
		r.mu.Unlock()
		return domain.ErrUnknownRoom
	}

	res, err := r.match.Submit(c.ID(), sym)
	if err != nil {
		r.mu.Unlock()
		return err
	}

	if res == nil {
		// waiting for the other seat
		r.hub.persistRoom(r.match.Snapshot())
		r.mu.Unlock()
		return nil
	}

	roundsResolved.Inc()
	r.broadcastResult(res)

	if !res.Finished {
		r.hub.persistRoom(r.match.Snapshot())
		r.mu.Unlock()
		return nil
	}

	gamesFinished.Inc()
	over := GameOverPayload{
		RoomCode: r.code,
		Winner:   string(res.Winner),
		Scores:   res.Scores,
		Rounds:   res.Round,
	}
	for _, conn := range r.conns {
		conn.Deliver(Message{Type: EvtGameOver, Payload: over})
	}

	r.closed = true
	r.mu.Unlock()

	logger.Info("game finished", "room", r.code, "winner", res.Winner, "scores", res.Scores, "rounds", res.Round)
	r.hub.removeRoom(r.code)
	r.hub.recordMatch(domain.Match{
		RoomCode:   r.code,
		WinnerSeat: winnerSeatNumber(res.Winner),
		Score1:     res.Scores[0],
		Score2:     res.Scores[1],
		Rounds:     res.Round,
	})
	return nil
}

// broadcastResult sends the round outcome to both seats from each
// seat's own perspective. Caller holds r.mu.
func (r *Room) broadcastResult(res *game.RoundResult) {
	for id, conn := range r.conns {
		seat := r.match.SeatOf(id)
		if seat == 0 {
			continue
		}

		you := "draw"
		switch res.Winner {
		case game.OutcomeSeat1:
			you = "lose"
			if seat == 1 {
				you = "win"
			}
		case game.OutcomeSeat2:
			you = "lose"
			if seat == 2 {
				you = "win"
			}
		}

		conn.Deliver(Message{Type: EvtRoundResult, Payload: RoundResultPayload{
			RoomCode:       r.code,
			Round:          res.Round,
			Winner:         string(res.Winner),
			You:            you,
			YourSymbol:     string(res.Symbols[seat-1]),
			OpponentSymbol: string(res.Symbols[seat%2]),
			Scores:         res.Scores,
		}})
	}
}

// dropConn removes connID from the room if it is seated there.
// Idempotent: safe to run against rooms the connection never joined.
func (r *Room) dropConn(connID string) {
	r.mu.Lock()

	if r.closed {
		r.mu.Unlock()
		return
	}

	seat, ok := r.match.Drop(connID)
	if !ok {
		r.mu.Unlock()
		return
	}
	delete(r.conns, connID)
	logger.Info("participant left", "room", r.code, "conn", connID, "seat", seat)

	if r.match.Empty() {
		r.closed = true
		r.mu.Unlock()
		r.hub.removeRoom(r.code)
		return
	}

	// survivor keeps the room; it reverts to waiting for a new opponent
	left := Message{Type: EvtOpponentLeft, Payload: OpponentLeftPayload{RoomCode: r.code}}
	for _, conn := range r.conns {
		conn.Deliver(left)
	}
	r.hub.persistRoom(r.match.Snapshot())
	r.mu.Unlock()
}

// canHost reports whether connID could be seated here by quick-match:
// an open room with exactly one participant that is not connID itself.
func (r *Room) canHost(connID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return !r.closed &&
		r.match.Status() == domain.RoomWaiting &&
		r.match.SeatedCount() == 1 &&
		r.match.SeatOf(connID) == 0
}

// staleAfter reports whether the room has had no connections for
// longer than ttl.
func (r *Room) staleAfter(ttl time.Duration) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.conns) == 0 && time.Since(r.match.CreatedAt()) > ttl
}

// close force-closes the room and removes its code from the directory.
func (r *Room) close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	r.mu.Unlock()
	r.hub.removeRoom(r.code)
}

func winnerSeatNumber(o game.Outcome) int {
	if o == game.OutcomeSeat2 {
		return 2
	}
	return 1
}
