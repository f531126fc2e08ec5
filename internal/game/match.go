package game

import (
	"time"

	"rps_arena/internal/domain"
)

// WinScore ends the match: first seat to reach it wins.
const WinScore = 3

// RoundResult is produced exactly once per resolved round.
type RoundResult struct {
	Round    int
	Winner   Outcome
	Symbols  [2]Symbol
	Scores   [2]int
	Finished bool
}

// Match holds the full mutable state of one room: seats, the current
// round's pending choices, scores and the round counter. It is not
// safe for concurrent use; the owning room serializes access to it.
type Match struct {
	code         string
	participants [2]string
	pending      map[string]Symbol
	scores       [2]int
	round        int
	status       domain.RoomStatus
	createdAt    time.Time
}

func NewMatch(code string) *Match {
	return &Match{
		code:      code,
		pending:   make(map[string]Symbol),
		round:     1,
		status:    domain.RoomWaiting,
		createdAt: time.Now(),
	}
}

func (m *Match) Code() string { return m.code }

func (m *Match) Round() int { return m.round }

func (m *Match) Scores() [2]int { return m.scores }

func (m *Match) Participants() [2]string { return m.participants }

func (m *Match) Status() domain.RoomStatus { return m.status }

func (m *Match) CreatedAt() time.Time { return m.createdAt }

func (m *Match) Finished() bool { return m.status == domain.RoomFinished }

// Empty reports whether both seats are vacant.
func (m *Match) Empty() bool {
	return m.participants[0] == "" && m.participants[1] == ""
}

// SeatedCount reports how many seats are taken.
func (m *Match) SeatedCount() int {
	n := 0
	for _, p := range m.participants {
		if p != "" {
			n++
		}
	}
	return n
}

// SeatOf returns the 1-based seat of connID, or 0 if it is not seated.
func (m *Match) SeatOf(connID string) int {
	for i, p := range m.participants {
		if p != "" && p == connID {
			return i + 1
		}
	}
	return 0
}

// Seat places connID at the first vacant seat. Seat order is fixed for
// the life of the room: a participant never moves between seats.
func (m *Match) Seat(connID string) (int, error) {
	if m.status == domain.RoomFinished {
		return 0, domain.ErrRoomNotFound
	}
	if s := m.SeatOf(connID); s != 0 {
		return s, nil
	}
	for i, p := range m.participants {
		if p == "" {
			m.participants[i] = connID
			m.refreshStatus()
			return i + 1, nil
		}
	}
	return 0, domain.ErrRoomFull
}

// Drop vacates connID's seat and discards its pending choice, if any.
// Safe to call for connections that were never seated.
func (m *Match) Drop(connID string) (int, bool) {
	seat := m.SeatOf(connID)
	if seat == 0 {
		return 0, false
	}
	m.participants[seat-1] = ""
	delete(m.pending, connID)
	if m.status != domain.RoomFinished {
		m.refreshStatus()
	}
	return seat, true
}

// Submit records connID's choice for the current round, overwriting any
// earlier submission. When both seats have submitted, the round is
// judged, scores and the round counter advance, pending choices are
// cleared and the result is returned; otherwise the result is nil.
func (m *Match) Submit(connID string, s Symbol) (*RoundResult, error) {
	if m.status == domain.RoomFinished {
		return nil, domain.ErrUnknownRoom
	}
	if m.SeatOf(connID) == 0 {
		return nil, domain.ErrNotSeated
	}

	m.pending[connID] = s

	p1, p2 := m.participants[0], m.participants[1]
	if p1 == "" || p2 == "" {
		return nil, nil
	}
	a, ok1 := m.pending[p1]
	b, ok2 := m.pending[p2]
	if !ok1 || !ok2 {
		return nil, nil
	}

	winner := Judge(a, b)
	switch winner {
	case OutcomeSeat1:
		m.scores[0]++
	case OutcomeSeat2:
		m.scores[1]++
	}

	result := &RoundResult{
		Round:   m.round,
		Winner:  winner,
		Symbols: [2]Symbol{a, b},
		Scores:  m.scores,
	}

	m.round++
	m.pending = make(map[string]Symbol)

	if m.scores[0] >= WinScore || m.scores[1] >= WinScore {
		m.status = domain.RoomFinished
		result.Finished = true
	}

	return result, nil
}

func (m *Match) refreshStatus() {
	if m.participants[0] != "" && m.participants[1] != "" {
		m.status = domain.RoomActive
	} else {
		m.status = domain.RoomWaiting
	}
}

// Snapshot renders the match as its persisted room record.
func (m *Match) Snapshot() domain.Room {
	pending := make(map[string]string, len(m.pending))
	for id, sym := range m.pending {
		pending[id] = string(sym)
	}
	return domain.Room{
		Code:           m.code,
		Participants:   m.participants,
		PendingChoices: pending,
		Scores:         m.scores,
		RoundNumber:    m.round,
		Status:         m.status,
		CreatedAt:      m.createdAt,
		UpdatedAt:      time.Now(),
	}
}
