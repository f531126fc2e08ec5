package ws

import (
	"context"
	"encoding/json"
	"math/rand"
	"sync"
	"time"

	"rps_arena/internal/domain"
	"rps_arena/internal/game"
	"rps_arena/internal/logger"
	"rps_arena/internal/repository"
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 6

	persistTimeout = 5 * time.Second
)

// Hub is the room directory and matchmaker. It maps live codes to
// rooms and routes inbound events; everything past the lookup is
// serialized per room, so the hub lock only guards the maps.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]*Room

	roomRepo  *repository.RoomRepository
	matchRepo *repository.MatchRepository
}

func NewHub(roomRepo *repository.RoomRepository, matchRepo *repository.MatchRepository) *Hub {
	return &Hub{
		rooms:     make(map[string]*Room),
		roomRepo:  roomRepo,
		matchRepo: matchRepo,
	}
}

// Dispatch routes one raw inbound frame from c. Malformed frames are
// rejected with an error event and have no effect on room state.
func (h *Hub) Dispatch(c Conn, raw []byte) {
	var msg Inbound
	if err := json.Unmarshal(raw, &msg); err != nil {
		h.sendErrorKind(c, "bad_request", "malformed message")
		return
	}

	switch msg.Type {
	case EvtCreateRoom:
		h.CreateRoom(c)
	case EvtQuickMatch:
		h.QuickMatch(c)
	case EvtJoinRoom:
		var p JoinRoomPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil || p.RoomCode == "" {
			h.sendErrorKind(c, "bad_request", "room_code required")
			return
		}
		h.JoinRoom(c, p.RoomCode)
	case EvtChoice:
		var p ChoicePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil || p.RoomCode == "" {
			h.sendErrorKind(c, "bad_request", "room_code required")
			return
		}
		h.SubmitChoice(c, p.RoomCode, p.Symbol)
	default:
		h.sendErrorKind(c, "bad_request", "unknown event type")
	}
}

// CreateRoom opens a private room with a fresh code and seats the
// requester at seat 1.
func (h *Hub) CreateRoom(c Conn) {
	h.mu.Lock()
	code := h.generateCode()
	room := newRoom(code, h)
	h.rooms[code] = room
	h.mu.Unlock()

	roomsCreated.Inc()
	activeRooms.Inc()
	logger.Info("room created", "room", code, "conn", c.ID())

	// a fresh room cannot be full or closed
	if err := room.join(c, true); err != nil {
		logger.Error("seat creator", "room", code, "error", err)
	}
}

// JoinRoom seats c in the room with the given code.
func (h *Hub) JoinRoom(c Conn, code string) {
	room := h.room(code)
	if room == nil {
		h.sendError(c, domain.ErrRoomNotFound)
		return
	}
	if err := room.join(c, false); err != nil {
		h.sendError(c, err)
	}
}

// QuickMatch pairs c with any waiting room, or opens a fresh one when
// none is available. Two concurrent callers may both miss and end up
// in two separate waiting rooms; that is an accepted matchmaking race.
func (h *Hub) QuickMatch(c Conn) {
	for {
		room := h.findWaiting(c.ID())
		if room == nil {
			h.CreateRoom(c)
			return
		}
		if err := room.join(c, false); err == nil {
			return
		}
		// the candidate filled up or vanished since the scan
	}
}

// SubmitChoice records a symbol for the current round of the room.
func (h *Hub) SubmitChoice(c Conn, code, symbol string) {
	room := h.room(code)
	if room == nil {
		h.sendError(c, domain.ErrUnknownRoom)
		return
	}

	sym, err := game.ParseSymbol(symbol)
	if err != nil {
		h.sendError(c, err)
		return
	}
	if err := room.submit(c, sym); err != nil {
		h.sendError(c, err)
	}
}

// OnDisconnect reconciles an abruptly lost connection against every
// room. At most one room contains it, but the sweep is idempotent.
func (h *Hub) OnDisconnect(c Conn) {
	for _, room := range h.snapshotRooms() {
		room.dropConn(c.ID())
	}
}

// RoomCount reports the number of live rooms.
func (h *Hub) RoomCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms)
}

func (h *Hub) room(code string) *Room {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.rooms[code]
}

func (h *Hub) snapshotRooms() []*Room {
	h.mu.RLock()
	defer h.mu.RUnlock()
	rooms := make([]*Room, 0, len(h.rooms))
	for _, r := range h.rooms {
		rooms = append(rooms, r)
	}
	return rooms
}

func (h *Hub) findWaiting(connID string) *Room {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, r := range h.rooms {
		if r.canHost(connID) {
			return r
		}
	}
	return nil
}

// removeRoom drops the code from the directory, making it immediately
// reusable. The room marks itself closed before calling here, so a
// join racing with removal gets RoomNotFound rather than a dead room.
func (h *Hub) removeRoom(code string) {
	h.mu.Lock()
	if _, ok := h.rooms[code]; ok {
		delete(h.rooms, code)
		activeRooms.Dec()
	}
	h.mu.Unlock()

	if h.roomRepo != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
			defer cancel()
			if err := h.roomRepo.Delete(ctx, code); err != nil {
				logger.Error("delete room record", "room", code, "error", err)
			}
		}()
	}
}

// generateCode returns a code unused by any live room. Caller holds
// h.mu.
func (h *Hub) generateCode() string {
	buf := make([]byte, codeLength)
	for {
		for i := range buf {
			buf[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
		}
		code := string(buf)
		if _, taken := h.rooms[code]; !taken {
			return code
		}
	}
}

func (h *Hub) persistRoom(snap domain.Room) {
	if h.roomRepo == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := h.roomRepo.Upsert(ctx, &snap); err != nil {
			logger.Error("persist room", "room", snap.Code, "error", err)
		}
	}()
}

func (h *Hub) recordMatch(rec domain.Match) {
	if h.matchRepo == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := h.matchRepo.Create(ctx, &rec); err != nil {
			logger.Error("record match", "room", rec.RoomCode, "error", err)
		}
	}()
}

func (h *Hub) sendError(c Conn, err error) {
	h.sendErrorKind(c, domain.ErrorKind(err), err.Error())
}

func (h *Hub) sendErrorKind(c Conn, kind, message string) {
	c.Deliver(Message{Type: EvtError, Payload: ErrorPayload{Kind: kind, Message: message}})
}

// StartCleanup sweeps rooms that lost all connections without being
// removed, so leaked codes do not pile up.
func (h *Hub) StartCleanup(ttl time.Duration) {
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			h.sweepStale(ttl)
		}
	}()
}

func (h *Hub) sweepStale(ttl time.Duration) {
	for _, room := range h.snapshotRooms() {
		if room.staleAfter(ttl) {
			logger.Warn("sweeping stale room", "room", room.Code())
			room.close()
		}
	}
}
