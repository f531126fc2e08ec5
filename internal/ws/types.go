package ws

import "encoding/json"

const (
	// client - server
	EvtCreateRoom = "create_room"
	EvtQuickMatch = "quick_match"
	EvtJoinRoom   = "join_room"
	EvtChoice     = "choice"

	// server - client
	EvtRoomCreated  = "room_created"
	EvtRoomJoined   = "room_joined"
	EvtRoundStarted = "round_started"
	EvtRoundResult  = "round_result"
	EvtGameOver     = "game_over"
	EvtOpponentLeft = "opponent_left"
	EvtError        = "error"
)

// Message is an outbound event frame.
type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// Inbound is a raw event frame received from a connection.
type Inbound struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Conn is the narrow delivery surface the engine needs from the
// transport: an opaque identifier and a fire-and-forget event push.
// The engine itself stays synchronous and testable without a live
// websocket behind it.
type Conn interface {
	ID() string
	Deliver(msg Message)
}
