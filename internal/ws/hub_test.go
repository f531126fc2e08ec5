package ws

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeConn records delivered events instead of writing to a socket.
type fakeConn struct {
	id string

	mu     sync.Mutex
	events []Message
}

func newFakeConn(id string) *fakeConn {
	return &fakeConn{id: id}
}

func (f *fakeConn) ID() string { return f.id }

func (f *fakeConn) Deliver(msg Message) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, msg)
}

func (f *fakeConn) byType(evt string) []Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Message
	for _, m := range f.events {
		if m.Type == evt {
			out = append(out, m)
		}
	}
	return out
}

func (f *fakeConn) last(t *testing.T, evt string) Message {
	t.Helper()
	msgs := f.byType(evt)
	require.NotEmpty(t, msgs, "no %q event delivered to %s", evt, f.id)
	return msgs[len(msgs)-1]
}

func dispatch(t *testing.T, h *Hub, c Conn, evtType string, payload any) {
	t.Helper()
	frame := map[string]any{"type": evtType}
	if payload != nil {
		frame["payload"] = payload
	}
	raw, err := json.Marshal(frame)
	require.NoError(t, err)
	h.Dispatch(c, raw)
}

func createRoom(t *testing.T, h *Hub, c *fakeConn) string {
	t.Helper()
	dispatch(t, h, c, EvtCreateRoom, nil)
	created := c.last(t, EvtRoomCreated).Payload.(RoomCreatedPayload)
	require.Len(t, created.RoomCode, codeLength)
	return created.RoomCode
}

func TestCreateRoom(t *testing.T) {
	h := NewHub(nil, nil)
	c1 := newFakeConn("c1")

	code := createRoom(t, h, c1)

	require.Equal(t, 1, h.RoomCount())
	for _, r := range code {
		require.Contains(t, codeAlphabet, string(r))
	}
	// code goes to the creator only, and no round has started
	require.Empty(t, c1.byType(EvtRoundStarted))
}

func TestJoinRoomNotFound(t *testing.T) {
	h := NewHub(nil, nil)
	c := newFakeConn("c1")

	dispatch(t, h, c, EvtJoinRoom, JoinRoomPayload{RoomCode: "ZZ99ZZ"})

	errPayload := c.last(t, EvtError).Payload.(ErrorPayload)
	require.Equal(t, "room_not_found", errPayload.Kind)
}

func TestJoinRoomStartsRound(t *testing.T) {
	h := NewHub(nil, nil)
	c1 := newFakeConn("c1")
	c2 := newFakeConn("c2")

	code := createRoom(t, h, c1)
	dispatch(t, h, c2, EvtJoinRoom, JoinRoomPayload{RoomCode: code})

	joined := c2.last(t, EvtRoomJoined).Payload.(RoomJoinedPayload)
	require.Equal(t, code, joined.RoomCode)
	require.Equal(t, 2, joined.Seat)

	for _, c := range []*fakeConn{c1, c2} {
		started := c.last(t, EvtRoundStarted).Payload.(RoundStartedPayload)
		require.Equal(t, code, started.RoomCode)
		require.Equal(t, 1, started.Round)
	}
}

func TestJoinRoomFull(t *testing.T) {
	h := NewHub(nil, nil)
	c1 := newFakeConn("c1")
	c2 := newFakeConn("c2")
	c3 := newFakeConn("c3")

	code := createRoom(t, h, c1)
	dispatch(t, h, c2, EvtJoinRoom, JoinRoomPayload{RoomCode: code})
	dispatch(t, h, c3, EvtJoinRoom, JoinRoomPayload{RoomCode: code})

	errPayload := c3.last(t, EvtError).Payload.(ErrorPayload)
	require.Equal(t, "room_full", errPayload.Kind)
}

func TestQuickMatchPairs(t *testing.T) {
	h := NewHub(nil, nil)
	c1 := newFakeConn("c1")
	c2 := newFakeConn("c2")

	dispatch(t, h, c1, EvtQuickMatch, nil)
	require.Equal(t, 1, h.RoomCount())
	code := c1.last(t, EvtRoomCreated).Payload.(RoomCreatedPayload).RoomCode

	dispatch(t, h, c2, EvtQuickMatch, nil)
	require.Equal(t, 1, h.RoomCount(), "quick-match opened a second room instead of pairing")

	joined := c2.last(t, EvtRoomJoined).Payload.(RoomJoinedPayload)
	require.Equal(t, code, joined.RoomCode)
	require.NotEmpty(t, c1.byType(EvtRoundStarted))
}

func TestQuickMatchNeverPairsWithSelf(t *testing.T) {
	h := NewHub(nil, nil)
	c1 := newFakeConn("c1")

	dispatch(t, h, c1, EvtQuickMatch, nil)
	dispatch(t, h, c1, EvtQuickMatch, nil)

	require.Equal(t, 2, h.RoomCount())
}

func TestSubmitChoiceErrors(t *testing.T) {
	h := NewHub(nil, nil)
	c1 := newFakeConn("c1")
	c2 := newFakeConn("c2")
	stranger := newFakeConn("stranger")

	code := createRoom(t, h, c1)
	dispatch(t, h, c2, EvtJoinRoom, JoinRoomPayload{RoomCode: code})

	cases := []struct {
		name     string
		conn     *fakeConn
		payload  ChoicePayload
		wantKind string
	}{
		{"invalid symbol", c1, ChoicePayload{RoomCode: code, Symbol: "lizard"}, "symbol_invalid"},
		{"unknown room", c1, ChoicePayload{RoomCode: "QQQQQQ", Symbol: "rock"}, "unknown_room"},
		{"not seated", stranger, ChoicePayload{RoomCode: code, Symbol: "rock"}, "not_seated"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dispatch(t, h, tc.conn, EvtChoice, tc.payload)
			errPayload := tc.conn.last(t, EvtError).Payload.(ErrorPayload)
			require.Equal(t, tc.wantKind, errPayload.Kind)
		})
	}
}

func TestDispatchMalformed(t *testing.T) {
	h := NewHub(nil, nil)
	c := newFakeConn("c1")

	h.Dispatch(c, []byte("{not json"))
	require.Equal(t, "bad_request", c.last(t, EvtError).Payload.(ErrorPayload).Kind)

	dispatch(t, h, c, "teleport", nil)
	require.Equal(t, "bad_request", c.last(t, EvtError).Payload.(ErrorPayload).Kind)

	dispatch(t, h, c, EvtJoinRoom, map[string]any{})
	require.Equal(t, "bad_request", c.last(t, EvtError).Payload.(ErrorPayload).Kind)

	require.Equal(t, 0, h.RoomCount())
}

func TestGeneratedCodesUnique(t *testing.T) {
	h := NewHub(nil, nil)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		c := newFakeConn(fmt.Sprintf("c%d", i))
		code := createRoom(t, h, c)
		require.False(t, seen[code], "code %s issued twice among live rooms", code)
		require.False(t, strings.ContainsAny(code, "abcdefghijklmnopqrstuvwxyz"))
		seen[code] = true
	}
	require.Equal(t, 50, h.RoomCount())
}
