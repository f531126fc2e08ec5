package ws

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func pairUp(t *testing.T, h *Hub) (string, *fakeConn, *fakeConn) {
	t.Helper()
	c1 := newFakeConn("p1")
	c2 := newFakeConn("p2")
	code := createRoom(t, h, c1)
	dispatch(t, h, c2, EvtJoinRoom, JoinRoomPayload{RoomCode: code})
	require.Equal(t, 1, h.RoomCount())
	return code, c1, c2
}

func submit(t *testing.T, h *Hub, c *fakeConn, code, symbol string) {
	t.Helper()
	dispatch(t, h, c, EvtChoice, ChoicePayload{RoomCode: code, Symbol: symbol})
}

func TestRoundResolvesOnceWithOverwrite(t *testing.T) {
	h := NewHub(nil, nil)
	code, c1, c2 := pairUp(t, h)

	submit(t, h, c1, code, "rock")
	require.Empty(t, c1.byType(EvtRoundResult), "round resolved with one choice")

	// re-submission before resolution replaces the earlier value
	submit(t, h, c1, code, "paper")
	submit(t, h, c2, code, "rock")

	res1 := c1.byType(EvtRoundResult)
	res2 := c2.byType(EvtRoundResult)
	require.Len(t, res1, 1)
	require.Len(t, res2, 1)

	p1 := res1[0].Payload.(RoundResultPayload)
	require.Equal(t, 1, p1.Round)
	require.Equal(t, "seat1", p1.Winner)
	require.Equal(t, "win", p1.You)
	require.Equal(t, "paper", p1.YourSymbol)
	require.Equal(t, "rock", p1.OpponentSymbol)
	require.Equal(t, [2]int{1, 0}, p1.Scores)

	p2 := res2[0].Payload.(RoundResultPayload)
	require.Equal(t, "seat1", p2.Winner)
	require.Equal(t, "lose", p2.You)
	require.Equal(t, "rock", p2.YourSymbol)
	require.Equal(t, "paper", p2.OpponentSymbol)
}

func TestTieKeepsScoresAndAdvancesRound(t *testing.T) {
	h := NewHub(nil, nil)
	code, c1, c2 := pairUp(t, h)

	submit(t, h, c1, code, "scissors")
	submit(t, h, c2, code, "scissors")

	p := c1.last(t, EvtRoundResult).Payload.(RoundResultPayload)
	require.Equal(t, "tie", p.Winner)
	require.Equal(t, "draw", p.You)
	require.Equal(t, [2]int{0, 0}, p.Scores)

	// next round resolves at the incremented counter
	submit(t, h, c1, code, "rock")
	submit(t, h, c2, code, "scissors")
	p = c1.last(t, EvtRoundResult).Payload.(RoundResultPayload)
	require.Equal(t, 2, p.Round)
	require.Equal(t, [2]int{1, 0}, p.Scores)
}

func TestMatchPlayedToGameOver(t *testing.T) {
	h := NewHub(nil, nil)
	code, c1, c2 := pairUp(t, h)

	rounds := []struct {
		s1, s2     string
		wantScores [2]int
	}{
		{"rock", "scissors", [2]int{1, 0}},
		{"scissors", "rock", [2]int{1, 1}},
		{"paper", "rock", [2]int{2, 1}},
		{"rock", "scissors", [2]int{3, 1}},
	}

	for i, r := range rounds {
		submit(t, h, c1, code, r.s1)
		submit(t, h, c2, code, r.s2)

		p := c1.last(t, EvtRoundResult).Payload.(RoundResultPayload)
		require.Equal(t, i+1, p.Round)
		require.Equal(t, r.wantScores, p.Scores)
	}

	for _, c := range []*fakeConn{c1, c2} {
		over := c.last(t, EvtGameOver).Payload.(GameOverPayload)
		require.Equal(t, code, over.RoomCode)
		require.Equal(t, "seat1", over.Winner)
		require.Equal(t, [2]int{3, 1}, over.Scores)
		require.Equal(t, 4, over.Rounds)
	}

	// room is gone: no further submissions for that code
	require.Equal(t, 0, h.RoomCount())
	submit(t, h, c1, code, "rock")
	require.Equal(t, "unknown_room", c1.last(t, EvtError).Payload.(ErrorPayload).Kind)
	require.Len(t, c1.byType(EvtRoundResult), 4)

	// and the code is no longer joinable
	c3 := newFakeConn("p3")
	dispatch(t, h, c3, EvtJoinRoom, JoinRoomPayload{RoomCode: code})
	require.Equal(t, "room_not_found", c3.last(t, EvtError).Payload.(ErrorPayload).Kind)
}

func TestDisconnectSoleParticipantDeletesRoom(t *testing.T) {
	h := NewHub(nil, nil)
	c1 := newFakeConn("p1")

	createRoom(t, h, c1)
	require.Equal(t, 1, h.RoomCount())

	h.OnDisconnect(c1)
	require.Equal(t, 0, h.RoomCount())

	// reconciliation is idempotent
	h.OnDisconnect(c1)
	require.Equal(t, 0, h.RoomCount())
}

func TestDisconnectRevertsRoomToWaiting(t *testing.T) {
	h := NewHub(nil, nil)
	code, c1, c2 := pairUp(t, h)

	// seat 1 has a choice outstanding when it drops
	submit(t, h, c1, code, "rock")
	h.OnDisconnect(c1)

	require.Equal(t, 1, h.RoomCount())
	require.Equal(t, code, c2.last(t, EvtOpponentLeft).Payload.(OpponentLeftPayload).RoomCode)

	// a new opponent takes the vacated seat 1 via quick-match
	c3 := newFakeConn("p3")
	dispatch(t, h, c3, EvtQuickMatch, nil)
	require.Equal(t, 1, h.RoomCount())

	joined := c3.last(t, EvtRoomJoined).Payload.(RoomJoinedPayload)
	require.Equal(t, code, joined.RoomCode)
	require.Equal(t, 1, joined.Seat)

	// the departed connection's choice was discarded; the round must
	// not resolve until both current seats submit
	submit(t, h, c2, code, "rock")
	require.Empty(t, c2.byType(EvtRoundResult))

	submit(t, h, c3, code, "scissors")
	p := c2.last(t, EvtRoundResult).Payload.(RoundResultPayload)
	require.Equal(t, "seat2", p.Winner)
	require.Equal(t, "win", p.You)
}

func TestBothDisconnectsDeleteRoom(t *testing.T) {
	h := NewHub(nil, nil)
	_, c1, c2 := pairUp(t, h)

	h.OnDisconnect(c1)
	h.OnDisconnect(c2)
	require.Equal(t, 0, h.RoomCount())
}

func TestConcurrentSubmissionsResolveExactlyOnce(t *testing.T) {
	h := NewHub(nil, nil)
	code, c1, c2 := pairUp(t, h)

	frame, err := json.Marshal(map[string]any{
		"type":    EvtChoice,
		"payload": ChoicePayload{RoomCode: code, Symbol: "rock"},
	})
	require.NoError(t, err)

	const ties = 20
	for i := 0; i < ties; i++ {
		var wg sync.WaitGroup
		wg.Add(2)
		for _, c := range []*fakeConn{c1, c2} {
			go func(c *fakeConn) {
				defer wg.Done()
				h.Dispatch(c, frame)
			}(c)
		}
		wg.Wait()

		results := c1.byType(EvtRoundResult)
		require.Len(t, results, i+1, "round %d resolved more or less than once", i+1)
		require.Equal(t, i+1, results[i].Payload.(RoundResultPayload).Round)
	}

	require.Len(t, c2.byType(EvtRoundResult), ties)
}
