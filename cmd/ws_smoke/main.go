// ws_smoke drives two connections through a full match against a
// locally running server: create a private room, join it by code, play
// until game_over. Useful as a manual end-to-end check.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gorilla/websocket"
)

type frame struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func send(conn *websocket.Conn, evtType string, payload any) {
	msg := map[string]any{"type": evtType}
	if payload != nil {
		msg["payload"] = payload
	}
	if err := conn.WriteJSON(msg); err != nil {
		log.Fatalf("write %s: %v", evtType, err)
	}
}

func reader(name string, conn *websocket.Conn) chan frame {
	out := make(chan frame, 16)
	go func() {
		defer close(out)
		for {
			var f frame
			if err := conn.ReadJSON(&f); err != nil {
				return
			}
			log.Printf("%s <- %s %s", name, f.Type, string(f.Payload))
			out <- f
		}
	}()
	return out
}

func waitFor(name string, ch chan frame, evtType string) frame {
	deadline := time.After(5 * time.Second)
	for {
		select {
		case f, ok := <-ch:
			if !ok {
				log.Fatalf("%s: connection closed waiting for %s", name, evtType)
			}
			if f.Type == evtType {
				return f
			}
		case <-deadline:
			log.Fatalf("%s: timeout waiting for %s", name, evtType)
		}
	}
}

func main() {
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	dialer := websocket.DefaultDialer
	wsURL := fmt.Sprintf("ws://127.0.0.1:%s/ws", port)

	connA, _, err := dialer.Dial(wsURL, nil)
	if err != nil {
		log.Fatalf("dial A: %v", err)
	}
	defer connA.Close()

	connB, _, err := dialer.Dial(wsURL, nil)
	if err != nil {
		log.Fatalf("dial B: %v", err)
	}
	defer connB.Close()

	chA := reader("A", connA)
	chB := reader("B", connB)

	send(connA, "create_room", nil)
	created := waitFor("A", chA, "room_created")

	var room struct {
		RoomCode string `json:"room_code"`
	}
	if err := json.Unmarshal(created.Payload, &room); err != nil {
		log.Fatalf("decode room_created: %v", err)
	}
	log.Printf("room code: %s", room.RoomCode)

	send(connB, "join_room", map[string]string{"room_code": room.RoomCode})
	waitFor("A", chA, "round_started")
	waitFor("B", chB, "round_started")

	// A plays rock every round, B plays scissors: A sweeps 3:0
	for round := 1; round <= 3; round++ {
		send(connA, "choice", map[string]string{"room_code": room.RoomCode, "symbol": "rock"})
		send(connB, "choice", map[string]string{"room_code": room.RoomCode, "symbol": "scissors"})
		waitFor("A", chA, "round_result")
		waitFor("B", chB, "round_result")
	}

	waitFor("A", chA, "game_over")
	waitFor("B", chB, "game_over")
	log.Println("smoke test passed")
}
