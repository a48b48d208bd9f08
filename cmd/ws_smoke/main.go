package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gorilla/websocket"

	"gamehub/internal/service"
)

// Smoke client: two guests play a full tic-tac-toe game against a locally
// running server. Needs JWT_SECRET to match the server's.
func main() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET not set")
	}
	service.InitJWT(secret)

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	connA := dial(port, "SmokeA")
	defer connA.Close()
	connB := dial(port, "SmokeB")
	defer connB.Close()

	send(connA, map[string]any{"type": "create_room", "game": "tictactoe"})
	created := waitFor(connA, "room_created")
	code := created["room_code"].(string)
	log.Printf("room created: %s", code)

	send(connB, map[string]any{"type": "join_room", "room_code": code})
	waitFor(connB, "room_joined")
	waitFor(connA, "player_joined")

	send(connA, map[string]any{"type": "action", "kind": "start"})
	waitFor(connA, "game_started")
	waitFor(connB, "game_started")

	// A takes the top row: 0, 1, 2. B plays along the middle row.
	moves := []struct {
		conn *websocket.Conn
		pos  int
	}{
		{connA, 0}, {connB, 3}, {connA, 1}, {connB, 4}, {connA, 2},
	}
	for _, m := range moves {
		send(m.conn, map[string]any{
			"type": "action", "kind": "move",
			"payload": map[string]any{"position": m.pos},
		})
		waitFor(connA, "move_made")
		waitFor(connB, "move_made")
	}

	over := waitFor(connA, "game_over")
	log.Printf("game over: winner=%v", over["winner"])
	log.Println("smoke test finished")
}

func dial(port, name string) *websocket.Conn {
	identity, err := service.NewGuest(name)
	if err != nil {
		log.Fatalf("guest %s: %v", name, err)
	}
	token, err := service.GenerateJWT(identity)
	if err != nil {
		log.Fatalf("token %s: %v", name, err)
	}

	// 127.0.0.1 to prefer IPv4 over [::1]
	url := fmt.Sprintf("ws://127.0.0.1:%s/ws?token=%s", port, token)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		log.Fatalf("dial %s: %v", name, err)
	}
	return conn
}

func send(conn *websocket.Conn, msg map[string]any) {
	b, _ := json.Marshal(msg)
	if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
		log.Fatalf("write: %v", err)
	}
}

// waitFor drains messages until one of the wanted type arrives and returns
// its data object.
func waitFor(conn *websocket.Conn, typ string) map[string]any {
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		conn.SetReadDeadline(time.Now().Add(500 * time.Millisecond))
		_, raw, err := conn.ReadMessage()
		if err != nil {
			continue
		}
		var msg struct {
			Type string         `json:"type"`
			Data map[string]any `json:"data"`
		}
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}
		if msg.Type == "error" {
			log.Fatalf("server error while waiting for %s: %v", typ, msg.Data)
		}
		if msg.Type == typ {
			return msg.Data
		}
	}
	log.Fatalf("timed out waiting for %s", typ)
	return nil
}
