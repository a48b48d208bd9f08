package ws

import "encoding/json"

// clientMessage is the single inbound envelope. Type selects the room
// operation; Kind and Payload only matter for type "action".
type clientMessage struct {
	Type     string          `json:"type"`
	Game     string          `json:"game,omitempty"`
	RoomCode string          `json:"room_code,omitempty"`
	Kind     string          `json:"kind,omitempty"`
	Payload  json.RawMessage `json:"payload,omitempty"`
}

type serverMessage struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

func marshalServer(typ string, data any) []byte {
	b, err := json.Marshal(serverMessage{Type: typ, Data: data})
	if err != nil {
		return []byte(`{"type":"error","data":{"message":"encode failed"}}`)
	}
	return b
}
