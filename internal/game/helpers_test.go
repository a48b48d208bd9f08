package game

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"gamehub/internal/room"
)

// seatsFor builds n seats p1..pn with p1 as host.
func seatsFor(n int) []room.Seat {
	out := make([]room.Seat, n)
	for i := range out {
		out[i] = room.Seat{
			ID:   fmt.Sprintf("p%d", i+1),
			Name: fmt.Sprintf("Player%d", i+1),
			Host: i == 0,
		}
	}
	return out
}

func payload(t *testing.T, v any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func action(t *testing.T, kind string, v any) room.Action {
	t.Helper()
	if v == nil {
		return room.Action{Kind: kind}
	}
	return room.Action{Kind: kind, Payload: payload(t, v)}
}

// seedRNG makes the package dice deterministic for one test.
func seedRNG(t *testing.T, seed int64) {
	t.Helper()
	old := rng
	rng = newDiceSource(seed)
	t.Cleanup(func() { rng = old })
}

func eventTypes(out *room.Outcome) []string {
	if out == nil {
		return nil
	}
	types := make([]string, len(out.Events))
	for i, ev := range out.Events {
		types[i] = ev.Type
	}
	return types
}

func findEvent(out *room.Outcome, typ string) *room.Event {
	if out == nil {
		return nil
	}
	for i := range out.Events {
		if out.Events[i].Type == typ {
			return &out.Events[i]
		}
	}
	return nil
}

// tableSink records everything delivered to one participant.
type tableSink struct {
	mu     sync.Mutex
	events []room.Event
}

func (s *tableSink) Deliver(ev room.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *tableSink) has(typ string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ev := range s.events {
		if ev.Type == typ {
			return true
		}
	}
	return false
}
