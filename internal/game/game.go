package game

import (
	"encoding/json"
	"math/rand"
	"sync"
	"time"

	"gamehub/internal/room"
)

// diceSource serializes access to one rand.Rand. Rules instances for
// different rooms run concurrently and rand.Rand is not safe for
// concurrent use.
type diceSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

func newDiceSource(seed int64) *diceSource {
	return &diceSource{r: rand.New(rand.NewSource(seed))}
}

func (d *diceSource) Intn(n int) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.r.Intn(n)
}

func (d *diceSource) Shuffle(n int, swap func(i, j int)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.r.Shuffle(n, swap)
}

// rng is the package-wide dice source. Tests swap it for a seeded one.
var rng = newDiceSource(time.Now().UnixNano())

// decode binds an action payload to a typed struct.
func decode(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return room.ErrMalformedPayload
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return room.ErrMalformedPayload
	}
	return nil
}

func seatIndex(seats []room.Seat, id string) int {
	for i, s := range seats {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func seatName(seats []room.Seat, id string) string {
	if i := seatIndex(seats, id); i >= 0 {
		return seats[i].Name
	}
	return ""
}

func event(typ string, data map[string]any) room.Event {
	return room.Event{Type: typ, Data: data}
}

func private(to, typ string, data map[string]any) room.Event {
	return room.Event{Type: typ, Data: data, To: to}
}

func winOutcome(events []room.Event, winner room.Seat, detail map[string]any) *room.Outcome {
	return &room.Outcome{
		Events: events,
		Terminal: &room.Result{
			WinnerID:   winner.ID,
			WinnerName: winner.Name,
			Detail:     detail,
		},
	}
}

func drawOutcome(events []room.Event, detail map[string]any) *room.Outcome {
	return &room.Outcome{
		Events:   events,
		Terminal: &room.Result{Draw: true, Detail: detail},
	}
}
