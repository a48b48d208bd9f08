package room

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"gamehub/internal/logger"
)

// Registry owns every live room and the code namespace they share. All
// cross-room state sits behind one RWMutex; per-room state stays behind the
// room's own lock, so registry operations never hold both for long.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Room

	codes    *CodeGenerator
	factory  Factory
	recorder ResultRecorder
}

// RoomSummary is the lobby-listing view of a room.
type RoomSummary struct {
	Code      string    `json:"room_code"`
	Game      GameType  `json:"game"`
	Phase     Phase     `json:"phase"`
	Players   int       `json:"players"`
	CreatedAt time.Time `json:"created_at"`
}

func NewRegistry(factory Factory, recorder ResultRecorder) *Registry {
	return &Registry{
		rooms:    make(map[string]*Room),
		codes:    NewCodeGenerator(rand.NewSource(time.Now().UnixNano())),
		factory:  factory,
		recorder: recorder,
	}
}

// Create builds a room of the given type with host as its first occupant
// and returns the host's snapshot.
func (reg *Registry) Create(gt GameType, host *Participant) (Snapshot, error) {
	rules, err := reg.factory(gt)
	if err != nil {
		return Snapshot{}, err
	}
	cfg := rules.Config()

	reg.mu.Lock()
	defer reg.mu.Unlock()

	code, err := reg.codes.Generate(cfg.CodeAlphabet, cfg.CodeLength, func(c string) bool {
		_, exists := reg.rooms[c]
		return exists
	})
	if err != nil {
		return Snapshot{}, err
	}

	r := newRoom(code, rules, reg.recorder, host)
	reg.rooms[code] = r

	logger.Info("room created", "room", code, "game", gt, "host", host.Name)
	return r.snapshotFor(host), nil
}

// Get looks a room up by code. Codes are case-insensitive on the way in.
func (reg *Registry) Get(code string) (*Room, error) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	r, ok := reg.rooms[strings.ToUpper(code)]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return r, nil
}

// Join adds p to the room identified by code.
func (reg *Registry) Join(code string, p *Participant) (Snapshot, error) {
	r, err := reg.Get(code)
	if err != nil {
		return Snapshot{}, err
	}
	snap, err := r.join(p)
	if err != nil {
		return Snapshot{}, err
	}
	logger.Info("player joined", "room", r.Code, "player", p.Name)
	return snap, nil
}

// Leave removes pid from the room and deletes the room once it empties.
func (reg *Registry) Leave(code string, pid string) {
	r, err := reg.Get(code)
	if err != nil {
		return
	}
	if r.leave(pid) {
		reg.removeIfEmpty(r.Code)
	}
}

// Submit routes one action into a room.
func (reg *Registry) Submit(code string, pid string, act Action) error {
	r, err := reg.Get(code)
	if err != nil {
		return err
	}
	return r.submit(pid, act)
}

// List returns summaries of all live rooms, for the lobby screen.
func (reg *Registry) List() []RoomSummary {
	reg.mu.RLock()
	rooms := make([]*Room, 0, len(reg.rooms))
	for _, r := range reg.rooms {
		rooms = append(rooms, r)
	}
	reg.mu.RUnlock()

	out := make([]RoomSummary, 0, len(rooms))
	for _, r := range rooms {
		r.mu.Lock()
		out = append(out, RoomSummary{
			Code:      r.Code,
			Game:      r.Game,
			Phase:     r.phase,
			Players:   len(r.participants),
			CreatedAt: r.CreatedAt,
		})
		r.mu.Unlock()
	}
	return out
}

// Count reports the number of live rooms.
func (reg *Registry) Count() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.rooms)
}

func (reg *Registry) remove(code string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if _, ok := reg.rooms[code]; ok {
		delete(reg.rooms, code)
		logger.Info("room removed", "room", code)
	}
}

// removeIfEmpty deletes a room only if it is still empty once the registry
// write lock is held. The last leave decides emptiness under the room lock
// alone, and a join can slip in between that decision and the delete.
func (reg *Registry) removeIfEmpty(code string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	r, ok := reg.rooms[code]
	if !ok {
		return
	}
	r.mu.Lock()
	empty := len(r.participants) == 0
	r.mu.Unlock()
	if empty {
		delete(reg.rooms, code)
		logger.Info("room removed", "room", code)
	}
}

// StartCleanup evicts rooms idle past ttl. Empty rooms are already removed
// on the last leave; this catches finished or abandoned rooms whose sockets
// never said goodbye.
func (reg *Registry) StartCleanup(ctx context.Context, ttl, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				reg.sweep(ttl)
			}
		}
	}()
}

func (reg *Registry) sweep(ttl time.Duration) {
	cutoff := time.Now().Add(-ttl)
	var stale []string

	reg.mu.RLock()
	for code, r := range reg.rooms {
		if r.idleSince().Before(cutoff) {
			stale = append(stale, code)
		}
	}
	reg.mu.RUnlock()

	for _, code := range stale {
		reg.remove(code)
	}
}

// NewParticipant binds an identity to its delivery sink.
func NewParticipant(id, name string, sink Sink) *Participant {
	return &Participant{ID: id, Name: name, Live: true, sink: sink}
}
