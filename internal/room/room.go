package room

import (
	"sync"
	"time"

	"gamehub/internal/logger"
)

// ActionStart is the host-only lifecycle action every game shares. It is
// handled by the room itself; all other kinds go straight to the rules.
const ActionStart = "start"

// Room is one isolated multiplayer session. All mutable state is guarded
// by mu; every inbound action, join, leave and disconnect serializes on it,
// so no two actions on the same room ever interleave. Different rooms share
// nothing and run fully concurrently.
type Room struct {
	Code      string
	Game      GameType
	CreatedAt time.Time

	mu           sync.Mutex
	participants []*Participant
	hostID       string
	phase        Phase
	rules        Rules
	turn         *TurnController
	finished     bool
	lastActive   time.Time

	recorder ResultRecorder
}

// PlayerInfo is the public slice of a participant used in snapshots and
// roster events.
type PlayerInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	IsHost bool   `json:"is_host"`
}

// Snapshot is what create/join hand back to the transport.
type Snapshot struct {
	Code    string         `json:"room_code"`
	Game    GameType       `json:"game"`
	Phase   Phase          `json:"phase"`
	Players []PlayerInfo   `json:"players"`
	State   map[string]any `json:"state,omitempty"`
}

func newRoom(code string, rules Rules, recorder ResultRecorder, host *Participant) *Room {
	r := &Room{
		Code:      code,
		Game:      rules.Config().Type,
		CreatedAt: time.Now(),
		phase:     rules.Config().WaitingPhase,
		rules:     rules,
		turn:      newTurnController(),
		hostID:    host.ID,
		recorder:  recorder,
	}
	host.Host = true
	host.Live = true
	r.participants = []*Participant{host}
	r.lastActive = r.CreatedAt
	return r
}

// Phase returns the current phase.
func (r *Room) Phase() Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

// Players returns the public roster in seat order.
func (r *Room) Players() []PlayerInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.roster()
}

func (r *Room) roster() []PlayerInfo {
	out := make([]PlayerInfo, 0, len(r.participants))
	for _, p := range r.participants {
		out = append(out, PlayerInfo{ID: p.ID, Name: p.Name, IsHost: p.Host})
	}
	return out
}

func (r *Room) seats() []Seat {
	out := make([]Seat, 0, len(r.participants))
	for _, p := range r.participants {
		out = append(out, p.seat())
	}
	return out
}

func (r *Room) find(pid string) (*Participant, int) {
	for i, p := range r.participants {
		if p.ID == pid {
			return p, i
		}
	}
	return nil, -1
}

func (r *Room) snapshotFor(p *Participant) Snapshot {
	return Snapshot{
		Code:    r.Code,
		Game:    r.Game,
		Phase:   r.phase,
		Players: r.roster(),
		State:   r.rules.View(p.seat()),
	}
}

// join adds a participant. Capacity and phase gates are game-specific.
func (r *Room) join(p *Participant) (Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cfg := r.rules.Config()
	if r.phase != cfg.WaitingPhase {
		return Snapshot{}, ErrGameInProgress
	}
	if cfg.MaxPlayers > 0 && len(r.participants) >= cfg.MaxPlayers {
		return Snapshot{}, ErrRoomFull
	}
	if existing, _ := r.find(p.ID); existing != nil {
		return Snapshot{}, ErrAlreadyInRoom
	}

	p.Live = true
	// Joining a momentarily empty room (last leave raced this join) makes
	// the joiner its host.
	if len(r.participants) == 0 {
		p.Host = true
		r.hostID = p.ID
	}
	r.participants = append(r.participants, p)
	r.lastActive = time.Now()

	r.emit(Event{
		Type: "player_joined",
		Data: map[string]any{"player_name": p.Name, "players": r.roster()},
	}, p.ID)

	return r.snapshotFor(p), nil
}

// leave removes a participant, migrates the host role and reports whether
// the room emptied out. Disconnects route through here as well, so every
// game shares one host-migration path.
func (r *Room) leave(pid string) (empty bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, idx := r.find(pid)
	if p == nil {
		return len(r.participants) == 0
	}
	hadTurn := r.turn.CurrentID(r.participants) == pid
	p.Live = false
	r.participants = append(r.participants[:idx], r.participants[idx+1:]...)
	r.turn.HandleRemoval(idx, len(r.participants))
	r.lastActive = time.Now()

	if len(r.participants) == 0 {
		return true
	}

	if pid == r.hostID {
		next := r.participants[0]
		next.Host = true
		r.hostID = next.ID
		r.emit(Event{
			Type: "host_changed",
			Data: map[string]any{"host_id": next.ID, "host_name": next.Name},
		}, "")
	}

	r.emit(Event{
		Type: "player_left",
		Data: map[string]any{"player_name": p.Name, "players": r.roster()},
	}, "")

	if r.phase != r.rules.Config().WaitingPhase && !r.finished {
		if out := r.rules.RemoveSeat(pid); out != nil {
			r.applyOutcome("", out)
		} else if r.turn.RoundComplete(r.participants, r.rules) {
			// The leaver was the last one the round waited on.
			next, err := r.rules.AdvanceRound()
			if err != nil {
				logger.Error("advance round failed",
					"room", r.Code, "game", r.Game, "error", err)
			} else {
				r.applyOutcome("", next)
			}
		}
		if hadTurn && !r.finished {
			if id := r.turn.CurrentID(r.participants); id != "" {
				r.emit(Event{Type: "next_turn", Data: map[string]any{"current_turn": id}}, "")
			}
		}
	}
	return false
}

// submit runs one action through the validation pipeline: turn check,
// rules application, turn advancement, phase transition, broadcast.
func (r *Room) submit(pid string, act Action) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, _ := r.find(pid)
	if p == nil {
		return ErrParticipantNotFound
	}
	if r.finished {
		return ErrActionNotInThisPhase
	}
	r.lastActive = time.Now()

	if act.Kind == ActionStart {
		return r.startGame(p, act)
	}

	if !r.rules.TurnExempt(act.Kind) {
		if err := r.turn.Validate(r.participants, r.rules, pid); err != nil {
			return err
		}
	}

	out, err := r.rules.Apply(p.seat(), act)
	if err != nil {
		return err
	}
	r.applyOutcome(pid, out)
	return nil
}

func (r *Room) startGame(p *Participant, act Action) error {
	if p.ID != r.hostID {
		return ErrNotHost
	}
	cfg := r.rules.Config()
	if r.phase != cfg.WaitingPhase {
		return ErrGameInProgress
	}
	if len(r.participants) < cfg.MinPlayers {
		return ErrInsufficientPlayers
	}

	out, err := r.rules.Start(r.seats(), act.Payload)
	if err != nil {
		return err
	}
	r.applyOutcome(p.ID, out)
	return nil
}

// applyOutcome folds a rules outcome into the room: events out, then
// terminal result, phase transition or turn advancement, in that order.
// AdvanceRound outcomes recurse through here so chained transitions
// (betting round complete -> showdown -> hand complete) stay in one pass.
func (r *Room) applyOutcome(actorID string, out *Outcome) {
	if out == nil {
		return
	}
	for _, ev := range out.Events {
		r.emit(ev, "")
	}

	if out.Terminal != nil {
		r.finish(out.Terminal)
		return
	}

	if out.Phase != "" && out.Phase != r.phase {
		r.transition(out.Phase, out.NextTurnID)
		return
	}

	if out.Advance {
		nextID, complete := r.turn.Advance(r.participants, r.rules, actorID)
		if complete {
			next, err := r.rules.AdvanceRound()
			if err != nil {
				logger.Error("advance round failed",
					"room", r.Code, "game", r.Game, "error", err)
				return
			}
			r.applyOutcome("", next)
			return
		}
		if nextID != "" {
			r.emit(Event{Type: "next_turn", Data: map[string]any{"current_turn": nextID}}, "")
		}
	}
}

func (r *Room) transition(to Phase, nextTurnID string) {
	if !canTransition(r.Game, r.phase, to) {
		// Programmer error in a rules implementation. Drop the transition
		// rather than corrupt the room.
		logger.Error("illegal phase transition",
			"room", r.Code, "game", r.Game, "from", r.phase, "to", to)
		return
	}
	r.phase = to
	if to == PhaseFinished {
		r.finished = true
		return
	}
	r.turn.Reset(r.rules.Discipline(to), 0)
	if nextTurnID != "" {
		r.turn.SetCurrent(r.participants, nextTurnID)
	}
}

func (r *Room) finish(res *Result) {
	r.phase = PhaseFinished
	r.finished = true
	if r.recorder != nil {
		r.recorder.RecordMatch(r.Code, r.Game, r.seats(), res)
	}
}

// emit fans an event out. A targeted event goes only to its owner; a
// broadcast goes to everyone except skipID (used so a joiner does not see
// their own player_joined).
func (r *Room) emit(ev Event, skipID string) {
	if ev.To != "" {
		if p, _ := r.find(ev.To); p != nil {
			p.deliver(ev)
		}
		return
	}
	for _, p := range r.participants {
		if p.ID == skipID {
			continue
		}
		p.deliver(ev)
	}
}

func (r *Room) idleSince() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastActive
}
