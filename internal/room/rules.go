package room

import "encoding/json"

// Rules is the pluggable per-game strategy. Implementations own the shared
// board/pot state and every per-player secret; the room only ever sees
// opaque events and views. Rules methods are always called with the room's
// lock held, so implementations need no locking of their own.
type Rules interface {
	Config() Config

	// Start moves the room out of its waiting phase: deals cards, assigns
	// roles, picks the first turn. The registry has already verified the
	// actor is host and the participant minimum is met. payload carries
	// game-specific start options (trivia question sets).
	Start(seats []Seat, payload json.RawMessage) (*Outcome, error)

	// Apply validates and executes one action. Turn legality has already
	// been checked by the controller unless the kind is TurnExempt.
	Apply(actor Seat, act Action) (*Outcome, error)

	// Discipline reports the turn discipline active in the given phase.
	Discipline(phase Phase) Discipline

	// TurnExempt marks lifecycle kinds (start, deal, spin, time_up …) that
	// bypass turn validation; the rules gate those themselves.
	TurnExempt(kind string) bool

	// Eligible reports whether the participant can still be required to
	// act (not folded, not eliminated, not dead).
	Eligible(id string) bool

	// Settled reports whether the participant has nothing left to do in
	// the current round even though they already acted once (poker: bet
	// matches the current bet and nobody raised since). Free-set games
	// return true.
	Settled(id string) bool

	// AdvanceRound fires when the controller reports the round complete:
	// deal the next street, open voting, resolve the night.
	AdvanceRound() (*Outcome, error)

	// View renders the state visible to one participant: shared state plus
	// only that participant's private fields.
	View(viewer Seat) map[string]any

	// RemoveSeat reacts to a participant leaving mid-game (fold them, kill
	// them off, drop their scores). May produce a terminal outcome when
	// the game cannot continue.
	RemoveSeat(id string) *Outcome
}

// Factory builds the rules instance a new room is bound to for life.
type Factory func(gt GameType) (Rules, error)

// ResultRecorder is notified once per finished game. Implementations must
// not block; the registry calls it with the room lock held.
type ResultRecorder interface {
	RecordMatch(code string, gt GameType, seats []Seat, res *Result)
}
