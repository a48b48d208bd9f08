package room

import "encoding/json"

// GameType identifies which rule set a room runs.
type GameType string

const (
	TypeTicTacToe    GameType = "tictactoe"
	TypeConnect4     GameType = "connect4"
	TypePoker        GameType = "poker"
	TypeSnakeLadder  GameType = "snake_ladder"
	TypeRoulette     GameType = "roulette"
	TypeTrivia       GameType = "trivia"
	TypeCanvasBattle GameType = "canvas_battle"
	TypeDigitGuess   GameType = "digit_guess"
	TypeMafia        GameType = "mafia"
)

// Phase is a named stage in a room's lifecycle. The generic phases are
// shared by every game; the rest are game-specific sub-phases.
type Phase string

const (
	PhaseWaiting  Phase = "waiting"
	PhasePlaying  Phase = "playing"
	PhaseFinished Phase = "finished"

	// Digit Guess
	PhaseSettingNumbers Phase = "setting_numbers"

	// Poker
	PhasePreflop  Phase = "preflop"
	PhaseFlop     Phase = "flop"
	PhaseTurn     Phase = "turn"
	PhaseRiver    Phase = "river"
	PhaseShowdown Phase = "showdown"

	// Roulette
	PhaseBetting  Phase = "betting"
	PhaseSpinning Phase = "spinning"

	// Canvas Battle
	PhaseDrawing Phase = "drawing"
	PhaseVoting  Phase = "voting"

	// Mafia
	PhaseLobby Phase = "lobby"
	PhaseNight Phase = "night"
	PhaseDay   Phase = "day"
)

// Discipline is the rule governing whose action is currently valid.
type Discipline int

const (
	// DisciplineNone accepts actions from any participant (lobby phases,
	// roulette betting).
	DisciplineNone Discipline = iota
	// DisciplineRotation enforces a single rotating turn pointer.
	DisciplineRotation
	// DisciplineOrderedSet enforces a turn pointer but completes the round
	// only once every eligible participant is settled (poker betting).
	DisciplineOrderedSet
	// DisciplineFreeSet lets required participants act once each in any
	// order (secret setting, canvas submissions, mafia night).
	DisciplineFreeSet
)

// Config carries the per-game knobs the registry needs before any rules
// state exists.
type Config struct {
	Type         GameType
	MinPlayers   int
	MaxPlayers   int // 0 = unbounded
	CodeLength   int
	CodeAlphabet string
	// WaitingPhase is the phase a freshly created room starts in.
	WaitingPhase Phase
}

// Seat is the rules-facing snapshot of a participant.
type Seat struct {
	ID   string
	Name string
	Host bool
}

// Action is one client request against a room. Payload stays raw until the
// game rules bind it to a typed payload struct.
type Action struct {
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Event is one outbound message. To narrows delivery to a single
// participant; an empty To broadcasts to the whole room.
type Event struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data,omitempty"`
	To   string         `json:"-"`
}

// Result is a terminal game outcome.
type Result struct {
	WinnerID   string
	WinnerName string
	Draw       bool
	Detail     map[string]any
}

// Outcome is what applying an action produced: events to broadcast, an
// optional phase transition, an optional terminal result, whether the
// actor's turn was consumed, and who acts next after a phase change.
type Outcome struct {
	Events   []Event
	Phase    Phase // "" = no transition
	Advance  bool
	Terminal *Result
	// NextTurnID resets the turn pointer after a phase change ("" leaves
	// the controller to advance on its own).
	NextTurnID string
}

// Sink receives events for one participant. The transport owns delivery.
type Sink interface {
	Deliver(ev Event)
}
