package room

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeRules is a minimal scripted game: rotation turns in the playing
// phase, a "move" action that consumes a turn, and a "win" action that
// ends the game for the actor.
type fakeRules struct {
	cfg        Config
	ineligible map[string]bool
	unsettled  map[string]bool
	started    bool
	removed    []string
}

func newFakeRules() *fakeRules {
	return &fakeRules{
		cfg: Config{
			Type:         TypeTicTacToe,
			MinPlayers:   2,
			MaxPlayers:   4,
			WaitingPhase: PhaseWaiting,
		},
		ineligible: make(map[string]bool),
		unsettled:  make(map[string]bool),
	}
}

func (f *fakeRules) Config() Config { return f.cfg }

func (f *fakeRules) Start(seats []Seat, _ json.RawMessage) (*Outcome, error) {
	f.started = true
	return &Outcome{
		Events:     []Event{{Type: "game_started"}},
		Phase:      PhasePlaying,
		NextTurnID: seats[0].ID,
	}, nil
}

func (f *fakeRules) Apply(actor Seat, act Action) (*Outcome, error) {
	switch act.Kind {
	case "move":
		return &Outcome{
			Events:  []Event{{Type: "moved", Data: map[string]any{"by": actor.Name}}},
			Advance: true,
		}, nil
	case "win":
		return &Outcome{
			Events:   []Event{{Type: "game_over"}},
			Terminal: &Result{WinnerID: actor.ID, WinnerName: actor.Name},
		}, nil
	case "whisper":
		return &Outcome{
			Events: []Event{{Type: "secret", To: actor.ID}},
		}, nil
	default:
		return nil, ErrUnknownAction
	}
}

func (f *fakeRules) Discipline(phase Phase) Discipline {
	if phase == PhasePlaying {
		return DisciplineRotation
	}
	return DisciplineNone
}

func (f *fakeRules) TurnExempt(kind string) bool { return kind == "whisper" }
func (f *fakeRules) Eligible(id string) bool     { return !f.ineligible[id] }
func (f *fakeRules) Settled(id string) bool      { return !f.unsettled[id] }

func (f *fakeRules) AdvanceRound() (*Outcome, error) { return nil, nil }

func (f *fakeRules) View(viewer Seat) map[string]any { return nil }

func (f *fakeRules) RemoveSeat(id string) *Outcome {
	f.removed = append(f.removed, id)
	return nil
}

// sinkRec records delivered events per participant.
type sinkRec struct {
	mu     sync.Mutex
	events []Event
}

func (s *sinkRec) Deliver(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *sinkRec) types() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.events))
	for i, ev := range s.events {
		out[i] = ev.Type
	}
	return out
}

func (s *sinkRec) has(typ string) bool {
	for _, t := range s.types() {
		if t == typ {
			return true
		}
	}
	return false
}

func (s *sinkRec) find(typ string) *Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.events {
		if s.events[i].Type == typ {
			return &s.events[i]
		}
	}
	return nil
}

type recorderRec struct {
	mu      sync.Mutex
	results []*Result
}

func (r *recorderRec) RecordMatch(code string, gt GameType, seats []Seat, res *Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, res)
}

func fakeFactory(gt GameType) (Rules, error) {
	if gt != TypeTicTacToe {
		return nil, ErrUnknownGameType
	}
	return newFakeRules(), nil
}

func setupRoom(t *testing.T) (*Registry, *recorderRec, Snapshot, *sinkRec, *sinkRec) {
	t.Helper()
	rec := &recorderRec{}
	reg := NewRegistry(fakeFactory, rec)

	sinkA := &sinkRec{}
	snap, err := reg.Create(TypeTicTacToe, NewParticipant("a", "Alice", sinkA))
	require.NoError(t, err)

	sinkB := &sinkRec{}
	_, err = reg.Join(snap.Code, NewParticipant("b", "Bob", sinkB))
	require.NoError(t, err)

	return reg, rec, snap, sinkA, sinkB
}

func TestCreateAssignsHostAndCode(t *testing.T) {
	reg := NewRegistry(fakeFactory, nil)

	snap, err := reg.Create(TypeTicTacToe, NewParticipant("a", "Alice", &sinkRec{}))
	require.NoError(t, err)
	require.Len(t, snap.Code, DefaultCodeLength)
	require.Equal(t, PhaseWaiting, snap.Phase)
	require.Len(t, snap.Players, 1)
	require.True(t, snap.Players[0].IsHost)
}

func TestCreateUnknownGameType(t *testing.T) {
	reg := NewRegistry(fakeFactory, nil)

	_, err := reg.Create(TypeMafia, NewParticipant("a", "Alice", &sinkRec{}))
	require.ErrorIs(t, err, ErrUnknownGameType)
}

func TestJoinNotifiesExistingPlayersOnly(t *testing.T) {
	_, _, _, sinkA, sinkB := setupRoom(t)

	require.True(t, sinkA.has("player_joined"))
	require.False(t, sinkB.has("player_joined"), "joiner must not see their own join")
}

func TestJoinRejections(t *testing.T) {
	reg, _, snap, _, _ := setupRoom(t)

	_, err := reg.Join("NOSUCH", NewParticipant("x", "X", &sinkRec{}))
	require.ErrorIs(t, err, ErrRoomNotFound)

	_, err = reg.Join(snap.Code, NewParticipant("a", "Alice again", &sinkRec{}))
	require.ErrorIs(t, err, ErrAlreadyInRoom)

	// Fill to capacity, then one more.
	_, err = reg.Join(snap.Code, NewParticipant("c", "Cara", &sinkRec{}))
	require.NoError(t, err)
	_, err = reg.Join(snap.Code, NewParticipant("d", "Dan", &sinkRec{}))
	require.NoError(t, err)
	_, err = reg.Join(snap.Code, NewParticipant("e", "Eve", &sinkRec{}))
	require.ErrorIs(t, err, ErrRoomFull)
}

func TestJoinCaseInsensitiveCode(t *testing.T) {
	reg, _, snap, _, _ := setupRoom(t)

	// Room already has 2 of 4 players.
	lower := make([]byte, len(snap.Code))
	for i := range snap.Code {
		c := snap.Code[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		lower[i] = c
	}
	_, err := reg.Join(string(lower), NewParticipant("c", "Cara", &sinkRec{}))
	require.NoError(t, err)
}

func TestStartGates(t *testing.T) {
	reg, _, snap, _, _ := setupRoom(t)

	err := reg.Submit(snap.Code, "b", Action{Kind: ActionStart})
	require.ErrorIs(t, err, ErrNotHost)

	require.NoError(t, reg.Submit(snap.Code, "a", Action{Kind: ActionStart}))

	err = reg.Submit(snap.Code, "a", Action{Kind: ActionStart})
	require.ErrorIs(t, err, ErrGameInProgress)

	_, err = reg.Join(snap.Code, NewParticipant("c", "Cara", &sinkRec{}))
	require.ErrorIs(t, err, ErrGameInProgress)
}

func TestStartNeedsMinPlayers(t *testing.T) {
	reg := NewRegistry(fakeFactory, nil)
	snap, err := reg.Create(TypeTicTacToe, NewParticipant("a", "Alice", &sinkRec{}))
	require.NoError(t, err)

	err = reg.Submit(snap.Code, "a", Action{Kind: ActionStart})
	require.ErrorIs(t, err, ErrInsufficientPlayers)
}

func TestTurnEnforcement(t *testing.T) {
	reg, _, snap, _, sinkB := setupRoom(t)
	require.NoError(t, reg.Submit(snap.Code, "a", Action{Kind: ActionStart}))

	err := reg.Submit(snap.Code, "b", Action{Kind: "move"})
	require.ErrorIs(t, err, ErrNotYourTurn)

	require.NoError(t, reg.Submit(snap.Code, "a", Action{Kind: "move"}))
	require.True(t, sinkB.has("next_turn"))

	// Now it is b's turn.
	require.NoError(t, reg.Submit(snap.Code, "b", Action{Kind: "move"}))
	err = reg.Submit(snap.Code, "b", Action{Kind: "move"})
	require.ErrorIs(t, err, ErrNotYourTurn)
}

func TestTurnExemptBypassesValidation(t *testing.T) {
	reg, _, snap, _, _ := setupRoom(t)
	require.NoError(t, reg.Submit(snap.Code, "a", Action{Kind: ActionStart}))

	// Not b's turn, but whisper is exempt.
	require.NoError(t, reg.Submit(snap.Code, "b", Action{Kind: "whisper"}))
}

func TestTargetedEventRedaction(t *testing.T) {
	reg, _, snap, sinkA, sinkB := setupRoom(t)
	require.NoError(t, reg.Submit(snap.Code, "a", Action{Kind: ActionStart}))

	require.NoError(t, reg.Submit(snap.Code, "a", Action{Kind: "whisper"}))
	require.True(t, sinkA.has("secret"))
	require.False(t, sinkB.has("secret"), "targeted event leaked to another participant")
}

func TestTerminalRecordsMatch(t *testing.T) {
	reg, rec, snap, _, _ := setupRoom(t)
	require.NoError(t, reg.Submit(snap.Code, "a", Action{Kind: ActionStart}))

	require.NoError(t, reg.Submit(snap.Code, "a", Action{Kind: "win"}))

	r, err := reg.Get(snap.Code)
	require.NoError(t, err)
	require.Equal(t, PhaseFinished, r.Phase())

	require.Len(t, rec.results, 1)
	require.Equal(t, "Alice", rec.results[0].WinnerName)

	err = reg.Submit(snap.Code, "b", Action{Kind: "move"})
	require.ErrorIs(t, err, ErrActionNotInThisPhase)
}

func TestHostMigrationOnLeave(t *testing.T) {
	reg, _, snap, _, sinkB := setupRoom(t)

	reg.Leave(snap.Code, "a")

	r, err := reg.Get(snap.Code)
	require.NoError(t, err)
	players := r.Players()
	require.Len(t, players, 1)
	require.True(t, players[0].IsHost)
	require.Equal(t, "b", players[0].ID)
	require.True(t, sinkB.has("host_changed"))
	require.True(t, sinkB.has("player_left"))
}

func TestEmptyRoomIsRemoved(t *testing.T) {
	reg, _, snap, _, _ := setupRoom(t)

	reg.Leave(snap.Code, "a")
	reg.Leave(snap.Code, "b")

	_, err := reg.Get(snap.Code)
	require.ErrorIs(t, err, ErrRoomNotFound)
	require.Zero(t, reg.Count())
}

func TestLeaveMidGameNotifiesRules(t *testing.T) {
	reg, _, snap, _, _ := setupRoom(t)
	require.NoError(t, reg.Submit(snap.Code, "a", Action{Kind: ActionStart}))

	r, err := reg.Get(snap.Code)
	require.NoError(t, err)
	rules := r.rules.(*fakeRules)

	reg.Leave(snap.Code, "b")
	require.Equal(t, []string{"b"}, rules.removed)
}

func TestLeaveOnYourTurnAnnouncesNextTurn(t *testing.T) {
	reg, _, snap, _, sinkB := setupRoom(t)
	sinkC := &sinkRec{}
	_, err := reg.Join(snap.Code, NewParticipant("c", "Cara", sinkC))
	require.NoError(t, err)
	require.NoError(t, reg.Submit(snap.Code, "a", Action{Kind: ActionStart}))

	// a holds the turn and leaves; the survivors must learn whose turn it
	// is now.
	reg.Leave(snap.Code, "a")

	ev := sinkB.find("next_turn")
	require.NotNil(t, ev)
	require.Equal(t, "b", ev.Data["current_turn"])

	require.NoError(t, reg.Submit(snap.Code, "b", Action{Kind: "move"}))
	err = reg.Submit(snap.Code, "b", Action{Kind: "move"})
	require.ErrorIs(t, err, ErrNotYourTurn)
}

func TestJoinDuringLastLeaveKeepsRoom(t *testing.T) {
	reg, _, snap, _, _ := setupRoom(t)
	reg.Leave(snap.Code, "b")

	r, err := reg.Get(snap.Code)
	require.NoError(t, err)

	// Replay the interleaving deterministically: the last leave decides
	// the room is empty under the room lock, a join lands before the
	// registry delete runs.
	require.True(t, r.leave("a"))
	snapC, err := reg.Join(snap.Code, NewParticipant("c", "Cara", &sinkRec{}))
	require.NoError(t, err)
	require.True(t, snapC.Players[0].IsHost, "joiner of an emptied room becomes host")

	reg.removeIfEmpty(snap.Code)

	_, err = reg.Get(snap.Code)
	require.NoError(t, err, "occupied room must survive the delete")
	require.Equal(t, 1, reg.Count())
}

func TestListSummaries(t *testing.T) {
	reg, _, snap, _, _ := setupRoom(t)

	list := reg.List()
	require.Len(t, list, 1)
	require.Equal(t, snap.Code, list[0].Code)
	require.Equal(t, 2, list[0].Players)
	require.Equal(t, PhaseWaiting, list[0].Phase)
}

func TestSubmitUnknownParticipant(t *testing.T) {
	reg, _, snap, _, _ := setupRoom(t)

	err := reg.Submit(snap.Code, "ghost", Action{Kind: "move"})
	require.ErrorIs(t, err, ErrParticipantNotFound)
}
