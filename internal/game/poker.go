package game

import (
	"encoding/json"

	"gamehub/internal/room"
)

const (
	pokerBuyIn  = 1000
	smallBlind  = 10
	bigBlind    = 20
	maxBoard    = 5
	holeCardNum = 2
)

var (
	cardRanks = []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}
	cardSuits = []string{"♠", "♥", "♦", "♣"}
)

type pokerPlayer struct {
	seat   room.Seat
	chips  int
	bet    int // committed on the current street
	hole   []string
	folded bool
	allIn  bool
	out    bool // busted
}

// poker is no-limit hold'em with blinds and street-by-street betting. The
// showdown awards the pot to the first player still in the hand; proper
// hand ranking is a known gap carried over from the table's first version.
type poker struct {
	players    []*pokerPlayer
	deck       []string
	community  []string
	pot        int
	currentBet int
	dealer     int
	phase      room.Phase
	handNum    int
}

func newPoker() *poker {
	return &poker{phase: room.PhaseWaiting}
}

func (g *poker) Config() room.Config {
	return room.Config{
		Type:         room.TypePoker,
		MinPlayers:   2,
		MaxPlayers:   6,
		WaitingPhase: room.PhaseWaiting,
	}
}

func (g *poker) Start(seats []room.Seat, _ json.RawMessage) (*room.Outcome, error) {
	g.players = make([]*pokerPlayer, len(seats))
	for i, s := range seats {
		g.players[i] = &pokerPlayer{seat: s, chips: pokerBuyIn}
	}
	g.dealer = 0
	return g.startHand(), nil
}

func (g *poker) startHand() *room.Outcome {
	g.handNum++
	g.deck = freshDeck()
	g.community = nil
	g.pot = 0
	g.currentBet = 0

	for _, p := range g.players {
		p.bet = 0
		p.folded = p.out
		p.allIn = false
		p.hole = nil
		if !p.out {
			p.hole = []string{g.draw(), g.draw()}
		}
	}

	events := []room.Event{event("hand_started", map[string]any{
		"hand":        g.handNum,
		"dealer_name": g.players[g.dealer].seat.Name,
		"chips":       g.chipsView(),
	})}

	sb := g.nextActive(g.dealer)
	bb := g.nextActive(sb)
	events = append(events,
		g.postBlind(sb, smallBlind, "small_blind"),
		g.postBlind(bb, bigBlind, "big_blind"),
	)
	g.currentBet = bigBlind

	for _, p := range g.players {
		if !p.out {
			events = append(events, private(p.seat.ID, "hole_cards", map[string]any{
				"cards": p.hole,
			}))
		}
	}

	first := g.players[g.nextActive(bb)]
	g.phase = room.PhasePreflop

	return &room.Outcome{
		Events:     events,
		Phase:      room.PhasePreflop,
		NextTurnID: first.seat.ID,
	}
}

func (g *poker) postBlind(idx, amount int, kind string) room.Event {
	p := g.players[idx]
	if amount > p.chips {
		amount = p.chips
	}
	p.chips -= amount
	p.bet += amount
	g.pot += amount
	if p.chips == 0 {
		p.allIn = true
	}
	return event(kind, map[string]any{
		"player_name": p.seat.Name,
		"amount":      amount,
		"pot":         g.pot,
	})
}

func (g *poker) Apply(actor room.Seat, act room.Action) (*room.Outcome, error) {
	switch act.Kind {
	case "call", "check", "raise", "fold", "all_in":
		return g.bettingAction(actor, act)
	case "deal":
		return g.deal(actor)
	default:
		return nil, room.ErrUnknownAction
	}
}

func (g *poker) bettingAction(actor room.Seat, act room.Action) (*room.Outcome, error) {
	if !g.bettingPhase() {
		return nil, room.ErrActionNotInThisPhase
	}
	idx := g.playerIndex(actor.ID)
	if idx < 0 {
		return nil, room.ErrParticipantNotFound
	}
	p := g.players[idx]
	if p.folded || p.allIn || p.out {
		return nil, room.ErrNotYourTurn
	}

	data := map[string]any{"player_name": p.seat.Name, "action": act.Kind}

	switch act.Kind {
	case "check":
		if p.bet < g.currentBet {
			return nil, room.ErrInvalidTarget
		}

	case "call":
		need := g.currentBet - p.bet
		if need > p.chips {
			need = p.chips
		}
		g.commit(p, need)
		data["amount"] = need

	case "raise":
		var raise struct {
			Amount int `json:"amount"` // raise-to total for the street
		}
		if err := decode(act.Payload, &raise); err != nil {
			return nil, err
		}
		if raise.Amount <= g.currentBet {
			return nil, room.ErrInvalidTarget
		}
		need := raise.Amount - p.bet
		if need > p.chips {
			return nil, room.ErrInvalidTarget
		}
		g.commit(p, need)
		g.currentBet = raise.Amount
		data["amount"] = raise.Amount

	case "fold":
		p.folded = true

	case "all_in":
		amount := p.chips
		g.commit(p, amount)
		if p.bet > g.currentBet {
			g.currentBet = p.bet
		}
		data["amount"] = amount
	}

	data["pot"] = g.pot
	data["current_bet"] = g.currentBet
	acted := event("player_acted", data)

	if act.Kind == "fold" {
		if last := g.lastUnfolded(); last >= 0 {
			return g.finishHand(last, "everyone_folded", []room.Event{acted}), nil
		}
	}

	return &room.Outcome{Events: []room.Event{acted}, Advance: true}, nil
}

func (g *poker) commit(p *pokerPlayer, amount int) {
	p.chips -= amount
	p.bet += amount
	g.pot += amount
	if p.chips == 0 {
		p.allIn = true
	}
}

func (g *poker) deal(actor room.Seat) (*room.Outcome, error) {
	if !actor.Host {
		return nil, room.ErrNotHost
	}
	if g.phase != room.PhaseShowdown {
		return nil, room.ErrActionNotInThisPhase
	}
	g.dealer = g.nextInGame(g.dealer)
	return g.startHand(), nil
}

// AdvanceRound deals the next street once the betting round closes. When
// all but one player is all-in the remaining streets run out back to back.
func (g *poker) AdvanceRound() (*room.Outcome, error) {
	if !g.bettingPhase() {
		return nil, nil
	}

	var events []room.Event
	for {
		for _, p := range g.players {
			p.bet = 0
		}
		g.currentBet = 0

		switch g.phase {
		case room.PhasePreflop:
			g.phase = room.PhaseFlop
			g.community = append(g.community, g.draw(), g.draw(), g.draw())
		case room.PhaseFlop:
			g.phase = room.PhaseTurn
			g.community = append(g.community, g.draw())
		case room.PhaseTurn:
			g.phase = room.PhaseRiver
			g.community = append(g.community, g.draw())
		case room.PhaseRiver:
			return g.showdown(events), nil
		}

		events = append(events, event("street_dealt", map[string]any{
			"street":    string(g.phase),
			"community": g.communityView(),
			"pot":       g.pot,
		}))

		if g.countCanBet() >= 2 {
			break
		}
	}

	first := g.players[g.nextActive(g.dealer)]
	return &room.Outcome{
		Events:     events,
		Phase:      g.phase,
		NextTurnID: first.seat.ID,
	}, nil
}

// showdown pays the pot to the first player still in the hand.
func (g *poker) showdown(events []room.Event) *room.Outcome {
	winner := g.lastUnfolded()
	if winner < 0 {
		winner = g.firstUnfolded()
	}

	reveal := make(map[string]any)
	for _, p := range g.players {
		if !p.folded && !p.out {
			reveal[p.seat.Name] = p.hole
		}
	}
	events = append(events, event("showdown", map[string]any{
		"community": g.communityView(),
		"hands":     reveal,
	}))

	return g.finishHand(winner, "showdown", events)
}

func (g *poker) finishHand(winner int, reason string, events []room.Event) *room.Outcome {
	w := g.players[winner]
	w.chips += g.pot
	won := g.pot
	g.pot = 0
	g.phase = room.PhaseShowdown

	for _, p := range g.players {
		if p.chips == 0 && !p.out {
			p.out = true
			events = append(events, event("player_busted", map[string]any{
				"player_name": p.seat.Name,
			}))
		}
	}

	events = append(events, event("hand_result", map[string]any{
		"winner": w.seat.Name,
		"pot":    won,
		"reason": reason,
		"chips":  g.chipsView(),
	}))

	if g.countInGame() <= 1 {
		g.phase = room.PhaseFinished
		over := event("game_over", map[string]any{
			"winner": w.seat.Name,
			"chips":  g.chipsView(),
		})
		return winOutcome(append(events, over), w.seat,
			map[string]any{"hands": g.handNum, "chips": w.chips})
	}

	return &room.Outcome{Events: events, Phase: room.PhaseShowdown}
}

func (g *poker) bettingPhase() bool {
	switch g.phase {
	case room.PhasePreflop, room.PhaseFlop, room.PhaseTurn, room.PhaseRiver:
		return true
	}
	return false
}

// lastUnfolded returns the only unfolded player, or -1 when more than one
// remains.
func (g *poker) lastUnfolded() int {
	found := -1
	for i, p := range g.players {
		if !p.folded && !p.out {
			if found >= 0 {
				return -1
			}
			found = i
		}
	}
	return found
}

func (g *poker) firstUnfolded() int {
	for i, p := range g.players {
		if !p.folded && !p.out {
			return i
		}
	}
	return 0
}

// nextActive steps clockwise to the next player still in the hand.
func (g *poker) nextActive(from int) int {
	n := len(g.players)
	for i := 1; i <= n; i++ {
		idx := (from + i) % n
		p := g.players[idx]
		if !p.folded && !p.out && !p.allIn {
			return idx
		}
	}
	return from
}

// nextInGame steps to the next player with chips, for the dealer button.
func (g *poker) nextInGame(from int) int {
	n := len(g.players)
	for i := 1; i <= n; i++ {
		idx := (from + i) % n
		if !g.players[idx].out {
			return idx
		}
	}
	return from
}

func (g *poker) countCanBet() int {
	n := 0
	for _, p := range g.players {
		if !p.folded && !p.out && !p.allIn {
			n++
		}
	}
	return n
}

func (g *poker) countInGame() int {
	n := 0
	for _, p := range g.players {
		if !p.out {
			n++
		}
	}
	return n
}

func (g *poker) playerIndex(id string) int {
	for i, p := range g.players {
		if p.seat.ID == id {
			return i
		}
	}
	return -1
}

func (g *poker) draw() string {
	card := g.deck[len(g.deck)-1]
	g.deck = g.deck[:len(g.deck)-1]
	return card
}

func freshDeck() []string {
	deck := make([]string, 0, 52)
	for _, suit := range cardSuits {
		for _, rank := range cardRanks {
			deck = append(deck, rank+suit)
		}
	}
	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
	return deck
}

func (g *poker) chipsView() map[string]int {
	out := make(map[string]int, len(g.players))
	for _, p := range g.players {
		out[p.seat.Name] = p.chips
	}
	return out
}

func (g *poker) communityView() []string {
	out := make([]string, len(g.community))
	copy(out, g.community)
	return out
}

func (g *poker) Discipline(phase room.Phase) room.Discipline {
	switch phase {
	case room.PhasePreflop, room.PhaseFlop, room.PhaseTurn, room.PhaseRiver:
		return room.DisciplineOrderedSet
	}
	return room.DisciplineNone
}

func (g *poker) TurnExempt(kind string) bool { return kind == "deal" }

func (g *poker) Eligible(id string) bool {
	idx := g.playerIndex(id)
	if idx < 0 {
		return false
	}
	p := g.players[idx]
	return !p.folded && !p.allIn && !p.out
}

// Settled reports whether the player has matched the current bet. A raise
// bumps currentBet and unsettles everyone who already acted.
func (g *poker) Settled(id string) bool {
	idx := g.playerIndex(id)
	if idx < 0 {
		return true
	}
	return g.players[idx].bet >= g.currentBet
}

func (g *poker) View(viewer room.Seat) map[string]any {
	if g.phase == room.PhaseWaiting {
		return nil
	}
	view := map[string]any{
		"phase":       string(g.phase),
		"hand":        g.handNum,
		"pot":         g.pot,
		"current_bet": g.currentBet,
		"community":   g.communityView(),
		"chips":       g.chipsView(),
		"dealer_name": g.players[g.dealer].seat.Name,
	}
	if idx := g.playerIndex(viewer.ID); idx >= 0 && !g.players[idx].out {
		view["my_cards"] = g.players[idx].hole
		view["my_bet"] = g.players[idx].bet
	}
	return view
}

func (g *poker) RemoveSeat(id string) *room.Outcome {
	idx := g.playerIndex(id)
	if idx < 0 || g.phase == room.PhaseFinished {
		return nil
	}
	p := g.players[idx]
	p.folded = true
	p.out = true

	if g.bettingPhase() {
		if last := g.lastUnfolded(); last >= 0 {
			return g.finishHand(last, "everyone_folded", nil)
		}
	}
	if g.countInGame() == 1 {
		winner := g.players[g.firstUnfolded()]
		g.phase = room.PhaseFinished
		return winOutcome([]room.Event{event("game_over", map[string]any{
			"winner": winner.seat.Name,
			"reason": "opponents_left",
		})}, winner.seat, map[string]any{"reason": "opponents_left"})
	}
	return nil
}
