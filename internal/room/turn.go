package room

// TurnController enforces whose action is valid next. It holds only the
// pointer and the acted-this-round set; everything else (eligibility,
// settledness) is recomputed from the rules on every check, so the
// round-complete predicate can always be re-verified from scratch.
type TurnController struct {
	discipline Discipline
	current    int
	acted      map[string]bool
}

func newTurnController() *TurnController {
	return &TurnController{acted: make(map[string]bool)}
}

// Reset arms the controller for a new phase.
func (t *TurnController) Reset(d Discipline, start int) {
	t.discipline = d
	t.current = start
	t.acted = make(map[string]bool)
}

// CurrentID returns the participant whose turn it is, or "" when the
// active discipline has no pointer.
func (t *TurnController) CurrentID(parts []*Participant) string {
	if t.discipline != DisciplineRotation && t.discipline != DisciplineOrderedSet {
		return ""
	}
	if t.current < 0 || t.current >= len(parts) {
		return ""
	}
	return parts[t.current].ID
}

// SetCurrent moves the pointer onto the given participant. Used when the
// rules dictate who opens a new phase (poker: first active after dealer).
func (t *TurnController) SetCurrent(parts []*Participant, id string) {
	for i, p := range parts {
		if p.ID == id {
			t.current = i
			return
		}
	}
}

// Validate checks that pid may act right now.
func (t *TurnController) Validate(parts []*Participant, r Rules, pid string) error {
	switch t.discipline {
	case DisciplineRotation, DisciplineOrderedSet:
		if t.CurrentID(parts) != pid {
			return ErrNotYourTurn
		}
	case DisciplineFreeSet:
		if !r.Eligible(pid) || !t.needsToAct(r, pid) {
			return ErrNotYourTurn
		}
	}
	return nil
}

// needsToAct is the acted-set predicate: a participant needs to act if they
// have not acted this round, or if a later action (a raise) unsettled them.
func (t *TurnController) needsToAct(r Rules, id string) bool {
	return !t.acted[id] || !r.Settled(id)
}

// Advance consumes actorID's turn and reports who acts next. complete is
// true exactly when no eligible participant needs to act any more.
func (t *TurnController) Advance(parts []*Participant, r Rules, actorID string) (nextID string, complete bool) {
	switch t.discipline {
	case DisciplineRotation:
		for i := 1; i <= len(parts); i++ {
			idx := (t.current + i) % len(parts)
			if r.Eligible(parts[idx].ID) {
				t.current = idx
				return parts[idx].ID, false
			}
		}
		return "", true

	case DisciplineOrderedSet:
		t.acted[actorID] = true
		for i := 1; i <= len(parts); i++ {
			idx := (t.current + i) % len(parts)
			p := parts[idx]
			if !r.Eligible(p.ID) {
				continue
			}
			if t.needsToAct(r, p.ID) {
				t.current = idx
				return p.ID, false
			}
		}
		t.acted = make(map[string]bool)
		return "", true

	case DisciplineFreeSet:
		t.acted[actorID] = true
		for _, p := range parts {
			if r.Eligible(p.ID) && t.needsToAct(r, p.ID) {
				return "", false
			}
		}
		t.acted = make(map[string]bool)
		return "", true
	}
	return "", false
}

// RoundComplete re-verifies the acted-set predicate from scratch: true when
// no remaining eligible participant still needs to act. Used after a
// removal, which consumes nobody's turn but can close the round.
func (t *TurnController) RoundComplete(parts []*Participant, r Rules) bool {
	if t.discipline != DisciplineOrderedSet && t.discipline != DisciplineFreeSet {
		return false
	}
	for _, p := range parts {
		if r.Eligible(p.ID) && t.needsToAct(r, p.ID) {
			return false
		}
	}
	return true
}

// HandleRemoval keeps the pointer stable when a participant is removed.
func (t *TurnController) HandleRemoval(idx, remaining int) {
	if idx < t.current {
		t.current--
	}
	if remaining > 0 && t.current >= remaining {
		t.current = 0
	}
}
