package room

// phaseGraphs is the per-game transition table. A transition not listed
// here is a programmer error, not a client error: every client-triggered
// transition already passed its validation gate before the rules signal it.
var phaseGraphs = map[GameType]map[Phase][]Phase{
	TypeTicTacToe: {
		PhaseWaiting: {PhasePlaying},
		PhasePlaying: {PhaseFinished},
	},
	TypeConnect4: {
		PhaseWaiting: {PhasePlaying},
		PhasePlaying: {PhaseFinished},
	},
	TypeSnakeLadder: {
		PhaseWaiting: {PhasePlaying},
		PhasePlaying: {PhaseFinished},
	},
	TypeDigitGuess: {
		PhaseWaiting:        {PhaseSettingNumbers},
		PhaseSettingNumbers: {PhasePlaying},
		PhasePlaying:        {PhaseFinished},
	},
	TypePoker: {
		PhaseWaiting:  {PhasePreflop},
		PhasePreflop:  {PhaseFlop, PhaseShowdown},
		PhaseFlop:     {PhaseTurn, PhaseShowdown},
		PhaseTurn:     {PhaseRiver, PhaseShowdown},
		PhaseRiver:    {PhaseShowdown},
		PhaseShowdown: {PhasePreflop, PhaseFinished},
	},
	TypeRoulette: {
		PhaseWaiting:  {PhaseBetting},
		PhaseBetting:  {PhaseSpinning},
		PhaseSpinning: {PhaseBetting, PhaseFinished},
	},
	TypeTrivia: {
		PhaseWaiting: {PhasePlaying},
		PhasePlaying: {PhaseFinished},
	},
	TypeCanvasBattle: {
		PhaseWaiting: {PhaseDrawing},
		PhaseDrawing: {PhaseVoting},
		PhaseVoting:  {PhaseDrawing, PhaseFinished},
	},
	TypeMafia: {
		PhaseLobby:  {PhaseNight},
		PhaseNight:  {PhaseDay, PhaseFinished},
		PhaseDay:    {PhaseVoting, PhaseFinished},
		PhaseVoting: {PhaseNight, PhaseFinished},
	},
}

// canTransition validates a phase edge. Finishing is always legal: any
// game can end early when participants walk out.
func canTransition(gt GameType, from, to Phase) bool {
	if to == PhaseFinished {
		return true
	}
	for _, next := range phaseGraphs[gt][from] {
		if next == to {
			return true
		}
	}
	return false
}
