package game

import "gamehub/internal/room"

// NewFactory wires every supported game type to its rules constructor.
// Each room gets its own rules instance; nothing is shared between rooms.
func NewFactory() room.Factory {
	return func(gt room.GameType) (room.Rules, error) {
		switch gt {
		case room.TypeTicTacToe:
			return newTicTacToe(), nil
		case room.TypeConnect4:
			return newConnect4(), nil
		case room.TypePoker:
			return newPoker(), nil
		case room.TypeSnakeLadder:
			return newSnakeLadder(), nil
		case room.TypeRoulette:
			return newRoulette(), nil
		case room.TypeTrivia:
			return newTrivia(), nil
		case room.TypeCanvasBattle:
			return newCanvasBattle(), nil
		case room.TypeDigitGuess:
			return newDigitGuess(), nil
		case room.TypeMafia:
			return newMafia(), nil
		default:
			return nil, room.ErrUnknownGameType
		}
	}
}

// Types lists every game type the factory knows, for the /games endpoint.
func Types() []room.GameType {
	return []room.GameType{
		room.TypeTicTacToe,
		room.TypeConnect4,
		room.TypePoker,
		room.TypeSnakeLadder,
		room.TypeRoulette,
		room.TypeTrivia,
		room.TypeCanvasBattle,
		room.TypeDigitGuess,
		room.TypeMafia,
	}
}
