package room

import "errors"

// Validation failures surfaced to clients. All of them are recoverable: a
// rejected action has no side effects and the room keeps running.
var (
	ErrRoomNotFound         = errors.New("room not found")
	ErrRoomFull             = errors.New("room full")
	ErrGameInProgress       = errors.New("game already in progress")
	ErrNotYourTurn          = errors.New("not your turn")
	ErrInvalidTarget        = errors.New("invalid target")
	ErrMalformedPayload     = errors.New("malformed payload")
	ErrNotHost              = errors.New("only the host can do that")
	ErrInsufficientPlayers  = errors.New("not enough players")
	ErrUnknownAction        = errors.New("unknown action")
	ErrParticipantNotFound  = errors.New("participant not in room")
	ErrAlreadyInRoom        = errors.New("already in this room")
	ErrCodeSpaceExhausted   = errors.New("room code space exhausted")
	ErrUnknownGameType      = errors.New("unknown game type")
	ErrActionNotInThisPhase = errors.New("action not valid in this phase")
)
