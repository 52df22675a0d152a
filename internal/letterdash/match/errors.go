package match

import "errors"

// Precondition violations. All of them leave the session untouched.
var (
	ErrNotHost          = errors.New("only the host can perform this action")
	ErrSessionFull      = errors.New("session is full")
	ErrNotEnoughPlayers = errors.New("not enough players to start")
	ErrAlreadyStarted   = errors.New("game already started")
	ErrGameCompleted    = errors.New("game is completed")
	ErrNoActiveRound    = errors.New("no round is accepting submissions")
	ErrAlreadySubmitted = errors.New("player already submitted this round")
	ErrUnknownPlayer    = errors.New("player is not part of this session")
	ErrStaleUpdate      = errors.New("incoming session is not newer than local")
)
