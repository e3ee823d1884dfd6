package services

import "errors"

// State-conflict and contention errors are sentinels so handlers can map
// them to HTTP statuses with errors.Is. Everything else is wrapped with
// fmt.Errorf at the call site.
var (
	ErrActiveGameExists   = errors.New("an active game already exists for this variant")
	ErrNoActiveGame       = errors.New("no active game")
	ErrInvalidCell        = errors.New("invalid cell")
	ErrNoSafeCellRevealed = errors.New("no safe cell revealed yet")

	// Lock contention. Surfaced immediately, never retried by the engine.
	ErrTooManyRequests = errors.New("slow down")

	// Fairness-audit failures, terminal for the verification attempt.
	ErrGameStillActive = errors.New("game is still active, finish it before verifying")
	ErrTooOldToVerify  = errors.New("game is too old to verify")
	ErrNoRound         = errors.New("round not found")
	ErrNoSeed          = errors.New("server seed unavailable")

	ErrRoundNotConcluded = errors.New("round has not concluded")
)
