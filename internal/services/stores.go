package services

import (
	"context"
	"time"

	"github.com/baymax-09/roobet-casino-sub009/internal/games"
	"github.com/baymax-09/roobet-casino-sub009/internal/models"
)

// ActiveGameStore persists at most one in-progress game per (user, variant)
// pair. InsertActiveGame must be atomic insert-if-absent: it is the backstop
// behind the optimistic check in the start path.
type ActiveGameStore interface {
	GetActiveGame(ctx context.Context, userID int64, variant games.Variant) (*models.ActiveGame, error)
	InsertActiveGame(ctx context.Context, game *models.ActiveGame) error
	UpdatePlayedCell(ctx context.Context, game *models.ActiveGame, cell games.CellIndex, kind games.CellKind) error
	DeleteActiveGame(ctx context.Context, userID int64, variant games.Variant) error
}

// HistoryStore is the append-only archive of terminal snapshots, keyed by
// bet id and retained for a bounded window.
type HistoryStore interface {
	InsertHistory(ctx context.Context, record *models.HistoryRecord) error
	GetHistoryByBet(ctx context.Context, betID string) (*models.HistoryRecord, error)
	GetHistoryByUser(ctx context.Context, userID int64, limit int64) ([]*models.HistoryRecord, error)
}

// RoundStore is the low-level persistence behind the round commitment
// service. NextNonce hands out the per-user bet counter.
type RoundStore interface {
	SaveRound(ctx context.Context, round *models.Round) error
	GetRound(ctx context.Context, roundID string) (*models.Round, error)
	NextNonce(ctx context.Context, userID int64) (int64, error)
}

// Rounds is the round commitment service: commit a hashed seed before play,
// reveal it only after the round has concluded.
type Rounds interface {
	// StartRound stores a fresh commitment and returns the round plus the
	// server-side deck hash. The hash never reaches the client.
	StartRound(ctx context.Context, userID int64, variant games.Variant, clientSeed string) (*models.Round, string, error)
	GetRound(ctx context.Context, roundID string) (*models.Round, error)
	ConcludeRound(ctx context.Context, roundID string) error
	// RevealRound returns the server seed. Fails with ErrRoundNotConcluded
	// while the game is still running.
	RevealRound(ctx context.Context, roundID string) (string, error)
}

// Ledger is the external wager collaborator. CloseBet may fail without the
// engine rolling back the archived game state.
type Ledger interface {
	OpenBet(ctx context.Context, userID int64, variant games.Variant, amount float64) (*models.Bet, error)
	CloseBet(ctx context.Context, betID string, multiplier float64) (*models.Bet, error)
	VoidBet(ctx context.Context, betID string) error
}

// Locker hands out short-lived per-user locks. A held lock surfaces as
// ErrTooManyRequests; the release func is safe to call on any path.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), err error)
}

// GameResultEvent is pushed to the acting user's session on every terminal
// transition.
type GameResultEvent struct {
	Variant    games.Variant  `json:"variant"`
	GameID     string         `json:"game_id"`
	Outcome    models.Outcome `json:"outcome"`
	Multiplier float64        `json:"multiplier"`
	Deck       games.Deck     `json:"deck"`
	Bet        *models.Bet    `json:"bet,omitempty"`
}

// Notifier is the transport-agnostic push channel (websocket in this
// deployment).
type Notifier interface {
	PushGameResult(userID int64, event GameResultEvent)
}
