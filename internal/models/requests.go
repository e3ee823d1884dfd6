package models

import "github.com/baymax-09/roobet-casino-sub009/internal/games"

type StartMinesRequest struct {
	BetAmount  float64 `json:"bet_amount" binding:"required,gt=0"`
	GridSize   int     `json:"grid_size" binding:"required"`
	Mines      int     `json:"mines" binding:"required"`
	ClientSeed string  `json:"client_seed"`
}

type StartFruitsRequest struct {
	BetAmount  float64 `json:"bet_amount" binding:"required,gt=0"`
	Poops      int     `json:"poops" binding:"required"`
	ClientSeed string  `json:"client_seed"`
}

type StartTowersRequest struct {
	BetAmount  float64                `json:"bet_amount" binding:"required,gt=0"`
	Difficulty games.TowersDifficulty `json:"difficulty" binding:"required"`
	ClientSeed string                 `json:"client_seed"`
}

type RevealRequest struct {
	GameID string `json:"game_id" binding:"required"`
	Cell   *int   `json:"cell" binding:"required"`
}

type CashoutRequest struct {
	GameID string `json:"game_id" binding:"required"`
}

// StartResult is returned from a successful start: the new game, the open
// bet, and the committed (hashed, never revealed) round info.
type StartResult struct {
	GameID string              `json:"game_id"`
	Bet    *Bet                `json:"bet"`
	Round  RoundInfo           `json:"round"`
	Config games.VariantConfig `json:"config"`
}

// RevealResult is returned from every reveal. The deck is only populated on
// terminal transitions; while the game is live the player sees the played
// cells and the committed round info.
type RevealResult struct {
	GameID     string          `json:"game_id"`
	Cell       games.CellIndex `json:"cell"`
	Kind       games.CellKind  `json:"kind"`
	Multiplier float64         `json:"multiplier"`
	Played     games.Deck      `json:"played"`
	GameOver   bool            `json:"game_over"`
	Outcome    Outcome         `json:"outcome,omitempty"`
	Deck       games.Deck      `json:"deck,omitempty"`
	Bet        *Bet            `json:"bet,omitempty"`
	Round      RoundInfo       `json:"round"`
}

// CashoutResult mirrors the terminal branch of RevealResult.
type CashoutResult struct {
	GameID     string     `json:"game_id"`
	Multiplier float64    `json:"multiplier"`
	Payout     float64    `json:"payout"`
	Outcome    Outcome    `json:"outcome"`
	Deck       games.Deck `json:"deck"`
	Bet        *Bet       `json:"bet,omitempty"`
	Round      RoundInfo  `json:"round"`
}
