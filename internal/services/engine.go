package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/baymax-09/roobet-casino-sub009/internal/games"
	"github.com/baymax-09/roobet-casino-sub009/internal/models"
)

// EngineConfig carries the knobs shared by all variants.
type EngineConfig struct {
	HouseEdge   float64
	MaxBet      float64
	MaxPayout   float64
	LockTTL     time.Duration
	VerifyDelay time.Duration
}

// Engine is the per-variant-parametrized game state machine. All state
// lives behind the injected store interfaces; the engine itself holds no
// mutable game data, so one instance serves every request goroutine.
type Engine struct {
	cfg      EngineConfig
	store    ActiveGameStore
	history  HistoryStore
	rounds   Rounds
	ledger   Ledger
	locks    Locker
	notifier Notifier
}

func NewEngine(cfg EngineConfig, store ActiveGameStore, history HistoryStore, rounds Rounds, ledger Ledger, locks Locker, notifier Notifier) *Engine {
	return &Engine{
		cfg:      cfg,
		store:    store,
		history:  history,
		rounds:   rounds,
		ledger:   ledger,
		locks:    locks,
		notifier: notifier,
	}
}

// Lock keys. Distinct purposes get distinct keys so a slow verification
// cannot starve gameplay and vice versa.
func lockCreateRound(userID int64) string {
	return fmt.Sprintf("%d:round:create", userID)
}

func lockUseRound(userID int64) string {
	return fmt.Sprintf("%d:round:use", userID)
}

func lockPlay(userID int64, variant games.Variant) string {
	return fmt.Sprintf("%d:play:%s", userID, variant)
}

// Start opens a new round: commitment first, then the bet, then the game
// record. Fails with ErrActiveGameExists when a game is already live for
// this (user, variant) pair.
func (e *Engine) Start(ctx context.Context, userID int64, cfg games.VariantConfig, betAmount float64, clientSeed string) (*models.StartResult, error) {
	// validation happens before any lock is taken
	if err := models.ValidateBetAmount(betAmount, e.cfg.MaxBet); err != nil {
		return nil, err
	}
	if err := models.ValidateClientSeed(clientSeed); err != nil {
		return nil, err
	}

	release, err := e.locks.Acquire(ctx, lockCreateRound(userID), e.cfg.LockTTL)
	if err != nil {
		return nil, err
	}
	defer release()

	// Optimistic pre-check. Best effort only: the SETNX insert below is the
	// real guard, this just fails fast without burning a round and a bet.
	if _, err := e.store.GetActiveGame(ctx, userID, cfg.Variant); err == nil {
		return nil, ErrActiveGameExists
	} else if err != ErrNoActiveGame {
		return nil, err
	}

	round, deckHash, err := e.rounds.StartRound(ctx, userID, cfg.Variant, clientSeed)
	if err != nil {
		return nil, fmt.Errorf("failed to start round: %v", err)
	}

	bet, err := e.ledger.OpenBet(ctx, userID, cfg.Variant, betAmount)
	if err != nil {
		return nil, fmt.Errorf("failed to open bet: %v", err)
	}

	now := time.Now()
	game := &models.ActiveGame{
		ID:            models.GenerateGameID(),
		UserID:        userID,
		BetID:         bet.ID,
		RoundID:       round.ID,
		Config:        cfg,
		Deck:          games.GenerateFor(deckHash, cfg),
		Played:        games.Deck{},
		BetAmount:     betAmount,
		ClientSeed:    round.ClientSeed,
		Nonce:         round.Nonce,
		CommittedHash: round.CommittedHash,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := e.store.InsertActiveGame(ctx, game); err != nil {
		// lost the residual race between check and insert: refund and bail
		if voidErr := e.ledger.VoidBet(ctx, bet.ID); voidErr != nil {
			log.Printf("failed to void bet %s after insert conflict: %v", bet.ID, voidErr)
		}
		return nil, err
	}

	return &models.StartResult{
		GameID: game.ID,
		Bet:    bet,
		Round:  round.Info(),
		Config: cfg,
	}, nil
}

// RevealCell plays one cell. A hazard busts the game; a safe cell reprices
// it and may auto-close on the payout cap or a cleared board.
func (e *Engine) RevealCell(ctx context.Context, userID int64, variant games.Variant, gameID string, cell int) (*models.RevealResult, error) {
	if cell < 0 {
		return nil, ErrInvalidCell
	}

	release, err := e.locks.Acquire(ctx, lockPlay(userID, variant), e.cfg.LockTTL)
	if err != nil {
		return nil, err
	}
	defer release()

	game, err := e.store.GetActiveGame(ctx, userID, variant)
	if err != nil {
		return nil, err
	}
	if game.ID != gameID {
		return nil, ErrNoActiveGame
	}

	idx := games.CellIndex(cell)
	if cell >= game.Config.GridSize {
		return nil, ErrInvalidCell
	}
	if _, played := game.Played[idx]; played {
		return nil, ErrInvalidCell
	}
	if game.Config.Variant == games.VariantTowers && cell/game.Config.Columns != game.CurrentRow() {
		return nil, ErrInvalidCell
	}

	kind := game.Deck[idx]
	if err := e.store.UpdatePlayedCell(ctx, game, idx, kind); err != nil {
		return nil, err
	}

	result := &models.RevealResult{
		GameID: game.ID,
		Cell:   idx,
		Kind:   kind,
		Played: game.Played,
		Round:  game.RoundInfo(),
	}

	if kind == games.CellHazard {
		bet := e.settle(ctx, game, models.OutcomeBusted, 0)
		result.Multiplier = 0
		result.GameOver = true
		result.Outcome = models.OutcomeBusted
		result.Deck = game.Deck
		result.Bet = bet
		return result, nil
	}

	safe := game.SafeRevealed()
	multiplier := games.MultiplierFor(safe, game.Config, e.cfg.HouseEdge)

	// forced win: every safe cell (or the final tower row) is cleared
	if safe >= game.Config.MaxSafeCells() {
		bet := e.settle(ctx, game, models.OutcomeClosedOut, multiplier)
		result.Multiplier = multiplier
		result.GameOver = true
		result.Outcome = models.OutcomeClosedOut
		result.Deck = game.Deck
		result.Bet = bet
		return result, nil
	}

	// global payout cap
	if multiplier*game.BetAmount > e.cfg.MaxPayout {
		capped := math.Floor(e.cfg.MaxPayout/game.BetAmount*100) / 100
		bet := e.settle(ctx, game, models.OutcomeClosedOut, capped)
		result.Multiplier = capped
		result.GameOver = true
		result.Outcome = models.OutcomeClosedOut
		result.Deck = game.Deck
		result.Bet = bet
		return result, nil
	}

	result.Multiplier = multiplier
	return result, nil
}

// Cashout closes the game at the current multiplier. At least one safe cell
// must have been revealed.
func (e *Engine) Cashout(ctx context.Context, userID int64, variant games.Variant, gameID string) (*models.CashoutResult, error) {
	release, err := e.locks.Acquire(ctx, lockPlay(userID, variant), e.cfg.LockTTL)
	if err != nil {
		return nil, err
	}
	defer release()

	game, err := e.store.GetActiveGame(ctx, userID, variant)
	if err != nil {
		return nil, err
	}
	if game.ID != gameID {
		return nil, ErrNoActiveGame
	}

	safe := game.SafeRevealed()
	if safe == 0 {
		return nil, ErrNoSafeCellRevealed
	}

	multiplier := games.MultiplierFor(safe, game.Config, e.cfg.HouseEdge)
	bet := e.settle(ctx, game, models.OutcomeCashedOut, multiplier)

	return &models.CashoutResult{
		GameID:     game.ID,
		Multiplier: multiplier,
		Payout:     game.BetAmount * multiplier,
		Outcome:    models.OutcomeCashedOut,
		Deck:       game.Deck,
		Bet:        bet,
		Round:      game.RoundInfo(),
	}, nil
}

// settle runs every terminal transition: archive first, then close the bet.
// The game outcome is authoritative once the deck is resolved; a ledger
// failure after archival is logged and reconciled elsewhere, the player
// still gets the resolved deck and multiplier.
func (e *Engine) settle(ctx context.Context, game *models.ActiveGame, outcome models.Outcome, multiplier float64) *models.Bet {
	record := &models.HistoryRecord{
		GameID:     game.ID,
		UserID:     game.UserID,
		BetID:      game.BetID,
		RoundID:    game.RoundID,
		Outcome:    outcome,
		Config:     game.Config,
		Deck:       game.Deck,
		Played:     game.Played,
		BetAmount:  game.BetAmount,
		Multiplier: multiplier,
		Payout:     game.BetAmount * multiplier,
		ClientSeed: game.ClientSeed,
		Nonce:      game.Nonce,
		CreatedAt:  game.CreatedAt,
		EndedAt:    time.Now(),
	}

	if err := e.history.InsertHistory(ctx, record); err != nil {
		log.Printf("failed to archive game %s: %v", game.ID, err)
	}
	if err := e.store.DeleteActiveGame(ctx, game.UserID, game.Config.Variant); err != nil {
		log.Printf("failed to clear active game %s: %v", game.ID, err)
	}
	if err := e.rounds.ConcludeRound(ctx, game.RoundID); err != nil {
		log.Printf("failed to conclude round %s: %v", game.RoundID, err)
	}

	bet, err := e.ledger.CloseBet(ctx, game.BetID, multiplier)
	if err != nil {
		// intentional best-effort closeout, see above
		log.Printf("failed to close bet %s at %.2fx: %v", game.BetID, multiplier, err)
	}

	if e.notifier != nil {
		e.notifier.PushGameResult(game.UserID, GameResultEvent{
			Variant:    game.Config.Variant,
			GameID:     game.ID,
			Outcome:    outcome,
			Multiplier: multiplier,
			Deck:       game.Deck,
			Bet:        bet,
		})
	}

	return bet
}

// ActiveGames lists the caller's live games across all variants.
func (e *Engine) ActiveGames(ctx context.Context, userID int64) ([]*models.ActiveGame, error) {
	var out []*models.ActiveGame
	for _, variant := range []games.Variant{games.VariantMines, games.VariantFruits, games.VariantTowers} {
		game, err := e.store.GetActiveGame(ctx, userID, variant)
		if err == ErrNoActiveGame {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, game)
	}
	return out, nil
}

// History lists the caller's most recent terminal snapshots.
func (e *Engine) History(ctx context.Context, userID int64, limit int64) ([]*models.HistoryRecord, error) {
	return e.history.GetHistoryByUser(ctx, userID, limit)
}
