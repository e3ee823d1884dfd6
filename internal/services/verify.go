package services

import (
	"context"
	"time"

	"github.com/baymax-09/roobet-casino-sub009/internal/games"
	"github.com/baymax-09/roobet-casino-sub009/internal/models"
)

// Verify replays a finished round so the player can audit it: reveal the
// committed seed, rebuild the deck from it and hand everything back for
// client-side comparison.
//
// The round must have concluded. A fixed short delay guards the case where
// the terminal transition is still in flight when the verification request
// lands; this narrows the race window, it does not close it.
func (e *Engine) Verify(ctx context.Context, userID int64, variant games.Variant, betID string) (*models.VerificationResult, error) {
	if err := e.requireNoActiveGame(ctx, userID, variant); err != nil {
		return nil, err
	}

	time.Sleep(e.cfg.VerifyDelay)

	if err := e.requireNoActiveGame(ctx, userID, variant); err != nil {
		return nil, err
	}

	record, err := e.history.GetHistoryByBet(ctx, betID)
	if err != nil {
		return nil, err
	}
	if record.UserID != userID || record.Config.Variant != variant {
		return nil, ErrTooOldToVerify
	}

	round, err := e.rounds.GetRound(ctx, record.RoundID)
	if err != nil {
		return nil, err
	}

	serverSeed := round.ServerSeed
	if !round.Revealed {
		serverSeed, err = e.forceReveal(ctx, userID, record.RoundID)
		if err != nil {
			return nil, err
		}
	}

	deckHash := DeckHash(serverSeed, record.ClientSeed, record.Nonce)

	result := &models.VerificationResult{
		ServerSeed:       serverSeed,
		HashedServerSeed: HashServerSeed(serverSeed),
		ClientSeed:       record.ClientSeed,
		Nonce:            record.Nonce,
		Deck:             games.GenerateFor(deckHash, record.Config),
		Config:           record.Config,
	}
	if record.Config.Variant != games.VariantTowers {
		result.Permutation = games.Permutation(deckHash, record.Config.GridSize)
	}
	return result, nil
}

func (e *Engine) requireNoActiveGame(ctx context.Context, userID int64, variant games.Variant) error {
	_, err := e.store.GetActiveGame(ctx, userID, variant)
	if err == nil {
		return ErrGameStillActive
	}
	if err != ErrNoActiveGame {
		return err
	}
	return nil
}

func (e *Engine) forceReveal(ctx context.Context, userID int64, roundID string) (string, error) {
	release, err := e.locks.Acquire(ctx, lockUseRound(userID), e.cfg.LockTTL)
	if err != nil {
		return "", err
	}
	defer release()

	seed, err := e.rounds.RevealRound(ctx, roundID)
	if err != nil {
		return "", ErrNoSeed
	}
	return seed, nil
}
