package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/baymax-09/roobet-casino-sub009/internal/games"
	"github.com/baymax-09/roobet-casino-sub009/internal/models"
)

// WalletLedger is the in-house Ledger implementation on top of the redis
// wallet: the stake is locked atomically when a bet opens and released with
// the payout when it closes. The engine only ever sees the Ledger interface.
type WalletLedger struct {
	redis *RedisService
}

func NewWalletLedger(redis *RedisService) *WalletLedger {
	return &WalletLedger{redis: redis}
}

func (l *WalletLedger) OpenBet(ctx context.Context, userID int64, variant games.Variant, amount float64) (*models.Bet, error) {
	if err := l.redis.LockBalance(ctx, userID, amount); err != nil {
		return nil, fmt.Errorf("failed to lock stake: %v", err)
	}

	bet := &models.Bet{
		ID:        models.GenerateBetID(),
		UserID:    userID,
		Variant:   variant,
		Amount:    amount,
		Status:    models.BetOpen,
		CreatedAt: time.Now(),
	}

	if err := l.redis.SaveBet(ctx, bet); err != nil {
		// hand the stake back, the bet never existed
		l.redis.ReleaseBalance(ctx, userID, amount, amount)
		return nil, err
	}
	return bet, nil
}

func (l *WalletLedger) CloseBet(ctx context.Context, betID string, multiplier float64) (*models.Bet, error) {
	bet, err := l.redis.GetBet(ctx, betID)
	if err != nil {
		return nil, err
	}
	if bet.Status != models.BetOpen {
		return nil, fmt.Errorf("bet %s is already %s", betID, bet.Status)
	}

	payout := bet.Amount * multiplier

	if err := l.redis.ReleaseBalance(ctx, bet.UserID, bet.Amount, payout); err != nil {
		return nil, fmt.Errorf("failed to release stake: %v", err)
	}

	bet.Status = models.BetClosed
	bet.Multiplier = multiplier
	bet.Payout = payout
	bet.ClosedAt = time.Now()

	if err := l.redis.SaveBet(ctx, bet); err != nil {
		return nil, err
	}

	l.recordTransaction(ctx, bet)
	return bet, nil
}

func (l *WalletLedger) VoidBet(ctx context.Context, betID string) error {
	bet, err := l.redis.GetBet(ctx, betID)
	if err != nil {
		return err
	}
	if bet.Status != models.BetOpen {
		return nil
	}

	// full refund of the stake
	if err := l.redis.ReleaseBalance(ctx, bet.UserID, bet.Amount, bet.Amount); err != nil {
		return fmt.Errorf("failed to refund stake: %v", err)
	}

	bet.Status = models.BetVoided
	bet.ClosedAt = time.Now()
	return l.redis.SaveBet(ctx, bet)
}

func (l *WalletLedger) recordTransaction(ctx context.Context, bet *models.Bet) {
	txType := models.TransactionTypeBet
	description := fmt.Sprintf("Lost %s bet", bet.Variant)
	if bet.Payout > 0 {
		txType = models.TransactionTypeWin
		description = fmt.Sprintf("Won %.2f on %s (%.2fx)", bet.Payout, bet.Variant, bet.Multiplier)
	}

	wallet, err := l.redis.GetWallet(ctx, bet.UserID)
	if err != nil {
		return
	}

	l.redis.SaveTransaction(ctx, &models.Transaction{
		ID:            fmt.Sprintf("tx_%s", uuid.New().String()),
		UserID:        bet.UserID,
		Type:          txType,
		Amount:        bet.Payout,
		BalanceBefore: wallet.Balance - bet.Payout,
		BalanceAfter:  wallet.Balance,
		BetID:         bet.ID,
		Description:   description,
		CreatedAt:     time.Now(),
	})
}
