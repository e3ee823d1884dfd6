package services

import (
	"context"
	"testing"

	"github.com/baymax-09/roobet-casino-sub009/internal/games"
	"github.com/baymax-09/roobet-casino-sub009/internal/models"
)

func bustGame(t *testing.T, engine *Engine, deps *testDeps, userID int64) *models.StartResult {
	t.Helper()
	ctx := context.Background()

	result, err := engine.Start(ctx, userID, mustMinesConfig(t, 25, 3), 100, "audit-seed")
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	game, _ := deps.store.GetActiveGame(ctx, userID, games.VariantMines)
	if _, err := engine.RevealCell(ctx, userID, games.VariantMines, result.GameID, findCell(game, games.CellHazard)); err != nil {
		t.Fatalf("bust reveal failed: %v", err)
	}
	return result
}

func TestVerify(t *testing.T) {
	engine, deps := newTestEngine()
	ctx := context.Background()
	result := bustGame(t, engine, deps, 1)

	verification, err := engine.Verify(ctx, 1, games.VariantMines, result.Bet.ID)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}

	if verification.ServerSeed == "" {
		t.Fatal("expected revealed server seed")
	}
	if HashServerSeed(verification.ServerSeed) != result.Round.CommittedHash {
		t.Error("revealed seed does not match the pre-play commitment")
	}
	if verification.ClientSeed != "audit-seed" {
		t.Errorf("unexpected client seed %q", verification.ClientSeed)
	}

	// recomputed deck matches what was actually dealt
	record, err := deps.history.GetHistoryByBet(ctx, result.Bet.ID)
	if err != nil {
		t.Fatalf("history record missing: %v", err)
	}
	if len(verification.Deck) != len(record.Deck) {
		t.Fatalf("deck size mismatch: %d != %d", len(verification.Deck), len(record.Deck))
	}
	for cell, kind := range record.Deck {
		if verification.Deck[cell] != kind {
			t.Errorf("cell %d: recomputed %s, dealt %s", cell, verification.Deck[cell], kind)
		}
	}
	if len(verification.Permutation) != 25 {
		t.Errorf("expected full permutation, got %d entries", len(verification.Permutation))
	}
}

func TestVerifyIdempotent(t *testing.T) {
	engine, deps := newTestEngine()
	ctx := context.Background()
	result := bustGame(t, engine, deps, 1)

	first, err := engine.Verify(ctx, 1, games.VariantMines, result.Bet.ID)
	if err != nil {
		t.Fatalf("first verify failed: %v", err)
	}
	second, err := engine.Verify(ctx, 1, games.VariantMines, result.Bet.ID)
	if err != nil {
		t.Fatalf("second verify failed: %v", err)
	}

	if first.ServerSeed != second.ServerSeed {
		t.Error("revealed seed changed between verifications")
	}
	for cell, kind := range first.Deck {
		if second.Deck[cell] != kind {
			t.Errorf("cell %d differs between verifications", cell)
		}
	}
}

func TestVerifyWhileActive(t *testing.T) {
	engine, _ := newTestEngine()
	ctx := context.Background()

	result, err := engine.Start(ctx, 1, mustMinesConfig(t, 25, 3), 100, "")
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}

	if _, err := engine.Verify(ctx, 1, games.VariantMines, result.Bet.ID); err != ErrGameStillActive {
		t.Fatalf("expected ErrGameStillActive, got %v", err)
	}
}

func TestVerifyUnknownBet(t *testing.T) {
	engine, _ := newTestEngine()

	if _, err := engine.Verify(context.Background(), 1, games.VariantMines, "bet_gone"); err != ErrTooOldToVerify {
		t.Fatalf("expected ErrTooOldToVerify, got %v", err)
	}
}

func TestVerifyWrongOwner(t *testing.T) {
	engine, deps := newTestEngine()
	result := bustGame(t, engine, deps, 1)

	if _, err := engine.Verify(context.Background(), 2, games.VariantMines, result.Bet.ID); err != ErrTooOldToVerify {
		t.Fatalf("expected ErrTooOldToVerify for foreign bet, got %v", err)
	}
}

func TestVerifyTowers(t *testing.T) {
	engine, deps := newTestEngine()
	ctx := context.Background()

	cfg, err := games.NewTowersConfig(games.TowersMedium)
	if err != nil {
		t.Fatalf("towers config: %v", err)
	}
	result, err := engine.Start(ctx, 1, cfg, 100, "")
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	game, _ := deps.store.GetActiveGame(ctx, 1, games.VariantTowers)

	// the hazard has to sit in the current (first) row to be playable
	hazard := -1
	for col := 0; col < cfg.Columns; col++ {
		if game.Deck[games.CellIndex(col)] == games.CellHazard {
			hazard = col
			break
		}
	}
	if hazard < 0 {
		t.Fatal("first row has no hazard")
	}
	if _, err := engine.RevealCell(ctx, 1, games.VariantTowers, result.GameID, hazard); err != nil {
		t.Fatalf("bust reveal failed: %v", err)
	}

	verification, err := engine.Verify(ctx, 1, games.VariantTowers, result.Bet.ID)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	record, _ := deps.history.GetHistoryByBet(ctx, result.Bet.ID)
	for cell, kind := range record.Deck {
		if verification.Deck[cell] != kind {
			t.Errorf("cell %d: recomputed %s, dealt %s", cell, verification.Deck[cell], kind)
		}
	}
}

func TestRoundSeedStaysHiddenUntilConcluded(t *testing.T) {
	engine, deps := newTestEngine()
	ctx := context.Background()

	result, err := engine.Start(ctx, 1, mustMinesConfig(t, 25, 3), 100, "")
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}

	rounds := NewRoundService(deps.rounds)
	if _, err := rounds.RevealRound(ctx, result.Round.RoundID); err != ErrRoundNotConcluded {
		t.Fatalf("expected ErrRoundNotConcluded while live, got %v", err)
	}

	game, _ := deps.store.GetActiveGame(ctx, 1, games.VariantMines)
	if _, err := engine.RevealCell(ctx, 1, games.VariantMines, result.GameID, findCell(game, games.CellHazard)); err != nil {
		t.Fatalf("bust reveal failed: %v", err)
	}

	seed, err := rounds.RevealRound(ctx, result.Round.RoundID)
	if err != nil {
		t.Fatalf("reveal after conclusion failed: %v", err)
	}
	if HashServerSeed(seed) != result.Round.CommittedHash {
		t.Error("revealed seed does not match commitment")
	}
}
