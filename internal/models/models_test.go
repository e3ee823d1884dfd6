package models_test

import (
	"testing"

	"github.com/baymax-09/roobet-casino-sub009/internal/games"
	"github.com/baymax-09/roobet-casino-sub009/internal/models"
)

func TestSeedHelpers(t *testing.T) {
	seed, err := models.GenerateServerSeed()
	if err != nil {
		t.Fatalf("failed to generate server seed: %v", err)
	}
	if len(seed) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(seed))
	}

	client, err := models.GenerateClientSeed()
	if err != nil {
		t.Fatalf("failed to generate client seed: %v", err)
	}
	if err := models.ValidateClientSeed(client); err != nil {
		t.Errorf("generated client seed should validate: %v", err)
	}

	if err := models.ValidateClientSeed(""); err != nil {
		t.Errorf("empty seed should be accepted: %v", err)
	}

	long := make([]byte, models.MaxClientSeedLen+1)
	for i := range long {
		long[i] = 'a'
	}
	if err := models.ValidateClientSeed(string(long)); err == nil {
		t.Error("overlong seed should fail validation")
	}
}

func TestValidateBetAmount(t *testing.T) {
	if err := models.ValidateBetAmount(100, 10000); err != nil {
		t.Errorf("valid bet rejected: %v", err)
	}
	if err := models.ValidateBetAmount(0, 10000); err == nil {
		t.Error("zero bet should fail")
	}
	if err := models.ValidateBetAmount(-5, 10000); err == nil {
		t.Error("negative bet should fail")
	}
	if err := models.ValidateBetAmount(20000, 10000); err == nil {
		t.Error("bet over the cap should fail")
	}
}

func TestActiveGameCounters(t *testing.T) {
	game := &models.ActiveGame{
		Config: games.VariantConfig{
			Variant:       games.VariantTowers,
			Rows:          9,
			Columns:       3,
			HazardsPerRow: 1,
		},
		Played: games.Deck{},
	}

	if row := game.CurrentRow(); row != 0 {
		t.Errorf("expected row 0 before any reveal, got %d", row)
	}
	if n := game.SafeRevealed(); n != 0 {
		t.Errorf("expected 0 safe reveals, got %d", n)
	}

	game.Played[games.CellIndex(1)] = games.CellSafe   // row 0
	game.Played[games.CellIndex(5)] = games.CellSafe   // row 1
	game.Played[games.CellIndex(8)] = games.CellHazard // row 2

	if row := game.CurrentRow(); row != 3 {
		t.Errorf("expected current row 3, got %d", row)
	}
	if n := game.SafeRevealed(); n != 2 {
		t.Errorf("expected 2 safe reveals, got %d", n)
	}
}

func TestRoundInfoHidesSeed(t *testing.T) {
	round := &models.Round{
		ID:            "round_1",
		ServerSeed:    "secret",
		CommittedHash: "hash",
		ClientSeed:    "client",
		Nonce:         7,
	}

	info := round.Info()
	if info.CommittedHash != "hash" || info.Nonce != 7 || info.ClientSeed != "client" {
		t.Errorf("unexpected round info: %+v", info)
	}
}
