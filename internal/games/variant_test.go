package games

import "testing"

func TestNewMinesConfig(t *testing.T) {
	for _, n := range []int{25, 36, 49, 64} {
		cfg, err := NewMinesConfig(n, 3)
		if err != nil {
			t.Fatalf("grid %d rejected: %v", n, err)
		}
		if cfg.GridSize != n || cfg.HazardCount != 3 {
			t.Errorf("grid %d: unexpected config %+v", n, cfg)
		}
	}

	if _, err := NewMinesConfig(30, 3); err == nil {
		t.Error("expected error for unsupported grid size 30")
	}
}

func TestHazardClamping(t *testing.T) {
	cfg, _ := NewMinesConfig(25, 0)
	if cfg.HazardCount != 1 {
		t.Errorf("expected hazard floor 1, got %d", cfg.HazardCount)
	}

	cfg, _ = NewMinesConfig(25, 99)
	if cfg.HazardCount != 24 {
		t.Errorf("expected hazard ceiling 24, got %d", cfg.HazardCount)
	}

	fruits := NewFruitsConfig(-5)
	if fruits.HazardCount != 1 {
		t.Errorf("fruits: expected hazard floor 1, got %d", fruits.HazardCount)
	}
}

func TestNewTowersConfig(t *testing.T) {
	cfg, err := NewTowersConfig(TowersEasy)
	if err != nil {
		t.Fatalf("easy rejected: %v", err)
	}
	if cfg.Rows != TowersRows || cfg.Columns != 3 || cfg.HazardsPerRow != 1 {
		t.Errorf("unexpected easy shape: %+v", cfg)
	}
	if cfg.GridSize != TowersRows*3 {
		t.Errorf("grid size should cover every row, got %d", cfg.GridSize)
	}

	hard, err := NewTowersConfig(TowersHard)
	if err != nil {
		t.Fatalf("hard rejected: %v", err)
	}
	if hard.HazardsPerRow != 2 {
		t.Errorf("expected 2 hazards per row on hard, got %d", hard.HazardsPerRow)
	}

	if _, err := NewTowersConfig("nightmare"); err == nil {
		t.Error("expected error for unknown difficulty")
	}
}

func TestMaxSafeCells(t *testing.T) {
	cfg, _ := NewMinesConfig(25, 3)
	if got := cfg.MaxSafeCells(); got != 22 {
		t.Errorf("mines: expected 22, got %d", got)
	}

	towers, _ := NewTowersConfig(TowersEasy)
	if got := towers.MaxSafeCells(); got != TowersRows {
		t.Errorf("towers: expected %d, got %d", TowersRows, got)
	}
}
