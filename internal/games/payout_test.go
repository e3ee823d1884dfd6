package games

import (
	"math"
	"testing"
)

func TestMultiplier(t *testing.T) {
	t.Run("zero reveals pays zero", func(t *testing.T) {
		if m := Multiplier(0, 3, 25, 0.01); m != 0 {
			t.Errorf("expected 0 for d=0, got %.4f", m)
		}
	})

	t.Run("25 cells 3 mines first reveal", func(t *testing.T) {
		// 0.99 * 25/22 = 1.125, rounded to 1.13
		m := Multiplier(1, 3, 25, 0.01)
		if math.Abs(m-1.13) > 1e-9 {
			t.Errorf("expected 1.13, got %.4f", m)
		}
	})

	t.Run("non-decreasing in reveals", func(t *testing.T) {
		prev := 0.0
		for d := 1; d <= 22; d++ {
			m := Multiplier(d, 3, 25, 0.01)
			if m < prev {
				t.Errorf("multiplier decreased at d=%d: %.2f < %.2f", d, m, prev)
			}
			prev = m
		}
	})

	t.Run("more hazards pays more", func(t *testing.T) {
		low := Multiplier(5, 3, 25, 0.01)
		high := Multiplier(5, 10, 25, 0.01)
		if high <= low {
			t.Errorf("expected 10-mine price above 3-mine price, got %.2f <= %.2f", high, low)
		}
	})

	t.Run("largest grid stays finite", func(t *testing.T) {
		m := Multiplier(63, 1, 64, 0.01)
		if math.IsInf(m, 0) || math.IsNaN(m) {
			t.Fatalf("expected finite multiplier, got %v", m)
		}
		if m <= 0 {
			t.Errorf("expected positive multiplier, got %.2f", m)
		}
	})
}

func TestTowersMultiplier(t *testing.T) {
	t.Run("zero rows pays zero", func(t *testing.T) {
		if m := TowersMultiplier(0, 1, 3, 0.01); m != 0 {
			t.Errorf("expected 0 for row=0, got %.4f", m)
		}
	})

	t.Run("first row easy", func(t *testing.T) {
		// survival 2/3, 0.99 * 3/2 = 1.485, rounded to 1.49
		m := TowersMultiplier(1, 1, 3, 0.01)
		if math.Abs(m-1.49) > 1e-9 {
			t.Errorf("expected 1.49, got %.4f", m)
		}
	})

	t.Run("non-decreasing in rows", func(t *testing.T) {
		prev := 0.0
		for row := 1; row <= TowersRows; row++ {
			m := TowersMultiplier(row, 1, 3, 0.01)
			if m < prev {
				t.Errorf("multiplier decreased at row %d: %.2f < %.2f", row, m, prev)
			}
			prev = m
		}
	})

	t.Run("agrees with the grid formula per row", func(t *testing.T) {
		// one row of 3 cells with 1 hazard is a 3-cell grid with 1 mine
		ladder := TowersMultiplier(1, 1, 3, 0.01)
		grid := Multiplier(1, 1, 3, 0.01)
		if math.Abs(ladder-grid) > 1e-9 {
			t.Errorf("ladder %.4f != grid %.4f", ladder, grid)
		}
	})
}

func TestMultiplierFor(t *testing.T) {
	cfg, err := NewMinesConfig(25, 3)
	if err != nil {
		t.Fatalf("mines config: %v", err)
	}
	if m := MultiplierFor(1, cfg, 0.01); math.Abs(m-1.13) > 1e-9 {
		t.Errorf("mines: expected 1.13, got %.4f", m)
	}

	tcfg, err := NewTowersConfig(TowersEasy)
	if err != nil {
		t.Fatalf("towers config: %v", err)
	}
	if m := MultiplierFor(1, tcfg, 0.01); math.Abs(m-1.49) > 1e-9 {
		t.Errorf("towers: expected 1.49, got %.4f", m)
	}
}
