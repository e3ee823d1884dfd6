package games

import (
	"fmt"
	"testing"
)

func TestGenerateDeck(t *testing.T) {
	t.Run("deck covers the whole grid", func(t *testing.T) {
		deck := GenerateDeck("abc123", 25, 3)
		if len(deck) != 25 {
			t.Fatalf("expected 25 cells, got %d", len(deck))
		}
		for i := 0; i < 25; i++ {
			if _, ok := deck[CellIndex(i)]; !ok {
				t.Errorf("cell %d missing from deck", i)
			}
		}
	})

	t.Run("hazard count matches request", func(t *testing.T) {
		for _, k := range []int{1, 3, 10, 24} {
			deck := GenerateDeck("abc123", 25, k)
			hazards := 0
			for _, kind := range deck {
				if kind == CellHazard {
					hazards++
				}
			}
			if hazards != k {
				t.Errorf("k=%d: expected %d hazards, got %d", k, k, hazards)
			}
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		a := GenerateDeck("seed-x", 36, 5)
		b := GenerateDeck("seed-x", 36, 5)
		for i := 0; i < 36; i++ {
			if a[CellIndex(i)] != b[CellIndex(i)] {
				t.Fatalf("decks diverge at cell %d: %s != %s", i, a[CellIndex(i)], b[CellIndex(i)])
			}
		}
	})

	t.Run("different hash gives different layout", func(t *testing.T) {
		a := GenerateDeck("seed-x", 25, 5)
		b := GenerateDeck("seed-y", 25, 5)
		same := true
		for i := 0; i < 25; i++ {
			if a[CellIndex(i)] != b[CellIndex(i)] {
				same = false
				break
			}
		}
		if same {
			t.Error("expected different hashes to produce different decks")
		}
	})

	t.Run("supported grid sizes", func(t *testing.T) {
		for _, n := range []int{25, 36, 49, 64} {
			deck := GenerateDeck("abc123", n, n-1)
			if len(deck) != n {
				t.Errorf("n=%d: expected %d cells, got %d", n, n, len(deck))
			}
		}
	})
}

func TestPermutation(t *testing.T) {
	perm := Permutation("abc123", 25)
	if len(perm) != 25 {
		t.Fatalf("expected 25 entries, got %d", len(perm))
	}
	seen := make(map[CellIndex]bool, 25)
	for _, cell := range perm {
		if cell < 0 || cell >= 25 {
			t.Errorf("cell %d out of range [0, 25)", cell)
		}
		if seen[cell] {
			t.Errorf("duplicate cell %d in permutation", cell)
		}
		seen[cell] = true
	}
}

func TestGenerateTowersDeck(t *testing.T) {
	t.Run("hazards per row", func(t *testing.T) {
		deck := GenerateTowersDeck("abc123", 9, 3, 1)
		if len(deck) != 27 {
			t.Fatalf("expected 27 cells, got %d", len(deck))
		}
		for row := 0; row < 9; row++ {
			hazards := 0
			for col := 0; col < 3; col++ {
				if deck[CellIndex(row*3+col)] == CellHazard {
					hazards++
				}
			}
			if hazards != 1 {
				t.Errorf("row %d: expected 1 hazard, got %d", row, hazards)
			}
		}
	})

	t.Run("rows match their salted sub-decks", func(t *testing.T) {
		deck := GenerateTowersDeck("abc123", 9, 3, 1)
		for row := 0; row < 9; row++ {
			sub := GenerateDeck(fmt.Sprintf("abc123-%d", row), 3, 1)
			for col := 0; col < 3; col++ {
				if deck[CellIndex(row*3+col)] != sub[CellIndex(col)] {
					t.Errorf("row %d col %d does not match salted sub-deck", row, col)
				}
			}
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		a := GenerateTowersDeck("abc123", 9, 3, 1)
		b := GenerateTowersDeck("abc123", 9, 3, 1)
		for i := 0; i < 27; i++ {
			if a[CellIndex(i)] != b[CellIndex(i)] {
				t.Fatalf("towers deck not deterministic at cell %d", i)
			}
		}
	})
}
