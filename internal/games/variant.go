package games

import "fmt"

type Variant string

const (
	VariantMines  Variant = "mines"
	VariantFruits Variant = "fruits"
	VariantTowers Variant = "towers"
)

// Towers difficulty levels. Each level fixes the row width and how many
// hazard cells are placed per row.
type TowersDifficulty string

const (
	TowersEasy   TowersDifficulty = "easy"
	TowersMedium TowersDifficulty = "medium"
	TowersHard   TowersDifficulty = "hard"
)

const TowersRows = 9

// VariantConfig is the resolved per-game shape: one engine runs all three
// variants off this struct instead of three copies of the game logic.
type VariantConfig struct {
	Variant       Variant `json:"variant"`
	GridSize      int     `json:"grid_size"`
	Rows          int     `json:"rows,omitempty"`
	Columns       int     `json:"columns,omitempty"`
	HazardCount   int     `json:"hazard_count"`
	HazardsPerRow int     `json:"hazards_per_row,omitempty"`
}

var minesGridSizes = map[int]bool{25: true, 36: true, 49: true, 64: true}

var towersShapes = map[TowersDifficulty]struct {
	columns       int
	hazardsPerRow int
}{
	TowersEasy:   {columns: 3, hazardsPerRow: 1},
	TowersMedium: {columns: 2, hazardsPerRow: 1},
	TowersHard:   {columns: 3, hazardsPerRow: 2},
}

// NewMinesConfig validates a grid-mines request. The hazard count is clamped
// to [1, gridSize-1] rather than rejected, matching the classic behaviour.
func NewMinesConfig(gridSize, hazards int) (VariantConfig, error) {
	if !minesGridSizes[gridSize] {
		return VariantConfig{}, fmt.Errorf("unsupported grid size %d", gridSize)
	}
	return VariantConfig{
		Variant:     VariantMines,
		GridSize:    gridSize,
		HazardCount: clampHazards(hazards, gridSize),
	}, nil
}

// NewFruitsConfig is the fixed 25-cell variant (fruit/poop skin). Same
// mechanics as mines, the grid size is just not selectable.
func NewFruitsConfig(hazards int) VariantConfig {
	return VariantConfig{
		Variant:     VariantFruits,
		GridSize:    25,
		HazardCount: clampHazards(hazards, 25),
	}
}

func NewTowersConfig(difficulty TowersDifficulty) (VariantConfig, error) {
	shape, ok := towersShapes[difficulty]
	if !ok {
		return VariantConfig{}, fmt.Errorf("unknown towers difficulty %q", difficulty)
	}
	return VariantConfig{
		Variant:       VariantTowers,
		GridSize:      TowersRows * shape.columns,
		Rows:          TowersRows,
		Columns:       shape.columns,
		HazardCount:   TowersRows * shape.hazardsPerRow,
		HazardsPerRow: shape.hazardsPerRow,
	}, nil
}

// MaxSafeCells is how many safe reveals are possible before the player has
// cleared the board and the game force-wins.
func (c VariantConfig) MaxSafeCells() int {
	if c.Variant == VariantTowers {
		// one safe pick per row
		return c.Rows
	}
	return c.GridSize - c.HazardCount
}

func clampHazards(k, gridSize int) int {
	if k < 1 {
		return 1
	}
	if k > gridSize-1 {
		return gridSize - 1
	}
	return k
}
