package games

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

type CellIndex int

type CellKind string

const (
	CellSafe   CellKind = "safe"
	CellHazard CellKind = "hazard"
)

// Deck maps every cell index of the grid to its kind.
type Deck map[CellIndex]CellKind

// hashStream turns the round hash into an unbounded deterministic byte
// stream by hashing "{seed}:{block}" with SHA-256, one 32-byte block at a
// time. Same construction as the HMAC round counter used by the replay
// tooling, minus the keying (the input hash is already keyed).
type hashStream struct {
	seed   string
	block  int
	cursor int
	buf    [32]byte
}

func newHashStream(seed string) *hashStream {
	s := &hashStream{seed: seed, cursor: 32}
	return s
}

func (s *hashStream) next4() uint32 {
	var out [4]byte
	for i := range out {
		if s.cursor >= 32 {
			s.buf = sha256.Sum256([]byte(fmt.Sprintf("%s:%d", s.seed, s.block)))
			s.block++
			s.cursor = 0
		}
		out[i] = s.buf[s.cursor]
		s.cursor++
	}
	return binary.BigEndian.Uint32(out[:])
}

// GenerateDeck derives a deck of n cells with k hazards from the round hash.
// The hash byte stream drives a Fisher-Yates shuffle of [0..n); the first k
// positions of the resulting permutation become hazards. Pure: identical
// inputs always produce the identical deck.
func GenerateDeck(hash string, n, k int) Deck {
	perm := Permutation(hash, n)

	deck := make(Deck, n)
	for i, cell := range perm {
		if i < k {
			deck[cell] = CellHazard
		} else {
			deck[cell] = CellSafe
		}
	}
	return deck
}

// Permutation returns the deterministic shuffle of [0..n) for the hash.
// Exposed separately so the fairness verifier can show cell ordering, not
// just the final kind mapping.
func Permutation(hash string, n int) []CellIndex {
	perm := make([]CellIndex, n)
	for i := range perm {
		perm[i] = CellIndex(i)
	}

	stream := newHashStream(hash)
	for i := n - 1; i > 0; i-- {
		j := int(stream.next4() % uint32(i+1))
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm
}

// GenerateTowersDeck builds the ladder deck row by row. Each row gets its
// own salted hash ("{hash}-{row}") so rows are independent but still fully
// determined by the round hash. Cell index = row*columns + column.
func GenerateTowersDeck(hash string, rows, columns, hazardsPerRow int) Deck {
	deck := make(Deck, rows*columns)
	for row := 0; row < rows; row++ {
		rowDeck := GenerateDeck(fmt.Sprintf("%s-%d", hash, row), columns, hazardsPerRow)
		for col, kind := range rowDeck {
			deck[CellIndex(row*columns)+col] = kind
		}
	}
	return deck
}

// GenerateFor dispatches on the variant shape.
func GenerateFor(hash string, cfg VariantConfig) Deck {
	if cfg.Variant == VariantTowers {
		return GenerateTowersDeck(hash, cfg.Rows, cfg.Columns, cfg.HazardsPerRow)
	}
	return GenerateDeck(hash, cfg.GridSize, cfg.HazardCount)
}
