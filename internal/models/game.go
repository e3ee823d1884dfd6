package models

import (
	"time"

	"github.com/baymax-09/roobet-casino-sub009/internal/games"
)

// ActiveGame is the single in-progress round for a (user, variant) pair.
// At most one exists per pair at any instant; the store enforces that with
// an insert-if-absent write keyed on the pair.
type ActiveGame struct {
	ID      string `json:"id" redis:"id"`
	UserID  int64  `json:"user_id" redis:"user_id"`
	BetID   string `json:"bet_id" redis:"bet_id"`
	RoundID string `json:"round_id" redis:"round_id"`

	Config games.VariantConfig `json:"config" redis:"config"`
	Deck   games.Deck          `json:"deck" redis:"deck"`
	Played games.Deck          `json:"played" redis:"played"`

	BetAmount     float64 `json:"bet_amount" redis:"bet_amount"`
	ClientSeed    string  `json:"client_seed" redis:"client_seed"`
	Nonce         int64   `json:"nonce" redis:"nonce"`
	CommittedHash string  `json:"committed_hash" redis:"committed_hash"`

	CreatedAt time.Time `json:"created_at" redis:"created_at"`
	UpdatedAt time.Time `json:"updated_at" redis:"updated_at"`
}

// RoundInfo is the committed view of the game's round, safe to return while
// play is ongoing.
func (g *ActiveGame) RoundInfo() RoundInfo {
	return RoundInfo{
		RoundID:       g.RoundID,
		CommittedHash: g.CommittedHash,
		ClientSeed:    g.ClientSeed,
		Nonce:         g.Nonce,
	}
}

// SafeRevealed counts the safe cells played so far.
func (g *ActiveGame) SafeRevealed() int {
	n := 0
	for _, kind := range g.Played {
		if kind == games.CellSafe {
			n++
		}
	}
	return n
}

// CurrentRow is the towers ladder position: the row the next reveal must
// land in, i.e. max played row + 1 (0 when nothing is played yet).
func (g *ActiveGame) CurrentRow() int {
	row := -1
	for cell := range g.Played {
		r := int(cell) / g.Config.Columns
		if r > row {
			row = r
		}
	}
	return row + 1
}

type Outcome string

const (
	OutcomeBusted    Outcome = "busted"
	OutcomeCashedOut Outcome = "cashed_out"
	OutcomeClosedOut Outcome = "closed_out"
)

// HistoryRecord is the immutable terminal snapshot of an ActiveGame, keyed
// by bet id and retained for a bounded window for fairness verification.
type HistoryRecord struct {
	GameID  string  `json:"game_id" redis:"game_id"`
	UserID  int64   `json:"user_id" redis:"user_id"`
	BetID   string  `json:"bet_id" redis:"bet_id"`
	RoundID string  `json:"round_id" redis:"round_id"`
	Outcome Outcome `json:"outcome" redis:"outcome"`

	Config games.VariantConfig `json:"config" redis:"config"`
	Deck   games.Deck          `json:"deck" redis:"deck"`
	Played games.Deck          `json:"played" redis:"played"`

	BetAmount  float64 `json:"bet_amount" redis:"bet_amount"`
	Multiplier float64 `json:"multiplier" redis:"multiplier"`
	Payout     float64 `json:"payout" redis:"payout"`
	ClientSeed string  `json:"client_seed" redis:"client_seed"`
	Nonce      int64   `json:"nonce" redis:"nonce"`

	CreatedAt time.Time `json:"created_at" redis:"created_at"`
	EndedAt   time.Time `json:"ended_at" redis:"ended_at"`
}

type BetStatus string

const (
	BetOpen   BetStatus = "open"
	BetClosed BetStatus = "closed"
	BetVoided BetStatus = "voided"
)

// Bet is the ledger-owned wager referenced by an ActiveGame.
type Bet struct {
	ID         string        `json:"id" redis:"id"`
	UserID     int64         `json:"user_id" redis:"user_id"`
	Variant    games.Variant `json:"variant" redis:"variant"`
	Amount     float64       `json:"amount" redis:"amount"`
	Multiplier float64       `json:"multiplier" redis:"multiplier"`
	Payout     float64       `json:"payout" redis:"payout"`
	Status     BetStatus     `json:"status" redis:"status"`
	CreatedAt  time.Time     `json:"created_at" redis:"created_at"`
	ClosedAt   time.Time     `json:"closed_at,omitempty" redis:"closed_at"`
}

// Round is the stored per-round commitment. The server seed lives only in
// the round store and must not leave it before the round has concluded;
// callers get the RoundInfo view.
type Round struct {
	ID            string        `json:"id" redis:"id"`
	UserID        int64         `json:"user_id" redis:"user_id"`
	Variant       games.Variant `json:"variant" redis:"variant"`
	ServerSeed    string        `json:"server_seed" redis:"server_seed"`
	CommittedHash string        `json:"committed_hash" redis:"committed_hash"`
	ClientSeed    string        `json:"client_seed" redis:"client_seed"`
	Nonce         int64         `json:"nonce" redis:"nonce"`
	Concluded     bool          `json:"concluded" redis:"concluded"`
	Revealed      bool          `json:"revealed" redis:"revealed"`
	CreatedAt     time.Time     `json:"created_at" redis:"created_at"`
}

// RoundInfo is what players see while the round is live: the commitment,
// never the seed.
type RoundInfo struct {
	RoundID       string `json:"round_id"`
	CommittedHash string `json:"committed_hash"`
	ClientSeed    string `json:"client_seed"`
	Nonce         int64  `json:"nonce"`
}

func (r *Round) Info() RoundInfo {
	return RoundInfo{
		RoundID:       r.ID,
		CommittedHash: r.CommittedHash,
		ClientSeed:    r.ClientSeed,
		Nonce:         r.Nonce,
	}
}

// VerificationResult is returned by the fairness replayer once a round has
// concluded and its seed is revealed.
type VerificationResult struct {
	ServerSeed       string              `json:"server_seed"`
	HashedServerSeed string              `json:"hashed_server_seed"`
	ClientSeed       string              `json:"client_seed"`
	Nonce            int64               `json:"nonce"`
	Deck             games.Deck          `json:"deck"`
	Permutation      []games.CellIndex   `json:"permutation,omitempty"`
	Config           games.VariantConfig `json:"config"`
}
