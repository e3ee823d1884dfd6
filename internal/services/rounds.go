package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/baymax-09/roobet-casino-sub009/internal/games"
	"github.com/baymax-09/roobet-casino-sub009/internal/models"
)

// RoundService issues hashed seed commitments before play and reveals seeds
// only once the round has concluded. Seed-reveal state is owned here: a seed
// is revealed at most once logically and never while the game is live.
type RoundService struct {
	store RoundStore
}

func NewRoundService(store RoundStore) *RoundService {
	return &RoundService{store: store}
}

// HashServerSeed is the public commitment: sha256 of the seed, hex encoded.
func HashServerSeed(serverSeed string) string {
	sum := sha256.Sum256([]byte(serverSeed))
	return hex.EncodeToString(sum[:])
}

// DeckHash salts the server seed with the client seed and nonce. This is the
// hash the deck generator consumes, and the one a player recomputes when
// auditing a round.
func DeckHash(serverSeed, clientSeed string, nonce int64) string {
	h := hmac.New(sha256.New, []byte(serverSeed))
	h.Write([]byte(fmt.Sprintf("%s - %d", clientSeed, nonce)))
	return hex.EncodeToString(h.Sum(nil))
}

func (r *RoundService) StartRound(ctx context.Context, userID int64, variant games.Variant, clientSeed string) (*models.Round, string, error) {
	serverSeed, err := models.GenerateServerSeed()
	if err != nil {
		return nil, "", err
	}

	if clientSeed == "" {
		if clientSeed, err = models.GenerateClientSeed(); err != nil {
			return nil, "", err
		}
	}

	nonce, err := r.store.NextNonce(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	round := &models.Round{
		ID:            models.GenerateRoundID(),
		UserID:        userID,
		Variant:       variant,
		ServerSeed:    serverSeed,
		CommittedHash: HashServerSeed(serverSeed),
		ClientSeed:    clientSeed,
		Nonce:         nonce,
		CreatedAt:     time.Now(),
	}

	if err := r.store.SaveRound(ctx, round); err != nil {
		return nil, "", err
	}

	return round, DeckHash(serverSeed, clientSeed, nonce), nil
}

func (r *RoundService) GetRound(ctx context.Context, roundID string) (*models.Round, error) {
	return r.store.GetRound(ctx, roundID)
}

// ConcludeRound flags the round as finished, unlocking seed reveal.
func (r *RoundService) ConcludeRound(ctx context.Context, roundID string) error {
	round, err := r.store.GetRound(ctx, roundID)
	if err != nil {
		return err
	}
	if round.Concluded {
		return nil
	}
	round.Concluded = true
	return r.store.SaveRound(ctx, round)
}

func (r *RoundService) RevealRound(ctx context.Context, roundID string) (string, error) {
	round, err := r.store.GetRound(ctx, roundID)
	if err != nil {
		return "", err
	}
	if !round.Concluded {
		return "", ErrRoundNotConcluded
	}

	if !round.Revealed {
		round.Revealed = true
		if err := r.store.SaveRound(ctx, round); err != nil {
			return "", err
		}
	}
	return round.ServerSeed, nil
}
