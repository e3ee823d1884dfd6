package models

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

const (
	MinClientSeedLen = 1
	MaxClientSeedLen = 64
)

func GenerateGameID() string {
	return uuid.New().String()
}

func GenerateBetID() string {
	return fmt.Sprintf("bet_%s", uuid.New().String())
}

func GenerateRoundID() string {
	return fmt.Sprintf("round_%s", uuid.New().String())
}

// GenerateServerSeed returns 256 bits of hex-encoded entropy.
func GenerateServerSeed() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate server seed: %v", err)
	}
	return hex.EncodeToString(bytes), nil
}

// GenerateClientSeed returns a default 128-bit client seed for players who
// do not supply their own.
func GenerateClientSeed() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate client seed: %v", err)
	}
	return hex.EncodeToString(bytes), nil
}

// ValidateClientSeed bounds the seed length. Empty is allowed: the round
// service substitutes a generated seed.
func ValidateClientSeed(seed string) error {
	if seed == "" {
		return nil
	}
	if len(seed) < MinClientSeedLen || len(seed) > MaxClientSeedLen {
		return fmt.Errorf("client seed must be between %d and %d characters", MinClientSeedLen, MaxClientSeedLen)
	}
	return nil
}

// ValidateBetAmount is the shared stake guard applied before any lock is
// taken.
func ValidateBetAmount(amount, maxBet float64) error {
	if amount <= 0 {
		return fmt.Errorf("bet amount must be positive")
	}
	if maxBet > 0 && amount > maxBet {
		return fmt.Errorf("maximum bet is %.2f", maxBet)
	}
	return nil
}
