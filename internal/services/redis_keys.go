package services

import "time"

const (
	KeyActiveGame  = "game:active:%d:%s" // userID, variant
	KeyHistory     = "game:history:%s"   // betID
	KeyUserHistory = "user:%d:history"   // userID
	KeyRound       = "round:%s"          // roundID
	KeyUserNonce   = "user:%d:nonce"     // userID
	KeyBet         = "bet:%s"            // betID
	KeyWallet      = "wallet:%d"         // userID
	KeyTransaction = "transaction:%s"    // txID
	KeyUserTxs     = "user:%d:transactions"
	KeyRateLimit   = "ratelimit:%d:%s" // userID, action
	KeyLock        = "lock:%s"         // purpose-specific suffix

	TTLActiveGame  = 24 * time.Hour
	TTLRound       = 60 * 24 * time.Hour
	TTLBet         = 30 * 24 * time.Hour
	TTLTransaction = 30 * 24 * time.Hour

	DefaultRateLimitStart   = 30  // starts per minute
	DefaultRateLimitReveal  = 120 // reveals per minute
	DefaultRateLimitCashout = 60  // cashouts per minute
)
