package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/baymax-09/roobet-casino-sub009/internal/config"
	"github.com/baymax-09/roobet-casino-sub009/internal/games"
	"github.com/baymax-09/roobet-casino-sub009/internal/models"
)

// RedisService backs every persistence contract of the engine: the
// active-game store, the history store, the round store, the lock service
// and the wallet. Records are JSON under namespaced keys.
type RedisService struct {
	client           *redis.Client
	historyRetention time.Duration
}

func NewRedisService(cfg *config.Config) (*RedisService, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %v", err)
	}

	return &RedisService{
		client:           client,
		historyRetention: cfg.HistoryRetention,
	}, nil
}

func (s *RedisService) Close() error {
	return s.client.Close()
}

// --- ActiveGameStore ---

func (s *RedisService) GetActiveGame(ctx context.Context, userID int64, variant games.Variant) (*models.ActiveGame, error) {
	key := fmt.Sprintf(KeyActiveGame, userID, variant)

	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, ErrNoActiveGame
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active game: %v", err)
	}

	var game models.ActiveGame
	if err := json.Unmarshal([]byte(data), &game); err != nil {
		return nil, fmt.Errorf("failed to unmarshal active game: %v", err)
	}
	return &game, nil
}

// InsertActiveGame is the atomic insert-if-absent behind the at-most-one
// invariant: SETNX on the (user, variant) key, no read-modify-write.
func (s *RedisService) InsertActiveGame(ctx context.Context, game *models.ActiveGame) error {
	key := fmt.Sprintf(KeyActiveGame, game.UserID, game.Config.Variant)

	data, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("failed to marshal active game: %v", err)
	}

	ok, err := s.client.SetNX(ctx, key, data, TTLActiveGame).Result()
	if err != nil {
		return fmt.Errorf("failed to insert active game: %v", err)
	}
	if !ok {
		return ErrActiveGameExists
	}
	return nil
}

func (s *RedisService) UpdatePlayedCell(ctx context.Context, game *models.ActiveGame, cell games.CellIndex, kind games.CellKind) error {
	game.Played[cell] = kind
	game.UpdatedAt = time.Now()

	key := fmt.Sprintf(KeyActiveGame, game.UserID, game.Config.Variant)
	data, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("failed to marshal active game: %v", err)
	}

	// XX: the record must still exist, a concurrent terminal transition is
	// excluded by the per-user lock anyway
	ok, err := s.client.SetXX(ctx, key, data, redis.KeepTTL).Result()
	if err != nil {
		return fmt.Errorf("failed to update active game: %v", err)
	}
	if !ok {
		return ErrNoActiveGame
	}
	return nil
}

func (s *RedisService) DeleteActiveGame(ctx context.Context, userID int64, variant games.Variant) error {
	key := fmt.Sprintf(KeyActiveGame, userID, variant)
	return s.client.Del(ctx, key).Err()
}

// --- HistoryStore ---

func (s *RedisService) InsertHistory(ctx context.Context, record *models.HistoryRecord) error {
	key := fmt.Sprintf(KeyHistory, record.BetID)

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal history record: %v", err)
	}

	if err := s.client.Set(ctx, key, data, s.historyRetention).Err(); err != nil {
		return fmt.Errorf("failed to save history record: %v", err)
	}

	userKey := fmt.Sprintf(KeyUserHistory, record.UserID)
	if err := s.client.ZAdd(ctx, userKey, redis.Z{
		Score:  float64(record.EndedAt.Unix()),
		Member: record.BetID,
	}).Err(); err != nil {
		return fmt.Errorf("failed to index history record: %v", err)
	}

	// Keep the per-user index bounded
	s.client.ZRemRangeByRank(ctx, userKey, 0, -501)
	s.client.Expire(ctx, userKey, s.historyRetention)

	return nil
}

func (s *RedisService) GetHistoryByBet(ctx context.Context, betID string) (*models.HistoryRecord, error) {
	key := fmt.Sprintf(KeyHistory, betID)

	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, ErrTooOldToVerify
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get history record: %v", err)
	}

	var record models.HistoryRecord
	if err := json.Unmarshal([]byte(data), &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal history record: %v", err)
	}
	return &record, nil
}

func (s *RedisService) GetHistoryByUser(ctx context.Context, userID int64, limit int64) ([]*models.HistoryRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	userKey := fmt.Sprintf(KeyUserHistory, userID)
	betIDs, err := s.client.ZRevRange(ctx, userKey, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %v", err)
	}

	var records []*models.HistoryRecord
	for _, betID := range betIDs {
		record, err := s.GetHistoryByBet(ctx, betID)
		if err != nil {
			// expired out of retention, the index entry just outlived it
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

// --- RoundStore ---

func (s *RedisService) SaveRound(ctx context.Context, round *models.Round) error {
	key := fmt.Sprintf(KeyRound, round.ID)

	data, err := json.Marshal(round)
	if err != nil {
		return fmt.Errorf("failed to marshal round: %v", err)
	}
	return s.client.Set(ctx, key, data, TTLRound).Err()
}

func (s *RedisService) GetRound(ctx context.Context, roundID string) (*models.Round, error) {
	key := fmt.Sprintf(KeyRound, roundID)

	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, ErrNoRound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get round: %v", err)
	}

	var round models.Round
	if err := json.Unmarshal([]byte(data), &round); err != nil {
		return nil, fmt.Errorf("failed to unmarshal round: %v", err)
	}
	return &round, nil
}

func (s *RedisService) NextNonce(ctx context.Context, userID int64) (int64, error) {
	key := fmt.Sprintf(KeyUserNonce, userID)
	nonce, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to advance nonce: %v", err)
	}
	return nonce, nil
}

// --- Locker ---

// Acquire takes a short-lived SETNX lock. Contention is not retried here:
// the caller surfaces ErrTooManyRequests straight to the player.
func (s *RedisService) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	lockKey := fmt.Sprintf(KeyLock, key)

	ok, err := s.client.SetNX(ctx, lockKey, "1", ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %v", err)
	}
	if !ok {
		return nil, ErrTooManyRequests
	}

	return func() {
		s.client.Del(context.Background(), lockKey)
	}, nil
}

// --- Wallet ---

func (s *RedisService) GetWallet(ctx context.Context, userID int64) (*models.Wallet, error) {
	key := fmt.Sprintf(KeyWallet, userID)

	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		wallet := &models.Wallet{
			UserID:  userID,
			Balance: 10000, // demo starting balance
		}
		if err := s.SaveWallet(ctx, wallet); err != nil {
			return nil, fmt.Errorf("failed to create wallet: %v", err)
		}
		return wallet, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %v", err)
	}

	var wallet models.Wallet
	if err := json.Unmarshal([]byte(data), &wallet); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wallet: %v", err)
	}
	return &wallet, nil
}

func (s *RedisService) SaveWallet(ctx context.Context, wallet *models.Wallet) error {
	key := fmt.Sprintf(KeyWallet, wallet.UserID)

	data, err := json.Marshal(wallet)
	if err != nil {
		return fmt.Errorf("failed to marshal wallet: %v", err)
	}
	return s.client.Set(ctx, key, data, 0).Err()
}

var lockBalanceScript = redis.NewScript(`
	local key = KEYS[1]
	local amount = tonumber(ARGV[1])

	local data = redis.call("GET", key)
	if not data then
		return redis.error_reply("wallet not found")
	end

	local wallet = cjson.decode(data)

	if wallet.balance < amount then
		return redis.error_reply("insufficient balance")
	end

	wallet.balance = wallet.balance - amount
	wallet.locked_balance = wallet.locked_balance + amount
	wallet.total_wagered = wallet.total_wagered + amount

	redis.call("SET", key, cjson.encode(wallet))
	return "OK"
`)

// LockBalance moves the stake from balance to locked, atomically.
func (s *RedisService) LockBalance(ctx context.Context, userID int64, amount float64) error {
	key := fmt.Sprintf(KeyWallet, userID)
	return lockBalanceScript.Run(ctx, s.client, []string{key}, amount).Err()
}

var releaseBalanceScript = redis.NewScript(`
	local key = KEYS[1]
	local amount = tonumber(ARGV[1])
	local payout = tonumber(ARGV[2])

	local data = redis.call("GET", key)
	if not data then
		return redis.error_reply("wallet not found")
	end

	local wallet = cjson.decode(data)

	wallet.locked_balance = wallet.locked_balance - amount
	if wallet.locked_balance < 0 then
		wallet.locked_balance = 0
	end

	if payout > 0 then
		wallet.balance = wallet.balance + payout
		wallet.total_won = wallet.total_won + payout
	end

	redis.call("SET", key, cjson.encode(wallet))
	return "OK"
`)

// ReleaseBalance releases the locked stake and credits the payout (0 on a
// loss, the stake itself on a void).
func (s *RedisService) ReleaseBalance(ctx context.Context, userID int64, amount, payout float64) error {
	key := fmt.Sprintf(KeyWallet, userID)
	return releaseBalanceScript.Run(ctx, s.client, []string{key}, amount, payout).Err()
}

// --- Transactions ---

func (s *RedisService) SaveTransaction(ctx context.Context, tx *models.Transaction) error {
	txKey := fmt.Sprintf(KeyTransaction, tx.ID)

	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %v", err)
	}
	if err := s.client.Set(ctx, txKey, data, TTLTransaction).Err(); err != nil {
		return fmt.Errorf("failed to save transaction: %v", err)
	}

	userKey := fmt.Sprintf(KeyUserTxs, tx.UserID)
	if err := s.client.ZAdd(ctx, userKey, redis.Z{
		Score:  float64(tx.CreatedAt.Unix()),
		Member: tx.ID,
	}).Err(); err != nil {
		return fmt.Errorf("failed to index transaction: %v", err)
	}

	// Keep only the last 100
	s.client.ZRemRangeByRank(ctx, userKey, 0, -101)
	return nil
}

func (s *RedisService) GetUserTransactions(ctx context.Context, userID int64, limit int64) ([]*models.Transaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	userKey := fmt.Sprintf(KeyUserTxs, userID)
	txIDs, err := s.client.ZRevRange(ctx, userKey, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %v", err)
	}

	var transactions []*models.Transaction
	for _, txID := range txIDs {
		data, err := s.client.Get(ctx, fmt.Sprintf(KeyTransaction, txID)).Result()
		if err != nil {
			continue
		}
		var tx models.Transaction
		if err := json.Unmarshal([]byte(data), &tx); err != nil {
			continue
		}
		transactions = append(transactions, &tx)
	}
	return transactions, nil
}

// --- Bets ---

func (s *RedisService) SaveBet(ctx context.Context, bet *models.Bet) error {
	key := fmt.Sprintf(KeyBet, bet.ID)

	data, err := json.Marshal(bet)
	if err != nil {
		return fmt.Errorf("failed to marshal bet: %v", err)
	}
	return s.client.Set(ctx, key, data, TTLBet).Err()
}

func (s *RedisService) GetBet(ctx context.Context, betID string) (*models.Bet, error) {
	key := fmt.Sprintf(KeyBet, betID)

	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, fmt.Errorf("bet not found: %s", betID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bet: %v", err)
	}

	var bet models.Bet
	if err := json.Unmarshal([]byte(data), &bet); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bet: %v", err)
	}
	return &bet, nil
}

// --- Rate limiting ---

func (s *RedisService) CheckRateLimit(ctx context.Context, userID int64, action string, limit int, window time.Duration) (bool, error) {
	key := fmt.Sprintf(KeyRateLimit, userID, action)

	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit: %v", err)
	}
	if count == 1 {
		s.client.Expire(ctx, key, window)
	}
	return count <= int64(limit), nil
}
