package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/baymax-09/roobet-casino-sub009/internal/games"
	"github.com/baymax-09/roobet-casino-sub009/internal/models"
	"github.com/baymax-09/roobet-casino-sub009/internal/services"
)

type GameHandler struct {
	engine       *services.Engine
	redisService *services.RedisService
}

func NewGameHandler(engine *services.Engine, redisService *services.RedisService) *GameHandler {
	return &GameHandler{
		engine:       engine,
		redisService: redisService,
	}
}

// errorStatus maps the engine's sentinel errors onto HTTP statuses.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrTooManyRequests):
		return http.StatusTooManyRequests
	case errors.Is(err, services.ErrNoActiveGame),
		errors.Is(err, services.ErrNoRound),
		errors.Is(err, services.ErrTooOldToVerify):
		return http.StatusNotFound
	case errors.Is(err, services.ErrActiveGameExists),
		errors.Is(err, services.ErrGameStillActive):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func respondError(c *gin.Context, err error) {
	c.JSON(errorStatus(err), gin.H{"error": err.Error()})
}

func (h *GameHandler) rateLimited(c *gin.Context, userID int64, action string, limit int) bool {
	allowed, err := h.redisService.CheckRateLimit(c.Request.Context(), userID, action, limit, time.Minute)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Rate limit check failed"})
		return true
	}
	if !allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Please wait."})
		return true
	}
	return false
}

func (h *GameHandler) StartMines(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req models.StartMinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	cfg, err := games.NewMinesConfig(req.GridSize, req.Mines)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.start(c, userID, cfg, req.BetAmount, req.ClientSeed)
}

func (h *GameHandler) StartFruits(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req models.StartFruitsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	h.start(c, userID, games.NewFruitsConfig(req.Poops), req.BetAmount, req.ClientSeed)
}

func (h *GameHandler) StartTowers(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req models.StartTowersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	cfg, err := games.NewTowersConfig(req.Difficulty)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.start(c, userID, cfg, req.BetAmount, req.ClientSeed)
}

func (h *GameHandler) start(c *gin.Context, userID int64, cfg games.VariantConfig, betAmount float64, clientSeed string) {
	if h.rateLimited(c, userID, "start", services.DefaultRateLimitStart) {
		return
	}

	result, err := h.engine.Start(c.Request.Context(), userID, cfg, betAmount, clientSeed)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"game":    result,
	})
}

func (h *GameHandler) Reveal(variant games.Variant) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt64("user_id")

		var req models.RevealRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		if h.rateLimited(c, userID, "reveal", services.DefaultRateLimitReveal) {
			return
		}

		result, err := h.engine.RevealCell(c.Request.Context(), userID, variant, req.GameID, *req.Cell)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"result":  result,
		})
	}
}

func (h *GameHandler) Cashout(variant games.Variant) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt64("user_id")

		var req models.CashoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		if h.rateLimited(c, userID, "cashout", services.DefaultRateLimitCashout) {
			return
		}

		result, err := h.engine.Cashout(c.Request.Context(), userID, variant, req.GameID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"result":  result,
		})
	}
}

func (h *GameHandler) Verify(variant games.Variant) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt64("user_id")

		betID := c.Query("bet_id")
		if betID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bet_id is required"})
			return
		}

		result, err := h.engine.Verify(c.Request.Context(), userID, variant, betID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":      true,
			"verification": result,
		})
	}
}

func (h *GameHandler) GetActiveGames(c *gin.Context) {
	userID := c.GetInt64("user_id")

	activeGames, err := h.engine.ActiveGames(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch active games", "details": err.Error()})
		return
	}

	var response []gin.H
	for _, game := range activeGames {
		response = append(response, gin.H{
			"id":         game.ID,
			"variant":    game.Config.Variant,
			"config":     game.Config,
			"bet_amount": game.BetAmount,
			"played":     game.Played,
			"round":      game.RoundInfo(),
			"created_at": game.CreatedAt,
			"updated_at": game.UpdatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"games":   response,
		"count":   len(response),
	})
}

func (h *GameHandler) GetGameHistory(c *gin.Context) {
	userID := c.GetInt64("user_id")

	limitStr := c.DefaultQuery("limit", "50")
	limit, err := strconv.ParseInt(limitStr, 10, 64)
	if err != nil || limit <= 0 || limit > 100 {
		limit = 50
	}

	records, err := h.engine.History(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get game history", "details": err.Error()})
		return
	}

	var response []gin.H
	for _, record := range records {
		response = append(response, gin.H{
			"game_id":    record.GameID,
			"bet_id":     record.BetID,
			"variant":    record.Config.Variant,
			"outcome":    record.Outcome,
			"bet_amount": record.BetAmount,
			"multiplier": record.Multiplier,
			"payout":     record.Payout,
			"ended_at":   record.EndedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"games":   response,
		"count":   len(response),
	})
}
