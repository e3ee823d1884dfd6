package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/baymax-09/roobet-casino-sub009/internal/config"
	"github.com/baymax-09/roobet-casino-sub009/internal/games"
	"github.com/baymax-09/roobet-casino-sub009/internal/handlers"
	"github.com/baymax-09/roobet-casino-sub009/internal/middleware"
	"github.com/baymax-09/roobet-casino-sub009/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	redisService, err := services.NewRedisService(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisService.Close()

	jwtService := services.NewJWTService(cfg)
	roundService := services.NewRoundService(redisService)
	ledger := services.NewWalletLedger(redisService)

	wsHandler := handlers.NewWebSocketHandler(redisService)

	engine := services.NewEngine(services.EngineConfig{
		HouseEdge:   cfg.HouseEdge,
		MaxBet:      cfg.MaxBet,
		MaxPayout:   cfg.MaxPayout,
		LockTTL:     cfg.LockTTL,
		VerifyDelay: cfg.VerifyDelay,
	}, redisService, redisService, roundService, ledger, redisService, wsHandler)

	authHandler := handlers.NewAuthHandler(jwtService)
	userHandler := handlers.NewUserHandler(redisService)
	gameHandler := handlers.NewGameHandler(engine, redisService)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.POST("/auth/session", authHandler.CreateSession)

	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware(jwtService))
	{
		protected.GET("/balance", userHandler.GetBalance)
		protected.GET("/transactions", userHandler.GetTransactions)

		protected.GET("/ws", wsHandler.HandleWebSocket)

		gameRoutes := protected.Group("/games")
		{
			gameRoutes.GET("/active", gameHandler.GetActiveGames)
			gameRoutes.GET("/history", gameHandler.GetGameHistory)

			mines := gameRoutes.Group("/mines")
			{
				mines.POST("/start", gameHandler.StartMines)
				mines.POST("/reveal", gameHandler.Reveal(games.VariantMines))
				mines.POST("/cashout", gameHandler.Cashout(games.VariantMines))
				mines.GET("/verify", gameHandler.Verify(games.VariantMines))
			}

			fruits := gameRoutes.Group("/fruits")
			{
				fruits.POST("/start", gameHandler.StartFruits)
				fruits.POST("/reveal", gameHandler.Reveal(games.VariantFruits))
				fruits.POST("/cashout", gameHandler.Cashout(games.VariantFruits))
				fruits.GET("/verify", gameHandler.Verify(games.VariantFruits))
			}

			towers := gameRoutes.Group("/towers")
			{
				towers.POST("/start", gameHandler.StartTowers)
				towers.POST("/reveal", gameHandler.Reveal(games.VariantTowers))
				towers.POST("/cashout", gameHandler.Cashout(games.VariantTowers))
				towers.GET("/verify", gameHandler.Verify(games.VariantTowers))
			}
		}
	}

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
