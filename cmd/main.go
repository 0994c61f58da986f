package main

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"doudizhu/config"
	"doudizhu/internal/api"
	"doudizhu/internal/game/lobby"
	"doudizhu/internal/game/manager"
	"doudizhu/internal/storage"
	"doudizhu/internal/utils"
	"doudizhu/internal/websocket"
)

func main() {
	config.Load()
	utils.Init()

	//-------------------------------------------------------
	// 1. Presence index: in-memory by default, redis if enabled
	//-------------------------------------------------------
	repo := lobby.NewMemoryRepo()
	if config.C.Redis.Enabled {
		if err := storage.InitRedis(
			config.C.Redis.Addr,
			config.C.Redis.Password,
			config.C.Redis.DB,
		); err != nil {
			utils.Error.Fatalf("Redis init failed: %v", err)
		}
		repo = lobby.NewRedisRepo(storage.Rdb)
	}

	//-------------------------------------------------------
	// 2. Gin + CORS
	//-------------------------------------------------------
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	//-------------------------------------------------------
	// 3. Hub (must run before anything can notify)
	//-------------------------------------------------------
	hub := websocket.NewHub()
	go hub.Run()

	//-------------------------------------------------------
	// 4. Lobby directory + game manager
	//-------------------------------------------------------
	g := config.C.Game
	dir := lobby.NewDirectory(lobby.Config{
		Seats:           g.Seats,
		OpeningHandSize: g.OpeningHandSize,
		ReserveSize:     g.ReserveSize,
		MoveTicks:       g.MoveSeconds,
		ShortTicks:      g.ShortSeconds,
		TickInterval:    g.TickInterval,
		BidCap:          g.BidCap,
	}, g.SimplePairBias, g.AdvancedPairBias, g.PlayerTTL, hub, repo)

	gameMgr := manager.NewGameManager(dir, hub)
	hub.OnIncoming = gameMgr.HandlePlayerMessage
	hub.OnDisconnect = gameMgr.HandleDisconnect

	//-------------------------------------------------------
	// 5. Routes: websocket entry + read-only status API
	//-------------------------------------------------------
	r.GET("/ws", websocket.ServeWS(hub))
	api.Register(r, dir)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	//-------------------------------------------------------
	// 6. Serve
	//-------------------------------------------------------
	utils.Info.Printf("Server running on %s", config.C.Server.Port)
	if err := r.Run(config.C.Server.Port); err != nil {
		utils.Error.Fatalf("server stopped: %v", err)
	}
}
