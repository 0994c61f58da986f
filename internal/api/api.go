package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"doudizhu/internal/game/lobby"
)

// Register mounts the read-only status routes. Nothing here mutates game
// state; it exists so operators can peek at live lobbies.
func Register(r *gin.Engine, dir *lobby.Directory) {
	started := time.Now()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})

	r.GET("/api/lobbies", func(c *gin.Context) {
		info := dir.LobbyInfo()
		total := 0
		for _, l := range info {
			total += l.Players
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"lobbies":      info,
				"totalLobbies": len(info),
				"totalPlayers": total,
			},
		})
	})

	r.GET("/api/lobbies/:lobbyId/table", func(c *gin.Context) {
		l, ok := dir.LobbyByID(c.Param("lobbyId"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Lobby not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": l.TableSnapshot()})
	})

	r.GET("/api/stats", func(c *gin.Context) {
		info := dir.LobbyInfo()
		players := 0
		for _, l := range info {
			players += l.Players
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"uptime":  time.Since(started).Seconds(),
				"lobbies": len(info),
				"players": players,
			},
		})
	})
}
