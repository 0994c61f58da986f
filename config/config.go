package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port string
	}
	Redis struct {
		Enabled  bool
		Addr     string
		Password string
		DB       int
	}
	Game struct {
		Seats            int
		OpeningHandSize  int
		ReserveSize      int
		MoveSeconds      int
		ShortSeconds     int
		TickInterval     time.Duration
		BidCap           int
		PlayerTTL        int
		SimplePairBias   float64
		AdvancedPairBias float64
	}
}

var C Config

func Load() {
	viper.SetConfigFile("config/config.yaml")
	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Failed to read config: %v", err)
	}
	if err := viper.Unmarshal(&C); err != nil {
		log.Fatalf("Failed to parse config: %v", err)
	}
	ApplyDefaults(&C)
}

// ApplyDefaults mirrors the tuning the game shipped with, so the yaml only
// has to override what an operator cares about.
func ApplyDefaults(c *Config) {
	if c.Server.Port == "" {
		c.Server.Port = ":3000"
	}
	g := &c.Game
	if g.Seats == 0 {
		g.Seats = 3
	}
	if g.OpeningHandSize == 0 {
		g.OpeningHandSize = 17
	}
	if g.ReserveSize == 0 {
		g.ReserveSize = 3
	}
	if g.MoveSeconds == 0 {
		g.MoveSeconds = 15
	}
	if g.ShortSeconds == 0 {
		g.ShortSeconds = 5
	}
	if g.TickInterval == 0 {
		g.TickInterval = time.Second
	}
	if g.BidCap == 0 {
		g.BidCap = 3
	}
	if g.PlayerTTL == 0 {
		g.PlayerTTL = 300
	}
	if g.SimplePairBias == 0 {
		g.SimplePairBias = 0.05
	}
	if g.AdvancedPairBias == 0 {
		g.AdvancedPairBias = 0.98
	}
}
