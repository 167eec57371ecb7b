package leaderboard

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds leaderboard service configuration loaded from environment
// variables, with a .env file honored when present.
type Config struct {
	Addr          string
	DBPath        string
	AllowedOrigin string
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	TopLimit      int
}

func LoadConfig() Config {
	// missing .env is fine; real env always wins
	_ = godotenv.Load()

	return Config{
		Addr:          getEnv("LEADERBOARD_ADDR", ":8090"),
		DBPath:        getEnv("LEADERBOARD_DB", "leaderboard.db"),
		AllowedOrigin: getEnv("LEADERBOARD_ORIGIN", "*"),
		ReadTimeout:   parseDuration(getEnv("LEADERBOARD_READ_TIMEOUT", "10s"), 10*time.Second),
		WriteTimeout:  parseDuration(getEnv("LEADERBOARD_WRITE_TIMEOUT", "10s"), 10*time.Second),
		TopLimit:      10,
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}
