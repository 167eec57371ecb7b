package main

import (
	"log"
	"net/http"

	"github.com/soras/bossrun/leaderboard"
)

func main() {
	cfg := leaderboard.LoadConfig()

	store, err := leaderboard.NewStore(cfg.DBPath)
	if err != nil {
		log.Fatalf("leaderboardd: %v", err)
	}
	defer store.Close()

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      leaderboard.NewRouter(cfg, store),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	log.Printf("leaderboardd: listening on %s (db %s)", cfg.Addr, cfg.DBPath)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("leaderboardd: %v", err)
	}
}
