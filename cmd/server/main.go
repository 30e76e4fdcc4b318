package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpapi "yatzy-backend/internal/api/http"
	"yatzy-backend/internal/api/ws"
	"yatzy-backend/internal/config"
	"yatzy-backend/internal/session"
	"yatzy-backend/internal/store"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	scores, err := store.Open(cfg.ScoreDBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("open score store")
	}
	defer scores.Close()

	reg := session.NewRegistry()
	orch := session.NewOrchestrator(reg, cfg.DiceCount)
	hub := ws.NewHub(orch, cfg.AllowedOrigin)
	orch.SetNotifier(hub)

	r := httpapi.SetupRouter(orch, scores, hub)

	log.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
