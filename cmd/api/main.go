package main

import (
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"fava_bridge/pkg/api/account"
	"fava_bridge/pkg/api/middleware"
	"fava_bridge/pkg/api/query"
	"fava_bridge/pkg/core/config"
	"fava_bridge/pkg/core/scrape"
	"fava_bridge/pkg/core/upstream"
)

const selectorsPath = "config/selectors.yaml"

func main() {
	// Load environment variables
	godotenv.Load()

	log := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("configuration error")
	}

	// Optional selector override; the built-in defaults match current
	// Fava journal markup.
	selectors := scrape.DefaultSelectors()
	if loaded, err := scrape.LoadSelectors(selectorsPath); err == nil {
		selectors = loaded
		log.Info().Str("path", selectorsPath).Msg("loaded ledger selectors")
	} else if !os.IsNotExist(err) {
		log.Warn().Err(err).Str("path", selectorsPath).Msg("selector config unreadable, using defaults")
	}

	client := upstream.NewClient(cfg.UpstreamURL, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/query_result", query.NewHandler(client, log).Handle)
	mux.HandleFunc("/api/account/", account.NewHandler(client, selectors, cfg.CurrencyCode, log).Handle)

	handler := middleware.Chain(mux,
		middleware.RequestID,
		middleware.Logger(log),
		middleware.Recovery(log),
		middleware.CORS,
	)

	log.Info().
		Str("addr", cfg.ListenAddr).
		Str("upstream", cfg.UpstreamURL).
		Str("currency", cfg.CurrencyCode).
		Msg("fava_bridge starting")

	if err := http.ListenAndServe(cfg.ListenAddr, handler); err != nil {
		log.Fatal().Err(err).Msg("server failed to start")
	}
}
