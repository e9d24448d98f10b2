// Command rpsd serves rock/paper/scissors matches over a small HTTP API.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rpsarena/internal/app"
	"rpsarena/internal/bot"
	"rpsarena/internal/config"
	"rpsarena/internal/ports/httpapi"

	"github.com/joho/godotenv"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	_ = godotenv.Load()

	var cfg config.ServerConfig
	if err := config.ParseEnv(&cfg); err != nil {
		log.Fatal(err)
	}

	if err := config.LoadGameConfig(cfg.GameConfig); err != nil {
		log.Printf("game config disabled (using defaults): %v", err)
	}
	if err := bot.LoadIdentities(cfg.Opponents); err != nil {
		log.Printf("opponent identities disabled (using fallback): %v", err)
	}
	game := config.GetGameConfig().Effective()

	level, err := bot.ParseLevel(game.OpponentLevel)
	if err != nil {
		log.Fatal(err)
	}
	tickets, err := app.NewTicketService(cfg.TicketSecret, cfg.TicketIssuer, cfg.TicketTTL)
	if err != nil {
		log.Fatal(err)
	}

	server := httpapi.NewServer(game, tickets, httpapi.NewOpponentFactory(level, cfg.Seed), log.Default())
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      server.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("listening on http://%s (%s opponents, rounds %v)", cfg.HTTPAddr, level, game.RoundsOptions)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	log.Println("stopped")
}
