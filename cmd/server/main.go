package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"impostor"
	"impostor/internal/config"
	"impostor/internal/game"
	"impostor/internal/handlers"
	"impostor/internal/narrative"
	"impostor/internal/store"
)

func main() {
	// Local development convenience; missing .env is fine
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	cfg, err := config.LoadConfig("")
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}
	log.Printf("Loaded configuration: min players = %d, auto-start cap = %d", cfg.Game.MinPlayers, cfg.Game.AutoStartCap)

	// Topic pool: config override first, embedded defaults otherwise.
	// Fail-fast so a broken pool never reaches a live table.
	var topics *game.TopicService
	if len(cfg.Game.Topics) > 0 {
		topics, err = game.NewTopicServiceFromList(cfg.Game.Topics)
	} else {
		topics, err = game.NewTopicService(impostor.TopicsYAML)
	}
	if err != nil {
		log.Fatal("Failed to initialize topic service: ", err)
	}
	log.Printf("Topic pool loaded with %d topics", topics.Len())

	s := store.NewMemoryStore()

	var handlerOpts []handlers.Option
	if cfg.Narration.Enabled {
		generator := narrative.NewOpenAIGenerator(narrative.OpenAIConfig{
			APIKey:         cfg.Narration.APIKey,
			Model:          cfg.Narration.Model,
			CompletionsURL: cfg.Narration.URL,
		})
		handlerOpts = append(handlerOpts, handlers.WithNarrator(generator))
		log.Printf("Narration enabled with model %s", cfg.Narration.Model)
	}

	h := handlers.New(s, cfg, topics, handlerOpts...)
	r := handlers.SetupRouter(h, cfg, nil)

	// Reap sessions abandoned past the configured timeout
	reaperDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-reaperDone:
				return
			case <-ticker.C:
				if removed := s.ReapIdle(cfg.Server.SessionTimeout); removed > 0 {
					log.Printf("Reaped %d idle sessions", removed)
				}
			}
		}
	}()

	addr := cfg.Server.Host + ":" + cfg.Server.Port

	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout, // 0 for SSE support
	}

	go func() {
		log.Printf("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start:", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	close(reaperDone)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server gracefully stopped")
}
