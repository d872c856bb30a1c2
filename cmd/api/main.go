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

	"github.com/cloudwego/eino/components/model"
	"github.com/joho/godotenv"

	"github.com/linmiao/lumipet/backend/internal/config"
	"github.com/linmiao/lumipet/backend/internal/engine"
	"github.com/linmiao/lumipet/backend/internal/engine/cooldown"
	"github.com/linmiao/lumipet/backend/internal/engine/resolve"
	"github.com/linmiao/lumipet/backend/internal/handler"
	"github.com/linmiao/lumipet/backend/internal/model/persona"
	speechModel "github.com/linmiao/lumipet/backend/internal/model/speech"
	"github.com/linmiao/lumipet/backend/internal/service/ai"
	moodservice "github.com/linmiao/lumipet/backend/internal/service/mood"
	sessionservice "github.com/linmiao/lumipet/backend/internal/service/session"
	"github.com/linmiao/lumipet/backend/internal/service/speech"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	personaStore := persona.NewMemoryStore(persona.Seed())

	// The chat model powers both reply generation and the optional mood
	// classifier; everything below degrades cleanly without it.
	var chatModel model.ChatModel
	if cfg.AI.Enabled() {
		chatModel, err = cfg.AI.NewChatModel(ctx)
		if err != nil {
			log.Printf("warning: failed to create chat model: %v", err)
			chatModel = nil
		}
	} else {
		log.Println("model credentials not configured, replies fall back to local corpora")
	}

	moodCfg := moodservice.Config{Enabled: cfg.AI.MoodLLMEnabled}
	moodSvc, err := moodservice.NewService(ctx, chatModel, moodCfg)
	if err != nil {
		log.Printf("warning: failed to initialize mood service: %v", err)
		moodSvc = nil
	} else if moodSvc.Enabled() {
		log.Println("mood classifier enabled")
	} else if moodCfg.Enabled {
		log.Println("mood classifier requested but chat model unavailable, using heuristics")
	}

	var generator resolve.Generator
	if chatModel != nil {
		aiSvc, aiErr := ai.NewService(ctx, chatModel, moodSvc)
		if aiErr != nil {
			log.Printf("warning: failed to initialize AI service: %v", aiErr)
		} else {
			generator = aiSvc
			log.Println("AI service initialized successfully")
		}
	}

	var speechSvc *speech.Service
	if cfg.Speech.Enabled {
		speechSvc = speech.NewService(&speechModel.Config{
			AppID:       cfg.Speech.AppID,
			AccessToken: cfg.Speech.AccessToken,
			AccessKey:   cfg.Speech.AccessKey,
			SecretKey:   cfg.Speech.SecretKey,
			TTSSpeed:    cfg.Speech.TTSSpeed,
			TTSVolume:   cfg.Speech.TTSVolume,
			Timeout:     cfg.Speech.Timeout,
		})
		log.Println("speech service initialized successfully")
	} else {
		log.Println("speech credentials not configured, skipping voice synthesis")
	}

	sessionSvc := sessionservice.NewService(personaStore, engine.Options{
		Windows: cooldown.Windows{
			Feed:  cfg.Engine.FeedCooldown,
			Water: cfg.Engine.WaterCooldown,
			Pet:   cfg.Engine.PetCooldown,
			Play:  cfg.Engine.PlayCooldown,
		},
		RemoteTimeout: cfg.Engine.RemoteTimeout,
		Generator:     generator,
	})

	router := handler.NewRouter(personaStore, sessionSvc, speechSvc)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Lumipet backend listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
