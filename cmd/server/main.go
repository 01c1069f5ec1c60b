package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"lead-capture/internal/api"
	"lead-capture/internal/capture"
	"lead-capture/internal/config"
	"lead-capture/internal/database"
	"lead-capture/internal/export"
	"lead-capture/internal/leads"
	"lead-capture/internal/session"
	"lead-capture/internal/verify"
	"lead-capture/internal/ws"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hub := ws.NewHub(cfg.AllowedOrigin)
	go hub.Run(ctx)

	sessions := session.NewMemoryStore(cfg.SessionTTL)
	go sweepSessions(ctx, sessions, cfg.SessionTTL)

	store := leads.NewStore(db)
	verifier := verify.NewClient(verify.Options{
		AccountSID: cfg.TwilioAccountSID,
		AuthToken:  cfg.TwilioAuthToken,
		ServiceSID: cfg.TwilioVerifyServiceSID,
		Channel:    cfg.OTPChannel,
		Timeout:    cfg.ProviderTimeout,
	})
	captureService := capture.NewService(store, verifier, sessions, hub)
	exportService := export.NewService(store)

	r := api.NewRouter(api.RouterDeps{
		Leads:         api.NewLeadHandler(captureService, store),
		Export:        api.NewExportHandler(exportService),
		Health:        store,
		WS:            hub.ServeWs,
		AllowedOrigin: cfg.AllowedOrigin,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.ProviderTimeout + 15*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to run server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}

func sweepSessions(ctx context.Context, s *session.MemoryStore, ttl time.Duration) {
	ticker := time.NewTicker(ttl)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				log.Printf("Swept %d expired verification sessions", n)
			}
		}
	}
}
