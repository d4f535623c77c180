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

	"codementor-backend/internal/config"
	"codementor-backend/internal/db"
	"codementor-backend/internal/httpapi"
	"codementor-backend/internal/store/rabbitmq"
	"codementor-backend/internal/store/redisstore"
)

func main() {
	cfg := config.Load()

	gdb := db.Connect(cfg.DBDSN)

	// Redis backs rate limiting only; run without it if unreachable.
	var rds *redisstore.Store
	if cfg.RedisAddr != "" {
		s := redisstore.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := s.Ping(pingCtx)
		cancel()
		if err != nil {
			log.Printf("redis unavailable, rate limiting disabled: %v", err)
			_ = s.Close()
		} else {
			rds = s
			defer rds.Close()
		}
	}

	// Broker backs welcome-email events only; run without it if unreachable.
	var pub *rabbitmq.Publisher
	if cfg.RabbitURL != "" {
		p, err := rabbitmq.NewPublisher(cfg.RabbitURL, cfg.RabbitQueue)
		if err != nil {
			log.Printf("rabbit unavailable, signup events disabled: %v", err)
		} else {
			pub = p
			defer pub.Close()
		}
	}

	r := httpapi.NewRouter(gdb, cfg, rds, pub)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 2 * time.Minute, // provider round trips ride the request
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("api listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	log.Printf("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
