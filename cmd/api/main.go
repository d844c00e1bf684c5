package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/suittrip/backend/internal/config"
	"github.com/suittrip/backend/internal/infrastructure/dynamo"
	jwtinfra "github.com/suittrip/backend/internal/infrastructure/jwt"
	s3infra "github.com/suittrip/backend/internal/infrastructure/s3"
	"github.com/suittrip/backend/internal/infrastructure/smtp"
	"github.com/suittrip/backend/internal/infrastructure/sns"
	transporthttp "github.com/suittrip/backend/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	// JWT provider (optional, graceful fallback if keys are missing).
	var jwtProvider *jwtinfra.Provider
	if p, err := jwtinfra.NewProvider(cfg); err == nil {
		jwtProvider = p
	} else {
		slog.Warn("JWT provider not available", "error", err)
	}

	// S3 store for luggage photos.
	s3Client := s3infra.NewClient(cfg)
	s3Store := s3infra.NewStore(s3Client, cfg.S3BucketName)

	// SMTP mailer for verification codes.
	mailer := smtp.NewMailer(cfg)

	// SNS SMS sender (optional, graceful fallback).
	var smsSender sns.SMSSender
	if sender, err := sns.NewSender(cfg); err == nil {
		smsSender = sender
	} else {
		slog.Warn("SNS sender not available", "error", err)
	}

	deps := &transporthttp.Deps{
		StoreRepo:        dynamo.NewStoreRepo(dynamoClient, cfg.DynamoTables.Stores),
		SessionRepo:      dynamo.NewSessionRepo(dynamoClient, cfg.DynamoTables.Sessions),
		VerificationRepo: dynamo.NewVerificationRepo(dynamoClient, cfg.DynamoTables.EmailVerifications),
		StorageRepo:      dynamo.NewStorageRepo(dynamoClient, cfg.DynamoTables.Storages),
		ReservationRepo:  dynamo.NewReservationRepo(dynamoClient, cfg.DynamoTables.Reservations),
		ReviewRepo:       dynamo.NewReviewRepo(dynamoClient, cfg.DynamoTables.Reviews),
		NotificationRepo: dynamo.NewNotificationRepo(dynamoClient, cfg.DynamoTables.Notifications),
		CheckinRepo:      dynamo.NewCheckinRepo(dynamoClient, cfg.DynamoTables.Checkins),
		S3Store:          s3Store,
		Mailer:           mailer,
		SMSSender:        smsSender,
		JWTProvider:      jwtProvider,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.AppPort, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	slog.Info("server stopped")
}
