package main

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/axiomconsultancy/axiom-admin-go/assist"
	"github.com/axiomconsultancy/axiom-admin-go/axiom"
	"github.com/axiomconsultancy/axiom-admin-go/config"
	"github.com/axiomconsultancy/axiom-admin-go/export"
	"github.com/axiomconsultancy/axiom-admin-go/redis"
	"github.com/axiomconsultancy/axiom-admin-go/server"
	"github.com/axiomconsultancy/axiom-admin-go/session"
	"github.com/axiomconsultancy/axiom-admin-go/voices"
)

func main() {
	cfg := config.Load()

	redisClient := redis.NewClient(
		cfg.RedisAddr,
		cfg.RedisPassword,
		cfg.RedisDB,
	)

	sessions := session.NewStore(&redisClient, time.Duration(cfg.SessionTTLHours)*time.Hour)

	platform := axiom.NewClient(cfg.AxiomAPIBaseURL, &http.Client{
		Timeout: 30 * time.Second,
	})

	log.Info().Str("base_url", platform.BaseURL()).Msg("Platform client ready")

	voiceCache := voices.NewCache(&redisClient, 24*time.Hour)
	voiceCache.WarmStart()

	exporter := export.NewExporter(cfg.S3Region, cfg.S3Bucket)

	assistClient := assist.NewClient(cfg.OpenAIKey, http.Client{
		Timeout: 60 * time.Second,
	})

	srv := server.New(server.Options{
		Platform:       platform,
		Sessions:       sessions,
		Redis:          &redisClient,
		Voices:         voiceCache,
		Exporter:       exporter,
		Assist:         assistClient,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	go srv.StartLive(cfg.LivePort)

	srv.Start(cfg.Port)
}
