// Package server exposes the admin console over HTTP: a JSON API the
// frontend drives screen by screen, plus a websocket listener for live
// updates. Every platform call runs through a per-session client, so
// one operator's token never serves another operator's request.
package server

import (
	"net/http"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/axiomconsultancy/axiom-admin-go/assist"
	"github.com/axiomconsultancy/axiom-admin-go/axiom"
	"github.com/axiomconsultancy/axiom-admin-go/export"
	"github.com/axiomconsultancy/axiom-admin-go/redis"
	"github.com/axiomconsultancy/axiom-admin-go/session"
	"github.com/axiomconsultancy/axiom-admin-go/voices"
)

// Options carries the dependencies wired up in main.
type Options struct {
	Platform       *axiom.Client
	Sessions       *session.Store
	Redis          *redis.Client
	Voices         *voices.Cache
	Exporter       *export.Exporter
	Assist         assist.Client
	AllowedOrigins []string
}

type Server struct {
	app      *fiber.App
	platform *axiom.Client
	sessions *session.Store
	redis    *redis.Client
	voices   *voices.Cache
	exporter *export.Exporter
	assist   assist.Client
	state    *stateCache
	live     *LiveHub
	origins  []string
}

func New(opts Options) *Server {
	server := &Server{
		app:      fiber.New(),
		platform: opts.Platform,
		sessions: opts.Sessions,
		redis:    opts.Redis,
		voices:   opts.Voices,
		exporter: opts.Exporter,
		assist:   opts.Assist,
		state:    newStateCache(opts.Platform),
		live:     NewLiveHub(),
		origins:  opts.AllowedOrigins,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

// Start runs the console API. It blocks until the listener fails.
func (s *Server) Start(port string) {
	log.Info().Str("port", port).Msg("Starting console server")

	err := s.app.Listen(":"+port, fiber.ListenConfig{
		DisableStartupMessage: true,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}

// StartLive runs the websocket listener on its own port. Fiber v3 has
// no websocket support yet, so live connections are served by a plain
// net/http listener next to the Fiber app.
func (s *Server) StartLive(port string) {
	s.live.Start()

	mux := http.NewServeMux()
	mux.HandleFunc("/console/live", s.liveHandler)

	log.Info().Str("port", port).Msg("Starting live update listener")

	if err := http.ListenAndServe(":"+port, mux); err != nil {
		log.Fatal().Err(err).Msg("Failed to start live update listener")
	}
}
