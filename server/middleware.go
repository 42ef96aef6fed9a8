package server

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/axiomconsultancy/axiom-admin-go/session"
)

// Auth endpoints reachable without a session. Everything else under
// /console requires one.
var openAuthPaths = map[string]struct{}{
	"/console/auth/signin":          {},
	"/console/auth/signup":          {},
	"/console/auth/verify-otp":      {},
	"/console/auth/resend-otp":      {},
	"/console/auth/forgot-password": {},
	"/console/auth/reset-password":  {},
}

// setupMiddleware configures middleware for the server
func (s *Server) setupMiddleware() {
	s.app.Use(recover.New())

	s.app.Use(logger.New())

	s.app.Use(cors.New(cors.Config{
		AllowOrigins:     s.origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Add JSON content type for console endpoints
	s.app.Use("/console/*", func(c fiber.Ctx) error {
		c.Set("Content-Type", "application/json")
		return c.Next()
	})

	s.app.Use("/console/*", s.requireSession)

	for _, prefix := range []string{"/console/users", "/console/plans", "/console/coupons"} {
		s.app.Use(prefix, s.requireAdmin)
	}
}

// requireSession resolves the sid cookie, or a bearer header for
// scripted clients, into a session stored in the request locals.
func (s *Server) requireSession(c fiber.Ctx) error {
	if _, open := openAuthPaths[c.Path()]; open {
		return c.Next()
	}

	sessionID := c.Cookies(sessionCookie)
	if sessionID == "" {
		if header := c.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
			sessionID = strings.TrimPrefix(header, "Bearer ")
		}
	}
	if sessionID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(errorBody("UNAUTHORIZED", "Sign in to use the console"))
	}

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return respondError(c, err)
	}

	c.Locals(sessionKey, sess)
	return c.Next()
}

// requireAdmin guards the screens only admins may use.
func (s *Server) requireAdmin(c fiber.Ctx) error {
	if !sessionFrom(c).IsAdmin() {
		return c.Status(fiber.StatusForbidden).JSON(errorBody("FORBIDDEN", "Admin role required"))
	}
	return c.Next()
}

// sessionFrom reads the session stored by requireSession.
func sessionFrom(c fiber.Ctx) session.Session {
	sess, _ := c.Locals(sessionKey).(session.Session)
	return sess
}
