package server

import (
	"encoding/json"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/axiomconsultancy/axiom-admin-go/datatable"
	"github.com/axiomconsultancy/axiom-admin-go/forms"
)

// healthHandler handles GET /health
func (s *Server) healthHandler(c fiber.Ctx) error {
	return c.JSON(map[string]any{
		"status":       "healthy",
		"live_clients": s.live.ClientCount(),
	})
}

// voicesHandler handles GET /console/voices. The merged catalog is
// served from the cache; a search goes to the platform and is never
// merged back.
func (s *Server) voicesHandler(c fiber.Ctx) error {
	_, state := s.consoleFor(c)

	if query := c.Query("search"); query != "" {
		found, err := s.voices.Search(c.Context(), state.client, query)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(found)
	}

	if c.Query("refresh") == "" && s.voices.Len() > 0 {
		return c.JSON(s.voices.All())
	}

	catalog, err := s.voices.Refresh(c.Context(), state.client)
	if err != nil {
		if cached := s.voices.All(); len(cached) > 0 {
			log.Warn().Err(err).Msg("Voice catalog refresh failed, serving cached snapshot")
			return c.JSON(cached)
		}
		return respondError(c, err)
	}
	return c.JSON(catalog)
}

// layoutGetHandler handles GET /console/layout/:screen
func (s *Server) layoutGetHandler(c fiber.Ctx) error {
	sess := sessionFrom(c)

	screen := c.Params("screen")
	if _, known := knownScreens[screen]; !known {
		return badRequest(c, "Unknown screen: "+screen)
	}

	layout, _ := s.savedLayout(sess.UserID, screen)
	return c.JSON(layout)
}

// layoutPutHandler handles PUT /console/layout/:screen
func (s *Server) layoutPutHandler(c fiber.Ctx) error {
	sess := sessionFrom(c)

	screen := c.Params("screen")
	if _, known := knownScreens[screen]; !known {
		return badRequest(c, "Unknown screen: "+screen)
	}

	var layout datatable.Layout
	if err := c.Bind().Body(&layout); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}

	data, err := json.Marshal(layout)
	if err != nil {
		return respondError(c, err)
	}
	if err := s.redis.SaveLayout(sess.UserID, screen, data); err != nil {
		return respondError(c, err)
	}

	log.Debug().Str("user_id", sess.UserID).Str("screen", screen).Msg("Layout saved")

	return c.JSON(map[string]string{"message": "Layout saved"})
}

// schemaIndexHandler handles GET /console/schemas
func (s *Server) schemaIndexHandler(c fiber.Ctx) error {
	return c.JSON(map[string][]string{"forms": forms.Names()})
}

// schemaHandler handles GET /console/schemas/:form
func (s *Server) schemaHandler(c fiber.Ctx) error {
	name := c.Params("form")

	schema, exists := forms.Schema(name)
	if !exists {
		return c.Status(fiber.StatusNotFound).JSON(errorBody("UNKNOWN_FORM", "No schema for form: "+name))
	}
	return c.JSON(schema)
}
