package server

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/axiomconsultancy/axiom-admin-go/assist"
	"github.com/axiomconsultancy/axiom-admin-go/axiom"
	"github.com/axiomconsultancy/axiom-admin-go/console"
	"github.com/axiomconsultancy/axiom-admin-go/session"
)

// ErrorResponse is the envelope every failed request returns.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func errorBody(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}

// errorPayload maps an error to its HTTP status and response envelope.
// Message is always safe to show the operator as a toast.
func errorPayload(err error) (int, ErrorResponse) {
	var inUse *console.ErrDocumentInUse

	switch {
	case errors.Is(err, console.ErrRowBusy):
		return fiber.StatusConflict, errorBody("ROW_BUSY", "Another action on this row is still running")

	case errors.Is(err, console.ErrSuperseded):
		return fiber.StatusConflict, errorBody("SUPERSEDED", "A newer request replaced this one")

	case errors.As(err, &inUse):
		return fiber.StatusConflict, ErrorResponse{Error: ErrorDetail{
			Code:    "DOCUMENT_IN_USE",
			Message: inUse.Error(),
			Details: inUse.Agents,
		}}

	case errors.Is(err, session.ErrNotFound), errors.Is(err, session.ErrExpired):
		return fiber.StatusUnauthorized, errorBody("SESSION_EXPIRED", "Session expired, sign in again")

	case errors.Is(err, assist.ErrEmptyRequest):
		return fiber.StatusBadRequest, errorBody("INVALID_INPUT", "Fill in at least one field to draft a prompt")
	}

	var apiErr axiom.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Status == 0 {
			return fiber.StatusBadGateway, errorBody("NETWORK_ERROR", "Network error, check your connection and retry")
		}
		envelope := errorBody("PLATFORM_ERROR", apiErr.Message)
		if apiErr.Detail != "" {
			envelope.Error.Details = apiErr.Detail
		}
		return apiErr.Status, envelope
	}

	return fiber.StatusInternalServerError, errorBody("INTERNAL_ERROR", "Something went wrong, please retry")
}

// formErrorPayload classifies errors from create and edit submissions.
// The payload builders validate before anything is sent, so an error
// that is not a platform or concurrency failure is a rejected form.
func formErrorPayload(err error) (int, ErrorResponse) {
	status, payload := errorPayload(err)
	if status == fiber.StatusInternalServerError {
		return fiber.StatusBadRequest, errorBody("INVALID_INPUT", err.Error())
	}
	return status, payload
}

func respondError(c fiber.Ctx, err error) error {
	status, payload := errorPayload(err)
	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).Int("status", status).Str("path", c.Path()).Msg("Request failed")
	}
	return c.Status(status).JSON(payload)
}

func respondFormError(c fiber.Ctx, err error) error {
	status, payload := formErrorPayload(err)
	return c.Status(status).JSON(payload)
}

func badRequest(c fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(errorBody("INVALID_INPUT", message))
}

// toastMessage reduces an error to its operator-facing message, used
// where the error rides inside a view instead of the error envelope.
func toastMessage(err error) string {
	var apiErr axiom.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Status == 0 {
			return "Network error, check your connection and retry"
		}
		return apiErr.Message
	}
	return err.Error()
}
