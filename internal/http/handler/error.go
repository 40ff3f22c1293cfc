package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/marcinwojcik-dev/capital-marketplace-backend/internal/http/middleware"
	"github.com/marcinwojcik-dev/capital-marketplace-backend/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
// - details: optional per-file messages safe to show the caller
func writeError(c *fiber.Ctx, status int, code, message string, details ...string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
	return c.Status(status).JSON(res)
}

// writeServiceError translates the service error taxonomy into HTTP responses.
// Validation and infection outcomes are the caller's fault (400); ownership
// failures distinguish unknown ids (404) from foreign ones (403); everything
// else is an internal failure with a stable code.
func writeServiceError(c *fiber.Ctx, err error) error {
	var vErr *service.ValidationError
	if errors.As(err, &vErr) {
		return writeError(c, fiber.StatusBadRequest, "FILE_VALIDATION_FAILED", "one or more files were rejected", vErr.Details...)
	}

	var infErr *service.InfectedError
	if errors.As(err, &infErr) {
		return writeError(c, fiber.StatusBadRequest, "SCAN_INFECTED", "virus detected in uploaded files", infErr.Files...)
	}

	var pErr *service.PartialUploadError
	if errors.As(err, &pErr) {
		return writeError(c, fiber.StatusInternalServerError, "PARTIAL_UPLOAD_FAILURE", "some files could not be saved", pErr.Details...)
	}

	switch {
	case errors.Is(err, service.ErrNoFiles):
		return writeError(c, fiber.StatusBadRequest, "NO_FILES_UPLOADED", "no files uploaded")
	case errors.Is(err, service.ErrScanUnavailable):
		return writeError(c, fiber.StatusInternalServerError, "SCAN_UNAVAILABLE", "virus scanning service is unavailable")
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
	case errors.Is(err, service.ErrAccessDenied):
		return writeError(c, fiber.StatusForbidden, "ACCESS_DENIED", "document belongs to another company")
	case errors.Is(err, service.ErrFileAccess):
		return writeError(c, fiber.StatusInternalServerError, "FILE_ACCESS_ERROR", "stored file could not be read")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		message := ""
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
			message = e.Message
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusUnauthorized:
			if message == "" {
				message = "authentication required"
			}
			return writeError(c, status, "UNAUTHORIZED", message)
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
