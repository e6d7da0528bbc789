// Package handlers provides HTTP request handling
package handlers

import fiber "github.com/gofiber/fiber/v2"

// Common error messages
const (
	ErrMsgInvalidReqBody = "Invalid request body"
	ErrMsgNotReady       = "Database is not reachable"
)

// Project error messages
const (
	ErrMsgProjIDRequired   = "Project id is required"
	ErrMsgProjNotFound     = "Project not found"
	ErrMsgProjCreateFailed = "Failed to create project"
	ErrMsgProjListFailed   = "Failed to list projects"
	ErrMsgProjDeleteFailed = "Failed to delete project"
	ErrMsgProjGetFailed    = "Failed to get project"
)

// respondWithError writes the standard {"error": message} body
func respondWithError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}
