package controller

import (
	"errors"

	"maritime-assistant-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// parseID treats a malformed id like an unknown one.
func parseID(ctx *fiber.Ctx, notFound string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusNotFound, notFound)
	}
	return id, nil
}

func parseBody(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	return serverutils.ValidateRequest(out)
}

// toolError writes the bare {"error": ...} body used by the maritime tools.
func toolError(ctx *fiber.Ctx, status int, message string) error {
	return ctx.Status(status).JSON(serverutils.ToolError{Error: message})
}

// toolBadRequest answers body and validation failures in the tool format and
// passes anything else on to the error handler.
func toolBadRequest(ctx *fiber.Ctx, err error) error {
	var validationErr *serverutils.ValidationError
	if errors.As(err, &validationErr) {
		return toolError(ctx, fiber.StatusBadRequest, validationErr.Error())
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) && fiberErr.Code == fiber.StatusBadRequest {
		return toolError(ctx, fiber.StatusBadRequest, fiberErr.Message)
	}
	return err
}
