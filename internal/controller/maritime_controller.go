package controller

import (
	"maritime-assistant-be/internal/dto"
	"maritime-assistant-be/internal/pkg/logger"
	"maritime-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IMaritimeController interface {
	RegisterRoutes(r fiber.Router)
	Weather(ctx *fiber.Ctx) error
	Laytime(ctx *fiber.Ctx) error
	Distance(ctx *fiber.Ctx) error
	Clause(ctx *fiber.Ctx) error
	Route(ctx *fiber.Ctx) error
	Chat(ctx *fiber.Ctx) error
	Classify(ctx *fiber.Ctx) error
	ConfigureAI(ctx *fiber.Ctx) error
	Ports(ctx *fiber.Ctx) error
}

// maritimeController serves the calculator tools. Responses are the bare
// result, errors are {"error": "..."}.
type maritimeController struct {
	service service.IMaritimeService
	logger  logger.ILogger
}

func NewMaritimeController(service service.IMaritimeService, log logger.ILogger) IMaritimeController {
	return &maritimeController{service: service, logger: log}
}

func (c *maritimeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/maritime")
	h.Post("/weather", c.Weather)
	h.Post("/laytime", c.Laytime)
	h.Post("/distance", c.Distance)
	h.Post("/analyze-clause", c.Clause)
	h.Post("/cp-clause", c.Clause)
	h.Post("/route", c.Route)
	h.Post("/ai-chat", c.Chat)
	h.Post("/classify", c.Classify)
	h.Post("/configure-ai", c.ConfigureAI)
	h.Get("/ports", c.Ports)
}

// fail maps a service error: input problems are 400 with their own text,
// anything else is logged and answered with the generic message.
func (c *maritimeController) fail(ctx *fiber.Ctx, err error, generic string) error {
	if service.IsInputError(err) {
		return toolError(ctx, fiber.StatusBadRequest, err.Error())
	}
	c.logger.Error("MARITIME", generic, map[string]interface{}{
		"path":  ctx.Path(),
		"error": err.Error(),
	})
	return toolError(ctx, fiber.StatusInternalServerError, generic)
}

func (c *maritimeController) Weather(ctx *fiber.Ctx) error {
	var req dto.WeatherRequest
	if err := parseBody(ctx, &req); err != nil {
		return toolBadRequest(ctx, err)
	}

	res, err := c.service.Weather(ctx.UserContext(), &req)
	if err != nil {
		return c.fail(ctx, err, "Failed to fetch weather data")
	}
	return ctx.JSON(res)
}

func (c *maritimeController) Laytime(ctx *fiber.Ctx) error {
	var req dto.LaytimeRequest
	if err := parseBody(ctx, &req); err != nil {
		return toolBadRequest(ctx, err)
	}

	res, err := c.service.Laytime(ctx.UserContext(), &req)
	if err != nil {
		return c.fail(ctx, err, "Failed to calculate laytime")
	}
	return ctx.JSON(res)
}

func (c *maritimeController) Distance(ctx *fiber.Ctx) error {
	var req dto.DistanceRequest
	if err := parseBody(ctx, &req); err != nil {
		return toolBadRequest(ctx, err)
	}

	res, err := c.service.Distance(ctx.UserContext(), &req)
	if err != nil {
		return c.fail(ctx, err, "Failed to calculate distance")
	}
	return ctx.JSON(res)
}

func (c *maritimeController) Clause(ctx *fiber.Ctx) error {
	var req dto.ClauseRequest
	if err := parseBody(ctx, &req); err != nil {
		return toolBadRequest(ctx, err)
	}
	return ctx.JSON(c.service.Clause(ctx.UserContext(), &req))
}

func (c *maritimeController) Route(ctx *fiber.Ctx) error {
	var req dto.RouteRequest
	if err := parseBody(ctx, &req); err != nil {
		return toolBadRequest(ctx, err)
	}

	res, err := c.service.Route(ctx.UserContext(), &req)
	if err != nil {
		return c.fail(ctx, err, "Failed to calculate route")
	}
	return ctx.JSON(res)
}

func (c *maritimeController) Chat(ctx *fiber.Ctx) error {
	var req dto.AIChatRequest
	if err := parseBody(ctx, &req); err != nil {
		return toolBadRequest(ctx, err)
	}

	res, err := c.service.Chat(ctx.UserContext(), &req)
	if err != nil {
		return c.fail(ctx, err, "Failed to process AI request")
	}
	return ctx.JSON(res)
}

func (c *maritimeController) Classify(ctx *fiber.Ctx) error {
	var req dto.ClassifyRequest
	if err := parseBody(ctx, &req); err != nil {
		return toolBadRequest(ctx, err)
	}
	return ctx.JSON(c.service.Classify(ctx.UserContext(), &req))
}

func (c *maritimeController) ConfigureAI(ctx *fiber.Ctx) error {
	var req dto.ConfigureAIRequest
	if err := parseBody(ctx, &req); err != nil {
		return toolBadRequest(ctx, err)
	}

	res, err := c.service.ConfigureAI(ctx.UserContext(), &req)
	if err != nil {
		return c.fail(ctx, err, "Failed to configure AI service")
	}
	return ctx.JSON(res)
}

func (c *maritimeController) Ports(ctx *fiber.Ctx) error {
	return ctx.JSON(c.service.Ports())
}
