package controller

import (
	"maritime-assistant-be/internal/dto"
	"maritime-assistant-be/internal/pkg/serverutils"
	"maritime-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IKnowledgeController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
}

type knowledgeController struct {
	service service.IKnowledgeService
}

func NewKnowledgeController(service service.IKnowledgeService) IKnowledgeController {
	return &knowledgeController{service: service}
}

func (c *knowledgeController) RegisterRoutes(r fiber.Router) {
	for _, prefix := range []string{"/knowledge-base", "/maritime/knowledge"} {
		h := r.Group(prefix)
		h.Get("", c.List)
		h.Get("/search", c.Search)
	}
}

func (c *knowledgeController) parseQuery(ctx *fiber.Ctx) (dto.KnowledgeQuery, error) {
	var q dto.KnowledgeQuery
	if err := ctx.QueryParser(&q); err != nil {
		return q, fiber.NewError(fiber.StatusBadRequest, "Invalid query parameters")
	}
	return q, serverutils.ValidateRequest(q)
}

// List returns the top entries, optionally for one category.
func (c *knowledgeController) List(ctx *fiber.Ctx) error {
	q, err := c.parseQuery(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.List(ctx.UserContext(), q.Category)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get knowledge base", res))
}

func (c *knowledgeController) Search(ctx *fiber.Ctx) error {
	q, err := c.parseQuery(ctx)
	if err != nil {
		return err
	}
	if q.Query == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Query parameter q is required")
	}

	res, err := c.service.Search(ctx.UserContext(), q.Query, q.Category)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success search knowledge base", res))
}
