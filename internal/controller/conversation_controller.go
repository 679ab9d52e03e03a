package controller

import (
	"errors"

	"maritime-assistant-be/internal/dto"
	"maritime-assistant-be/internal/pkg/serverutils"
	"maritime-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IConversationController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	GetMessages(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
}

type conversationController struct {
	service service.IConversationService
}

func NewConversationController(service service.IConversationService) IConversationController {
	return &conversationController{service: service}
}

func (c *conversationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/conversations")
	h.Get("", c.GetAll)
	h.Post("", c.Create)
	h.Get(":id", c.Show)
	h.Delete(":id", c.Delete)
	h.Get(":id/messages", c.GetMessages)
	h.Post(":id/messages", c.SendMessage)
}

func conversationError(err error) error {
	if errors.Is(err, service.ErrConversationNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Conversation not found")
	}
	return err
}

func (c *conversationController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.service.GetAll(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get all conversations", res))
}

func (c *conversationController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateConversationRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create conversation", res))
}

func (c *conversationController) Show(ctx *fiber.Ctx) error {
	id, err := parseID(ctx, "Conversation not found")
	if err != nil {
		return err
	}

	res, err := c.service.Show(ctx.UserContext(), id)
	if err != nil {
		return conversationError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show conversation", res))
}

func (c *conversationController) Delete(ctx *fiber.Ctx) error {
	id, err := parseID(ctx, "Conversation not found")
	if err != nil {
		return err
	}

	if err := c.service.Delete(ctx.UserContext(), id); err != nil {
		return conversationError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete conversation", nil))
}

func (c *conversationController) GetMessages(ctx *fiber.Ctx) error {
	id, err := parseID(ctx, "Conversation not found")
	if err != nil {
		return err
	}

	res, err := c.service.GetMessages(ctx.UserContext(), id)
	if err != nil {
		return conversationError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get messages", res))
}

// SendMessage stores the user's message and the assistant's reply. The
// exchange is returned bare, like the tool endpoints.
func (c *conversationController) SendMessage(ctx *fiber.Ctx) error {
	id, err := parseID(ctx, "Conversation not found")
	if err != nil {
		return err
	}

	var req dto.CreateMessageRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	req.ConversationId = id

	res, err := c.service.SendMessage(ctx.UserContext(), &req)
	if err != nil {
		return conversationError(err)
	}
	return ctx.JSON(res)
}
