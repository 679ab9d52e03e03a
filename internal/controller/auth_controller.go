package controller

import (
	"errors"

	"maritime-assistant-be/internal/dto"
	"maritime-assistant-be/internal/pkg/serverutils"
	"maritime-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	SignUp(ctx *fiber.Ctx) error
	SignIn(ctx *fiber.Ctx) error
	Me(ctx *fiber.Ctx) error
}

type authController struct {
	service   service.IAuthService
	jwtSecret string
}

func NewAuthController(service service.IAuthService, jwtSecret string) IAuthController {
	return &authController{service: service, jwtSecret: jwtSecret}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Post("/signup", c.SignUp)
	h.Post("/signin", c.SignIn)
	h.Get("/me", serverutils.NewJwtMiddleware(c.jwtSecret), c.Me)
}

func authError(err error) error {
	switch {
	case errors.Is(err, service.ErrEmailTaken):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		return fiber.NewError(fiber.StatusNotFound, "User not found")
	}
	return err
}

func (c *authController) SignUp(ctx *fiber.Ctx) error {
	var req dto.SignUpRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.SignUp(ctx.UserContext(), &req)
	if err != nil {
		return authError(err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("User registered successfully", res))
}

func (c *authController) SignIn(ctx *fiber.Ctx) error {
	var req dto.SignInRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.SignIn(ctx.UserContext(), &req)
	if err != nil {
		return authError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Signed in successfully", res))
}

func (c *authController) Me(ctx *fiber.Ctx) error {
	userId, err := uuid.Parse(ctx.Locals(serverutils.LocalUserID).(string))
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
	}

	res, err := c.service.Me(ctx.UserContext(), userId)
	if err != nil {
		return authError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get profile", res))
}
