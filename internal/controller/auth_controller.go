package controller

import (
	"studynotes-be/internal/dto"
	"studynotes-be/internal/pkg/serverutils"
	"studynotes-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Register(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
	Me(ctx *fiber.Ctx) error
	ChangePassword(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
}

type authController struct {
	authService service.IAuthService
	rateLimiter fiber.Handler
}

func NewAuthController(authService service.IAuthService, rateLimiter fiber.Handler) IAuthController {
	return &authController{
		authService: authService,
		rateLimiter: rateLimiter,
	}
}

func (c *authController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/auth")
	h.Post("/register", c.rateLimiter, c.Register)
	h.Post("/login", c.rateLimiter, c.Login)
	h.Get("/me", auth, c.Me)
	h.Put("/change-password", auth, c.ChangePassword)
	h.Post("/logout", auth, c.Logout)
}

func (c *authController) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.authService.Register(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Registration successful", res))
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.authService.Login(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Login successful", res))
}

func (c *authController) Me(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.authService.Me(ctx.UserContext(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get current user", res))
}

func (c *authController) ChangePassword(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	var req dto.ChangePasswordRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.authService.ChangePassword(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Password updated", res))
}

func (c *authController) Logout(ctx *fiber.Ctx) error {
	claims, err := serverutils.CurrentClaims(ctx)
	if err != nil {
		return err
	}

	if err := c.authService.Logout(ctx.UserContext(), claims); err != nil {
		return err
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}
