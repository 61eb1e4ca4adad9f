package controller

import (
	"studynotes-be/internal/dto"
	"studynotes-be/internal/pkg/serverutils"
	"studynotes-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IUserController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	GetProfile(ctx *fiber.Ctx) error
	UpdateProfile(ctx *fiber.Ctx) error
	ListNotes(ctx *fiber.Ctx) error
}

type userController struct {
	userService service.IUserService
	noteService service.INoteService
}

func NewUserController(userService service.IUserService, noteService service.INoteService) IUserController {
	return &userController{
		userService: userService,
		noteService: noteService,
	}
}

func (c *userController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/users")
	h.Put("/profile", auth, c.UpdateProfile)
	h.Get("/:id", c.GetProfile)
	h.Get("/:id/notes", c.ListNotes)
}

func (c *userController) GetProfile(ctx *fiber.Ctx) error {
	res, err := c.userService.GetProfile(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get profile", res))
}

func (c *userController) UpdateProfile(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateProfileRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.userService.UpdateProfile(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Profile updated", res))
}

func (c *userController) ListNotes(ctx *fiber.Ctx) error {
	req, err := parseSearch(ctx)
	if err != nil {
		return err
	}

	res, err := c.noteService.ListByAuthor(ctx.UserContext(), ctx.Params("id"), req)
	if err != nil {
		return err
	}

	return sendNoteList(ctx, "Success get user notes", res)
}
