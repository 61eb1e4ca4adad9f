package controller

import (
	"studynotes-be/internal/dto"
	"studynotes-be/internal/pkg/serverutils"
	"studynotes-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IRatingController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Summary(ctx *fiber.Ctx) error
	Rate(ctx *fiber.Ctx) error
}

type ratingController struct {
	ratingService service.IRatingService
}

func NewRatingController(ratingService service.IRatingService) IRatingController {
	return &ratingController{
		ratingService: ratingService,
	}
}

func (c *ratingController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/notes/:id/ratings")
	h.Get("", c.Summary)
	h.Post("", auth, c.Rate)
}

func (c *ratingController) Summary(ctx *fiber.Ctx) error {
	id, err := noteIDParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.ratingService.Summary(ctx.UserContext(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get rating summary", res))
}

func (c *ratingController) Rate(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	id, err := noteIDParam(ctx)
	if err != nil {
		return err
	}

	var req dto.RateNoteRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.ratingService.Rate(ctx.UserContext(), userId, id, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Rating recorded", res))
}
