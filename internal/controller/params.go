package controller

import (
	"strings"

	"studynotes-be/internal/dto"
	"studynotes-be/internal/pkg/apperror"
	"studynotes-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
)

func parseBody(ctx *fiber.Ctx, req interface{}) error {
	if err := ctx.BodyParser(req); err != nil {
		return apperror.Validation("invalid request body")
	}
	return serverutils.ValidateRequest(req)
}

func noteIDParam(ctx *fiber.Ctx) (uint, error) {
	id, err := ctx.ParamsInt("id")
	if err != nil || id < 1 {
		return 0, apperror.Validation("invalid note id")
	}
	return uint(id), nil
}

func parseSearch(ctx *fiber.Ctx) (*dto.NoteSearchRequest, error) {
	var req dto.NoteSearchRequest
	if err := ctx.QueryParser(&req); err != nil {
		return nil, apperror.Validation("invalid query parameters")
	}
	req.SortOrder = strings.ToLower(strings.TrimSpace(req.SortOrder))
	if err := serverutils.ValidateRequest(req); err != nil {
		return nil, err
	}
	return &req, nil
}

func sendNoteList(ctx *fiber.Ctx, message string, res *dto.NoteListResponse) error {
	serverutils.SetPaginationHeaders(ctx, res.Total, res.Page, res.PageSize)
	return ctx.JSON(serverutils.SuccessResponse(message, res.Items))
}
