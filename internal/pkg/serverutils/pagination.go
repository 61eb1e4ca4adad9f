package serverutils

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const (
	HeaderTotalCount = "X-Total-Count"
	HeaderPage       = "X-Page"
	HeaderPageSize   = "X-Page-Size"
)

func SetPaginationHeaders(ctx *fiber.Ctx, total int64, page, pageSize int) {
	ctx.Set(HeaderTotalCount, strconv.FormatInt(total, 10))
	ctx.Set(HeaderPage, strconv.Itoa(page))
	ctx.Set(HeaderPageSize, strconv.Itoa(pageSize))
}
