package serverutils

import (
	"strings"

	"studynotes-be/internal/pkg/apperror"
	"studynotes-be/internal/repository/contract"
	"studynotes-be/pkg/token"

	"github.com/gofiber/fiber/v2"
)

const (
	LocalUserID    = "user_id"
	LocalClaims    = "claims"
	LocalRequestID = "requestid"
)

type TokenVerifier interface {
	Verify(raw string) (*token.Claims, error)
}

// NewJwtMiddleware authenticates bearer tokens. denylist may be nil when
// revocation is disabled.
func NewJwtMiddleware(verifier TokenVerifier, denylist contract.TokenDenylist) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get(fiber.HeaderAuthorization)
		scheme, raw, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(raw) == "" {
			return apperror.Unauthenticated(apperror.MsgAuthRequired)
		}

		claims, err := verifier.Verify(strings.TrimSpace(raw))
		if err != nil {
			return apperror.Unauthenticated(apperror.MsgAuthRequired)
		}

		if denylist != nil && claims.ID != "" {
			revoked, err := denylist.IsRevoked(ctx.UserContext(), claims.ID)
			if err != nil {
				return apperror.Unavailable(err)
			}
			if revoked {
				return apperror.Unauthenticated(apperror.MsgAuthRequired)
			}
		}

		ctx.Locals(LocalUserID, claims.CWID())
		ctx.Locals(LocalClaims, claims)
		return ctx.Next()
	}
}

func CurrentUserID(ctx *fiber.Ctx) (string, error) {
	userID, ok := ctx.Locals(LocalUserID).(string)
	if !ok || userID == "" {
		return "", apperror.Unauthenticated(apperror.MsgAuthRequired)
	}
	return userID, nil
}

func CurrentClaims(ctx *fiber.Ctx) (*token.Claims, error) {
	claims, ok := ctx.Locals(LocalClaims).(*token.Claims)
	if !ok || claims == nil {
		return nil, apperror.Unauthenticated(apperror.MsgAuthRequired)
	}
	return claims, nil
}
