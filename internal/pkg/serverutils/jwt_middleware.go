package serverutils

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/suklaray/hrms-sub002/internal/constant"
)

// JwtMiddleware rejects requests without a valid bearer token and stores the
// authenticated user id in locals.
func JwtMiddleware(ctx *fiber.Ctx) error {
	userId, ok := parseBearerToken(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Missing or invalid token"})
	}

	ctx.Locals("user_id", userId)
	return ctx.Next()
}

// OptionalJwtMiddleware resolves the user id when a valid token is present
// and falls back to the anonymous identity otherwise. The assistant answers
// unauthenticated users too; it just loses per-user context carry-over.
func OptionalJwtMiddleware(ctx *fiber.Ctx) error {
	if userId, ok := parseBearerToken(ctx); ok {
		ctx.Locals("user_id", userId)
	} else {
		ctx.Locals("user_id", constant.AnonymousUserID)
	}
	return ctx.Next()
}

func parseBearerToken(ctx *fiber.Ctx) (string, bool) {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return "", false
	}
	tokenStr := authHeader[7:]

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return "", false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}

	userId, ok := claims["user_id"].(string)
	if !ok || userId == "" {
		return "", false
	}
	return userId, true
}
