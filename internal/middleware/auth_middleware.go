package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"learnDesk/pkg/utils"

	jsonres "learnDesk/pkg/response"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware validates the bearer token and stores the admin's
// identity on the request context.
func AuthMiddleware(secretKey string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Missing authorization header", nil,
				))
			}

			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Invalid authorization format", nil,
				))
			}

			claims, err := utils.ParseJWT(secretKey, tokenParts[1])
			if err != nil {
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Invalid token", nil,
				))
			}

			adminID, err := strconv.ParseUint(claims.AdminID, 10, 64)
			if err != nil {
				return c.JSON(http.StatusForbidden, jsonres.Error(
					"FORBIDDEN", "Invalid admin ID in token", nil,
				))
			}

			c.Set("admin_id", uint(adminID))
			c.Set("role", claims.Role)

			return next(c)
		}
	}
}

// RequireRole allows only the given roles through. SUPER always
// passes.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("role").(string)
			if !ok {
				return c.JSON(http.StatusForbidden, jsonres.Error(
					"FORBIDDEN", "Invalid role", nil,
				))
			}

			if role == "SUPER" || allowed[role] {
				return next(c)
			}

			return c.JSON(http.StatusForbidden, jsonres.Error(
				"FORBIDDEN", "Insufficient role", nil,
			))
		}
	}
}
