package middleware

import (
	"net/http"

	"shop/internal/domain/model"

	"github.com/labstack/echo/v4"
)

// AuthJWTがcontextに積んだroleクレームで/admin配下を守る。
// roleはログイン時のusersテーブルの値がそのままトークンに入っている。
func AdminRoleGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawRole := c.Get(CtxUserRoleKey)
			role, ok := rawRole.(string)
			if !ok || role == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			if role != string(model.RoleAdmin) {
				return c.JSON(http.StatusForbidden, errorJSON("admin only"))
			}

			return next(c)
		}
	}
}
