package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"notice-board/internal/database"
	"notice-board/internal/model"
	"notice-board/internal/policy"
	"notice-board/internal/service"
	"notice-board/internal/store"

	"github.com/labstack/echo/v4"
)

const ContextUserKey = "user"

var (
	verifyAccessToken = service.VerifyAccessToken
	getUserByID       = store.GetUserByID
)

func extractClaims(c echo.Context) (*service.CustomClaims, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, policy.ErrAuthenticationRequired.Error())
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header format")
	}
	tokenString := parts[1]
	claims, err := verifyAccessToken(tokenString)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, fmt.Sprintf("invalid token: %v", err))
	}
	if claims.UserID == 0 || !model.Role(claims.Role).Valid() {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token: malformed claims")
	}
	return claims, nil
}

// IdentityFrom 取出 RequireAuth 放入的呼叫者身分；未經驗證的請求回傳 nil
func IdentityFrom(c echo.Context) *policy.Identity {
	claims, ok := c.Get(ContextUserKey).(*service.CustomClaims)
	if !ok || claims == nil {
		return nil
	}
	return &policy.Identity{UserID: claims.UserID, Role: model.Role(claims.Role)}
}

// RequireAuth 驗證 bearer token，並以資料庫中的使用者確認帳號仍存在且啟用；
// 放入 context 的 role 取自資料庫，token 內的 role 只作格式檢查
func RequireAuth(db database.DB) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := extractClaims(c)
			if err != nil {
				return err
			}
			user, err := getUserByID(c.Request().Context(), db, claims.UserID)
			if errors.Is(err, store.ErrNotFound) || (err == nil && !user.IsActive) {
				return echo.NewHTTPError(http.StatusUnauthorized, "user not found or inactive")
			}
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "internal server error").SetInternal(err)
			}
			c.Set(ContextUserKey, &service.CustomClaims{
				UserID:           user.ID,
				Role:             string(user.Role),
				RegisteredClaims: claims.RegisteredClaims,
			})
			return next(c)
		}
	}
}

// RequireAdmin 在 RequireAuth 之後要求目前的 role 為 admin
func RequireAdmin(db database.DB) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return RequireAuth(db)(func(c echo.Context) error {
			if !policy.IsAdmin(IdentityFrom(c), nil) {
				return echo.NewHTTPError(http.StatusForbidden, "admin privileges required")
			}
			return next(c)
		})
	}
}
