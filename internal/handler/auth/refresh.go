package auth

import (
	"errors"
	"net/http"

	"notice-board/internal/cache"
	"notice-board/internal/database"
	"notice-board/internal/dto"
	"notice-board/internal/handler"
	"notice-board/internal/service"
	"notice-board/internal/store"

	"github.com/labstack/echo/v4"
)

// RefreshHandler 以 refresh token 換發新的 access token
// @Summary     更新 access token
// @Description 角色會重新從資料庫讀取；帳號停用或已刪除時回傳 401
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     dto.RefreshRequest true "refresh token"
// @Success     200  {object} dto.TokenResponse
// @Failure     400  {object} dto.HTTPError
// @Failure     401  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Router      /auth/refresh [post]
func RefreshHandler(db database.DB, cch cache.Cache, opts Options) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		var req dto.RefreshRequest
		if err := handler.Bind(c, &req); err != nil {
			return handler.RespondError(c, err)
		}

		data, err := validateRefreshToken(ctx, cch, req.RefreshToken)
		if err != nil {
			return handler.RespondError(c, err)
		}
		user, err := getUserByID(ctx, db, data.UserID)
		if errors.Is(err, store.ErrNotFound) || (err == nil && !user.IsActive) {
			return handler.RespondError(c, service.ErrInvalidRefreshToken)
		}
		if err != nil {
			return handler.RespondError(c, err)
		}

		access, err := issueAccessToken(*user, opts.AccessTTL)
		if err != nil {
			return handler.RespondError(c, err)
		}
		// reuse same refresh token
		return c.JSON(http.StatusOK, dto.TokenResponse{
			AccessToken:  access,
			TokenType:    "Bearer",
			ExpiresIn:    int(opts.AccessTTL.Seconds()),
			RefreshToken: req.RefreshToken,
		})
	}
}

// LogoutHandler 撤銷 refresh token
// @Summary     登出
// @Tags        auth
// @Accept      json
// @Param       body body dto.RefreshRequest true "refresh token"
// @Success     204  "No Content"
// @Failure     400  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Router      /auth/logout [post]
func LogoutHandler(cch cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.RefreshRequest
		if err := handler.Bind(c, &req); err != nil {
			return handler.RespondError(c, err)
		}
		if err := revokeRefreshToken(c.Request().Context(), cch, req.RefreshToken); err != nil {
			return handler.RespondError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
