// File: internal/handler/auth/login.go
package auth

import (
	"context"
	"errors"
	"net/http"

	"notice-board/internal/cache"
	"notice-board/internal/database"
	"notice-board/internal/dto"
	"notice-board/internal/handler"
	"notice-board/internal/model"
	"notice-board/internal/service"
	"notice-board/internal/store"
	"notice-board/internal/worker"

	"github.com/labstack/echo/v4"
)

// LoginHandler 使用 Email/Password 驗證並回傳 access 與 refresh token
// @Summary     登入使用者
// @Description 使用 Email 與 Password 進行驗證，回傳存取令牌、refresh token 與有效秒數
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     dto.LoginRequest true "登入資料"
// @Success     200  {object} dto.TokenResponse
// @Failure     400  {object} dto.HTTPError
// @Failure     401  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Router      /auth/login [post]
func LoginHandler(db database.DB, cch cache.Cache, wp worker.Pool, opts Options) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		var req dto.LoginRequest
		if err := handler.Bind(c, &req); err != nil {
			return handler.RespondError(c, err)
		}

		// 撈使用者資料；查無此人與密碼錯誤回傳相同訊息
		user, err := getUserByEmail(ctx, db, service.NormalizeEmail(req.Email))
		if errors.Is(err, store.ErrNotFound) {
			return handler.RespondError(c, service.ErrInvalidCredentials)
		}
		if err != nil {
			return handler.RespondError(c, err)
		}
		if err := authenticateUser(ctx, *user, req.Password); err != nil {
			return handler.RespondError(c, err)
		}

		resp, err := issueTokens(ctx, cch, *user, opts)
		if err != nil {
			return handler.RespondError(c, err)
		}

		// last_login 非同步寫入，不影響登入回應
		logger := c.Logger()
		userID, at := user.ID, timeNow().UTC()
		wp.Submit(func() {
			if err := updateLastLogin(context.Background(), db, userID, at); err != nil {
				logger.Warnf("update last_login for user %d: %v", userID, err)
			}
		})

		return c.JSON(http.StatusOK, resp)
	}
}

func issueTokens(ctx context.Context, cch cache.Cache, user model.User, opts Options) (dto.TokenResponse, error) {
	access, err := issueAccessToken(user, opts.AccessTTL)
	if err != nil {
		return dto.TokenResponse{}, err
	}
	refresh, err := issueRefreshToken(ctx, cch, user.ID, opts.RefreshTTL)
	if err != nil {
		return dto.TokenResponse{}, err
	}
	return dto.TokenResponse{
		AccessToken:  access,
		TokenType:    "Bearer",
		ExpiresIn:    int(opts.AccessTTL.Seconds()),
		RefreshToken: refresh,
	}, nil
}
