package users

import (
	"errors"
	"net/http"

	"notice-board/internal/database"
	"notice-board/internal/dto"
	"notice-board/internal/handler"
	"notice-board/internal/middleware"
	"notice-board/internal/model"
	"notice-board/internal/policy"
	"notice-board/internal/service"

	"github.com/labstack/echo/v4"
)

// currentUser 讀取目前登入者的資料
func currentUser(c echo.Context, db database.DB) (*model.User, error) {
	id := middleware.IdentityFrom(c)
	if err := policy.Authorize(id, nil, nil); err != nil {
		return nil, err
	}
	return getUserByID(c.Request().Context(), db, id.UserID)
}

// GetMeHandler 取得當前使用者資訊
// @Summary     Get current user info
// @Description 透過 JWT Token 取得當前使用者詳細資訊
// @Tags        users
// @Produce     json
// @Success     200 {object} dto.UserResponse
// @Failure     401 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Security    BearerAuth
// @Router      /users/me [get]
func GetMeHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := currentUser(c, db)
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, dto.NewUserResponse(user))
	}
}

// UpdateMeHandler 更新當前使用者個人資料
// @Summary     Update current user profile
// @Description 部分更新姓名、電話與頭像；Email 與角色不可由此修改
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       body body     dto.UpdateMeRequest true "要修改的欄位"
// @Success     200  {object} dto.UserResponse
// @Failure     400  {object} dto.HTTPError
// @Failure     401  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Security    BearerAuth
// @Router      /users/me [patch]
func UpdateMeHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.UpdateMeRequest
		if err := handler.Bind(c, &req); err != nil {
			return handler.RespondError(c, err)
		}
		user, err := currentUser(c, db)
		if err != nil {
			return handler.RespondError(c, err)
		}

		if req.FirstName != nil {
			user.FirstName = *req.FirstName
		}
		if req.LastName != nil {
			user.LastName = *req.LastName
		}
		if req.Phone != nil {
			user.Phone = req.Phone
		}
		if req.Avatar != nil {
			user.Avatar = req.Avatar
		}
		if err := updateUserProfile(c.Request().Context(), db, user); err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, dto.NewUserResponse(user))
	}
}

// UpdatePasswordMeHandler 更新當前使用者密碼
// @Summary     Update own password
// @Description 驗證舊密碼並更新為新密碼
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       body body dto.UpdatePasswordMeRequest true "舊密碼與新密碼"
// @Success     204  "No Content"
// @Failure     400  {object} dto.HTTPError
// @Failure     401  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Security    BearerAuth
// @Router      /users/me/password [patch]
func UpdatePasswordMeHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.UpdatePasswordMeRequest
		if err := handler.Bind(c, &req); err != nil {
			return handler.RespondError(c, err)
		}
		user, err := currentUser(c, db)
		if err != nil {
			return handler.RespondError(c, err)
		}

		ctx := c.Request().Context()
		if err := authenticateUser(ctx, *user, req.OldPassword); err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				return c.JSON(http.StatusUnauthorized, dto.HTTPError{Message: "old password is incorrect"})
			}
			return handler.RespondError(c, err)
		}
		hash, err := hashPassword(req.NewPassword)
		if err != nil {
			return handler.RespondError(c, err)
		}
		if err := updateUserPassword(ctx, db, user.ID, hash); err != nil {
			return handler.RespondError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// DeleteMeHandler 刪除當前使用者帳號
// @Summary     Delete current user
// @Description 使用 JWT Token 刪除當前使用者帳號，其 ads 與 comments 一併刪除
// @Tags        users
// @Success     204 "No Content"
// @Failure     401 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Security    BearerAuth
// @Router      /users/me [delete]
func DeleteMeHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := middleware.IdentityFrom(c)
		if err := policy.Authorize(id, nil, nil); err != nil {
			return handler.RespondError(c, err)
		}
		if err := deleteUser(c.Request().Context(), db, id.UserID); err != nil {
			return handler.RespondError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
