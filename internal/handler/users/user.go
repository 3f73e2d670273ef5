package users

import (
	"net/http"

	"notice-board/internal/database"
	"notice-board/internal/dto"
	"notice-board/internal/handler"
	"notice-board/internal/model"
	"notice-board/internal/service"
	"notice-board/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	hashPassword       = service.HashPassword
	authenticateUser   = service.AuthenticateUser
	getUserByID        = store.GetUserByID
	updateUserProfile  = store.UpdateUserProfile
	updateUserAccess   = store.UpdateUserAccess
	updateUserPassword = store.UpdateUserPassword
	deleteUser         = store.DeleteUser
)

// @Summary     Get a user by ID
// @Description 透過 ID 查詢並回傳使用者詳細資料（管理員）
// @Tags        users
// @Produce     json
// @Param       id   path      int  true  "使用者 ID"
// @Success     200  {object}  dto.UserResponse
// @Failure     401  {object}  dto.HTTPError
// @Failure     403  {object}  dto.HTTPError
// @Failure     404  {object}  dto.HTTPError  "使用者不存在"
// @Failure     500  {object}  dto.HTTPError  "伺服器錯誤"
// @Security    BearerAuth
// @Router      /users/{id} [get]
func GetUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c, "id")
		if err != nil {
			return handler.RespondError(c, err)
		}
		user, err := getUserByID(c.Request().Context(), db, id)
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, dto.NewUserResponse(user))
	}
}

// @Summary     Update a user's role or status
// @Description 管理員調整使用者角色與啟用狀態；未帶的欄位維持原值
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       id   path     int                   true "使用者 ID"
// @Param       body body     dto.UpdateUserRequest true "要修改的欄位"
// @Success     200  {object} dto.UserResponse
// @Failure     400  {object} dto.HTTPError
// @Failure     401  {object} dto.HTTPError
// @Failure     403  {object} dto.HTTPError
// @Failure     404  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Security    BearerAuth
// @Router      /users/{id} [patch]
func UpdateUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c, "id")
		if err != nil {
			return handler.RespondError(c, err)
		}
		var req dto.UpdateUserRequest
		if err := handler.Bind(c, &req); err != nil {
			return handler.RespondError(c, err)
		}

		ctx := c.Request().Context()
		user, err := getUserByID(ctx, db, id)
		if err != nil {
			return handler.RespondError(c, err)
		}
		if req.Role != nil {
			user.Role = model.Role(*req.Role)
		}
		if req.IsActive != nil {
			user.IsActive = *req.IsActive
		}
		if err := updateUserAccess(ctx, db, user); err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, dto.NewUserResponse(user))
	}
}

// @Summary     Delete a user by ID
// @Description 刪除使用者，其 ads 與 comments 一併刪除
// @Tags        users
// @Param       id   path      int  true  "使用者 ID"
// @Success     204  "No Content"
// @Failure     401  {object}  dto.HTTPError
// @Failure     403  {object}  dto.HTTPError
// @Failure     404  {object}  dto.HTTPError
// @Failure     500  {object}  dto.HTTPError  "伺服器錯誤"
// @Security    BearerAuth
// @Router      /users/{id} [delete]
func DeleteUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c, "id")
		if err != nil {
			return handler.RespondError(c, err)
		}
		if err := deleteUser(c.Request().Context(), db, id); err != nil {
			return handler.RespondError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
