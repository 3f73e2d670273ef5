package auth

import (
	"net/http"

	"notice-board/internal/database"
	"notice-board/internal/dto"
	"notice-board/internal/handler"
	"notice-board/internal/service"

	"github.com/labstack/echo/v4"
)

// RegisterHandler 建立一般使用者帳號
// @Summary     註冊
// @Description 以 Email 與密碼建立帳號，Email 的 domain 會轉為小寫
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     dto.RegisterRequest true "註冊資料"
// @Success     201  {object} dto.UserResponse
// @Failure     400  {object} dto.HTTPError
// @Failure     409  {object} dto.HTTPError "Email 已被使用"
// @Failure     500  {object} dto.HTTPError
// @Router      /auth/register [post]
func RegisterHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.RegisterRequest
		if err := handler.Bind(c, &req); err != nil {
			return handler.RespondError(c, err)
		}

		user, err := createUser(c.Request().Context(), db, service.NewUser{
			Email:     req.Email,
			Password:  req.Password,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Phone:     req.Phone,
		})
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusCreated, dto.NewUserResponse(user))
	}
}
