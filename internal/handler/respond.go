package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"notice-board/internal/dto"
	"notice-board/internal/policy"
	"notice-board/internal/service"
	"notice-board/internal/store"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// BindError 請求內容無法解析（格式錯誤、型別不符）
type BindError struct {
	Err error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("invalid request payload: %v", e.Err)
}

func (e *BindError) Unwrap() error { return e.Err }

// Bind 解析並驗證請求；驗證失敗會轉成 *service.ValidationError
func Bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return &BindError{Err: err}
	}
	if err := c.Validate(req); err != nil {
		return toValidationError(err)
	}
	return nil
}

func toValidationError(err error) error {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return &service.ValidationError{Fields: map[string]string{"non_field_errors": err.Error()}}
	}
	fields := make(map[string]string, len(ves))
	for _, fe := range ves {
		fields[fe.Field()] = fieldMessage(fe)
	}
	return &service.ValidationError{Fields: fields}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "oneof":
		return "Must be one of: " + fe.Param() + "."
	case "min":
		return "Must be at least " + fe.Param() + "."
	case "max":
		return "Must be at most " + fe.Param() + "."
	default:
		return "Invalid value (" + fe.Tag() + ")."
	}
}

// ParamID 解析路徑上的整數 id；非整數視同資源不存在
func ParamID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("ParamID %s: %w", name, store.ErrNotFound)
	}
	return id, nil
}

// RespondError 將錯誤對應成 HTTP 狀態碼與 dto.HTTPError
func RespondError(c echo.Context, err error) error {
	var (
		ve *service.ValidationError
		be *BindError
		he *echo.HTTPError
	)
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: "validation failed", Fields: ve.Fields})
	case errors.As(err, &be):
		return c.JSON(http.StatusBadRequest, dto.HTTPError{Message: be.Error()})
	case errors.Is(err, policy.ErrAuthenticationRequired),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidRefreshToken):
		return c.JSON(http.StatusUnauthorized, dto.HTTPError{Message: unwrapAll(err).Error()})
	case errors.Is(err, policy.ErrPermissionDenied):
		return c.JSON(http.StatusForbidden, dto.HTTPError{Message: policy.ErrPermissionDenied.Error()})
	case errors.Is(err, store.ErrNotFound), store.IsForeignKeyViolation(err):
		return c.JSON(http.StatusNotFound, dto.HTTPError{Message: "not found"})
	case store.IsUniqueViolation(err):
		return c.JSON(http.StatusConflict, dto.HTTPError{Message: "already exists"})
	case errors.As(err, &he):
		return c.JSON(he.Code, dto.HTTPError{Message: fmt.Sprint(he.Message)})
	}

	c.Logger().Errorf("request_id=%s %s %s: %v",
		c.Response().Header().Get(echo.HeaderXRequestID), c.Request().Method, c.Path(), err)
	return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "internal server error"})
}

func unwrapAll(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}
