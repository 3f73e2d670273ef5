package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"notice-board/internal/dto"
	"notice-board/internal/policy"
	"notice-board/internal/service"
	"notice-board/internal/store"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func newJSONCtx(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestCustomValidator(t *testing.T) {
	cv := NewValidator()
	type s struct {
		Name  string `json:"name" validate:"required"`
		Price *int   `json:"price" validate:"omitempty,min=0"`
	}
	require.NoError(t, cv.Validate(&s{Name: "ok"}))
	require.Error(t, cv.Validate(&s{}))
	neg := -1
	require.Error(t, cv.Validate(&s{Name: "ok", Price: &neg}))
}

func TestBind(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	t.Run("bind error", func(t *testing.T) {
		ctx, _ := newJSONCtx(e, "{")
		var req dto.CreateAdRequest
		var be *BindError
		require.ErrorAs(t, Bind(ctx, &req), &be)
	})

	t.Run("field errors use json names", func(t *testing.T) {
		ctx, _ := newJSONCtx(e, `{"price": -5}`)
		var req dto.CreateAdRequest
		var ve *service.ValidationError
		require.ErrorAs(t, Bind(ctx, &req), &ve)
		require.Equal(t, "This field is required.", ve.Fields["title"])
		require.Contains(t, ve.Fields, "price")
	})

	t.Run("ok", func(t *testing.T) {
		ctx, _ := newJSONCtx(e, `{"title": "Bike", "price": 10}`)
		var req dto.CreateAdRequest
		require.NoError(t, Bind(ctx, &req))
		require.Equal(t, "Bike", req.Title)
		require.Equal(t, 10, *req.Price)
	})

	t.Run("non validator error", func(t *testing.T) {
		e2 := echo.New()
		e2.Validator = errValidator{}
		ctx, _ := newJSONCtx(e2, `{}`)
		var req dto.CommentRequest
		var ve *service.ValidationError
		require.ErrorAs(t, Bind(ctx, &req), &ve)
		require.Equal(t, "v", ve.Fields["non_field_errors"])
	})
}

type errValidator struct{}

func (errValidator) Validate(any) error { return errors.New("v") }

func TestParamID(t *testing.T) {
	e := echo.New()
	for _, tc := range []struct {
		val string
		ok  bool
	}{{"5", true}, {"abc", false}, {"0", false}, {"-1", false}} {
		ctx := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		ctx.SetParamNames("id")
		ctx.SetParamValues(tc.val)
		id, err := ParamID(ctx, "id")
		if tc.ok {
			require.NoError(t, err)
			require.Equal(t, int64(5), id)
		} else {
			require.ErrorIs(t, err, store.ErrNotFound)
		}
	}
}

func TestRespondError(t *testing.T) {
	e := echo.New()
	cases := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"validation", &service.ValidationError{Fields: map[string]string{"email": "Email must be provided"}}, http.StatusBadRequest, "Email must be provided"},
		{"bind", &BindError{Err: errors.New("eof")}, http.StatusBadRequest, "invalid request payload"},
		{"unauthenticated", policy.ErrAuthenticationRequired, http.StatusUnauthorized, "credentials were not provided"},
		{"bad credentials", fmt.Errorf("login: %w", service.ErrInvalidCredentials), http.StatusUnauthorized, "invalid credentials"},
		{"bad refresh", service.ErrInvalidRefreshToken, http.StatusUnauthorized, "invalid refresh token"},
		{"denied", policy.ErrPermissionDenied, http.StatusForbidden, "permission"},
		{"not found", fmt.Errorf("GetAdByID: %w", store.ErrNotFound), http.StatusNotFound, "not found"},
		{"duplicate", fmt.Errorf("CreateUser: %w", &pgconn.PgError{Code: "23505"}), http.StatusConflict, "already exists"},
		{"author gone", fmt.Errorf("CreateAd: %w", &pgconn.PgError{Code: "23503"}), http.StatusNotFound, "not found"},
		{"http error", echo.NewHTTPError(http.StatusTeapot, "tea"), http.StatusTeapot, "tea"},
		{"unexpected", errors.New("db exploded"), http.StatusInternalServerError, "internal server error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, rec := newJSONCtx(e, "")
			require.NoError(t, RespondError(ctx, tc.err))
			require.Equal(t, tc.code, rec.Code)
			require.Contains(t, rec.Body.String(), tc.msg)
		})
	}

	t.Run("internal details hidden", func(t *testing.T) {
		ctx, rec := newJSONCtx(e, "")
		require.NoError(t, RespondError(ctx, errors.New("password=hunter2")))
		var body dto.HTTPError
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.NotContains(t, body.Message, "hunter2")
	})
}
