package ads

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"notice-board/internal/database"
	"notice-board/internal/dto"
	"notice-board/internal/handler"
	"notice-board/internal/middleware"
	"notice-board/internal/model"
	"notice-board/internal/service"
	"notice-board/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func restore() {
	listAds = store.ListAds
	countAds = store.CountAds
	getAdByID = store.GetAdByID
	createAd = store.CreateAd
	updateAd = store.UpdateAd
	deleteAd = store.DeleteAd
}

var (
	author   = &service.CustomClaims{UserID: 1, Role: "user"}
	stranger = &service.CustomClaims{UserID: 2, Role: "user"}
	admin    = &service.CustomClaims{UserID: 3, Role: "admin"}
)

func newCtx(method, target, body string, claims *service.CustomClaims, id string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = handler.NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if claims != nil {
		c.Set(middleware.ContextUserKey, claims)
	}
	if id != "" {
		c.SetPath("/api/ads/:id/")
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
	return c, rec
}

func ownedAd(id int64) *model.Ad {
	authorID := int64(1)
	phone := "555"
	price := 100
	return &model.Ad{
		ID: id, Title: "Bike", Price: &price, AuthorID: &authorID, CreatedAt: time.Now(),
		Author: &model.Author{ID: 1, FirstName: "Ann", LastName: "Lee", Phone: &phone},
	}
}

func TestListAdsHandler(t *testing.T) {
	db := &database.FakeDB{}

	t.Run("anonymous", func(t *testing.T) {
		t.Cleanup(restore)
		ctx, rec := newCtx(http.MethodGet, "/api/ads/", "", nil, "")
		require.NoError(t, ListAdsHandler(db, 4)(ctx))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("first page with filter", func(t *testing.T) {
		t.Cleanup(restore)
		countAds = func(_ context.Context, _ database.DB, title string) (int, error) {
			require.Equal(t, "Test", title)
			return 5, nil
		}
		listAds = func(_ context.Context, _ database.DB, p store.ListAdsParams) ([]model.Ad, error) {
			require.Equal(t, store.ListAdsParams{Title: "Test", Limit: 4, Offset: 0}, p)
			return []model.Ad{*ownedAd(2), *ownedAd(1)}, nil
		}
		ctx, rec := newCtx(http.MethodGet, "/api/ads/?title=Test", "", author, "")
		require.NoError(t, ListAdsHandler(db, 4)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)

		var page dto.AdPage
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
		require.Equal(t, 5, page.Count)
		require.Equal(t, 1, page.Page)
		require.Len(t, page.Results, 2)
		require.Equal(t, int64(2), page.Results[0].PK)
		require.NotContains(t, rec.Body.String(), "author_first_name")
	})

	t.Run("second page and page_size cap", func(t *testing.T) {
		t.Cleanup(restore)
		countAds = func(context.Context, database.DB, string) (int, error) { return 250, nil }
		listAds = func(_ context.Context, _ database.DB, p store.ListAdsParams) ([]model.Ad, error) {
			require.Equal(t, 100, p.Limit)
			require.Equal(t, 100, p.Offset)
			return []model.Ad{}, nil
		}
		ctx, rec := newCtx(http.MethodGet, "/api/ads/?page=2&page_size=500", "", author, "")
		require.NoError(t, ListAdsHandler(db, 4)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("page number that would overflow the offset", func(t *testing.T) {
		t.Cleanup(restore)
		countAds = func(context.Context, database.DB, string) (int, error) { return 10, nil }
		listAds = func(_ context.Context, _ database.DB, p store.ListAdsParams) ([]model.Ad, error) {
			t.Fatalf("unexpected list with offset %d", p.Offset)
			return nil, nil
		}
		ctx, rec := newCtx(http.MethodGet, "/api/ads/?page=2305843009213693953", "", author, "")
		require.NoError(t, ListAdsHandler(db, 4)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("empty first page", func(t *testing.T) {
		t.Cleanup(restore)
		countAds = func(context.Context, database.DB, string) (int, error) { return 0, nil }
		listAds = func(context.Context, database.DB, store.ListAdsParams) ([]model.Ad, error) { return []model.Ad{}, nil }
		ctx, rec := newCtx(http.MethodGet, "/api/ads/", "", author, "")
		require.NoError(t, ListAdsHandler(db, 4)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"results":[]`)
	})

	t.Run("page out of range", func(t *testing.T) {
		t.Cleanup(restore)
		countAds = func(context.Context, database.DB, string) (int, error) { return 4, nil }
		ctx, rec := newCtx(http.MethodGet, "/api/ads/?page=2", "", author, "")
		require.NoError(t, ListAdsHandler(db, 4)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid page", func(t *testing.T) {
		t.Cleanup(restore)
		ctx, rec := newCtx(http.MethodGet, "/api/ads/?page=abc", "", author, "")
		require.NoError(t, ListAdsHandler(db, 4)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("store error", func(t *testing.T) {
		t.Cleanup(restore)
		countAds = func(context.Context, database.DB, string) (int, error) { return 0, errors.New("db") }
		ctx, rec := newCtx(http.MethodGet, "/api/ads/", "", author, "")
		require.NoError(t, ListAdsHandler(db, 4)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestCreateAdHandler(t *testing.T) {
	db := &database.FakeDB{}

	t.Run("anonymous", func(t *testing.T) {
		t.Cleanup(restore)
		ctx, rec := newCtx(http.MethodPost, "/api/ads/create/", `{"title":"x"}`, nil, "")
		require.NoError(t, CreateAdHandler(db)(ctx))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing title", func(t *testing.T) {
		t.Cleanup(restore)
		ctx, rec := newCtx(http.MethodPost, "/api/ads/create/", `{"price":5}`, author, "")
		require.NoError(t, CreateAdHandler(db)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), `"title"`)
	})

	t.Run("negative price", func(t *testing.T) {
		t.Cleanup(restore)
		ctx, rec := newCtx(http.MethodPost, "/api/ads/create/", `{"title":"x","price":-1}`, author, "")
		require.NoError(t, CreateAdHandler(db)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("price beyond integer column", func(t *testing.T) {
		t.Cleanup(restore)
		createAd = func(context.Context, database.DB, *model.Ad) error {
			t.Fatal("store must not be reached")
			return nil
		}
		ctx, rec := newCtx(http.MethodPost, "/api/ads/create/", `{"title":"x","price":3000000000}`, author, "")
		require.NoError(t, CreateAdHandler(db)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), `"price"`)
	})

	t.Run("author comes from identity", func(t *testing.T) {
		t.Cleanup(restore)
		var stored *model.Ad
		createAd = func(_ context.Context, _ database.DB, a *model.Ad) error {
			stored = a
			a.ID = 10
			return nil
		}
		getAdByID = func(_ context.Context, _ database.DB, id int64) (*model.Ad, error) {
			require.Equal(t, int64(10), id)
			a := *stored
			a.Author = &model.Author{ID: *stored.AuthorID, FirstName: "Bob"}
			return &a, nil
		}
		body := `{"title":"Lamp","price":20,"description":"old","author_id":99,"author":99}`
		ctx, rec := newCtx(http.MethodPost, "/api/ads/create/", body, stranger, "")
		require.NoError(t, CreateAdHandler(db)(ctx))
		require.Equal(t, http.StatusCreated, rec.Code)
		require.Equal(t, int64(2), *stored.AuthorID)

		var got dto.AdDetail
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Equal(t, int64(10), got.PK)
		require.Equal(t, "Lamp", got.Title)
		require.Equal(t, 20, *got.Price)
		require.Equal(t, "old", *got.Description)
		require.Equal(t, int64(2), *got.AuthorID)
		require.Equal(t, "Bob", got.AuthorFirstName)
	})

	t.Run("store error", func(t *testing.T) {
		t.Cleanup(restore)
		createAd = func(context.Context, database.DB, *model.Ad) error { return errors.New("insert") }
		ctx, rec := newCtx(http.MethodPost, "/api/ads/create/", `{"title":"x"}`, author, "")
		require.NoError(t, CreateAdHandler(db)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestGetAdHandler(t *testing.T) {
	db := &database.FakeDB{}

	t.Run("anonymous", func(t *testing.T) {
		t.Cleanup(restore)
		ctx, rec := newCtx(http.MethodGet, "/api/ads/1/", "", nil, "1")
		require.NoError(t, GetAdHandler(db)(ctx))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		t.Cleanup(restore)
		getAdByID = func(context.Context, database.DB, int64) (*model.Ad, error) { return nil, store.ErrNotFound }
		ctx, rec := newCtx(http.MethodGet, "/api/ads/9/", "", stranger, "9")
		require.NoError(t, GetAdHandler(db)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("non numeric id", func(t *testing.T) {
		t.Cleanup(restore)
		ctx, rec := newCtx(http.MethodGet, "/api/ads/x/", "", stranger, "x")
		require.NoError(t, GetAdHandler(db)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("detail for any authenticated user", func(t *testing.T) {
		t.Cleanup(restore)
		getAdByID = func(context.Context, database.DB, int64) (*model.Ad, error) { return ownedAd(1), nil }
		ctx, rec := newCtx(http.MethodGet, "/api/ads/1/", "", stranger, "1")
		require.NoError(t, GetAdHandler(db)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"author_first_name":"Ann"`)
		require.Contains(t, rec.Body.String(), `"phone":"555"`)
	})
}

func TestUpdateAdHandler(t *testing.T) {
	db := &database.FakeDB{}

	t.Run("stranger denied", func(t *testing.T) {
		t.Cleanup(restore)
		getAdByID = func(context.Context, database.DB, int64) (*model.Ad, error) { return ownedAd(1), nil }
		updateAd = func(context.Context, database.DB, *model.Ad) error {
			t.Fatal("update must not run")
			return nil
		}
		ctx, rec := newCtx(http.MethodPatch, "/api/ads/1/update/", `{"title":"mine"}`, stranger, "1")
		require.NoError(t, UpdateAdHandler(db)(ctx))
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("orphaned ad only admin", func(t *testing.T) {
		t.Cleanup(restore)
		getAdByID = func(context.Context, database.DB, int64) (*model.Ad, error) { return &model.Ad{ID: 1, Title: "x"}, nil }
		ctx, rec := newCtx(http.MethodPatch, "/api/ads/1/update/", `{"title":"y"}`, author, "1")
		require.NoError(t, UpdateAdHandler(db)(ctx))
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("invalid body", func(t *testing.T) {
		t.Cleanup(restore)
		getAdByID = func(context.Context, database.DB, int64) (*model.Ad, error) { return ownedAd(1), nil }
		ctx, rec := newCtx(http.MethodPatch, "/api/ads/1/update/", `{"title":""}`, author, "1")
		require.NoError(t, UpdateAdHandler(db)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("price beyond integer column", func(t *testing.T) {
		t.Cleanup(restore)
		getAdByID = func(context.Context, database.DB, int64) (*model.Ad, error) { return ownedAd(1), nil }
		updateAd = func(context.Context, database.DB, *model.Ad) error {
			t.Fatal("store must not be reached")
			return nil
		}
		ctx, rec := newCtx(http.MethodPatch, "/api/ads/1/update/", `{"price":2147483648}`, author, "1")
		require.NoError(t, UpdateAdHandler(db)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	for name, claims := range map[string]*service.CustomClaims{"author": author, "admin": admin} {
		t.Run(name+" partial update", func(t *testing.T) {
			t.Cleanup(restore)
			getAdByID = func(context.Context, database.DB, int64) (*model.Ad, error) { return ownedAd(1), nil }
			var saved *model.Ad
			updateAd = func(_ context.Context, _ database.DB, a *model.Ad) error { saved = a; return nil }

			ctx, rec := newCtx(http.MethodPatch, "/api/ads/1/update/", `{"price":80,"author_id":3}`, claims, "1")
			require.NoError(t, UpdateAdHandler(db)(ctx))
			require.Equal(t, http.StatusOK, rec.Code)
			require.Equal(t, "Bike", saved.Title)
			require.Equal(t, 80, *saved.Price)
			require.Equal(t, int64(1), *saved.AuthorID)
		})
	}
}

func TestDeleteAdHandler(t *testing.T) {
	db := &database.FakeDB{}

	t.Run("stranger denied", func(t *testing.T) {
		t.Cleanup(restore)
		getAdByID = func(context.Context, database.DB, int64) (*model.Ad, error) { return ownedAd(1), nil }
		ctx, rec := newCtx(http.MethodDelete, "/api/ads/1/delete/", "", stranger, "1")
		require.NoError(t, DeleteAdHandler(db)(ctx))
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("missing", func(t *testing.T) {
		t.Cleanup(restore)
		getAdByID = func(context.Context, database.DB, int64) (*model.Ad, error) { return nil, store.ErrNotFound }
		ctx, rec := newCtx(http.MethodDelete, "/api/ads/1/delete/", "", admin, "1")
		require.NoError(t, DeleteAdHandler(db)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	for name, claims := range map[string]*service.CustomClaims{"author": author, "admin": admin} {
		t.Run(name+" deletes", func(t *testing.T) {
			t.Cleanup(restore)
			getAdByID = func(context.Context, database.DB, int64) (*model.Ad, error) { return ownedAd(1), nil }
			deleted := int64(0)
			deleteAd = func(_ context.Context, _ database.DB, id int64) error { deleted = id; return nil }
			ctx, rec := newCtx(http.MethodDelete, "/api/ads/1/delete/", "", claims, "1")
			require.NoError(t, DeleteAdHandler(db)(ctx))
			require.Equal(t, http.StatusNoContent, rec.Code)
			require.Equal(t, int64(1), deleted)
		})
	}
}
