// Package ads 提供 ad 的清單、建立、查詢、更新與刪除
package ads

import (
	"net/http"

	"notice-board/internal/database"
	"notice-board/internal/dto"
	"notice-board/internal/handler"
	"notice-board/internal/middleware"
	"notice-board/internal/model"
	"notice-board/internal/policy"
	"notice-board/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	listAds   = store.ListAds
	countAds  = store.CountAds
	getAdByID = store.GetAdByID
	createAd  = store.CreateAd
	updateAd  = store.UpdateAd
	deleteAd  = store.DeleteAd
)

// ListAdsHandler 依建立時間由新到舊列出 ads，可用 title 做不分大小寫的子字串過濾
// @Summary     List ads
// @Description 分頁列出 ads；page 超出範圍時回傳 404
// @Tags        ads
// @Produce     json
// @Param       title     query    string false "標題子字串（不分大小寫）"
// @Param       page      query    int    false "頁碼，從 1 開始"
// @Param       page_size query    int    false "每頁筆數（上限 100）"
// @Success     200 {object} dto.AdPage
// @Failure     401 {object} dto.HTTPError
// @Failure     404 {object} dto.HTTPError "頁碼無效"
// @Failure     500 {object} dto.HTTPError
// @Security    BearerAuth
// @Router      /ads/ [get]
func ListAdsHandler(db database.DB, defaultPageSize int) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := policy.Authorize(middleware.IdentityFrom(c), nil, nil); err != nil {
			return handler.RespondError(c, err)
		}
		p, err := parsePagination(c, defaultPageSize)
		if err != nil {
			return handler.RespondError(c, err)
		}
		ctx := c.Request().Context()
		title := c.QueryParam("title")

		count, err := countAds(ctx, db, title)
		if err != nil {
			return handler.RespondError(c, err)
		}
		if err := p.check(count); err != nil {
			return handler.RespondError(c, err)
		}
		ads, err := listAds(ctx, db, store.ListAdsParams{Title: title, Limit: p.Size, Offset: p.offset()})
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, dto.AdPage{
			Count:    count,
			Page:     p.Number,
			PageSize: p.Size,
			Results:  dto.NewAdSummaries(ads),
		})
	}
}

// CreateAdHandler 建立 ad，作者為目前登入者
// @Summary     Create an ad
// @Description 請求中的 author 相關欄位一律忽略
// @Tags        ads
// @Accept      json
// @Produce     json
// @Param       body body     dto.CreateAdRequest true "ad 內容"
// @Success     201  {object} dto.AdDetail
// @Failure     400  {object} dto.HTTPError
// @Failure     401  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Security    BearerAuth
// @Router      /ads/create/ [post]
func CreateAdHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := middleware.IdentityFrom(c)
		if err := policy.Authorize(id, nil, nil); err != nil {
			return handler.RespondError(c, err)
		}
		var req dto.CreateAdRequest
		if err := handler.Bind(c, &req); err != nil {
			return handler.RespondError(c, err)
		}

		ctx := c.Request().Context()
		authorID := id.UserID
		ad := &model.Ad{
			Title:       req.Title,
			Price:       req.Price,
			Description: req.Description,
			Image:       req.Image,
			AuthorID:    &authorID,
		}
		if err := createAd(ctx, db, ad); err != nil {
			return handler.RespondError(c, err)
		}
		// 重新讀取以帶出作者資料
		created, err := getAdByID(ctx, db, ad.ID)
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusCreated, dto.NewAdDetail(created))
	}
}

// GetAdHandler 取得單一 ad
// @Summary     Retrieve an ad
// @Tags        ads
// @Produce     json
// @Param       id  path     int true "ad ID"
// @Success     200 {object} dto.AdDetail
// @Failure     401 {object} dto.HTTPError
// @Failure     404 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Security    BearerAuth
// @Router      /ads/{id}/ [get]
func GetAdHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		ad, err := loadAd(c, db, nil)
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, dto.NewAdDetail(ad))
	}
}

// UpdateAdHandler 部分更新 ad；僅作者或管理員可操作
// @Summary     Update an ad
// @Tags        ads
// @Accept      json
// @Produce     json
// @Param       id   path     int                 true "ad ID"
// @Param       body body     dto.UpdateAdRequest true "要修改的欄位"
// @Success     200  {object} dto.AdDetail
// @Failure     400  {object} dto.HTTPError
// @Failure     401  {object} dto.HTTPError
// @Failure     403  {object} dto.HTTPError
// @Failure     404  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Security    BearerAuth
// @Router      /ads/{id}/update/ [patch]
func UpdateAdHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		ad, err := loadAd(c, db, policy.AuthorOrAdmin)
		if err != nil {
			return handler.RespondError(c, err)
		}
		var req dto.UpdateAdRequest
		if err := handler.Bind(c, &req); err != nil {
			return handler.RespondError(c, err)
		}

		if req.Title != nil {
			ad.Title = *req.Title
		}
		if req.Price != nil {
			ad.Price = req.Price
		}
		if req.Description != nil {
			ad.Description = req.Description
		}
		if req.Image != nil {
			ad.Image = req.Image
		}
		if err := updateAd(c.Request().Context(), db, ad); err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, dto.NewAdDetail(ad))
	}
}

// DeleteAdHandler 刪除 ad 以及其 comments；僅作者或管理員可操作
// @Summary     Delete an ad
// @Tags        ads
// @Param       id  path int true "ad ID"
// @Success     204 "No Content"
// @Failure     401 {object} dto.HTTPError
// @Failure     403 {object} dto.HTTPError
// @Failure     404 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Security    BearerAuth
// @Router      /ads/{id}/delete/ [delete]
func DeleteAdHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		ad, err := loadAd(c, db, policy.AuthorOrAdmin)
		if err != nil {
			return handler.RespondError(c, err)
		}
		if err := deleteAd(c.Request().Context(), db, ad.ID); err != nil {
			return handler.RespondError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// loadAd 依序檢查登入、讀取 ad、再以 check 檢查物件權限
func loadAd(c echo.Context, db database.DB, check policy.Check) (*model.Ad, error) {
	id := middleware.IdentityFrom(c)
	if err := policy.Authorize(id, nil, nil); err != nil {
		return nil, err
	}
	adID, err := handler.ParamID(c, "id")
	if err != nil {
		return nil, err
	}
	ad, err := getAdByID(c.Request().Context(), db, adID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(id, ad, check); err != nil {
		return nil, err
	}
	return ad, nil
}
