// Package comments 處理掛在 ad 底下的 comments；所有操作都以路由上的 ad_id 限定範圍
package comments

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
	getAdByID         = store.GetAdByID
	listComments      = store.ListComments
	getComment        = store.GetComment
	createComment     = store.CreateComment
	updateCommentText = store.UpdateCommentText
	deleteComment     = store.DeleteComment
)

// ListCommentsHandler 列出某個 ad 的 comments
// @Summary     List comments of an ad
// @Tags        comments
// @Produce     json
// @Param       ad_id path     int true "ad ID"
// @Success     200   {array}  dto.CommentResponse
// @Failure     401   {object} dto.HTTPError
// @Failure     500   {object} dto.HTTPError
// @Security    BearerAuth
// @Router      /ads/{ad_id}/comments/ [get]
func ListCommentsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := policy.Authorize(middleware.IdentityFrom(c), nil, nil); err != nil {
			return handler.RespondError(c, err)
		}
		adID, err := handler.ParamID(c, "ad_id")
		if err != nil {
			return handler.RespondError(c, err)
		}
		list, err := listComments(c.Request().Context(), db, adID)
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, dto.NewCommentResponses(list))
	}
}

// CreateCommentHandler 在 ad 底下新增 comment；ad 與作者由伺服器指定
// @Summary     Comment on an ad
// @Tags        comments
// @Accept      json
// @Produce     json
// @Param       ad_id path     int                true "ad ID"
// @Param       body  body     dto.CommentRequest true "comment 內容"
// @Success     201   {object} dto.CommentResponse
// @Failure     400   {object} dto.HTTPError
// @Failure     401   {object} dto.HTTPError
// @Failure     404   {object} dto.HTTPError "ad 不存在"
// @Failure     500   {object} dto.HTTPError
// @Security    BearerAuth
// @Router      /ads/{ad_id}/comments/ [post]
func CreateCommentHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := middleware.IdentityFrom(c)
		if err := policy.Authorize(id, nil, nil); err != nil {
			return handler.RespondError(c, err)
		}
		adID, err := handler.ParamID(c, "ad_id")
		if err != nil {
			return handler.RespondError(c, err)
		}
		var req dto.CommentRequest
		if err := handler.Bind(c, &req); err != nil {
			return handler.RespondError(c, err)
		}

		ctx := c.Request().Context()
		if _, err := getAdByID(ctx, db, adID); err != nil {
			return handler.RespondError(c, err)
		}
		authorID := id.UserID
		cm := &model.Comment{Text: req.Text, AuthorID: &authorID, AdID: &adID}
		if err := createComment(ctx, db, cm); err != nil {
			return handler.RespondError(c, err)
		}
		created, err := getComment(ctx, db, adID, cm.ID)
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusCreated, dto.NewCommentResponse(created))
	}
}

// GetCommentHandler 取得 ad 底下的單一 comment
// @Summary     Retrieve a comment
// @Tags        comments
// @Produce     json
// @Param       ad_id path     int true "ad ID"
// @Param       id    path     int true "comment ID"
// @Success     200   {object} dto.CommentResponse
// @Failure     401   {object} dto.HTTPError
// @Failure     404   {object} dto.HTTPError
// @Failure     500   {object} dto.HTTPError
// @Security    BearerAuth
// @Router      /ads/{ad_id}/comments/{id}/ [get]
func GetCommentHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		cm, err := loadComment(c, db, nil)
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, dto.NewCommentResponse(cm))
	}
}

// UpdateCommentHandler 修改 comment 內容；僅作者或管理員可操作
// @Summary     Update a comment
// @Tags        comments
// @Accept      json
// @Produce     json
// @Param       ad_id path     int                      true "ad ID"
// @Param       id    path     int                      true "comment ID"
// @Param       body  body     dto.UpdateCommentRequest true "新內容"
// @Success     200   {object} dto.CommentResponse
// @Failure     400   {object} dto.HTTPError
// @Failure     401   {object} dto.HTTPError
// @Failure     403   {object} dto.HTTPError
// @Failure     404   {object} dto.HTTPError
// @Failure     500   {object} dto.HTTPError
// @Security    BearerAuth
// @Router      /ads/{ad_id}/comments/{id}/ [patch]
func UpdateCommentHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		cm, err := loadComment(c, db, policy.AuthorOrAdmin)
		if err != nil {
			return handler.RespondError(c, err)
		}
		var req dto.UpdateCommentRequest
		if err := handler.Bind(c, &req); err != nil {
			return handler.RespondError(c, err)
		}
		if req.Text != nil {
			if err := updateCommentText(c.Request().Context(), db, *cm.AdID, cm.ID, *req.Text); err != nil {
				return handler.RespondError(c, err)
			}
			cm.Text = *req.Text
		}
		return c.JSON(http.StatusOK, dto.NewCommentResponse(cm))
	}
}

// DeleteCommentHandler 刪除 comment；僅作者或管理員可操作
// @Summary     Delete a comment
// @Tags        comments
// @Param       ad_id path int true "ad ID"
// @Param       id    path int true "comment ID"
// @Success     204   "No Content"
// @Failure     401   {object} dto.HTTPError
// @Failure     403   {object} dto.HTTPError
// @Failure     404   {object} dto.HTTPError
// @Failure     500   {object} dto.HTTPError
// @Security    BearerAuth
// @Router      /ads/{ad_id}/comments/{id}/ [delete]
func DeleteCommentHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		cm, err := loadComment(c, db, policy.AuthorOrAdmin)
		if err != nil {
			return handler.RespondError(c, err)
		}
		if err := deleteComment(c.Request().Context(), db, *cm.AdID, cm.ID); err != nil {
			return handler.RespondError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// loadComment 讀取 (ad_id, id) 對應的 comment；id 屬於其他 ad 時回傳 ErrNotFound
func loadComment(c echo.Context, db database.DB, check policy.Check) (*model.Comment, error) {
	id := middleware.IdentityFrom(c)
	if err := policy.Authorize(id, nil, nil); err != nil {
		return nil, err
	}
	adID, err := handler.ParamID(c, "ad_id")
	if err != nil {
		return nil, err
	}
	commentID, err := handler.ParamID(c, "id")
	if err != nil {
		return nil, err
	}
	cm, err := getComment(c.Request().Context(), db, adID, commentID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(id, cm, check); err != nil {
		return nil, err
	}
	return cm, nil
}
