// File: internal/router/router.go
package router

import (
	"time"

	"github.com/labstack/echo/v4"

	"notice-board/internal/cache"
	"notice-board/internal/database"
	"notice-board/internal/handler"
	"notice-board/internal/handler/ads"
	"notice-board/internal/handler/auth"
	"notice-board/internal/handler/comments"
	"notice-board/internal/handler/users"
	"notice-board/internal/middleware"
	"notice-board/internal/worker"
)

// Options 路由層需要的設定
type Options struct {
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	PageSize        int
}

// Setup 註冊所有路由與中介層。
// 路徑不含結尾斜線，請求端的結尾斜線由 RemoveTrailingSlash 在路由前移除。
func Setup(e *echo.Echo, db database.DB, cch cache.Cache, wp worker.Pool, opts Options) {
	api := e.Group("/api")
	authOpts := auth.Options{AccessTTL: opts.AccessTokenTTL, RefreshTTL: opts.RefreshTokenTTL}
	requireAuth := middleware.RequireAuth(db)
	requireAdmin := middleware.RequireAdmin(db)

	// 健康檢查（需登入）
	api.GET("/ping", handler.PingHandler(db, cch), requireAuth)

	// 註冊、登入與 token
	api.POST("/auth/register", auth.RegisterHandler(db))
	api.POST("/auth/login", auth.LoginHandler(db, cch, wp, authOpts))
	api.POST("/auth/refresh", auth.RefreshHandler(db, cch, authOpts))
	api.POST("/auth/logout", auth.LogoutHandler(cch))

	// 取得、更新、刪除當前使用者個人資料
	api.GET("/users/me", users.GetMeHandler(db), requireAuth)
	api.PATCH("/users/me", users.UpdateMeHandler(db), requireAuth)
	api.DELETE("/users/me", users.DeleteMeHandler(db), requireAuth)
	api.PATCH("/users/me/password", users.UpdatePasswordMeHandler(db), requireAuth)

	// 管理員專屬
	api.GET("/users/:id", users.GetUserHandler(db), requireAdmin)
	api.PATCH("/users/:id", users.UpdateUserHandler(db), requireAdmin)
	api.DELETE("/users/:id", users.DeleteUserHandler(db), requireAdmin)

	// Ads
	api.GET("/ads", ads.ListAdsHandler(db, opts.PageSize), requireAuth)
	api.POST("/ads/create", ads.CreateAdHandler(db), requireAuth)
	api.GET("/ads/:id", ads.GetAdHandler(db), requireAuth)
	api.PATCH("/ads/:id/update", ads.UpdateAdHandler(db), requireAuth)
	api.DELETE("/ads/:id/delete", ads.DeleteAdHandler(db), requireAuth)

	// Comments，以 ad_id 限定範圍
	api.GET("/ads/:ad_id/comments", comments.ListCommentsHandler(db), requireAuth)
	api.POST("/ads/:ad_id/comments", comments.CreateCommentHandler(db), requireAuth)
	api.GET("/ads/:ad_id/comments/:id", comments.GetCommentHandler(db), requireAuth)
	api.PATCH("/ads/:ad_id/comments/:id", comments.UpdateCommentHandler(db), requireAuth)
	api.DELETE("/ads/:ad_id/comments/:id", comments.DeleteCommentHandler(db), requireAuth)
}
