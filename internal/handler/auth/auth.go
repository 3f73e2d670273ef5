// Package auth 處理註冊、登入與 token 更新
package auth

import (
	"time"

	"notice-board/internal/service"
	"notice-board/internal/store"
)

// Options token 有效期限
type Options struct {
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

var (
	getUserByEmail       = store.GetUserByEmail
	getUserByID          = store.GetUserByID
	updateLastLogin      = store.UpdateLastLogin
	createUser           = service.CreateUser
	authenticateUser     = service.AuthenticateUser
	issueAccessToken     = service.IssueAccessToken
	issueRefreshToken    = service.IssueRefreshToken
	validateRefreshToken = service.ValidateRefreshToken
	revokeRefreshToken   = service.RevokeRefreshToken
	timeNow              = time.Now
)
