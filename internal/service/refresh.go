package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"notice-board/internal/cache"

	"github.com/redis/go-redis/v9"
)

// ErrInvalidRefreshToken refresh token 不存在或已過期
var ErrInvalidRefreshToken = errors.New("invalid refresh token")

const refreshTokenPrefix = "refresh_token:"

var (
	randRead      = rand.Read
	jsonMarshal   = json.Marshal
	jsonUnmarshal = json.Unmarshal
)

// RefreshTokenData 存在 redis 中的 refresh token 內容
type RefreshTokenData struct {
	UserID   int64     `json:"user_id"`
	IssuedAt time.Time `json:"issued_at"`
}

func refreshKey(token string) string {
	return refreshTokenPrefix + token
}

// IssueRefreshToken 產生隨機 refresh token 並以 ttl 存入 cache
func IssueRefreshToken(ctx context.Context, c cache.Cache, userID int64, ttl time.Duration) (string, error) {
	buf := make([]byte, 32)
	if _, err := randRead(buf); err != nil {
		return "", fmt.Errorf("IssueRefreshToken: %w", err)
	}
	token := base64.RawURLEncoding.EncodeToString(buf)

	data, err := jsonMarshal(RefreshTokenData{UserID: userID, IssuedAt: timeNow().UTC()})
	if err != nil {
		return "", fmt.Errorf("IssueRefreshToken: %w", err)
	}
	if err := c.Set(ctx, refreshKey(token), data, ttl).Err(); err != nil {
		return "", fmt.Errorf("IssueRefreshToken: %w", err)
	}
	return token, nil
}

// ValidateRefreshToken 讀回 refresh token 對應的資料
func ValidateRefreshToken(ctx context.Context, c cache.Cache, token string) (*RefreshTokenData, error) {
	raw, err := c.Get(ctx, refreshKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrInvalidRefreshToken
	}
	if err != nil {
		return nil, fmt.Errorf("ValidateRefreshToken: %w", err)
	}
	var data RefreshTokenData
	if err := jsonUnmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("ValidateRefreshToken: %w", err)
	}
	return &data, nil
}

// RevokeRefreshToken 刪除 refresh token；不存在時也視為成功
func RevokeRefreshToken(ctx context.Context, c cache.Cache, token string) error {
	if err := c.Del(ctx, refreshKey(token)).Err(); err != nil {
		return fmt.Errorf("RevokeRefreshToken: %w", err)
	}
	return nil
}
