package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"notice-board/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	t.Cleanup(restoreGlobals)
	pwd := "secret"
	hash, err := HashPassword(pwd)
	require.NoError(t, err)
	require.NotEqual(t, pwd, hash)
	require.NoError(t, ComparePassword(hash, pwd))
	require.ErrorIs(t, ComparePassword(hash, "other"), ErrInvalidCredentials)

	// 雜湊格式錯誤不是密碼錯誤
	err = ComparePassword("not-a-bcrypt-hash", pwd)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrInvalidCredentials)

	bcryptGenerateFromPassword = func(_ []byte, _ int) ([]byte, error) {
		return nil, errors.New("gen")
	}
	_, err = HashPassword(pwd)
	require.ErrorContains(t, err, "hash password")
}

func TestAuthenticateUser(t *testing.T) {
	t.Cleanup(restoreGlobals)
	hash, _ := HashPassword("pw")
	u := model.User{PasswordHash: hash, IsActive: true}
	require.NoError(t, AuthenticateUser(context.Background(), u, "pw"))
	require.ErrorIs(t, AuthenticateUser(context.Background(), u, "bad"), ErrInvalidCredentials)

	u.IsActive = false
	require.ErrorIs(t, AuthenticateUser(context.Background(), u, "pw"), ErrInvalidCredentials)

	require.ErrorIs(t, AuthenticateUser(context.Background(), model.User{IsActive: true}, ""), ErrInvalidCredentials)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	u.IsActive = true
	bcryptCompareHashAndPassword = func([]byte, []byte) error {
		t.Fatal("compare after cancel")
		return nil
	}
	require.ErrorIs(t, AuthenticateUser(ctx, u, "pw"), context.Canceled)
}

func TestIssueAccessToken(t *testing.T) {
	t.Cleanup(restoreGlobals)
	t.Setenv("JWT_SECRET", "")
	_, err := IssueAccessToken(model.User{}, time.Minute)
	require.Error(t, err)

	t.Setenv("JWT_SECRET", "s")
	tok, err := IssueAccessToken(model.User{ID: 5, Role: model.RoleAdmin}, time.Minute)
	require.NoError(t, err)
	claims := &CustomClaims{}
	_, err = jwt.ParseWithClaims(tok, claims, func(*jwt.Token) (any, error) { return []byte("s"), nil })
	require.NoError(t, err)
	require.Equal(t, int64(5), claims.UserID)
	require.Equal(t, "admin", claims.Role)
	require.Equal(t, "5", claims.Subject)
}

func TestVerifyAccessToken(t *testing.T) {
	t.Cleanup(restoreGlobals)
	t.Setenv("JWT_SECRET", "")
	_, err := VerifyAccessToken("abc")
	require.Error(t, err)

	t.Setenv("JWT_SECRET", "s")
	_, err = VerifyAccessToken("invalid")
	require.Error(t, err)

	tokNone, _ := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"foo": "bar"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	_, err = VerifyAccessToken(tokNone)
	require.Error(t, err)

	timeNow = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, _ := IssueAccessToken(model.User{ID: 3}, time.Minute)
	timeNow = time.Now
	_, err = VerifyAccessToken(expired)
	require.Error(t, err)

	parseWithClaims = func(s string, c jwt.Claims, k jwt.Keyfunc, opts ...jwt.ParserOption) (*jwt.Token, error) {
		return &jwt.Token{Claims: jwt.MapClaims{}, Valid: false}, nil
	}
	_, err = VerifyAccessToken("whatever")
	require.Error(t, err)

	parseWithClaims = jwt.ParseWithClaims
	tok, _ := IssueAccessToken(model.User{ID: 3, Role: model.RoleUser}, time.Minute)
	claims, err := VerifyAccessToken(tok)
	require.NoError(t, err)
	require.Equal(t, int64(3), claims.UserID)
	require.Equal(t, "user", claims.Role)
}
