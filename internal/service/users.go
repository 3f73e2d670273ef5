package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"notice-board/internal/database"
	"notice-board/internal/model"
	"notice-board/internal/store"
)

// ValidationError 欄位層級的輸入錯誤，key 為欄位名稱
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return strings.Join(msgs, "; ")
}

func fieldError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// NewUser 建立帳號的輸入；nil 的旗標套用預設值
type NewUser struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	Phone       *string
	IsActive    *bool
	IsStaff     *bool
	IsSuperuser *bool
}

var insertUser = store.CreateUser

// NormalizeEmail 去除前後空白並將 domain 轉小寫，local part 保留原樣
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}

// CreateUser 建立一般使用者（role=user）
func CreateUser(ctx context.Context, db database.DB, in NewUser) (*model.User, error) {
	u := &model.User{
		Role:        model.RoleUser,
		IsActive:    boolOr(in.IsActive, true),
		IsStaff:     boolOr(in.IsStaff, false),
		IsSuperuser: boolOr(in.IsSuperuser, false),
	}
	return createUser(ctx, db, in, u)
}

// CreateSuperuser 建立管理員；is_staff 與 is_superuser 必須為 true
func CreateSuperuser(ctx context.Context, db database.DB, in NewUser) (*model.User, error) {
	if in.IsStaff != nil && !*in.IsStaff {
		return nil, fieldError("is_staff", "Superuser must have is_staff=True.")
	}
	if in.IsSuperuser != nil && !*in.IsSuperuser {
		return nil, fieldError("is_superuser", "Superuser must have is_superuser=True.")
	}
	u := &model.User{
		Role:        model.RoleAdmin,
		IsActive:    boolOr(in.IsActive, true),
		IsStaff:     true,
		IsSuperuser: true,
	}
	return createUser(ctx, db, in, u)
}

func createUser(ctx context.Context, db database.DB, in NewUser, u *model.User) (*model.User, error) {
	if strings.TrimSpace(in.Email) == "" {
		return nil, fieldError("email", "Email must be provided")
	}
	if in.Password == "" {
		return nil, fieldError("password", "Password must be provided")
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("CreateUser: %w", err)
	}

	u.Email = NormalizeEmail(in.Email)
	u.PasswordHash = hash
	u.FirstName = in.FirstName
	u.LastName = in.LastName
	u.Phone = in.Phone

	created, err := insertUser(ctx, db, u)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
