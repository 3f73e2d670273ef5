// Package policy 決定發出請求的身分能否對某個資源執行動作。
//
// 每個 Check 都是 (identity, resource) 上的純函式，每次請求都會重新求值；
// 組合時使用 Any / All，而不是在註冊路由時把檢查摺成常數。
package policy

import (
	"errors"

	"notice-board/internal/model"
)

var (
	// ErrAuthenticationRequired 受保護的路由沒有可辨識的身分
	ErrAuthenticationRequired = errors.New("authentication credentials were not provided")
	// ErrPermissionDenied 身分已確認但權限檢查未通過
	ErrPermissionDenied = errors.New("you do not have permission to perform this action")
)

// Identity 是目前請求的呼叫者；nil 代表未登入
type Identity struct {
	UserID int64
	Role   model.Role
}

// Owned 由擁有作者欄位的資源實作（Ad、Comment）
type Owned interface {
	OwnerID() *int64
}

// Check 回報 identity 是否可以對 resource 執行動作。
// resource 可能為 nil（清單、建立等沒有目標物件的動作）。
type Check func(id *Identity, resource Owned) bool

// IsAuthenticated 只要求已登入
func IsAuthenticated(id *Identity, _ Owned) bool {
	return id != nil
}

// IsAuthor 只有資源作者本人通過；作者為 NULL 的資源沒有人是作者
func IsAuthor(id *Identity, resource Owned) bool {
	if id == nil || resource == nil {
		return false
	}
	owner := resource.OwnerID()
	return owner != nil && *owner == id.UserID
}

// IsAdmin 角色為 admin 時通過
func IsAdmin(id *Identity, _ Owned) bool {
	return id != nil && id.Role == model.RoleAdmin
}

// Any 任一檢查通過即通過
func Any(checks ...Check) Check {
	return func(id *Identity, resource Owned) bool {
		for _, check := range checks {
			if check(id, resource) {
				return true
			}
		}
		return false
	}
}

// All 所有檢查都通過才通過；沒有檢查時視為通過
func All(checks ...Check) Check {
	return func(id *Identity, resource Owned) bool {
		for _, check := range checks {
			if !check(id, resource) {
				return false
			}
		}
		return true
	}
}

// AuthorOrAdmin 是 Ad 與 Comment 更新、刪除所用的物件層級權限
var AuthorOrAdmin = Any(IsAuthor, IsAdmin)

// Authorize 先確認已登入，再以 check 判斷；未登入回傳
// ErrAuthenticationRequired，檢查失敗回傳 ErrPermissionDenied。
// check 為 nil 時只檢查是否登入。
func Authorize(id *Identity, resource Owned, check Check) error {
	if !IsAuthenticated(id, resource) {
		return ErrAuthenticationRequired
	}
	if check != nil && !check(id, resource) {
		return ErrPermissionDenied
	}
	return nil
}
