// File: internal/model/ad.go
package model

import "time"

// Author 是從 users 表 join 出來的唯讀作者資料
type Author struct {
	ID        int64
	FirstName string
	LastName  string
	Phone     *string
	Avatar    *string
}

type Ad struct {
	ID          int64     `db:"id"`
	Title       string    `db:"title"`
	Price       *int      `db:"price"`
	Description *string   `db:"description"`
	AuthorID    *int64    `db:"author_id"`
	CreatedAt   time.Time `db:"created_at"`
	Image       *string   `db:"image"`

	// Author 只在 detail 查詢時填入；author_id 為 NULL 時為 nil
	Author *Author `db:"-"`
}

// OwnerID 回傳擁有者 ID，供權限檢查使用
func (a *Ad) OwnerID() *int64 {
	return a.AuthorID
}
