package ads

import (
	"fmt"
	"strconv"

	"notice-board/internal/store"

	"github.com/labstack/echo/v4"
)

const maxPageSize = 100

type pagination struct {
	Number int
	Size   int
}

func (p pagination) offset() int {
	return (p.Number - 1) * p.Size
}

// check 第一頁永遠有效（即使沒有資料），其餘頁碼必須落在資料範圍內。
// 以頁數比較而不是 offset，避免極大的 page 在相乘時溢位；offset 只能在 check 通過後使用
func (p pagination) check(count int) error {
	pages := (count + p.Size - 1) / p.Size
	if p.Number > 1 && p.Number > pages {
		return fmt.Errorf("page %d: %w", p.Number, store.ErrNotFound)
	}
	return nil
}

func parsePagination(c echo.Context, defaultSize int) (pagination, error) {
	p := pagination{Number: 1, Size: defaultSize}
	if v := c.QueryParam("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return p, fmt.Errorf("invalid page %q: %w", v, store.ErrNotFound)
		}
		p.Number = n
	}
	// page_size 無效時沿用預設值
	if v := c.QueryParam("page_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.Size = min(n, maxPageSize)
		}
	}
	if p.Size <= 0 {
		p.Size = 1
	}
	return p, nil
}
