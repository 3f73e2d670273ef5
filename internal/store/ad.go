package store

import (
	"context"
	"fmt"
	"strings"

	"notice-board/internal/database"
	"notice-board/internal/model"

	"github.com/jackc/pgx/v5"
)

// ListAdsParams 清單查詢條件；Title 為空代表不過濾
type ListAdsParams struct {
	Title  string
	Limit  int
	Offset int
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern 產生 ILIKE 用的子字串樣式，輸入中的萬用字元會被跳脫
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func adFilter(title string) (string, []any) {
	if title == "" {
		return "", nil
	}
	return ` WHERE a.title ILIKE $1`, []any{containsPattern(title)}
}

// ListAds 依 created_at 由新到舊列出 ads
func ListAds(ctx context.Context, db database.DB, p ListAdsParams) ([]model.Ad, error) {
	where, args := adFilter(p.Title)
	sql := `SELECT a.id, a.title, a.price, a.description, a.author_id, a.created_at, a.image
	        FROM ads a` + where +
		fmt.Sprintf(` ORDER BY a.created_at DESC, a.id DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, p.Limit, p.Offset)

	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("ListAds: %w", err)
	}
	defer rows.Close()

	ads := []model.Ad{}
	for rows.Next() {
		var a model.Ad
		if err := rows.Scan(&a.ID, &a.Title, &a.Price, &a.Description, &a.AuthorID, &a.CreatedAt, &a.Image); err != nil {
			return nil, fmt.Errorf("ListAds: %w", err)
		}
		ads = append(ads, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListAds: %w", err)
	}
	return ads, nil
}

// CountAds 回傳符合條件的 ad 總數
func CountAds(ctx context.Context, db database.DB, title string) (int, error) {
	where, args := adFilter(title)
	var n int
	if err := db.QueryRow(ctx, `SELECT count(*) FROM ads a`+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("CountAds: %w", err)
	}
	return n, nil
}

// GetAdByID 取得單一 ad 並 join 作者資料
func GetAdByID(ctx context.Context, db database.DB, id int64) (*model.Ad, error) {
	row := db.QueryRow(ctx, `
        SELECT a.id, a.title, a.price, a.description, a.author_id, a.created_at, a.image,
               u.first_name, u.last_name, u.phone, u.avatar
        FROM ads a
        LEFT JOIN users u ON u.id = a.author_id
        WHERE a.id = $1
    `, id)

	a, err := scanAdWithAuthor(row)
	if err != nil {
		return nil, fmt.Errorf("GetAdByID: %w", notFound(err))
	}
	return a, nil
}

func scanAdWithAuthor(row pgx.Row) (*model.Ad, error) {
	a := &model.Ad{}
	var first, last, phone, avatar *string
	if err := row.Scan(
		&a.ID,
		&a.Title,
		&a.Price,
		&a.Description,
		&a.AuthorID,
		&a.CreatedAt,
		&a.Image,
		&first,
		&last,
		&phone,
		&avatar,
	); err != nil {
		return nil, err
	}
	a.Author = joinedAuthor(a.AuthorID, first, last, phone, avatar)
	return a, nil
}

func joinedAuthor(id *int64, first, last, phone, avatar *string) *model.Author {
	if id == nil {
		return nil
	}
	au := &model.Author{ID: *id, Phone: phone, Avatar: avatar}
	if first != nil {
		au.FirstName = *first
	}
	if last != nil {
		au.LastName = *last
	}
	return au
}

// CreateAd 新增 ad；id 與 created_at 由資料庫產生
func CreateAd(ctx context.Context, db database.DB, a *model.Ad) error {
	row := db.QueryRow(ctx, `
        INSERT INTO ads (title, price, description, author_id, image)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at
    `,
		a.Title,
		a.Price,
		a.Description,
		a.AuthorID,
		a.Image,
	)
	if err := row.Scan(&a.ID, &a.CreatedAt); err != nil {
		return fmt.Errorf("CreateAd: %w", err)
	}
	return nil
}

// UpdateAd 更新可編輯欄位；author_id 與 created_at 不會被修改
func UpdateAd(ctx context.Context, db database.DB, a *model.Ad) error {
	tag, err := db.Exec(ctx, `
        UPDATE ads SET
            title = $1,
            price = $2,
            description = $3,
            image = $4
        WHERE id = $5
    `,
		a.Title,
		a.Price,
		a.Description,
		a.Image,
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("UpdateAd: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UpdateAd: %w", ErrNotFound)
	}
	return nil
}

// DeleteAd 刪除 ad，其 comments 由外鍵 cascade 一併刪除
func DeleteAd(ctx context.Context, db database.DB, id int64) error {
	tag, err := db.Exec(ctx, `DELETE FROM ads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("DeleteAd: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DeleteAd: %w", ErrNotFound)
	}
	return nil
}
