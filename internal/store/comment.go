package store

import (
	"context"
	"fmt"

	"notice-board/internal/database"
	"notice-board/internal/model"

	"github.com/jackc/pgx/v5"
)

// 所有 comment 查詢都以 ad_id 限定範圍；id 屬於其他 ad 時視同不存在
const commentSelect = `
        SELECT c.id, c.text, c.author_id, c.ad_id, c.created_at,
               u.first_name, u.last_name, u.phone, u.avatar
        FROM comments c
        LEFT JOIN users u ON u.id = c.author_id`

func scanComment(row pgx.Row) (*model.Comment, error) {
	c := &model.Comment{}
	var first, last, phone, avatar *string
	if err := row.Scan(
		&c.ID,
		&c.Text,
		&c.AuthorID,
		&c.AdID,
		&c.CreatedAt,
		&first,
		&last,
		&phone,
		&avatar,
	); err != nil {
		return nil, err
	}
	c.Author = joinedAuthor(c.AuthorID, first, last, phone, avatar)
	return c, nil
}

// ListComments 列出某個 ad 底下的 comments（舊到新）
func ListComments(ctx context.Context, db database.DB, adID int64) ([]model.Comment, error) {
	rows, err := db.Query(ctx, commentSelect+`
        WHERE c.ad_id = $1
        ORDER BY c.created_at, c.id`, adID)
	if err != nil {
		return nil, fmt.Errorf("ListComments: %w", err)
	}
	defer rows.Close()

	comments := []model.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("ListComments: %w", err)
		}
		comments = append(comments, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListComments: %w", err)
	}
	return comments, nil
}

func GetComment(ctx context.Context, db database.DB, adID, id int64) (*model.Comment, error) {
	c, err := scanComment(db.QueryRow(ctx, commentSelect+`
        WHERE c.id = $1 AND c.ad_id = $2`, id, adID))
	if err != nil {
		return nil, fmt.Errorf("GetComment: %w", notFound(err))
	}
	return c, nil
}

func CreateComment(ctx context.Context, db database.DB, c *model.Comment) error {
	row := db.QueryRow(ctx, `
        INSERT INTO comments (text, author_id, ad_id)
        VALUES ($1, $2, $3)
        RETURNING id, created_at
    `,
		c.Text,
		c.AuthorID,
		c.AdID,
	)
	if err := row.Scan(&c.ID, &c.CreatedAt); err != nil {
		return fmt.Errorf("CreateComment: %w", err)
	}
	return nil
}

// UpdateCommentText 只允許修改內容；ad_id、author_id、created_at 固定不變
func UpdateCommentText(ctx context.Context, db database.DB, adID, id int64, text string) error {
	tag, err := db.Exec(ctx,
		`UPDATE comments SET text = $1 WHERE id = $2 AND ad_id = $3`,
		text, id, adID,
	)
	if err != nil {
		return fmt.Errorf("UpdateCommentText: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UpdateCommentText: %w", ErrNotFound)
	}
	return nil
}

func DeleteComment(ctx context.Context, db database.DB, adID, id int64) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM comments WHERE id = $1 AND ad_id = $2`,
		id, adID,
	)
	if err != nil {
		return fmt.Errorf("DeleteComment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DeleteComment: %w", ErrNotFound)
	}
	return nil
}
