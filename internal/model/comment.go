// File: internal/model/comment.go
package model

import "time"

type Comment struct {
	ID        int64     `db:"id"`
	Text      string    `db:"text"`
	AuthorID  *int64    `db:"author_id"`
	AdID      *int64    `db:"ad_id"`
	CreatedAt time.Time `db:"created_at"`

	Author *Author `db:"-"`
}

func (c *Comment) OwnerID() *int64 {
	return c.AuthorID
}
