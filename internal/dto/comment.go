// File: internal/dto/comment.go
package dto

import (
	"time"

	"notice-board/internal/model"
)

// CommentRequest 建立 comment；ad 與 author 由伺服器決定
// swagger:model dto.CommentRequest
type CommentRequest struct {
	Text string `json:"text" form:"text" validate:"required" example:"還在嗎？"`
}

// UpdateCommentRequest 部分更新；未帶 text 時內容不變，帶了就不能是空字串
// swagger:model dto.UpdateCommentRequest
type UpdateCommentRequest struct {
	Text *string `json:"text" form:"text" validate:"omitnil,min=1" example:"已售出"`
}

// swagger:model dto.CommentResponse
type CommentResponse struct {
	PK              int64     `json:"pk" example:"1"`
	Text            string    `json:"text" example:"還在嗎？"`
	AuthorID        *int64    `json:"author_id" example:"2"`
	CreatedAt       time.Time `json:"created_at" example:"2025-05-01T15:04:05Z"`
	AuthorFirstName string    `json:"author_first_name" example:"Bob"`
	AuthorLastName  string    `json:"author_last_name" example:"Chen"`
	AdID            *int64    `json:"ad_id" example:"1"`
	AuthorImage     *string   `json:"author_image" example:"users/bob.png"`
}

func NewCommentResponse(c *model.Comment) CommentResponse {
	r := CommentResponse{
		PK:        c.ID,
		Text:      c.Text,
		AuthorID:  c.AuthorID,
		CreatedAt: c.CreatedAt,
		AdID:      c.AdID,
	}
	if c.Author != nil {
		r.AuthorFirstName = c.Author.FirstName
		r.AuthorLastName = c.Author.LastName
		r.AuthorImage = c.Author.Avatar
	}
	return r
}

func NewCommentResponses(list []model.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(list))
	for i := range list {
		out = append(out, NewCommentResponse(&list[i]))
	}
	return out
}
