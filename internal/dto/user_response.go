// File: internal/dto/user_response.go
package dto

import (
	"time"

	"notice-board/internal/model"
)

// swagger:model dto.UserResponse
type UserResponse struct {
	ID         int64      `json:"id" example:"1"`
	Email      string     `json:"email" example:"alice@example.com"`
	FirstName  string     `json:"first_name" example:"Alice"`
	LastName   string     `json:"last_name" example:"Lee"`
	Phone      *string    `json:"phone" example:"+886912345678"`
	Avatar     *string    `json:"image" example:"users/avatar.png"`
	Role       string     `json:"role" example:"user"`
	IsActive   bool       `json:"is_active" example:"true"`
	LastLogin  *time.Time `json:"last_login"`
	DateJoined time.Time  `json:"date_joined" example:"2025-05-01T15:04:05Z"`
}

func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Phone:      u.Phone,
		Avatar:     u.Avatar,
		Role:       string(u.Role),
		IsActive:   u.IsActive,
		LastLogin:  u.LastLogin,
		DateJoined: u.DateJoined,
	}
}
