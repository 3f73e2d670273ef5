// File: internal/dto/update_user_request.go
package dto

// UpdateUserRequest 管理員調整角色與啟用狀態
// swagger:model dto.UpdateUserRequest
type UpdateUserRequest struct {
	Role     *string `json:"role" form:"role" validate:"omitempty,oneof=user admin" example:"admin"`
	IsActive *bool   `json:"is_active" form:"is_active" example:"true"`
}
