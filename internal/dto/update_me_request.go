// File: internal/dto/update_me_request.go
package dto

// UpdateMeRequest 部分更新；未帶的欄位維持原值
// swagger:model dto.UpdateMeRequest
type UpdateMeRequest struct {
	FirstName *string `json:"first_name" form:"first_name" validate:"omitempty,max=150" example:"Alice"`
	LastName  *string `json:"last_name" form:"last_name" validate:"omitempty,max=150" example:"Lee"`
	Phone     *string `json:"phone" form:"phone" validate:"omitempty,max=35" example:"+886912345678"`
	Avatar    *string `json:"image" form:"image" validate:"omitempty,max=255" example:"users/avatar.png"`
}
