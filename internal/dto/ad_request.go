// File: internal/dto/ad_request.go
package dto

// CreateAdRequest 不接受 author 欄位，作者一律取自登入身分
// swagger:model dto.CreateAdRequest
type CreateAdRequest struct {
	Title       string  `json:"title" form:"title" validate:"required,max=200" example:"二手腳踏車"`
	Price       *int    `json:"price" form:"price" validate:"omitempty,min=0,max=2147483647" example:"1500"`
	Description *string `json:"description" form:"description" example:"九成新"`
	Image       *string `json:"image" form:"image" validate:"omitempty,max=255" example:"ads/bike.jpg"`
}

// UpdateAdRequest 部分更新；nil 代表不修改
// swagger:model dto.UpdateAdRequest
type UpdateAdRequest struct {
	Title       *string `json:"title" form:"title" validate:"omitempty,min=1,max=200" example:"二手腳踏車"`
	Price       *int    `json:"price" form:"price" validate:"omitempty,min=0,max=2147483647" example:"1200"`
	Description *string `json:"description" form:"description" example:"降價"`
	Image       *string `json:"image" form:"image" validate:"omitempty,max=255" example:"ads/bike.jpg"`
}
