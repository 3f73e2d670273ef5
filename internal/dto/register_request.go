// File: internal/dto/register_request.go
package dto

// swagger:model dto.RegisterRequest
type RegisterRequest struct {
	Email     string  `json:"email" form:"email" validate:"required,email" example:"alice@example.com"`
	Password  string  `json:"password" form:"password" validate:"required,min=8" example:"Secret123!"`
	FirstName string  `json:"first_name" form:"first_name" validate:"max=150" example:"Alice"`
	LastName  string  `json:"last_name" form:"last_name" validate:"max=150" example:"Lee"`
	Phone     *string `json:"phone" form:"phone" validate:"omitempty,max=35" example:"+886912345678"`
}
