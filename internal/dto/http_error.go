// File: internal/dto/http_error.go
package dto

// HTTPError 全域錯誤響應模型
// swagger:model dto.HTTPError
type HTTPError struct {
	// message 錯誤描述
	Message string `json:"message" example:"not found"`
	// fields 欄位層級錯誤（僅驗證失敗時出現）
	Fields map[string]string `json:"fields,omitempty"`
}
