package dto

// TokenResponse 登入與換發 token 的回應；refresh 時沿用原本的 refresh_token
// swagger:model dto.TokenResponse
type TokenResponse struct {
	AccessToken  string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	TokenType    string `json:"token_type" example:"Bearer"`
	ExpiresIn    int    `json:"expires_in" example:"86400"`
	RefreshToken string `json:"refresh_token" example:"3q2-7wEAAAB0b2tlbg"`
}
