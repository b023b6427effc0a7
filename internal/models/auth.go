package models

type LoginRequest struct {
	Password string `json:"password" form:"password"`
}

type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
}
