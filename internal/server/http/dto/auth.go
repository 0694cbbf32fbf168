package dto

// LoginRequest is the operator login payload.
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the issued bearer token.
type LoginResponse struct {
	Token string `json:"token"`
}
