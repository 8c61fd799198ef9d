package models

// RegisterRequest creates a customer account
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the customer login payload
type LoginRequest struct {
	Username string `json:"loginUsername"`
	Password string `json:"loginPassword"`
}

// LoginResponse carries the customer bearer token
type LoginResponse struct {
	Token string `json:"jwt_token"`
}

// AdminLoginRequest is the admin login payload
type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdminLoginResponse carries the admin bearer token
type AdminLoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	Message string `json:"message"`
}
