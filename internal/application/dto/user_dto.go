package dto

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"not_blank"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
