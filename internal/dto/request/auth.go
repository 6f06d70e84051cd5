package request

type RegisterRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=50"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,min=6,max=20"`
	Role     string  `json:"role" validate:"required,oneof=admin employee"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
	// UseJWT requests a JWT token pair instead of a server-side session.
	UseJWT bool `json:"use_jwt"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required,uuid4"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}
