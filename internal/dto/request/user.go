package request

type UserUpdateRequest struct {
	Username *string `json:"username,omitempty" validate:"omitempty,min=3,max=50"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,min=6,max=20"`
	Role     *string `json:"role,omitempty" validate:"omitempty,oneof=admin employee"`
	IsActive *bool   `json:"is_active,omitempty"`
}

type UserSettingsRequest struct {
	Language             *string `json:"language,omitempty" validate:"omitempty,oneof=de en"`
	Timezone             *string `json:"timezone,omitempty" validate:"omitempty,min=1,max=64"`
	NotificationsEnabled *bool   `json:"notifications_enabled,omitempty"`
	EmailDigest          *bool   `json:"email_digest,omitempty"`
}
