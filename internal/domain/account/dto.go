package account

import "time"

type SignUpRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Name string `json:"name" validate:"required,min=2,max=120"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type LoginResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	ExpiresIn   int64    `json:"expires_in"`
	Profile     *Profile `json:"profile"`
	State       string   `json:"state"`
}

type SubscriptionResponse struct {
	Status        SubscriptionStatus `json:"status"`
	ExpiresAt     *time.Time         `json:"expires_at,omitempty"`
	DaysRemaining int                `json:"days_remaining"`
	Plans         []Plan             `json:"plans"`
}
