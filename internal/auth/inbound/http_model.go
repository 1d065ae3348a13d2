package inbound

import "github.com/ailabstn/authapi/internal/auth/entity"

type StartRegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CompleteRegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	OTP      string `json:"otp"`
}

type StartLoginRequest struct {
	Email string `json:"email"`
}

type CompleteLoginRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"new_password,omitempty"`
}

// AckResponse is the {success, message} acknowledgement shape shared by the
// OTP start steps and the awaiting-password outcome.
type AckResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type CompleteRegisterResponse struct {
	Success bool                `json:"success"`
	User    entity.ProviderUser `json:"user"`
}

type HealthResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
}
