package entity

import "time"

// Purpose scopes an OTP to a specific flow so codes are not cross-usable.
type Purpose string

const (
	PurposeRegister Purpose = "register"
	PurposeLogin    Purpose = "login"
)

func (p Purpose) String() string {
	return string(p)
}

// OTP is one issued code as persisted in the auth_otp table.
type OTP struct {
	ID         int64
	Email      string
	Phone      string
	Code       string
	Purpose    Purpose
	CreatedAt  time.Time
	ExpiresAt  time.Time
	ConsumedAt *time.Time
}

// NewOTP carries the fields needed to persist a freshly issued code.
type NewOTP struct {
	ID        int64
	Email     string
	Code      string
	Purpose   Purpose
	ExpiresAt time.Time
}
