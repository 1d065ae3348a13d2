package usecase

import (
	"context"
	"strings"

	"github.com/ailabstn/authapi/internal/auth/entity"
	"github.com/ailabstn/authapi/internal/pkg/goerror"
)

type CompleteLoginInput struct {
	Email       string `validate:"required,email"`
	OTP         string `validate:"required,otp"`
	NewPassword string `validate:"omitempty,password"`
}

type CompleteLoginOutput struct {
	// Tokens is set when a new password was supplied and the provider login
	// succeeded.
	Tokens *entity.TokenPair
	// AwaitingPassword is set when the OTP was consumed but no new password
	// was supplied; the caller should prompt for one.
	AwaitingPassword bool
}

// CompleteLogin consumes the login OTP. Without a new password it only
// acknowledges verification. With one it performs a provider password login —
// this assumes the password was already reset out of band; no administrative
// password update happens here.
func (s *Usecase) CompleteLogin(ctx context.Context, in CompleteLoginInput) (*CompleteLoginOutput, error) {
	ctx, span := s.startSpan(ctx, "CompleteLogin")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if err := s.verifyOTP(ctx, in.Email, in.OTP, entity.PurposeLogin); err != nil {
		return nil, err
	}

	if in.NewPassword == "" {
		return &CompleteLoginOutput{AwaitingPassword: true}, nil
	}

	tokens, err := s.provider.PasswordLogin(ctx, in.Email, in.NewPassword)
	if err != nil {
		return nil, s.providerAuthError(ctx, err, "Invalid credentials")
	}

	return &CompleteLoginOutput{Tokens: tokens}, nil
}
