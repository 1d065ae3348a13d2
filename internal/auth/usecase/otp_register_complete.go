package usecase

import (
	"context"
	"strings"

	"github.com/ailabstn/authapi/internal/auth/entity"
	"github.com/ailabstn/authapi/internal/pkg/goerror"
)

type CompleteRegisterInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,password"`
	OTP      string `validate:"required,otp"`
}

// CompleteRegister consumes the registration OTP and, on success, creates
// the provider account with the supplied credentials.
func (s *Usecase) CompleteRegister(ctx context.Context, in CompleteRegisterInput) (entity.ProviderUser, error) {
	ctx, span := s.startSpan(ctx, "CompleteRegister")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if err := s.verifyOTP(ctx, in.Email, in.OTP, entity.PurposeRegister); err != nil {
		return nil, err
	}

	user, err := s.provider.CreateUser(ctx, in.Email, "", in.Password)
	if err != nil {
		return nil, s.providerCreateError(ctx, err)
	}

	return user, nil
}
