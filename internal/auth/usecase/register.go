package usecase

import (
	"context"
	"strings"

	"github.com/ailabstn/authapi/internal/auth/entity"
	"github.com/ailabstn/authapi/internal/pkg/goerror"
)

type RegisterInput struct {
	Email    string `validate:"required_without=Phone,omitempty,email"`
	Phone    string `validate:"required_without=Email,omitempty,e164"`
	Password string `validate:"required,password"`
}

// Register provisions a provider account directly, without an OTP step.
func (s *Usecase) Register(ctx context.Context, in RegisterInput) (entity.ProviderUser, error) {
	ctx, span := s.startSpan(ctx, "Register")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	user, err := s.provider.CreateUser(ctx, in.Email, in.Phone, in.Password)
	if err != nil {
		return nil, s.providerCreateError(ctx, err)
	}

	return user, nil
}
