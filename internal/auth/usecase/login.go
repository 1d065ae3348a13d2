package usecase

import (
	"context"
	"strings"

	"github.com/ailabstn/authapi/internal/auth/entity"
	"github.com/ailabstn/authapi/internal/pkg/goerror"
)

type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,password"`
}

// Login forwards a password login to the provider and returns its tokens.
func (s *Usecase) Login(ctx context.Context, in LoginInput) (*entity.TokenPair, error) {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	tokens, err := s.provider.PasswordLogin(ctx, in.Email, in.Password)
	if err != nil {
		return nil, s.providerAuthError(ctx, err, "Invalid credentials")
	}

	return tokens, nil
}
