package usecase

import (
	"context"
	"strings"

	"github.com/ailabstn/authapi/internal/auth/entity"
	"github.com/ailabstn/authapi/internal/pkg/goerror"
)

type StartRegisterInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,password"`
}

// StartRegister issues a registration OTP and emails it. No provider account
// is created yet; the password is accepted for symmetry with the complete
// step but not persisted anywhere — the caller resends it at completion.
func (s *Usecase) StartRegister(ctx context.Context, in StartRegisterInput) error {
	ctx, span := s.startSpan(ctx, "StartRegister")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	return s.issueAndSend(ctx, in.Email, entity.PurposeRegister)
}
