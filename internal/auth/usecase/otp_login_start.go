package usecase

import (
	"context"
	"strings"

	"github.com/ailabstn/authapi/internal/auth/entity"
	"github.com/ailabstn/authapi/internal/pkg/goerror"
)

type StartLoginInput struct {
	Email string `validate:"required,email"`
}

// StartLogin issues a login OTP for the password-reset flow and emails it.
func (s *Usecase) StartLogin(ctx context.Context, in StartLoginInput) error {
	ctx, span := s.startSpan(ctx, "StartLogin")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	return s.issueAndSend(ctx, in.Email, entity.PurposeLogin)
}
