package usecase

import (
	"context"

	"github.com/ailabstn/authapi/internal/auth/entity"
	"github.com/ailabstn/authapi/internal/pkg/goerror"
)

type RefreshInput struct {
	RefreshToken string `validate:"required"`
}

// Refresh exchanges a refresh token for a new provider token pair.
func (s *Usecase) Refresh(ctx context.Context, in RefreshInput) (*entity.TokenPair, error) {
	ctx, span := s.startSpan(ctx, "Refresh")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	tokens, err := s.provider.Refresh(ctx, in.RefreshToken)
	if err != nil {
		return nil, s.providerAuthError(ctx, err, "Invalid refresh token")
	}

	return tokens, nil
}
