package usecase

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ailabstn/authapi/internal/auth/entity"
	"github.com/ailabstn/authapi/internal/auth/outbound/provider"
	"github.com/ailabstn/authapi/internal/pkg/goerror"
	"github.com/ailabstn/authapi/internal/pkg/instrument"
	"github.com/ailabstn/authapi/internal/pkg/otp"
	"github.com/ailabstn/authapi/internal/pkg/uid"
	"github.com/ailabstn/authapi/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type repoDB interface {
	IssueOTP(ctx context.Context, in entity.NewOTP) error
	VerifyOTP(ctx context.Context, email, code string, p entity.Purpose) (bool, error)
}

type notifier interface {
	SendCode(ctx context.Context, recipient, code string) error
}

type identityProvider interface {
	CreateUser(ctx context.Context, email, phone, password string) (entity.ProviderUser, error)
	PasswordLogin(ctx context.Context, email, password string) (*entity.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*entity.TokenPair, error)
}

type Usecase struct {
	repoDB    repoDB
	notifier  notifier
	provider  identityProvider
	validator validator.Validator
	otp       otp.Generator
	uid       uid.NumberID
	ins       instrument.Instrumentation
}

type Dependency struct {
	RepoDB     repoDB
	Notifier   notifier
	Provider   identityProvider
	Validator  validator.Validator
	OTP        otp.Generator
	UID        uid.NumberID
	Instrument instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:    dep.RepoDB,
		notifier:  dep.Notifier,
		provider:  dep.Provider,
		validator: dep.Validator,
		otp:       dep.OTP,
		uid:       dep.UID,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("auth.usecase").Start(ctx, name)
}

// issueAndSend creates a fresh code for the pair and emails it. The mail send
// is awaited; when it fails the issued record stays valid until expiry or a
// superseding issuance.
func (s *Usecase) issueAndSend(ctx context.Context, email string, p entity.Purpose) error {
	code, err := s.otp.Code()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate otp code", "error", err)
		return goerror.NewServer(err)
	}

	rec := entity.NewOTP{
		ID:        s.uid.Generate(),
		Email:     email,
		Code:      code,
		Purpose:   p,
		ExpiresAt: s.otp.Expiry(),
	}

	if err := s.repoDB.IssueOTP(ctx, rec); err != nil {
		slog.ErrorContext(ctx, "failed to repo issue otp", "purpose", p, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.notifier.SendCode(ctx, email, code); err != nil {
		slog.ErrorContext(ctx, "failed to send otp email", "purpose", p, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

// verifyOTP consumes the code or fails with the unified business error. All
// failure causes look identical to the caller.
func (s *Usecase) verifyOTP(ctx context.Context, email, code string, p entity.Purpose) error {
	ok, err := s.repoDB.VerifyOTP(ctx, email, code, p)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo verify otp", "purpose", p, "error", err)
		return goerror.NewServer(err)
	}

	if !ok {
		return goerror.NewBusiness("Invalid or expired OTP", goerror.CodeBadRequest)
	}

	return nil
}

func (s *Usecase) providerAuthError(ctx context.Context, err error, msg string) error {
	var serr *provider.StatusError
	if errors.As(err, &serr) && serr.Status >= 400 && serr.Status < 500 {
		slog.WarnContext(ctx, "provider rejected credentials", "status", serr.Status)
		return goerror.NewBusiness(msg, goerror.CodeUnauthorized)
	}

	slog.ErrorContext(ctx, "provider call failed", "error", err)
	return goerror.NewServer(err)
}

func (s *Usecase) providerCreateError(ctx context.Context, err error) error {
	var serr *provider.StatusError
	if errors.As(err, &serr) && (serr.Status == http.StatusConflict || serr.Status == http.StatusUnprocessableEntity) {
		slog.WarnContext(ctx, "provider rejected user creation", "status", serr.Status)
		return goerror.NewBusiness("Email already registered", goerror.CodeConflict)
	}

	slog.ErrorContext(ctx, "provider call failed", "error", err)
	return goerror.NewServer(err)
}
