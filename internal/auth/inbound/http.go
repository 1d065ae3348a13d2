package inbound

import (
	"context"

	"github.com/ailabstn/authapi/internal/auth/entity"
	"github.com/ailabstn/authapi/internal/auth/usecase"
	"github.com/ailabstn/authapi/internal/pkg/router"
)

type uc interface {
	StartRegister(ctx context.Context, in usecase.StartRegisterInput) error
	CompleteRegister(ctx context.Context, in usecase.CompleteRegisterInput) (entity.ProviderUser, error)
	StartLogin(ctx context.Context, in usecase.StartLoginInput) error
	CompleteLogin(ctx context.Context, in usecase.CompleteLoginInput) (*usecase.CompleteLoginOutput, error)

	Register(ctx context.Context, in usecase.RegisterInput) (entity.ProviderUser, error)
	Login(ctx context.Context, in usecase.LoginInput) (*entity.TokenPair, error)
	Refresh(ctx context.Context, in usecase.RefreshInput) (*entity.TokenPair, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc, serviceName string) {
	end := &HTTPEndpoint{uc: uc, serviceName: serviceName}

	// OTP-fronted flows
	r.POST("/otp/register/start", end.StartRegister)
	r.POST("/otp/register/complete", end.CompleteRegister)
	r.POST("/otp/login/start", end.StartLogin)
	r.POST("/otp/login/complete", end.CompleteLogin)

	// Direct provider pass-through
	r.GET("/auth/register", end.Register)
	r.GET("/auth/login", end.Login)
	r.GET("/auth/refresh", end.Refresh)

	r.GET("/health", end.Health)
}
