package inbound

import (
	"github.com/ailabstn/authapi/internal/auth/usecase"
	"github.com/ailabstn/authapi/internal/pkg/router"
)

// HTTPEndpoint exposes the OTP flows and provider pass-through as handlers.
type HTTPEndpoint struct {
	uc          uc
	serviceName string
}

// StartRegister issues a registration OTP and emails it to the user.
func (h *HTTPEndpoint) StartRegister(r *router.Request) (any, error) {
	var req StartRegisterRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.StartRegister(r.Context(), usecase.StartRegisterInput{
		Email:    req.Email,
		Password: req.Password,
	}); err != nil {
		return nil, err
	}

	return AckResponse{Success: true, Message: "OTP sent to email"}, nil
}

// CompleteRegister verifies the registration OTP and creates the provider
// account.
func (h *HTTPEndpoint) CompleteRegister(r *router.Request) (any, error) {
	var req CompleteRegisterRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	user, err := h.uc.CompleteRegister(r.Context(), usecase.CompleteRegisterInput{
		Email:    req.Email,
		Password: req.Password,
		OTP:      req.OTP,
	})
	if err != nil {
		return nil, err
	}

	return CompleteRegisterResponse{Success: true, User: user}, nil
}

// StartLogin issues a login OTP for the password-reset flow.
func (h *HTTPEndpoint) StartLogin(r *router.Request) (any, error) {
	var req StartLoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.StartLogin(r.Context(), usecase.StartLoginInput{
		Email: req.Email,
	}); err != nil {
		return nil, err
	}

	return AckResponse{Success: true, Message: "OTP sent to email"}, nil
}

// CompleteLogin verifies the login OTP and either acknowledges verification
// or returns the provider token pair.
func (h *HTTPEndpoint) CompleteLogin(r *router.Request) (any, error) {
	var req CompleteLoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.CompleteLogin(r.Context(), usecase.CompleteLoginInput{
		Email:       req.Email,
		OTP:         req.OTP,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		return nil, err
	}

	if resp.AwaitingPassword {
		return AckResponse{Success: true, Message: "OTP verified; please set new password"}, nil
	}

	return resp.Tokens, nil
}

// Register creates a provider account directly from query parameters.
func (h *HTTPEndpoint) Register(r *router.Request) (any, error) {
	user, err := h.uc.Register(r.Context(), usecase.RegisterInput{
		Email:    r.GetQuery("email"),
		Phone:    r.GetQuery("phone"),
		Password: r.GetQuery("password"),
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Login forwards a password login to the provider.
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	tokens, err := h.uc.Login(r.Context(), usecase.LoginInput{
		Email:    r.GetQuery("email"),
		Password: r.GetQuery("password"),
	})
	if err != nil {
		return nil, err
	}

	return tokens, nil
}

// Refresh exchanges a refresh token for a new token pair.
func (h *HTTPEndpoint) Refresh(r *router.Request) (any, error) {
	tokens, err := h.uc.Refresh(r.Context(), usecase.RefreshInput{
		RefreshToken: r.GetQuery("refresh_token"),
	})
	if err != nil {
		return nil, err
	}

	return tokens, nil
}

// Health reports service liveness.
func (h *HTTPEndpoint) Health(r *router.Request) (any, error) {
	return HealthResponse{OK: true, Service: h.serviceName}, nil
}
