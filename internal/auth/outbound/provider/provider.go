// Package provider is the REST client for the external identity service that
// owns user records and issues session tokens.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ailabstn/authapi/internal/auth/entity"
	"github.com/ailabstn/authapi/internal/pkg/instrument"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const maxErrorBodyBytes = 4 * 1024

var (
	// ErrBaseURLRequired is returned when the provider base URL is missing.
	ErrBaseURLRequired = errors.New("provider base url is required")
	// ErrServiceKeyRequired is returned when the service-role key is missing.
	ErrServiceKeyRequired = errors.New("provider service key is required")
)

// StatusError is a non-2xx response from the provider. The core never
// retries; callers decide how the status maps to their own error taxonomy.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("provider returned status %d: %s", e.Status, e.Body)
}

// Client calls the provider's admin and token endpoints.
type Client struct {
	httpClient *http.Client
	baseURL    string
	serviceKey string
	ins        instrument.Instrumentation
}

// Config configures the provider client.
type Config struct {
	// BaseURL is the provider's root URL, without a trailing slash.
	BaseURL string
	// ServiceKey is the service-role key used for admin and token calls.
	ServiceKey string
	// Timeout bounds each outbound call; zero means no client timeout.
	Timeout time.Duration
}

func NewClient(cfg Config, ins instrument.Instrumentation) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, ErrBaseURLRequired
	}
	if cfg.ServiceKey == "" {
		return nil, ErrServiceKeyRequired
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		serviceKey: cfg.ServiceKey,
		ins:        ins,
	}, nil
}

// CreateUser provisions a confirmed account through the admin API. The
// confirm flags follow the channels supplied: a present email or phone is
// marked confirmed because the OTP step already proved control of it.
func (c *Client) CreateUser(ctx context.Context, email, phone, password string) (entity.ProviderUser, error) {
	payload := map[string]any{
		"password":      password,
		"email":         email,
		"phone":         phone,
		"email_confirm": email != "",
		"phone_confirm": phone != "",
	}

	var user entity.ProviderUser
	if err := c.post(ctx, "CreateUser", "/auth/v1/admin/users", payload, true, &user); err != nil {
		return nil, err
	}

	return user, nil
}

// PasswordLogin exchanges email+password credentials for a token pair.
func (c *Client) PasswordLogin(ctx context.Context, email, password string) (*entity.TokenPair, error) {
	payload := map[string]any{
		"email":    email,
		"password": password,
	}

	var tokens entity.TokenPair
	if err := c.post(ctx, "PasswordLogin", "/auth/v1/token?grant_type=password", payload, false, &tokens); err != nil {
		return nil, err
	}

	return &tokens, nil
}

// Refresh exchanges a refresh token for a new token pair.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*entity.TokenPair, error) {
	payload := map[string]any{
		"refresh_token": refreshToken,
	}

	var tokens entity.TokenPair
	if err := c.post(ctx, "Refresh", "/auth/v1/token?grant_type=refresh_token", payload, false, &tokens); err != nil {
		return nil, err
	}

	return &tokens, nil
}

func (c *Client) post(ctx context.Context, op, path string, payload any, admin bool, out any) (err error) {
	ctx, span := c.ins.Tracer("auth.outbound.provider").Start(ctx, op,
		trace.WithAttributes(attribute.String("provider.path", path)),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.serviceKey)
	if admin {
		req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck // read side only

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes)) //nolint:errcheck // best effort
		return &StatusError{Status: resp.StatusCode, Body: string(raw)}
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
