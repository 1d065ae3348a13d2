package inbound

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ailabstn/authapi/internal/auth/entity"
	"github.com/ailabstn/authapi/internal/auth/usecase"
	"github.com/ailabstn/authapi/internal/pkg/goerror"
	"github.com/ailabstn/authapi/internal/pkg/instrument"
	"github.com/ailabstn/authapi/internal/pkg/jwt"
	"github.com/ailabstn/authapi/internal/pkg/router"
	"github.com/ailabstn/authapi/internal/pkg/uid"
)

type fakeUsecase struct {
	startRegisterIn  *usecase.StartRegisterInput
	completeLoginIn  *usecase.CompleteLoginInput
	completeLoginOut *usecase.CompleteLoginOutput
	registerIn       *usecase.RegisterInput
	refreshIn        *usecase.RefreshInput
	user             entity.ProviderUser
	tokens           *entity.TokenPair
	startRegisterErr error
	completeLoginErr error
}

func (f *fakeUsecase) StartRegister(_ context.Context, in usecase.StartRegisterInput) error {
	f.startRegisterIn = &in
	return f.startRegisterErr
}

func (f *fakeUsecase) CompleteRegister(_ context.Context, _ usecase.CompleteRegisterInput) (entity.ProviderUser, error) {
	return f.user, nil
}

func (f *fakeUsecase) StartLogin(_ context.Context, _ usecase.StartLoginInput) error {
	return nil
}

func (f *fakeUsecase) CompleteLogin(_ context.Context, in usecase.CompleteLoginInput) (*usecase.CompleteLoginOutput, error) {
	f.completeLoginIn = &in
	return f.completeLoginOut, f.completeLoginErr
}

func (f *fakeUsecase) Register(_ context.Context, in usecase.RegisterInput) (entity.ProviderUser, error) {
	f.registerIn = &in
	return f.user, nil
}

func (f *fakeUsecase) Login(_ context.Context, _ usecase.LoginInput) (*entity.TokenPair, error) {
	return f.tokens, nil
}

func (f *fakeUsecase) Refresh(_ context.Context, in usecase.RefreshInput) (*entity.TokenPair, error) {
	f.refreshIn = &in
	return f.tokens, nil
}

func newTestHandler(t *testing.T, fake *fakeUsecase) http.Handler {
	t.Helper()

	verifier, err := jwt.NewHS256([]byte("endpoint-test-secret"))
	if err != nil {
		t.Fatalf("failed to build verifier: %v", err)
	}

	r := router.NewRouter(router.Config{
		UUID:       uid.NewUUID(),
		JWT:        verifier,
		Instrument: instrument.NewNoop(),
	})
	RegisterHTTPEndpoint(r, fake, "authapi")
	return r
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestStartRegisterAck(t *testing.T) {
	fake := &fakeUsecase{}
	h := newTestHandler(t, fake)

	rec := do(t, h, http.MethodPost, "/otp/register/start", `{"email":"a@x.com","password":"Secret123!"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %q", rec.Code, rec.Body.String())
	}

	body := decode(t, rec)
	if body["success"] != true || body["message"] != "OTP sent to email" {
		t.Fatalf("body = %v", body)
	}

	if fake.startRegisterIn == nil || fake.startRegisterIn.Email != "a@x.com" {
		t.Fatalf("usecase input = %+v", fake.startRegisterIn)
	}
}

func TestStartRegisterError(t *testing.T) {
	fake := &fakeUsecase{startRegisterErr: goerror.NewBusiness("Invalid or expired OTP", goerror.CodeBadRequest)}
	h := newTestHandler(t, fake)

	rec := do(t, h, http.MethodPost, "/otp/register/start", `{"email":"a@x.com","password":"Secret123!"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if body := decode(t, rec); body["detail"] != "Invalid or expired OTP" {
		t.Fatalf("body = %v", body)
	}
}

func TestCompleteRegisterReturnsUser(t *testing.T) {
	fake := &fakeUsecase{user: entity.ProviderUser{"id": "user-1", "email": "a@x.com"}}
	h := newTestHandler(t, fake)

	rec := do(t, h, http.MethodPost, "/otp/register/complete", `{"email":"a@x.com","password":"Secret123!","otp":"123456"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %q", rec.Code, rec.Body.String())
	}

	body := decode(t, rec)
	if body["success"] != true {
		t.Fatalf("body = %v", body)
	}
	user, ok := body["user"].(map[string]any)
	if !ok || user["id"] != "user-1" {
		t.Fatalf("user = %v", body["user"])
	}
}

func TestCompleteLoginAwaitingPassword(t *testing.T) {
	fake := &fakeUsecase{completeLoginOut: &usecase.CompleteLoginOutput{AwaitingPassword: true}}
	h := newTestHandler(t, fake)

	rec := do(t, h, http.MethodPost, "/otp/login/complete", `{"email":"a@x.com","otp":"123456"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %q", rec.Code, rec.Body.String())
	}

	body := decode(t, rec)
	if body["success"] != true || body["message"] != "OTP verified; please set new password" {
		t.Fatalf("body = %v", body)
	}
}

func TestCompleteLoginReturnsTokens(t *testing.T) {
	fake := &fakeUsecase{completeLoginOut: &usecase.CompleteLoginOutput{
		Tokens: &entity.TokenPair{AccessToken: "at", TokenType: "bearer", ExpiresIn: 3600, RefreshToken: "rt"},
	}}
	h := newTestHandler(t, fake)

	rec := do(t, h, http.MethodPost, "/otp/login/complete", `{"email":"a@x.com","otp":"123456","new_password":"Secret123!"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %q", rec.Code, rec.Body.String())
	}

	body := decode(t, rec)
	if body["access_token"] != "at" || body["refresh_token"] != "rt" {
		t.Fatalf("body = %v", body)
	}
	if fake.completeLoginIn.NewPassword != "Secret123!" {
		t.Fatalf("usecase input = %+v", fake.completeLoginIn)
	}
}

func TestRegisterPassThroughQueryParams(t *testing.T) {
	fake := &fakeUsecase{user: entity.ProviderUser{"id": "user-1"}}
	h := newTestHandler(t, fake)

	rec := do(t, h, http.MethodGet, "/auth/register?email=a%40x.com&password=Secret123%21", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %q", rec.Code, rec.Body.String())
	}
	if fake.registerIn.Email != "a@x.com" || fake.registerIn.Password != "Secret123!" {
		t.Fatalf("usecase input = %+v", fake.registerIn)
	}
}

func TestRefreshPassThroughQueryParams(t *testing.T) {
	fake := &fakeUsecase{tokens: &entity.TokenPair{AccessToken: "at2"}}
	h := newTestHandler(t, fake)

	rec := do(t, h, http.MethodGet, "/auth/refresh?refresh_token=rt-old", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %q", rec.Code, rec.Body.String())
	}
	if fake.refreshIn.RefreshToken != "rt-old" {
		t.Fatalf("usecase input = %+v", fake.refreshIn)
	}
	if body := decode(t, rec); body["access_token"] != "at2" {
		t.Fatalf("body = %v", body)
	}
}

func TestHealth(t *testing.T) {
	h := newTestHandler(t, &fakeUsecase{})

	rec := do(t, h, http.MethodGet, "/health", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	body := decode(t, rec)
	if body["ok"] != true || body["service"] != "authapi" {
		t.Fatalf("body = %v", body)
	}
}
