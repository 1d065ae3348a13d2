package provider

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ailabstn/authapi/internal/pkg/instrument"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{BaseURL: srv.URL, ServiceKey: "service-key"}, instrument.NewNoop())
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return client
}

func TestNewClientRequiresConfig(t *testing.T) {
	ins := instrument.NewNoop()

	if _, err := NewClient(Config{ServiceKey: "k"}, ins); !errors.Is(err, ErrBaseURLRequired) {
		t.Fatalf("error = %v, want ErrBaseURLRequired", err)
	}
	if _, err := NewClient(Config{BaseURL: "http://x"}, ins); !errors.Is(err, ErrServiceKeyRequired) {
		t.Fatalf("error = %v, want ErrServiceKeyRequired", err)
	}
}

func TestCreateUser(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/admin/users" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.Header.Get("apikey") != "service-key" {
			t.Errorf("apikey header = %q", r.Header.Get("apikey"))
		}
		if r.Header.Get("Authorization") != "Bearer service-key" {
			t.Errorf("authorization header = %q", r.Header.Get("Authorization"))
		}

		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("failed to decode payload: %v", err)
		}
		if payload["email"] != "a@x.com" || payload["password"] != "Secret123!" {
			t.Errorf("payload = %v", payload)
		}
		if payload["email_confirm"] != true || payload["phone_confirm"] != false {
			t.Errorf("confirm flags = %v / %v", payload["email_confirm"], payload["phone_confirm"])
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"user-1","email":"a@x.com"}`)) //nolint:errcheck // test writer
	}))

	user, err := client.CreateUser(t.Context(), "a@x.com", "", "Secret123!")
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}
	if user["id"] != "user-1" {
		t.Fatalf("user = %v", user)
	}
}

func TestPasswordLogin(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/token" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("grant_type"); got != "password" {
			t.Errorf("grant_type = %q", got)
		}
		if r.Header.Get("Authorization") != "" {
			t.Errorf("token endpoint must not carry the admin bearer header")
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"at","refresh_token":"rt","token_type":"bearer","expires_in":3600}`)) //nolint:errcheck // test writer
	}))

	tokens, err := client.PasswordLogin(t.Context(), "a@x.com", "Secret123!")
	if err != nil {
		t.Fatalf("PasswordLogin returned error: %v", err)
	}
	if tokens.AccessToken != "at" || tokens.RefreshToken != "rt" || tokens.ExpiresIn != 3600 {
		t.Fatalf("tokens = %+v", tokens)
	}
}

func TestRefresh(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("grant_type"); got != "refresh_token" {
			t.Errorf("grant_type = %q", got)
		}

		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("failed to decode payload: %v", err)
		}
		if payload["refresh_token"] != "rt-old" {
			t.Errorf("payload = %v", payload)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"at2","refresh_token":"rt2"}`)) //nolint:errcheck // test writer
	}))

	tokens, err := client.Refresh(t.Context(), "rt-old")
	if err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if tokens.AccessToken != "at2" {
		t.Fatalf("tokens = %+v", tokens)
	}
}

func TestNon2xxBecomesStatusError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"msg":"already registered"}`)) //nolint:errcheck // test writer
	}))

	_, err := client.CreateUser(t.Context(), "a@x.com", "", "Secret123!")

	var serr *StatusError
	if !errors.As(err, &serr) {
		t.Fatalf("error = %v, want *StatusError", err)
	}
	if serr.Status != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", serr.Status)
	}
	if !strings.Contains(serr.Body, "already registered") {
		t.Fatalf("body = %q", serr.Body)
	}
}
