package goerror

import (
	"errors"
	"net/http"
	"testing"
)

func TestStatusCodeMapping(t *testing.T) {
	cases := []struct {
		code Code
		want int
	}{
		{CodeBadRequest, http.StatusBadRequest},
		{CodeInvalidInput, http.StatusUnprocessableEntity},
		{CodeNotFound, http.StatusNotFound},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeConflict, http.StatusConflict},
		{CodeBadGateway, http.StatusBadGateway},
		{CodeInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		e := &Error{code: tc.code}
		if got := e.StatusCode(); got != tc.want {
			t.Errorf("StatusCode(%s) = %d, want %d", tc.code, got, tc.want)
		}
	}
}

func TestNewBusiness(t *testing.T) {
	err := NewBusiness("Invalid or expired OTP", CodeBadRequest)

	var gerr *Error
	if !errors.As(err, &gerr) {
		t.Fatalf("error = %T, want *Error", err)
	}
	if gerr.Msg() != "Invalid or expired OTP" {
		t.Fatalf("Msg = %q", gerr.Msg())
	}
	if gerr.Type() != TypeBusiness {
		t.Fatalf("Type = %v", gerr.Type())
	}
	if gerr.StatusCode() != http.StatusBadRequest {
		t.Fatalf("StatusCode = %d", gerr.StatusCode())
	}
}

func TestNewServerWrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewServer(cause)

	var gerr *Error
	if !errors.As(err, &gerr) {
		t.Fatalf("error = %T, want *Error", err)
	}
	if !errors.Is(err, cause) {
		t.Fatal("cause not reachable through Unwrap")
	}
	if gerr.Error() != "connection refused" {
		t.Fatalf("Error() = %q", gerr.Error())
	}
	if gerr.Msg() != "Internal server error" {
		t.Fatalf("Msg = %q", gerr.Msg())
	}
}

func TestNewInvalidInput(t *testing.T) {
	err := NewInvalidInput(errors.New("email is required"))

	var gerr *Error
	if !errors.As(err, &gerr) {
		t.Fatalf("error = %T, want *Error", err)
	}
	if gerr.Code() != CodeInvalidInput {
		t.Fatalf("Code = %v", gerr.Code())
	}
	if gerr.StatusCode() != http.StatusUnprocessableEntity {
		t.Fatalf("StatusCode = %d", gerr.StatusCode())
	}
}
