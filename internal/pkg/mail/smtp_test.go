package mail

import (
	"errors"
	"strings"
	"testing"
)

func TestNewSMTPRequiresHostPort(t *testing.T) {
	if _, err := NewSMTP(SMTPConfig{Host: "smtp.example.com"}); !errors.Is(err, ErrSMTPHostPortRequired) {
		t.Fatalf("error = %v, want ErrSMTPHostPortRequired", err)
	}
	if _, err := NewSMTP(SMTPConfig{Port: 587}); !errors.Is(err, ErrSMTPHostPortRequired) {
		t.Fatalf("error = %v, want ErrSMTPHostPortRequired", err)
	}
}

func TestSendValidation(t *testing.T) {
	s, err := NewSMTP(SMTPConfig{Host: "smtp.example.com", Port: 587})
	if err != nil {
		t.Fatalf("NewSMTP returned error: %v", err)
	}

	if err := s.Send(t.Context(), Message{TextBody: "hi"}); !errors.Is(err, ErrSMTPNoRecipients) {
		t.Fatalf("error = %v, want ErrSMTPNoRecipients", err)
	}

	// No Message.From and no configured default.
	if err := s.Send(t.Context(), Message{To: []string{"a@x.com"}, TextBody: "hi"}); !errors.Is(err, ErrSMTPNoSender) {
		t.Fatalf("error = %v, want ErrSMTPNoSender", err)
	}
}

func TestBuildBodyTextOnly(t *testing.T) {
	body, contentType := buildBody(Message{TextBody: "plain text"})

	if body != "plain text" {
		t.Fatalf("body = %q", body)
	}
	if contentType != "text/plain; charset=UTF-8" {
		t.Fatalf("contentType = %q", contentType)
	}
}

func TestBuildBodyHTMLOnly(t *testing.T) {
	body, contentType := buildBody(Message{HTMLBody: "<p>hi</p>"})

	if body != "<p>hi</p>" {
		t.Fatalf("body = %q", body)
	}
	if contentType != "text/html; charset=UTF-8" {
		t.Fatalf("contentType = %q", contentType)
	}
}

func TestBuildBodyMultipart(t *testing.T) {
	body, contentType := buildBody(Message{TextBody: "plain", HTMLBody: "<p>rich</p>"})

	if !strings.HasPrefix(contentType, "multipart/alternative; boundary=") {
		t.Fatalf("contentType = %q", contentType)
	}

	boundary := strings.TrimPrefix(contentType, "multipart/alternative; boundary=")
	if strings.Count(body, "--"+boundary) != 3 {
		t.Fatalf("boundary markers = %d, want 3 (two parts and a terminator)", strings.Count(body, "--"+boundary))
	}
	if !strings.Contains(body, "Content-Type: text/plain; charset=UTF-8") {
		t.Fatal("missing text part header")
	}
	if !strings.Contains(body, "Content-Type: text/html; charset=UTF-8") {
		t.Fatal("missing html part header")
	}
	if !strings.Contains(body, "plain") || !strings.Contains(body, "<p>rich</p>") {
		t.Fatalf("body = %q", body)
	}
}
