package mailer

import (
	"strings"
	"testing"

	gomail "gopkg.in/gomail.v2"

	"hk-storefront/internal/config"
)

func TestNewUnconfigured(t *testing.T) {
	m := New(config.SMTP{Host: "smtp.example.com"})
	if m.Configured() {
		t.Fatalf("mailer without from/to must report unconfigured")
	}
	if err := m.Send(Message{Form: "contact"}); err == nil {
		t.Fatalf("send on unconfigured mailer must fail")
	}
}

func TestSendBuildsMessage(t *testing.T) {
	m := New(config.SMTP{
		Host: "smtp.example.com",
		Port: 587,
		From: "noreply@example.com",
		To:   "orders@example.com",
	})
	if !m.Configured() {
		t.Fatalf("expected configured mailer")
	}

	var captured *gomail.Message
	m.send = func(msg *gomail.Message) error {
		captured = msg
		return nil
	}

	err := m.Send(Message{
		Form:    "wholesale",
		Name:    "Jo",
		Email:   "jo@example.com",
		Phone:   "0821234567",
		Message: "bulk order please",
		Extras:  map[string]string{"company": "Braai Bros"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured == nil {
		t.Fatalf("send hook not invoked")
	}
	if got := captured.GetHeader("Subject"); len(got) != 1 || !strings.Contains(got[0], "wholesale") {
		t.Fatalf("unexpected subject %v", got)
	}
	if got := captured.GetHeader("Reply-To"); len(got) != 1 || got[0] != "jo@example.com" {
		t.Fatalf("unexpected reply-to %v", got)
	}
}

func TestRenderBody(t *testing.T) {
	body := renderBody(Message{
		Form:    "contact",
		Name:    "Jo",
		Email:   "jo@example.com",
		Message: "hello",
		Extras:  map[string]string{"zeta": "z", "alpha": "a"},
	})
	if !strings.Contains(body, "Name: Jo") || !strings.Contains(body, "hello") {
		t.Fatalf("unexpected body %q", body)
	}
	// extras render in stable order
	if strings.Index(body, "alpha") > strings.Index(body, "zeta") {
		t.Fatalf("extras must be sorted: %q", body)
	}
}
