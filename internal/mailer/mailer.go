package mailer

import (
	"fmt"
	"sort"
	"strings"

	gomail "gopkg.in/gomail.v2"

	"hk-storefront/internal/config"
)

// Message is one contact-form submission to relay.
type Message struct {
	Form    string
	Name    string
	Email   string
	Phone   string
	Message string
	Extras  map[string]string
}

// Mailer relays contact-form submissions over SMTP.
type Mailer struct {
	cfg    config.SMTP
	dialer *gomail.Dialer
	send   func(m *gomail.Message) error
}

// New builds a Mailer. With incomplete SMTP settings the Mailer still
// constructs but reports itself unconfigured, so the endpoint can answer 503.
func New(cfg config.SMTP) *Mailer {
	m := &Mailer{cfg: cfg}
	if cfg.Configured() {
		m.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
		m.send = func(msg *gomail.Message) error {
			return m.dialer.DialAndSend(msg)
		}
	}
	return m
}

// Configured reports whether the transport can dial.
func (m *Mailer) Configured() bool {
	return m.send != nil
}

// Send relays the message to the configured recipient.
func (m *Mailer) Send(msg Message) error {
	if !m.Configured() {
		return fmt.Errorf("mail transport not configured")
	}

	mail := gomail.NewMessage()
	mail.SetHeader("From", m.cfg.From)
	mail.SetHeader("To", m.cfg.To)
	mail.SetHeader("Reply-To", msg.Email)
	mail.SetHeader("Subject", fmt.Sprintf("Website enquiry: %s", msg.Form))
	mail.SetBody("text/plain", renderBody(msg))

	return m.send(mail)
}

func renderBody(msg Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Form: %s\n", msg.Form)
	fmt.Fprintf(&b, "Name: %s\n", msg.Name)
	fmt.Fprintf(&b, "Email: %s\n", msg.Email)
	if msg.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", msg.Phone)
	}
	if msg.Message != "" {
		fmt.Fprintf(&b, "\n%s\n", msg.Message)
	}
	if len(msg.Extras) > 0 {
		keys := make([]string, 0, len(msg.Extras))
		for k := range msg.Extras {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString("\n")
		for _, k := range keys {
			fmt.Fprintf(&b, "%s: %s\n", k, msg.Extras[k])
		}
	}
	return b.String()
}
