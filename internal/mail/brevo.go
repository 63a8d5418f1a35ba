// Package mail sends transactional email through the Brevo v3 API.
package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.brevo.com/v3"

// Address is a named email address.
type Address struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

// Mailer sends notification emails for the contact form.
type Mailer struct {
	apiKey  string
	sender  Address
	admin   Address
	baseURL string
	client  *http.Client
}

// Option configures a Mailer.
type Option func(*Mailer)

// WithBaseURL overrides the API endpoint (for tests).
func WithBaseURL(url string) Option {
	return func(m *Mailer) { m.baseURL = url }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(m *Mailer) { m.client = c }
}

func New(apiKey string, sender, admin Address, opts ...Option) *Mailer {
	m := &Mailer{
		apiKey:  apiKey,
		sender:  sender,
		admin:   admin,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Enabled reports whether sending is configured. An empty API key disables
// email so local setups still accept contact submissions.
func (m *Mailer) Enabled() bool {
	return m.apiKey != ""
}

// ContactNotification carries a contact-form submission to the site owner.
type ContactNotification struct {
	Name    string
	Email   string
	Subject string
	Message string
	SentAt  time.Time
}

type sendEmailRequest struct {
	Sender      Address   `json:"sender"`
	To          []Address `json:"to"`
	ReplyTo     *Address  `json:"replyTo,omitempty"`
	Subject     string    `json:"subject"`
	HTMLContent string    `json:"htmlContent"`
}

// SendContactNotification emails the submission to the configured admin
// address, with reply-to set to the visitor.
func (m *Mailer) SendContactNotification(ctx context.Context, n ContactNotification) error {
	subject := n.Subject
	if subject == "" {
		subject = "No subject"
	}

	req := sendEmailRequest{
		Sender:      m.sender,
		To:          []Address{m.admin},
		ReplyTo:     &Address{Name: n.Name, Email: n.Email},
		Subject:     fmt.Sprintf("[portfolio] New inquiry: %s", subject),
		HTMLContent: contactHTML(n),
	}

	return m.send(ctx, req)
}

func (m *Mailer) send(ctx context.Context, req sendEmailRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encode email: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/smtp/email", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build email request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("api-key", m.apiKey)

	resp, err := m.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("send email: %s: %s", resp.Status, detail)
	}
	return nil
}

func contactHTML(n ContactNotification) string {
	sentAt := n.SentAt
	if sentAt.IsZero() {
		sentAt = time.Now()
	}
	var buf bytes.Buffer
	buf.WriteString("<h2>New contact inquiry</h2>")
	fmt.Fprintf(&buf, "<p><strong>Name:</strong> %s</p>", html.EscapeString(n.Name))
	fmt.Fprintf(&buf, "<p><strong>Email:</strong> %s</p>", html.EscapeString(n.Email))
	if n.Subject != "" {
		fmt.Fprintf(&buf, "<p><strong>Subject:</strong> %s</p>", html.EscapeString(n.Subject))
	}
	fmt.Fprintf(&buf, "<p><strong>Sent:</strong> %s</p>", sentAt.Format(time.RFC1123))
	fmt.Fprintf(&buf, "<pre>%s</pre>", html.EscapeString(n.Message))
	return buf.String()
}
