package notify

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"

	"tailor-backend/internal/shared/telemetry"
)

// emailSender abstracts the Resend client for tests.
type emailSender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// emailLookup resolves a recipient address from a bearer token.
type emailLookup interface {
	Email(token string) (string, bool)
}

// Service sends the "your PDF is ready" email. Every failure is swallowed:
// the conversion already succeeded by the time this runs, so the caller only
// gets a bool for logging.
type Service struct {
	sender emailSender
	from   string
	emails emailLookup
}

// NewService constructs a Service using the Resend API. The verifier supplies
// the recipient address from the caller's bearer token.
func NewService(apiKey, from string, verifier emailLookup) *Service {
	var sender emailSender
	if apiKey != "" {
		sender = resend.NewClient(apiKey).Emails
	}
	return &Service{sender: sender, from: from, emails: verifier}
}

// Notify emails the download link to the address in the bearer token.
// Returns false when no address can be extracted, sending is unconfigured,
// or the provider call fails.
func (s *Service) Notify(ctx context.Context, bearerToken, resumeLink string) bool {
	if s.sender == nil {
		return false
	}
	email, ok := s.emails.Email(bearerToken)
	if !ok {
		telemetry.Info("notify skipped, no email in token", nil)
		return false
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{email},
		Subject: "Your Resume PDF is Ready!",
		Html:    readyEmailHTML(resumeLink),
	}
	if _, err := s.sender.SendWithContext(ctx, params); err != nil {
		telemetry.Error("notify send failed", map[string]any{"error": err.Error()})
		return false
	}
	telemetry.Info("notify sent", nil)
	return true
}

func readyEmailHTML(resumeLink string) string {
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Your Resume PDF is Ready!</h2>
  <p>Your tailored resume has been generated and is ready to download.</p>
  <p style="margin: 24px 0;">
    <a href="%s" style="background-color: #2563eb; color: #ffffff; padding: 12px 24px; border-radius: 6px; text-decoration: none;">Download Resume</a>
  </p>
  <p style="color: #6b7280; font-size: 12px;">If the button does not work, copy this link into your browser:<br>%s</p>
</div>`, resumeLink, resumeLink)
}
