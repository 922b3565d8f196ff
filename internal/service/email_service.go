package service

import (
	"context"
	"fmt"
	"html"
	"time"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog/log"
	"github.com/scribehire/scribehire/config"
)

// InvitationEmail carries everything the invitation template needs.
type InvitationEmail struct {
	To            string
	CandidateName string
	TestTitle     string
	InviteURL     string
	ExpiresAt     *time.Time
	MaxAttempts   *int
}

// ReportEmail carries the result notification payload.
type ReportEmail struct {
	To            string
	CandidateName string
	TestTitle     string
	OverallScore  *float64
	Feedback      string
}

// EmailService is the notification collaborator. Failures are always
// non-fatal to the operation that triggered the send; callers log and move
// on.
type EmailService interface {
	SendTestInvitation(ctx context.Context, msg InvitationEmail) error
	SendReportNotification(ctx context.Context, msg ReportEmail) error
}

type resendEmailService struct {
	client *resend.Client
	from   string
}

// NewResendEmailService builds the Resend-backed mailer. Without an API key
// every send returns ErrEmailNotConfigured.
func NewResendEmailService(cfg *config.Config) EmailService {
	if cfg.Email.ResendAPIKey == "" {
		log.Warn().Msg("RESEND_API_KEY is not set. Email notifications will not be sent.")
		return &resendEmailService{client: nil, from: cfg.Email.FromAddress}
	}
	return &resendEmailService{
		client: resend.NewClient(cfg.Email.ResendAPIKey),
		from:   cfg.Email.FromAddress,
	}
}

func (s *resendEmailService) SendTestInvitation(ctx context.Context, msg InvitationEmail) error {
	if s.client == nil {
		return ErrEmailNotConfigured
	}

	text, htmlBody := invitationBodies(msg)
	_, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{msg.To},
		Subject: fmt.Sprintf("You've been invited to take a writing assessment: %s", msg.TestTitle),
		Html:    htmlBody,
		Text:    text,
	})
	if err != nil {
		return fmt.Errorf("send invitation email: %w", err)
	}
	return nil
}

func (s *resendEmailService) SendReportNotification(ctx context.Context, msg ReportEmail) error {
	if s.client == nil {
		return ErrEmailNotConfigured
	}

	text, htmlBody := reportBodies(msg)
	_, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{msg.To},
		Subject: fmt.Sprintf("Your writing assessment results: %s", msg.TestTitle),
		Html:    htmlBody,
		Text:    text,
	})
	if err != nil {
		return fmt.Errorf("send report notification email: %w", err)
	}
	return nil
}

// invitationBodies renders the plain-text and HTML invitation. Admin-entered
// values (name, title) go through html.EscapeString in the HTML variant.
func invitationBodies(msg InvitationEmail) (string, string) {
	greeting := "Hello"
	if msg.CandidateName != "" {
		greeting = "Hi " + msg.CandidateName
	}
	expiry := "never"
	if msg.ExpiresAt != nil {
		expiry = msg.ExpiresAt.Format("January 2, 2006")
	}
	attempts := "unlimited"
	if msg.MaxAttempts != nil {
		attempts = fmt.Sprintf("%d", *msg.MaxAttempts)
	}

	text := fmt.Sprintf(`%s,

You have been invited to complete a writing assessment: %s

Test details:
- Attempts allowed: %s
- Link expires: %s

Start the test here:
%s

This is an automated email. Please do not reply.`,
		greeting, msg.TestTitle, attempts, expiry, msg.InviteURL)

	htmlBody := fmt.Sprintf(`<p>%s,</p>
<p>You have been invited to complete a writing assessment: <strong>%s</strong></p>
<ul>
  <li>Attempts allowed: %s</li>
  <li>Link expires: %s</li>
</ul>
<p><a href="%s">Start the test</a></p>
<p style="color:#9ca3af;font-size:12px">This is an automated email. Please do not reply.</p>`,
		html.EscapeString(greeting), html.EscapeString(msg.TestTitle), attempts, expiry, html.EscapeString(msg.InviteURL))

	return text, htmlBody
}

// reportBodies renders the plain-text and HTML result notification. Reviewer
// and model feedback goes through html.EscapeString in the HTML variant.
func reportBodies(msg ReportEmail) (string, string) {
	greeting := "Hello"
	if msg.CandidateName != "" {
		greeting = "Hi " + msg.CandidateName
	}

	scoreLine := ""
	scoreHTML := ""
	if msg.OverallScore != nil {
		scoreLine = fmt.Sprintf("\nOverall score: %.0f/100\n", *msg.OverallScore)
		scoreHTML = fmt.Sprintf("<p>Overall score: <strong>%.0f/100</strong></p>", *msg.OverallScore)
	}
	feedbackLine := ""
	feedbackHTML := ""
	if msg.Feedback != "" {
		feedbackLine = "\nFeedback:\n" + msg.Feedback + "\n"
		feedbackHTML = fmt.Sprintf("<p>Feedback:</p><p>%s</p>", html.EscapeString(msg.Feedback))
	}

	text := fmt.Sprintf(`%s,

Your writing assessment for %s has been evaluated.
%s%s
Thank you for completing the assessment.`,
		greeting, msg.TestTitle, scoreLine, feedbackLine)

	htmlBody := fmt.Sprintf(`<p>%s,</p>
<p>Your writing assessment for <strong>%s</strong> has been evaluated.</p>
%s%s
<p>Thank you for completing the assessment.</p>`,
		html.EscapeString(greeting), html.EscapeString(msg.TestTitle), scoreHTML, feedbackHTML)

	return text, htmlBody
}
