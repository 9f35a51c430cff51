package notify

import (
	"context"
	"errors"
	"fmt"
	"html"

	"github.com/quickcashhomes/offer-platform/internal/lead"
	"github.com/quickcashhomes/offer-platform/pkg/logging"
)

// LeadMailer delivers a validated cash offer request to the sales inbox.
// Delivery is fire-and-forget: a single provider accept/reject, no retry.
type LeadMailer struct {
	sender    EmailSender
	recipient string
	logger    *logging.Logger
}

// NewLeadMailer creates a mailer that sends lead notifications to recipient.
func NewLeadMailer(sender EmailSender, recipient string, logger *logging.Logger) *LeadMailer {
	if logger == nil {
		logger = logging.Default()
	}
	return &LeadMailer{
		sender:    sender,
		recipient: recipient,
		logger:    logger,
	}
}

// Notify formats the submission as an email and hands it to the provider.
func (m *LeadMailer) Notify(ctx context.Context, sub *lead.Submission) error {
	if m.sender == nil {
		return errors.New("notify: email sender not configured")
	}
	if m.recipient == "" {
		return errors.New("notify: notification recipient not configured")
	}

	address := sub.PropertyAddress()
	msg := EmailMessage{
		To:      m.recipient,
		Subject: fmt.Sprintf("New Cash Offer Request - %s", address),
		Body:    leadTextBody(sub, address),
		HTML:    leadHTMLBody(sub, address),
	}

	if err := m.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("notify: lead notification failed: %w", err)
	}

	m.logger.Info("lead notification sent", "to", m.recipient, "address", address)
	return nil
}

func leadTextBody(sub *lead.Submission, address string) string {
	body := fmt.Sprintf(`New Cash Offer Request

Property Address: %s

Contact Information
Name: %s
Email: %s
Phone: %s
`, address, sub.FullName, sub.EmailAddress, sub.PhoneNumber)

	if sub.PropertyDetails != "" {
		body += fmt.Sprintf("\nAdditional Details\n%s\n", sub.PropertyDetails)
	}

	body += "\nThis inquiry was submitted from the QuickCash Homes website."
	return body
}

func leadHTMLBody(sub *lead.Submission, address string) string {
	details := ""
	if sub.PropertyDetails != "" {
		details = fmt.Sprintf(`
<h3>Additional Details</h3>
<p>%s</p>
`, html.EscapeString(sub.PropertyDetails))
	}

	return fmt.Sprintf(`<h2>New Cash Offer Request</h2>

<h3>Property Address</h3>
<p>%s</p>

<h3>Contact Information</h3>
<p><strong>Name:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Phone:</strong> %s</p>
%s
<hr style="margin: 20px 0; border: none; border-top: 1px solid #eee;">
<p style="color: #666; font-size: 12px;">
  This inquiry was submitted from the QuickCash Homes website.
</p>`,
		html.EscapeString(address),
		html.EscapeString(sub.FullName),
		html.EscapeString(sub.EmailAddress),
		html.EscapeString(sub.PhoneNumber),
		details)
}
