package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// TicketEmailData holds data for the registration confirmation email. Ticket
// is the QR data URL embedded in the HTML body.
type TicketEmailData struct {
	Email      string
	Username   string
	EventTitle string
	Ticket     string
}

// WelcomeEmailData holds data for the signup welcome email.
type WelcomeEmailData struct {
	Email    string
	Username string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendTicket(ctx context.Context, data *TicketEmailData) error
	SendWelcome(ctx context.Context, data *WelcomeEmailData) error
}
