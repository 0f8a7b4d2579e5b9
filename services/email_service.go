// File: /services/email_service.go
package services

import (
	"fmt"
	"io"

	"campushub-api/config"
	"campushub-api/models"
	"campushub-api/utils"
	"gopkg.in/gomail.v2"
)

// EmailService sends event tickets and account emails over SMTP. When no SMTP
// host is configured it runs in log-only mode: every send is logged and
// reported as success, which keeps the fire-and-forget contract of the
// callers intact in development.
type EmailService struct {
	config *config.Config
	dialer *gomail.Dialer
}

func NewEmailService(cfg *config.Config) *EmailService {
	service := &EmailService{config: cfg}
	if cfg.SMTPHost != "" {
		service.dialer = gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	}
	return service
}

// SendTicket emails the user their ticket for the event, with the QR code
// attached. Implements TicketSender.
func (es *EmailService) SendTicket(user *models.User, event *models.Event) error {
	if user.Email == "" {
		fmt.Printf("User %s has no email address to send ticket to\n", user.ID)
		return nil
	}

	qrPNG, err := utils.TicketQRCode(event.ID, user.ID)
	if err != nil {
		return fmt.Errorf("build ticket QR code: %w", err)
	}

	if es.dialer == nil {
		fmt.Printf("📧 [dev] Would send ticket for %q to %s\n", event.Title, user.Email)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", es.config.FromName, es.config.FromEmail))
	m.SetHeader("To", user.Email)
	m.SetHeader("Subject", fmt.Sprintf("Your Ticket for %s", event.Title))

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Your Event Ticket</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { text-align: center; background: #6d28d9; color: white; padding: 20px; border-radius: 10px 10px 0 0; }
        .content { background: #f8f9fa; padding: 30px; border-radius: 0 0 10px 10px; }
        .ticket { background: white; padding: 20px; text-align: center; border-radius: 8px; margin: 20px 0; }
        .footer { text-align: center; margin-top: 20px; color: #666; font-size: 14px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>🎟️ Campus Hub</h1>
            <p>Event Ticket</p>
        </div>
        <div class="content">
            <h2>Hi %s!</h2>
            <p>Here is your ticket for <strong>%s</strong>.</p>
            <p>%s, %s &mdash; %s</p>

            <div class="ticket">
                <p><strong>Present this QR code at the entrance:</strong></p>
                <img src="cid:ticket.png" alt="Event Ticket QR Code" />
            </div>

            <p>See you there!</p>
            <p><strong>The Campus Hub Team</strong></p>
        </div>
        <div class="footer">
            <p>This is an automated email, please do not reply.</p>
        </div>
    </div>
</body>
</html>`,
		user.Name, event.Title, event.Venue, event.Location, event.Date.Format("Mon, 02 Jan 2006 15:04"))

	textBody := fmt.Sprintf(`
Hi %s!

Here is your ticket for %s.
%s, %s - %s

Your QR code is attached. Present it at the event entrance.

See you there!
The Campus Hub Team
`, user.Name, event.Title, event.Venue, event.Location, event.Date.Format("Mon, 02 Jan 2006 15:04"))

	m.SetBody("text/plain", textBody)
	m.AddAlternative("text/html", htmlBody)
	m.Embed("ticket.png", gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(qrPNG)
		return err
	}))

	if err := es.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send ticket email: %w", err)
	}

	fmt.Printf("📧 Ticket for %q sent to %s\n", event.Title, user.Email)
	return nil
}

// SendWelcomeEmail greets a newly registered user.
func (es *EmailService) SendWelcomeEmail(email, name string) error {
	if es.dialer == nil {
		fmt.Printf("📧 [dev] Would send welcome email to %s\n", email)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", es.config.FromName, es.config.FromEmail))
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Welcome to Campus Hub! 🎓")

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Welcome to Campus Hub</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { text-align: center; background: #6d28d9; color: white; padding: 30px; border-radius: 10px 10px 0 0; }
        .content { background: #f8f9fa; padding: 30px; border-radius: 0 0 10px 10px; }
        .feature { background: white; padding: 20px; margin: 15px 0; border-radius: 8px; border-left: 4px solid #6d28d9; }
        .footer { text-align: center; margin-top: 20px; color: #666; font-size: 14px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>🎓 Welcome to Campus Hub!</h1>
        </div>
        <div class="content">
            <h2>Hello %s!</h2>
            <p>Your Campus Hub account is ready.</p>

            <div class="feature">
                <h4>📅 Discover Events</h4>
                <p>Browse everything happening on campus and RSVP in one tap.</p>
            </div>

            <div class="feature">
                <h4>🏆 Earn Points and Badges</h4>
                <p>Every event you attend earns points toward the campus leaderboard.</p>
            </div>

            <div class="feature">
                <h4>🎟️ QR Tickets</h4>
                <p>Your ticket arrives by email. Scan in at the door and you're done.</p>
            </div>

            <p>See you on campus!</p>
            <p><strong>The Campus Hub Team</strong></p>
        </div>
        <div class="footer">
            <p>This is an automated email, please do not reply.</p>
        </div>
    </div>
</body>
</html>`, name)

	textBody := fmt.Sprintf(`
Hello %s!

Your Campus Hub account is ready.

📅 Discover Events - browse everything happening on campus and RSVP in one tap.
🏆 Earn Points and Badges - every event you attend earns points toward the leaderboard.
🎟️ QR Tickets - your ticket arrives by email; scan in at the door.

See you on campus!
The Campus Hub Team
`, name)

	m.SetBody("text/plain", textBody)
	m.AddAlternative("text/html", htmlBody)

	if err := es.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}

	fmt.Printf("📧 Welcome email sent to %s\n", email)
	return nil
}
