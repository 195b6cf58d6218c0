package utils

import (
	"fmt"
	"log"
	"net/smtp"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"truckscout/config"
)

// Mailer sends transactional email. The provider is a closed set selected
// once at startup from configuration.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// NewMailer selects the mail provider from configuration.
func NewMailer(cfg *config.Config) (Mailer, error) {
	switch cfg.MailProvider {
	case "smtp":
		return &smtpMailer{cfg: cfg}, nil
	case "sendgrid":
		return &sendGridMailer{cfg: cfg}, nil
	default:
		return nil, fmt.Errorf("unknown mail provider: %s", cfg.MailProvider)
	}
}

type smtpMailer struct {
	cfg *config.Config
}

func (m *smtpMailer) Send(to, subject, htmlBody string) error {
	from := m.cfg.EmailSender

	header := fmt.Sprintf("Subject: %s\nMIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n", subject)
	message := []byte(header + "\n" + htmlBody)

	// Auth setup
	auth := smtp.PlainAuth("", from, m.cfg.SMTPPassword, m.cfg.SMTPHost)

	err := smtp.SendMail(m.cfg.SMTPHost+":"+m.cfg.SMTPPort, auth, from, []string{to}, message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", to, err)
		return err
	}

	log.Println("Email sent successfully to", to)
	return nil
}

type sendGridMailer struct {
	cfg *config.Config
}

func (m *sendGridMailer) Send(to, subject, htmlBody string) error {
	from := sgmail.NewEmail("TruckScout", m.cfg.EmailSender)
	recipient := sgmail.NewEmail("", to)
	message := sgmail.NewSingleEmail(from, subject, recipient, "", htmlBody)

	client := sendgrid.NewSendClient(m.cfg.SendGridAPIKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", to, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("SendGrid rejected email to %s, response code: %d", to, resp.StatusCode)
		return fmt.Errorf("sendgrid error, code: %d", resp.StatusCode)
	}

	log.Println("Email sent successfully to", to)
	return nil
}

// InvitationEmailBody renders the HTML body for a team invitation.
func InvitationEmailBody(accountName, role, inviteLink string) string {
	return fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 500px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px; box-shadow: 0 2px 8px rgba(0, 0, 0, 0.1);">
					<h2 style="color: #333333; text-align: center;">You have been invited to %s</h2>
					<p style="font-size: 16px; color: #555555; text-align: center;">You were invited to join as <b>%s</b>.</p>
					<p style="text-align: center; margin: 30px 0;">
						<a href="%s" style="background-color: #4CAF50; color: #ffffff; padding: 12px 24px; border-radius: 4px; text-decoration: none;">Accept Invitation</a>
					</p>
					<p style="font-size: 14px; color: #999999; text-align: center;">This invitation expires in 7 days.</p>
				</div>
			</body>
		</html>
	`, accountName, role, inviteLink)
}
