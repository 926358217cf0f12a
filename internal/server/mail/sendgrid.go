package mail

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendgridSender delivers mail through the SendGrid API.
type SendgridSender struct {
	apiKey   string
	fromName string
	fromAddr string
}

func NewSendgridSender(apiKey, fromName, fromAddr string) *SendgridSender {
	return &SendgridSender{apiKey: apiKey, fromName: fromName, fromAddr: fromAddr}
}

func (s *SendgridSender) SendPasswordReset(ctx context.Context, to string, link string) error {
	from := sgmail.NewEmail(s.fromName, s.fromAddr)
	recipient := sgmail.NewEmail("", to)
	subject := "Password Reset"

	plainTextContent := fmt.Sprintf("Open the link below to reset your password:\n%s", link)
	htmlContent := fmt.Sprintf(`<p>Click the link below to reset your password:</p><a href="%s">Reset Password</a>`, link)

	message := sgmail.NewSingleEmail(from, subject, recipient, plainTextContent, htmlContent)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("error sending email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("mail provider returned status %d", response.StatusCode)
	}

	return nil
}
