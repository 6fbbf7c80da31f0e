package sendGrid

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/shopspring/decimal"
)

type EmailService interface {
	SendPriceAlert(ctx context.Context, toEmail, productID string, targetPrice, currentPrice decimal.Decimal) error
	GetSendGridClient() *sendgrid.Client
}

type emailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey string, fromEmail string, fromName string) EmailService {
	return &emailService{client: sendgrid.NewSendClient(apiKey), fromEmail: fromEmail, fromName: fromName}
}

// SendPriceAlert implements EmailService.
func (e *emailService) SendPriceAlert(ctx context.Context, toEmail, productID string, targetPrice, currentPrice decimal.Decimal) error {

	from := mail.NewEmail(e.fromName, e.fromEmail)
	to := mail.NewEmail("", toEmail)

	message := mail.NewV3Mail()
	message.SetFrom(from)

	personalization := mail.NewPersonalization()
	personalization.AddTos(to)
	personalization.Subject = fmt.Sprintf("Price drop: %s is now %s", productID, currentPrice.StringFixed(2))
	message.AddPersonalizations(personalization)

	plain := fmt.Sprintf("The product %s you are watching dropped to %s, at or below your target of %s.",
		productID, currentPrice.StringFixed(2), targetPrice.StringFixed(2))
	html := fmt.Sprintf("<p>The product <strong>%s</strong> you are watching dropped to <strong>%s</strong>, at or below your target of %s.</p>",
		productID, currentPrice.StringFixed(2), targetPrice.StringFixed(2))

	message.AddContent(mail.NewContent("text/plain", plain))
	message.AddContent(mail.NewContent("text/html", html))

	response, err := e.client.Send(message)

	if err != nil {
		return err
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email, status code: %d", response.StatusCode)
	}

	return nil
}

// GetSendGridClient provides access to the internal sendgrid.Client.
func (e *emailService) GetSendGridClient() *sendgrid.Client {
	return e.client
}
