package utils

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"go-shop/models"
)

// EmailService sends transactional email through SendGrid.
type EmailService struct {
	client *sendgrid.Client
	sender string
}

// NewEmailService creates an EmailService
func NewEmailService(apiKey, sender string) *EmailService {
	return &EmailService{
		client: sendgrid.NewSendClient(apiKey),
		sender: sender,
	}
}

// SendOrderConfirmation mails the user a summary of their new order.
func (es *EmailService) SendOrderConfirmation(ctx context.Context, to string, order *models.Order) error {
	subject := "Order Confirmation"
	text := fmt.Sprintf(
		"Thank you for your purchase! Your order (ID: %s) has been placed successfully.\n\nItems: %d\nTotal Amount: %s\nStatus: %s\n\nThank you for shopping with us!\n",
		order.ID.Hex(),
		len(order.ProductsOrdered),
		order.TotalPrice,
		order.Status,
	)
	html := fmt.Sprintf(
		"<strong>Thank you for your purchase!</strong><br><br>Your order (ID: %s) has been placed successfully.<br>Items: %d<br>Total Amount: <strong>%s</strong><br>Status: %s<br><br>Thank you for shopping with us!",
		order.ID.Hex(),
		len(order.ProductsOrdered),
		order.TotalPrice,
		order.Status,
	)

	message := mail.NewSingleEmail(
		mail.NewEmail("", es.sender),
		subject,
		mail.NewEmail("", to),
		text,
		html,
	)

	response, err := es.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email: status %d", response.StatusCode)
	}
	return nil
}
