package service

import (
	"context"
	"fmt"
	"strings"

	"agroshare-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type sendgridEmailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewSendgridEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &sendgridEmailService{apiKey: apiKey, fromEmail: fromEmail, fromName: fromName}
}

func (s *sendgridEmailService) send(ctx context.Context, to, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}

	logger.Debug("email sent", "to", to, "subject", subject)
	return nil
}

func (s *sendgridEmailService) SendRequestReceived(ctx context.Context, to, requesterName, machineName, date string) error {
	subject := fmt.Sprintf("New rental request for %s", machineName)
	body := fmt.Sprintf(
		"%s has requested to rent your %s on %s.\n\n"+
			"Open your seller dashboard to accept or reject the request.\n",
		requesterName, machineName, date)
	return s.send(ctx, to, subject, body)
}

func (s *sendgridEmailService) SendRequestAccepted(ctx context.Context, to, machineName, date string) error {
	subject := fmt.Sprintf("Your request for %s was accepted", machineName)
	body := fmt.Sprintf(
		"Good news! Your rental request for %s on %s has been accepted.\n\n"+
			"The booking is confirmed. You can view the invoice from your bookings page.\n",
		machineName, date)
	return s.send(ctx, to, subject, body)
}

func (s *sendgridEmailService) SendRequestRejected(ctx context.Context, to, machineName, date string) error {
	subject := fmt.Sprintf("Your request for %s was declined", machineName)
	body := fmt.Sprintf(
		"Unfortunately your rental request for %s on %s has been declined by the owner.\n\n"+
			"You can browse other machines available on that date.\n",
		machineName, date)
	return s.send(ctx, to, subject, body)
}

func (s *sendgridEmailService) SendPendingReminder(ctx context.Context, to, ownerName string, lines []string) error {
	subject := "You have pending rental requests"
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nThe following rental requests are still waiting for your decision:\n\n", ownerName)
	for _, line := range lines {
		fmt.Fprintf(&b, "  - %s\n", line)
	}
	b.WriteString("\nPlease accept or reject them from your seller dashboard.\n")
	return s.send(ctx, to, subject, b.String())
}
