package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"stokvel-backend/internal/domain"
)

type sendgridNotifier struct {
	apiKey   string
	from     string
	fromName string
}

// NewSendGridNotifier sends workflow decision mail through SendGrid.
func NewSendGridNotifier(apiKey, from, fromName string) Notifier {
	return &sendgridNotifier{apiKey: apiKey, from: from, fromName: fromName}
}

func (n *sendgridNotifier) JoinRequestDecided(ctx context.Context, member *domain.Member, groupName string, accepted bool) error {
	subject := fmt.Sprintf("Join request update - %s", groupName)
	decision := "rejected"
	if accepted {
		decision = "accepted"
	}
	body := fmt.Sprintf("Hello %s,\n\nYour request to join %s has been %s.", member.FullName(), groupName, decision)
	return n.send(member, subject, body)
}

func (n *sendgridNotifier) LeaveRequestDecided(ctx context.Context, member *domain.Member, groupName string, accepted bool) error {
	subject := fmt.Sprintf("Leave request update - %s", groupName)
	decision := "rejected"
	if accepted {
		decision = "approved"
	}
	body := fmt.Sprintf("Hello %s,\n\nYour request to leave %s has been %s.", member.FullName(), groupName, decision)
	return n.send(member, subject, body)
}

func (n *sendgridNotifier) send(member *domain.Member, subject, body string) error {
	if member.Email == "" {
		return nil
	}
	from := mail.NewEmail(n.fromName, n.from)
	to := mail.NewEmail(member.FullName(), member.Email)
	message := mail.NewSingleEmail(from, subject, to, body, "")

	client := sendgrid.NewSendClient(n.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

type noopNotifier struct{}

// NewNoopNotifier is used when no mail credentials are configured.
func NewNoopNotifier() Notifier {
	return noopNotifier{}
}

func (noopNotifier) JoinRequestDecided(ctx context.Context, member *domain.Member, groupName string, accepted bool) error {
	return nil
}

func (noopNotifier) LeaveRequestDecided(ctx context.Context, member *domain.Member, groupName string, accepted bool) error {
	return nil
}
