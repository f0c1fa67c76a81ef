package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/HackingCorp/ltcgroup-sub001/internal/model"
	"github.com/HackingCorp/ltcgroup-sub001/internal/ports"
)

type ContactService struct {
	mailer    ports.IMailer
	teamEmail string
}

func NewContactService(mailer ports.IMailer, teamEmail string) *ContactService {
	return &ContactService{mailer: mailer, teamEmail: teamEmail}
}

func contactBody(req model.ContactRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", req.Name)
	fmt.Fprintf(&b, "Email: %s\n", req.Email)
	if req.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", req.Phone)
	}
	if req.Company != "" {
		fmt.Fprintf(&b, "Company: %s\n", req.Company)
	}
	b.WriteString("\n")
	b.WriteString(req.Message)
	b.WriteString("\n")
	return b.String()
}

// Send forwards a website contact form to the team mailbox.
func (s *ContactService) Send(ctx context.Context, req model.ContactRequest) error {
	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		subject = "New contact request"
	}

	err := s.mailer.Send(ctx, model.Email{
		To:      []string{s.teamEmail},
		ReplyTo: req.Email,
		Subject: fmt.Sprintf("[Website] %s - %s", subject, req.Name),
		Body:    contactBody(req),
	})
	if err != nil {
		return fmt.Errorf("failed to send contact email: %w", err)
	}

	slog.InfoContext(ctx, "contact request forwarded", "from", req.Email)
	return nil
}
