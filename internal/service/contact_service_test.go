package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/HackingCorp/ltcgroup-sub001/internal/mocks"
	"github.com/HackingCorp/ltcgroup-sub001/internal/model"
)

func TestContactServiceSend(t *testing.T) {
	mailer := &mocks.Mailer{}
	svc := NewContactService(mailer, teamEmail)

	mailer.On("Send", mock.Anything, mock.MatchedBy(func(e model.Email) bool {
		return e.To[0] == teamEmail &&
			e.ReplyTo == "jean@example.cm" &&
			strings.Contains(e.Subject, "Partnership") &&
			strings.Contains(e.Body, "Company: Acme SARL") &&
			strings.Contains(e.Body, "Let's talk.")
	})).Return(nil).Once()

	err := svc.Send(context.Background(), model.ContactRequest{
		Name:    "Jean Mbarga",
		Email:   "jean@example.cm",
		Company: "Acme SARL",
		Subject: "Partnership",
		Message: "Let's talk.",
	})
	require.NoError(t, err)
	mailer.AssertExpectations(t)
}

func TestContactServiceSendFailure(t *testing.T) {
	mailer := &mocks.Mailer{}
	svc := NewContactService(mailer, teamEmail)
	mailer.On("Send", mock.Anything, mock.Anything).Return(errors.New("535 auth failed"))

	err := svc.Send(context.Background(), model.ContactRequest{Name: "Jean", Email: "jean@example.cm", Message: "hi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "535 auth failed")
}
