package utils

import (
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ses"
	"github.com/sirupsen/logrus"
)

// Mailer delivers superadmin verification codes through SES. Calls go
// through a circuit breaker so a mail-provider outage fails fast instead of
// stalling logins.
type Mailer struct {
	client  *ses.SES
	sender  string
	breaker *CircuitBreaker
}

// NewMailer creates a mailer from AWS_REGION and EMAIL_SENDER.
func NewMailer() (*Mailer, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(os.Getenv("AWS_REGION")),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	sender := os.Getenv("EMAIL_SENDER")
	if sender == "" {
		return nil, fmt.Errorf("EMAIL_SENDER must be set")
	}

	return &Mailer{
		client:  ses.New(sess),
		sender:  sender,
		breaker: NewCircuitBreaker("ses", 5, 30*time.Second),
	}, nil
}

// SendVerificationCode emails a login verification code.
func (m *Mailer) SendVerificationCode(to, code string) error {
	input := &ses.SendEmailInput{
		Source: aws.String(m.sender),
		Destination: &ses.Destination{
			ToAddresses: []*string{aws.String(to)},
		},
		Message: &ses.Message{
			Subject: &ses.Content{
				Charset: aws.String("UTF-8"),
				Data:    aws.String("SuperAdmin Login Verification"),
			},
			Body: &ses.Body{
				Text: &ses.Content{
					Charset: aws.String("UTF-8"),
					Data:    aws.String(fmt.Sprintf("Your SuperAdmin verification code is: %s", code)),
				},
			},
		},
	}

	err := m.breaker.Call(func() error {
		_, sendErr := m.client.SendEmail(input)
		return sendErr
	})
	if err != nil {
		logrus.WithError(err).WithField("to", to).Error("failed to send verification email")
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	return nil
}
