package service

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// EmailService sends transactional email via Amazon SES. When no sender
// address is configured the service is disabled and every send becomes a
// logged no-op, so local development needs no AWS credentials.
type EmailService struct {
	client     *sesv2.Client
	fromEmail  string
	fromName   string
	appBaseURL string
	enabled    bool
}

// NewEmailService creates a new email service
func NewEmailService(awsRegion, fromEmail, fromName, appBaseURL string) (*EmailService, error) {
	if fromEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{enabled: false}, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)

	return &EmailService{
		client:     sesv2.NewFromConfig(cfg),
		fromEmail:  fromEmail,
		fromName:   fromName,
		appBaseURL: appBaseURL,
		enabled:    true,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendPasswordResetEmail sends a password reset email with a reset link
func (s *EmailService) SendPasswordResetEmail(ctx context.Context, toEmail, toName, resetToken string) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): password reset to %s", toEmail)
		return nil
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", s.appBaseURL, resetToken)
	subject := "Reset your Ella Rises password"
	body := fmt.Sprintf(
		"Hi %s,\n\nA password reset was requested for your Ella Rises account. "+
			"Use the link below within one hour to choose a new password:\n\n%s\n\n"+
			"If you did not request this, you can ignore this email.\n",
		toName, resetLink)

	return s.send(ctx, toEmail, subject, body)
}

// SendEnrollmentConfirmation acknowledges a public enrollment submission
func (s *EmailService) SendEnrollmentConfirmation(ctx context.Context, toEmail, parentName, participantName string) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): enrollment confirmation to %s", toEmail)
		return nil
	}

	subject := "Ella Rises enrollment received"
	body := fmt.Sprintf(
		"Hi %s,\n\nWe received your enrollment submission for %s. "+
			"Our team will review it and reach out with next steps.\n\n"+
			"Thank you,\nElla Rises\n",
		parentName, participantName)

	return s.send(ctx, toEmail, subject, body)
}

func (s *EmailService) send(ctx context.Context, toEmail, subject, body string) error {
	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body)},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}
	return nil
}
