package service

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"suryayoga/internal/i18n"
)

// EmailService sends transactional mail via Amazon SES. When no from
// address is configured the service runs disabled and every send becomes a
// logged no-op, which keeps local development working without AWS
// credentials.
type EmailService struct {
	client    *sesv2.Client
	fromEmail string
	fromName  string
	baseURL   string
	enabled   bool
}

// NewEmailService creates a new email service
func NewEmailService(awsRegion, fromEmail, fromName, baseURL string) (*EmailService, error) {
	if fromEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{enabled: false, baseURL: baseURL}, nil
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)

	return &EmailService{
		client:    sesv2.NewFromConfig(cfg),
		fromEmail: fromEmail,
		fromName:  fromName,
		baseURL:   baseURL,
		enabled:   true,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendVerificationEmail sends the account verification link. The link hits
// the API directly; the verify handler redirects back into the site.
func (s *EmailService) SendVerificationEmail(ctx context.Context, toEmail string, verificationToken string, lang i18n.Lang) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): verification to %s", toEmail)
		return nil
	}

	verifyLink := fmt.Sprintf("%s/api/verify-email?token=%s", s.baseURL, verificationToken)

	subject := "Verify your Surya Yoga account"
	heading := "Welcome to Surya Yoga!"
	intro := "Thank you for registering with Surya Yoga! Please click the button below to verify your email address and complete your registration."
	button := "Verify Email"
	expires := "This link will expire in 24 hours."
	if lang == i18n.LangGeorgian {
		subject = "დაადასტურეთ თქვენი სურია იოგას ანგარიში"
		heading = "კეთილი იყოს თქვენი მობრძანება სურია იოგაში!"
		intro = "მადლობა სურია იოგაში რეგისტრაციისთვის! გთხოვთ დააჭიროთ ღილაკს თქვენი ელ.ფოსტის დასადასტურებლად."
		button = "ელ.ფოსტის დადასტურება"
		expires = "ეს ლინკი 24 საათში გაუქმდება."
	}

	htmlBody := s.renderMail(heading, intro, button, verifyLink, expires)
	textBody := fmt.Sprintf("%s\n\n%s\n\n%s\n%s\n\n%s\n", heading, intro, button, verifyLink, expires)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// SendPasswordResetEmail sends the password reset link
func (s *EmailService) SendPasswordResetEmail(ctx context.Context, toEmail string, resetToken string, lang i18n.Lang) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): password reset to %s", toEmail)
		return nil
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", s.baseURL, resetToken)

	subject := "Password Reset - Surya Yoga"
	heading := "Password Reset Request"
	intro := "We received a request to reset your Surya Yoga password. Click the button below to choose a new one. If you didn't request this, you can safely ignore this email."
	button := "Reset Password"
	expires := "This link will expire in 24 hours."
	if lang == i18n.LangGeorgian {
		subject = "პაროლის აღდგენა - სურია იოგა"
		heading = "პაროლის აღდგენის მოთხოვნა"
		intro = "მივიღეთ თქვენი სურია იოგას პაროლის აღდგენის მოთხოვნა. ახალი პაროლის ასარჩევად დააჭირეთ ღილაკს. თუ ეს თქვენ არ მოგითხოვიათ, უბრალოდ დააიგნორეთ ეს წერილი."
		button = "პაროლის აღდგენა"
		expires = "ეს ლინკი 24 საათში გაუქმდება."
	}

	htmlBody := s.renderMail(heading, intro, button, resetLink, expires)
	textBody := fmt.Sprintf("%s\n\n%s\n\n%s\n%s\n\n%s\n", heading, intro, button, resetLink, expires)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

func (s *EmailService) renderMail(heading, intro, button, link, expires string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
		.container { max-width: 600px; margin: 0 auto; padding: 20px; }
		.header { background-color: #f97316; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
		.content { background-color: #f9f9f9; padding: 30px; border-radius: 0 0 5px 5px; }
		.button { display: inline-block; padding: 12px 30px; background-color: #f97316; color: white; text-decoration: none; border-radius: 5px; margin: 20px 0; }
		.footer { text-align: center; margin-top: 20px; font-size: 12px; color: #666; }
	</style>
</head>
<body>
	<div class="container">
		<div class="header">
			<h1>%s</h1>
		</div>
		<div class="content">
			<p>%s</p>
			<p style="text-align: center;">
				<a href="%s" class="button">%s</a>
			</p>
			<p>%s</p>
			<p style="word-break: break-all; font-size: 12px; color: #666;">%s</p>
		</div>
		<div class="footer">
			<p><strong>Surya Yoga Studio</strong><br>
			+995 558 60 66 00 | SuryaYogaGeorgia@gmail.com</p>
		</div>
	</div>
</body>
</html>
`, heading, intro, link, button, expires, link)
}

// sendEmail sends an email using Amazon SES
func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	_, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	log.Printf("Email sent successfully: to=%s, subject=%s", toEmail, subject)
	return nil
}
