package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/examgen/examgen_go_server/config"
)

type Service struct {
	cfg *config.EmailConfig
}

func NewService(cfg *config.EmailConfig) *Service {
	return &Service{cfg: cfg}
}

// SendPaymentApproved notifies the user that their payment was verified
// and the plan activated.
func (s *Service) SendPaymentApproved(to, planName, transactionID string) error {
	subject := "Payment Approved - Exam Question Generator"
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #16a34a;">Payment Approved</h2>
        <p>Hello,</p>
        <p>Your payment <strong>%s</strong> has been verified and your <strong>%s</strong> subscription is now active.</p>
        <p>You can start generating question papers right away.</p>
        <hr style="border: none; border-top: 1px solid #e5e7eb; margin: 20px 0;">
        <p style="color: #6b7280; font-size: 12px;">This is an automated message, please do not reply.</p>
    </div>
</body>
</html>
`, transactionID, planName)

	return s.sendHTML(to, subject, body)
}

// SendPaymentRejected notifies the user that their payment could not be
// verified.
func (s *Service) SendPaymentRejected(to, planName, transactionID string) error {
	subject := "Payment Rejected - Exam Question Generator"
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #dc2626;">Payment Rejected</h2>
        <p>Hello,</p>
        <p>We could not verify your payment <strong>%s</strong> for the <strong>%s</strong> plan.</p>
        <p>Please check your payment details and submit again, or contact support if you believe this is a mistake.</p>
        <hr style="border: none; border-top: 1px solid #e5e7eb; margin: 20px 0;">
        <p style="color: #6b7280; font-size: 12px;">This is an automated message, please do not reply.</p>
    </div>
</body>
</html>
`, transactionID, planName)

	return s.sendHTML(to, subject, body)
}

// SendWelcome greets a newly registered user.
func (s *Service) SendWelcome(to, username string) error {
	subject := "Welcome - Exam Question Generator"
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #2563eb;">Welcome!</h2>
        <p>Hello, %s!</p>
        <p>Thanks for signing up for the Exam Question Generator.</p>
        <p>You can now:</p>
        <ul>
            <li>Generate MCQs and open-ended questions from your study material</li>
            <li>Upload PDF, DOCX or TXT documents as source text</li>
            <li>Subscribe to a plan for larger question papers and exports</li>
        </ul>
        <hr style="border: none; border-top: 1px solid #e5e7eb; margin: 20px 0;">
        <p style="color: #6b7280; font-size: 12px;">This is an automated message, please do not reply.</p>
    </div>
</body>
</html>
`, username)

	return s.sendHTML(to, subject, body)
}

func (s *Service) sendHTML(to, subject, body string) error {
	headers := make(map[string]string)
	headers["From"] = s.cfg.From
	headers["To"] = to
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"

	var msg strings.Builder
	for k, v := range headers {
		msg.WriteString(fmt.Sprintf("%s: %s\r\n", k, v))
	}
	msg.WriteString("\r\n")
	msg.WriteString(body)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.SMTPHost)
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)

	return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg.String()))
}
