package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendEnrollmentConfirmation(toEmail, fullName, employeeCode string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

func (s *emailService) SendEnrollmentConfirmation(toEmail, fullName, employeeCode string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "You are enrolled in the attendance system")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Welcome, %s!</h2>
			<p>Your face photo has been enrolled for attendance tracking.</p>
			<p>Your employee code is:</p>
			<h1 style="color: #4CAF50; letter-spacing: 3px;">%s</h1>
			<p>You can now clock in and out at any attendance kiosk.</p>
			<p>If you believe this enrollment was made in error, please contact HR.</p>
		</div>
	`, fullName, employeeCode)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send enrollment confirmation to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Enrollment confirmation sent to %s\n", toEmail)
	return nil
}
