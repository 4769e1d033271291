package mailing

import (
	"Foodgram-Backend/internal/utils"
	"fmt"
	"strconv"

	"gopkg.in/gomail.v2"
)

type Mailer struct {
	appURL       string
	smtpHost     string
	smtpPort     string
	senderName   string
	authEmail    string
	authPassword string
}

func NewMailer() *Mailer {
	return &Mailer{
		appURL:       utils.GetConfig("APP_URL"),
		smtpHost:     utils.GetConfig("SMTP_HOST"),
		smtpPort:     utils.GetConfig("SMTP_PORT"),
		senderName:   utils.GetConfig("SMTP_SENDER_NAME"),
		authEmail:    utils.GetConfig("SMTP_AUTH_EMAIL"),
		authPassword: utils.GetConfig("SMTP_AUTH_PASSWORD"),
	}
}

func (m *Mailer) Send(toEmail string, subject string, body string) error {
	mailer := gomail.NewMessage()
	mailer.SetHeader("From", m.authEmail)
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)

	port, err := strconv.Atoi(m.smtpPort)
	if err != nil {
		return err
	}
	dialer := gomail.NewDialer(m.smtpHost, port, m.authEmail, m.authPassword)
	return dialer.DialAndSend(mailer)
}

// SendWelcome greets a freshly registered user.
func (m *Mailer) SendWelcome(toEmail string, firstName string) error {
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Welcome to Foodgram! Start sharing your recipes at <a href=%q>%s</a>.</p>",
		firstName, m.appURL, m.appURL,
	)
	return m.Send(toEmail, "Welcome to Foodgram", body)
}
