package mail

import (
	"bytes"
	"fmt"
	"path/filepath"
	"text/template"

	"gopkg.in/gomail.v2"
)

func NewEmailSender(host string, port int, user, password string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
	}
}

// SendEnrollmentConfirmation manda o email de boas-vindas à turma.
// Best-effort: quem chama já trata falha como não-bloqueante.
func (s *EmailSender) SendEnrollmentConfirmation(to, name, courseName string) error {
	data := EnrollmentEmailData{
		Name:       name,
		CourseName: courseName,
	}

	tmplPath := filepath.Join("templates", "enrollment.html")
	t, err := template.ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("erro ao ler template de email: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return fmt.Errorf("erro ao processar template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", "nao-responda@studiogestao.com.br")
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Matrícula confirmada, %s! 💅", name))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	return nil
}
