package services

import (
	"fmt"
	"time"

	"communityBilling/config"
	"communityBilling/models"
	"gopkg.in/gomail.v2"
)

// EmailService предоставляет методы для отправки email
type EmailService struct {
	dialer *gomail.Dialer
	from   string
	config *config.Config
}

// NewEmailService создает новый экземпляр EmailService
func NewEmailService(cfg *config.Config) *EmailService {
	dialer := gomail.NewDialer(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
	)

	return &EmailService{
		dialer: dialer,
		from:   cfg.SMTP.From,
		config: cfg,
	}
}

// SendEmail отправляет email
func (s *EmailService) SendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("ошибка отправки email: %v", err)
	}

	return nil
}

// SendFeeNotification отправляет жителю уведомление о новом начислении
func (s *EmailService) SendFeeNotification(to string, fee *models.Fee) error {
	subject := "Уведомление о новом взносе"
	body := fmt.Sprintf(`
		<h2>Уведомление о новом взносе</h2>
		<p>Взнос: %s</p>
		<p>Расчетный период: %s</p>
		<p>Дата начисления: %s</p>
		<p>Платеж ожидает оплаты в личном кабинете.</p>
	`, fee.Description, fee.Period(), time.Now().Format("02.01.2006"))

	return s.SendEmail(to, subject, body)
}

// SendPaymentConfirmation отправляет жителю подтверждение оплаты
func (s *EmailService) SendPaymentConfirmation(to string, payment *models.Payment) error {
	subject := "Подтверждение оплаты"
	body := fmt.Sprintf(`
		<h2>Оплата принята</h2>
		<p>Платеж #%d</p>
		<p>Сумма: %d</p>
		<p>Способ оплаты: %s</p>
		<p>Дата: %s</p>
	`, payment.ID, payment.AmountPaid, payment.Status, time.Now().Format("02.01.2006 15:04:05"))

	return s.SendEmail(to, subject, body)
}
