package service

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"mime"
	"net/mail"
	"net/smtp"
	"strings"

	"github.com/wallmasters/storefront/internal/config"
	"github.com/wallmasters/storefront/internal/i18n"
	"github.com/wallmasters/storefront/internal/models"
)

// EmailService 邮件发送服务
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// StoreInbox 店铺通知邮箱，未配置时回退到发件地址
func (s *EmailService) StoreInbox() string {
	if s == nil || s.cfg == nil {
		return ""
	}
	if inbox := strings.TrimSpace(s.cfg.StoreInbox); inbox != "" {
		return inbox
	}
	return strings.TrimSpace(s.cfg.From)
}

// SendOrderConfirmation 发送顾客下单确认邮件
func (s *EmailService) SendOrderConfirmation(order *models.Order, locale string) error {
	subject, body := buildOrderPlacedContent(order, locale, false)
	return s.sendTextEmail(order.ShippingAddress.Email, subject, body)
}

// SendStoreNotification 发送店铺新订单通知
func (s *EmailService) SendStoreNotification(order *models.Order) error {
	inbox := s.StoreInbox()
	if inbox == "" {
		return ErrEmailServiceNotConfigured
	}
	subject, body := buildOrderPlacedContent(order, i18n.LocaleEN, true)
	return s.sendTextEmail(inbox, subject, body)
}

// SendOrderStatus 发送订单状态变更邮件
func (s *EmailService) SendOrderStatus(order *models.Order, locale string) error {
	subject, body := buildOrderStatusContent(order, locale)
	return s.sendTextEmail(order.ShippingAddress.Email, subject, body)
}

func (s *EmailService) sendTextEmail(toEmail, subject, body string) error {
	if s == nil || s.cfg == nil || !s.cfg.Enabled {
		return ErrEmailServiceDisabled
	}
	if s.cfg.Host == "" || s.cfg.Port == 0 || s.cfg.From == "" {
		return ErrEmailServiceNotConfigured
	}
	if _, err := mail.ParseAddress(toEmail); err != nil {
		return ErrInvalidEmail
	}

	from := buildFromAddress(s.cfg.From, s.cfg.FromName)
	msg := []byte(buildEmailMessage(from, toEmail, subject, body))
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" || s.cfg.Password != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	var err error
	switch {
	case s.cfg.UseSSL:
		err = sendMailWithSSL(addr, auth, s.cfg.Host, s.cfg.From, toEmail, msg)
	case s.cfg.UseTLS:
		err = sendMailDial(addr, auth, s.cfg.Host, s.cfg.From, toEmail, msg, true)
	default:
		err = sendMailDial(addr, auth, s.cfg.Host, s.cfg.From, toEmail, msg, false)
	}
	return normalizeEmailSendError(err)
}

func buildOrderPlacedContent(order *models.Order, locale string, forStore bool) (string, string) {
	locale = i18n.ResolveLocale(locale)
	ship := order.ShippingAddress
	subject := i18n.Sprintf(locale, "email.order_placed.subject", order.OrderNo)

	var buf strings.Builder
	if forStore {
		buf.WriteString(i18n.Sprintf(locale, "email.order_placed.store", order.OrderNo, ship.Name, ship.Email, ship.MobileNo))
	} else {
		buf.WriteString(i18n.Sprintf(locale, "email.order_placed.greeting", ship.Name))
	}
	buf.WriteString("\n\n")
	for _, item := range order.Items {
		buf.WriteString(i18n.Sprintf(locale, "email.order_placed.line",
			item.Name, item.Size, item.Quantity, item.Price.String(), order.Currency))
		buf.WriteString("\n")
	}
	buf.WriteString("\n")
	buf.WriteString(i18n.Sprintf(locale, "email.order_placed.totals",
		order.Subtotal.String(), order.Currency,
		order.ShippingFee.String(), order.Currency,
		order.TotalPrice.String(), order.Currency))
	buf.WriteString("\n\n")
	buf.WriteString(i18n.Sprintf(locale, "email.order_placed.address",
		ship.HouseNo, ship.Street, ship.City, ship.PostalCode, ship.Country, ship.MobileNo))
	return subject, buf.String()
}

func buildOrderStatusContent(order *models.Order, locale string) (string, string) {
	locale = i18n.ResolveLocale(locale)
	statusKey := "order.status." + strings.ToLower(strings.TrimSpace(order.OrderStatus))
	label := i18n.T(locale, statusKey)
	if label == statusKey {
		label = order.OrderStatus
	}
	subject := i18n.Sprintf(locale, "email.order_status.subject", order.OrderNo, label)
	body := i18n.Sprintf(locale, "email.order_status.body", order.OrderNo, label, order.TotalPrice.String(), order.Currency)
	return subject, body
}

func buildFromAddress(from, name string) string {
	if strings.TrimSpace(name) == "" {
		return from
	}
	return (&mail.Address{Name: mime.QEncoding.Encode("UTF-8", name), Address: from}).String()
}

func buildEmailMessage(from, to, subject, body string) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(body)
	return buf.String()
}

func sendMailWithSSL(addr string, auth smtp.Auth, host, from, to string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: host})
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return err
	}
	defer client.Close()
	return deliver(client, auth, from, to, msg)
}

func sendMailDial(addr string, auth smtp.Auth, host, from, to string, msg []byte, startTLS bool) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()
	if startTLS {
		if err := client.StartTLS(&tls.Config{ServerName: host}); err != nil {
			return err
		}
	}
	return deliver(client, auth, from, to, msg)
}

func deliver(client *smtp.Client, auth smtp.Auth, from, to string, msg []byte) error {
	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}
	if err := client.Mail(from); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func normalizeEmailSendError(err error) error {
	if err == nil {
		return nil
	}
	message := strings.ToLower(err.Error())
	for _, keyword := range []string{"no such user", "recipient address rejected", "user unknown", "mailbox unavailable", "invalid recipient"} {
		if strings.Contains(message, keyword) {
			return ErrEmailRecipientRejected
		}
	}
	return err
}
