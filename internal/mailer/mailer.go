package mailer

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/Rushibhatt10/HBEstate/internal/platform/logger"
	"github.com/Rushibhatt10/HBEstate/internal/property/domain"
)

// SMTPConfig holds the outgoing mail settings.
type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	SenderEmail string
	// NotifyEmail receives a copy of every contact query.
	NotifyEmail string
}

// Mailer sends operator notifications over SMTP.
type Mailer struct {
	cfg  SMTPConfig
	dial func() (gomail.SendCloser, error)
	log  *logger.Logger
}

func NewMailer(cfg SMTPConfig, log *logger.Logger) (*Mailer, error) {
	if cfg.Host == "" || cfg.Port == 0 || cfg.NotifyEmail == "" {
		return nil, errors.New("SMTP host, port and notify email must be configured")
	}
	if cfg.SenderEmail == "" {
		cfg.SenderEmail = cfg.Username
	}

	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	dialer.TLSConfig = &tls.Config{ServerName: cfg.Host, MinVersion: tls.VersionTLS12}
	if cfg.Port == 465 {
		dialer.SSL = true
	}

	return &Mailer{
		cfg:  cfg,
		dial: dialer.Dial,
		log:  log.Named("Mailer"),
	}, nil
}

// NotifyNewQuery mails the operator a summary of a contact query. Replies go
// straight to the visitor.
func (m *Mailer) NotifyNewQuery(ctx context.Context, q *domain.Query) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.SenderEmail)
	msg.SetHeader("To", m.cfg.NotifyEmail)
	if q.Email != "" {
		msg.SetHeader("Reply-To", q.Email)
	}
	msg.SetHeader("Subject", fmt.Sprintf("New enquiry from %s", q.Name))
	msg.SetBody("text/plain", queryBody(q))

	sc, err := m.dial()
	if err != nil {
		m.log.Error("SMTP dial failed", zap.String("host", m.cfg.Host), zap.Error(err))
		return fmt.Errorf("smtp dial: %w", err)
	}
	defer sc.Close()

	if err := gomail.Send(sc, msg); err != nil {
		m.log.Error("SMTP send failed", zap.String("query_id", q.ID), zap.Error(err))
		return fmt.Errorf("smtp send: %w", err)
	}
	m.log.Info("Query notification sent", zap.String("query_id", q.ID))
	return nil
}

func queryBody(q *domain.Query) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", q.Name)
	fmt.Fprintf(&b, "Email: %s\n", q.Email)
	fmt.Fprintf(&b, "Phone: %s\n", q.Phone)
	if !q.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "Received: %s\n", q.CreatedAt.Format(time.RFC1123))
	}
	if q.Image != "" {
		fmt.Fprintf(&b, "Attachment: %s\n", q.Image)
	}
	b.WriteString("\n")
	b.WriteString(q.Message)
	b.WriteString("\n")
	return b.String()
}
