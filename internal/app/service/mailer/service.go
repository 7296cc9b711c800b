package mailer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	cfgpkg "github.com/clapboard/membership/pkg/config"
)

// Service sends subscription decision emails. In "mock" mode (the default) it
// logs the message instead of dialing SMTP, which keeps dev and CI offline.
type Service struct {
	cfg *cfgpkg.Config
	log *zap.SugaredLogger
}

func NewService(cfg *cfgpkg.Config, log *zap.SugaredLogger) *Service {
	return &Service{cfg: cfg, log: log}
}

func (s *Service) SendSubscriptionDecision(ctx context.Context, to, packageName string, approved bool, reason string, endDate *time.Time) error {
	subject := "Your subscription request was rejected"
	body := fmt.Sprintf("Your request for the %q package was rejected.", packageName)
	if reason != "" {
		body += fmt.Sprintf(" Reason: %s", reason)
	}
	if approved {
		subject = "Your subscription is active"
		body = fmt.Sprintf("Your %q subscription is now active.", packageName)
		if endDate != nil {
			body += fmt.Sprintf(" It is valid until %s.", endDate.Format("2006-01-02"))
		}
	}

	if s.cfg.Mail.Mode == "mock" || s.cfg.Mail.Host == "" {
		s.log.Infow("mock email",
			"to", to, "subject", subject, "body", body)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.Mail.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.cfg.Mail.Host, s.cfg.Mail.Port, s.cfg.Mail.Username, s.cfg.Mail.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
