package mail

import (
	"context"
	"fmt"
	"strings"

	zlog "github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"

	"github.com/referly/referral-be/internal/config"
	"github.com/referly/referral-be/internal/models"
)

// Sender dispatches the referral confirmation email.
type Sender interface {
	SendReferralConfirmation(ctx context.Context, referral models.Referral) error
}

// Mailer sends transactional mail over SMTP.
type Mailer struct {
	cfg config.SMTPConfig
}

var _ Sender = (*Mailer)(nil)

// New creates a Mailer from SMTP settings. An incomplete configuration is
// reported once here so an operator notices before any confirmation is lost.
func New(cfg config.SMTPConfig) *Mailer {
	if cfg.Host == "" || cfg.User == "" || cfg.From == "" {
		zlog.Warn().Msg("smtp config incomplete, referral confirmations will not be sent")
	}
	return &Mailer{cfg: cfg}
}

// SendReferralConfirmation emails the referral recipient a plaintext summary
// of the program and bonus amounts. Sending is skipped when SMTP is not
// configured or the recipient is empty.
func (m *Mailer) SendReferralConfirmation(ctx context.Context, referral models.Referral) error {
	if m.cfg.Host == "" || m.cfg.User == "" || m.cfg.From == "" {
		zlog.Warn().Msg("smtp config missing, skip referral confirmation")
		return nil
	}
	if strings.TrimSpace(referral.Email) == "" {
		zlog.Warn().Msg("referral recipient empty, skip confirmation")
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", referral.Email)
	msg.SetHeader("Subject", "Referral Confirmation")
	msg.SetBody("text/plain", ConfirmationBody(referral))

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.User, m.cfg.Pass)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("send referral confirmation: %w", err)
	}

	zlog.Info().Str("to", referral.Email).Str("program", referral.Name).Msg("referral confirmation sent")
	return nil
}

// ConfirmationBody renders the plaintext confirmation message.
func ConfirmationBody(referral models.Referral) string {
	return fmt.Sprintf(
		"Hi %s,\n\nThank you for your referral. You will receive a bonus of %v and your referee will receive a bonus of %v.\n\nBest regards,\nYour Company",
		referral.Name, referral.ReferenceBonus, referral.RefereeBonus,
	)
}
