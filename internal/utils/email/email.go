package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/Dan9191/finance-tracker/internal/config"
	"github.com/Dan9191/finance-tracker/internal/models"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendUpcomingDigest mails the list of payments due in the coming days
func (s *Sender) SendUpcomingDigest(to, username string, days int, upcoming []models.FutureTransaction) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Upcoming payments for the next %d days", days)
	e.Text = []byte(DigestBody(username, days, upcoming))

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send digest to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}

// DigestBody formats the plain text body of the upcoming payments digest
func DigestBody(username string, days int, upcoming []models.FutureTransaction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", username)
	fmt.Fprintf(&b, "These payments are due in the next %d days:\n\n", days)

	var total float64
	for _, t := range upcoming {
		fmt.Fprintf(&b, "  %s  %-40s %10.2f  (%s)\n", t.Date.Format("2006-01-02"), t.Description, t.Amount, t.Category)
		total += t.Amount
	}

	fmt.Fprintf(&b, "\nTotal: %.2f\n", total)
	b.WriteString("\nBest regards,\nFinance Tracker")
	return b.String()
}
