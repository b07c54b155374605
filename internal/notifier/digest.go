package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/Dan9191/finance-tracker/internal/models"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Mailer delivers the digest to one user
type Mailer interface {
	SendUpcomingDigest(to, username string, days int, upcoming []models.FutureTransaction) error
}

// Source provides the users and their projected expenses
type Source interface {
	Users(ctx context.Context) ([]models.User, error)
	UpcomingExpenses(ctx context.Context, userID string, days int) ([]models.FutureTransaction, error)
}

// Digest mails every user the expenses projected for the next days
type Digest struct {
	src    Source
	mailer Mailer
	days   int
	log    *logrus.Logger
}

func NewDigest(src Source, mailer Mailer, days int, log *logrus.Logger) *Digest {
	return &Digest{src: src, mailer: mailer, days: days, log: log}
}

// Run sends one digest per user with something due. A failure for one user is
// logged and does not stop the others; the number of digests sent is returned.
func (d *Digest) Run(ctx context.Context) (int, error) {
	users, err := d.src.Users(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list users: %w", err)
	}

	sent := 0
	for _, u := range users {
		if err := ctx.Err(); err != nil {
			return sent, err
		}

		upcoming, err := d.src.UpcomingExpenses(ctx, u.ID, d.days)
		if err != nil {
			d.log.Errorf("Failed to project expenses for user %s: %v", u.ID, err)
			continue
		}
		if len(upcoming) == 0 {
			continue
		}

		if err := d.mailer.SendUpcomingDigest(u.Email, u.Username, d.days, upcoming); err != nil {
			d.log.Errorf("Failed to send digest to user %s: %v", u.ID, err)
			continue
		}
		sent++
	}

	d.log.Infof("Digest run completed: users=%d, sent=%d", len(users), sent)
	return sent, nil
}

// Schedule starts a cron runner executing the digest on schedule (standard 5-field cron syntax)
func Schedule(schedule string, d *Digest, timeout time.Duration) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if _, err := d.Run(ctx); err != nil {
			d.log.Errorf("Digest run failed: %v", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid digest schedule %q: %w", schedule, err)
	}
	c.Start()
	return c, nil
}
