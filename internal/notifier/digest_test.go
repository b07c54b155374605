package notifier

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/Dan9191/finance-tracker/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	users    []models.User
	usersErr error
	upcoming map[string][]models.FutureTransaction
	failFor  string
}

func (f *fakeSource) Users(ctx context.Context) ([]models.User, error) {
	return f.users, f.usersErr
}

func (f *fakeSource) UpcomingExpenses(ctx context.Context, userID string, days int) ([]models.FutureTransaction, error) {
	if userID == f.failFor {
		return nil, errors.New("database is down")
	}
	return f.upcoming[userID], nil
}

type sentDigest struct {
	to    string
	days  int
	items int
}

type fakeMailer struct {
	sent    []sentDigest
	failFor string
}

func (f *fakeMailer) SendUpcomingDigest(to, username string, days int, upcoming []models.FutureTransaction) error {
	if to == f.failFor {
		return errors.New("smtp refused")
	}
	f.sent = append(f.sent, sentDigest{to: to, days: days, items: len(upcoming)})
	return nil
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestDigestRun(t *testing.T) {
	due := []models.FutureTransaction{{ID: "exp-1-recurring-2026-10-22", Amount: 90}}
	src := &fakeSource{
		users: []models.User{
			{ID: "u1", Email: "u1@example.com"},
			{ID: "u2", Email: "u2@example.com"},
			{ID: "u3", Email: "u3@example.com"},
			{ID: "u4", Email: "u4@example.com"},
		},
		upcoming: map[string][]models.FutureTransaction{
			"u1": due,
			"u3": due,
			"u4": due,
		},
		failFor: "u3",
	}
	mailer := &fakeMailer{failFor: "u4@example.com"}

	sent, err := NewDigest(src, mailer, 7, quietLogger()).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, sent)
	assert.Equal(t, []sentDigest{{to: "u1@example.com", days: 7, items: 1}}, mailer.sent)
}

func TestDigestRun_UsersUnavailable(t *testing.T) {
	src := &fakeSource{usersErr: errors.New("timeout")}

	_, err := NewDigest(src, &fakeMailer{}, 7, quietLogger()).Run(context.Background())
	assert.ErrorContains(t, err, "failed to list users")
}

func TestDigestRun_Cancelled(t *testing.T) {
	src := &fakeSource{users: []models.User{{ID: "u1", Email: "u1@example.com"}}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDigest(src, &fakeMailer{}, 7, quietLogger()).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSchedule(t *testing.T) {
	d := NewDigest(&fakeSource{}, &fakeMailer{}, 7, quietLogger())

	c, err := Schedule("0 8 * * *", d, time.Minute)
	require.NoError(t, err)
	defer c.Stop()
	assert.Len(t, c.Entries(), 1)

	_, err = Schedule("every morning", d, time.Minute)
	assert.Error(t, err)
}
