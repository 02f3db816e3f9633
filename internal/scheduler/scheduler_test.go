package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundsystems/shirtcalc/internal/config"
	"github.com/soundsystems/shirtcalc/internal/domain/models"
)

type stubDigest struct {
	day time.Time
	err error
}

func (s *stubDigest) DailyDigest(_ context.Context, day time.Time) (string, error) {
	s.day = day
	return "Quotes (2026-10-14): none requested.", s.err
}

type stubNotifier struct {
	sent []models.OutboundMessageRequest
}

func (s *stubNotifier) SendOutbound(_ context.Context, req models.OutboundMessageRequest) error {
	s.sent = append(s.sent, req)
	return nil
}

type stubPruner struct {
	calls   int
	maxIdle time.Duration
}

func (s *stubPruner) Prune(maxIdle time.Duration) int {
	s.calls++
	s.maxIdle = maxIdle
	return 1
}

func testConfig(recipient string) config.Config {
	return config.Config{
		Server:    config.ServerConfig{SessionMaxIdle: time.Hour},
		Reporting: config.ReportingConfig{Timezone: "Africa/Conakry", Recipient: recipient},
	}
}

func TestRegister(t *testing.T) {
	s := NewScheduler(testConfig(""), &stubDigest{}, nil, &stubPruner{}, nil)
	require.NoError(t, s.Register("0 20 * * *"))
	assert.Len(t, s.cron.Entries(), 2)

	s = NewScheduler(testConfig(""), nil, nil, nil, nil)
	require.NoError(t, s.Register("0 20 * * *"))
	assert.Empty(t, s.cron.Entries())

	s = NewScheduler(testConfig(""), &stubDigest{}, nil, nil, nil)
	assert.Error(t, s.Register("not a schedule"))
}

func TestSendDailyDigest_Notifies(t *testing.T) {
	digest := &stubDigest{}
	notifier := &stubNotifier{}
	s := NewScheduler(testConfig("224600000000"), digest, notifier, nil, nil)
	s.now = func() time.Time { return time.Date(2026, 10, 14, 20, 0, 0, 0, time.UTC) }

	s.sendDailyDigest()

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "224600000000", notifier.sent[0].To)
	assert.Equal(t, "Africa/Conakry", digest.day.Location().String())
}

func TestSendDailyDigest_SkipsWithoutRecipientOrOnError(t *testing.T) {
	notifier := &stubNotifier{}

	NewScheduler(testConfig(""), &stubDigest{}, notifier, nil, nil).sendDailyDigest()
	NewScheduler(testConfig("1"), &stubDigest{err: errors.New("db")}, notifier, nil, nil).sendDailyDigest()

	assert.Empty(t, notifier.sent)
}

func TestPruneSessions(t *testing.T) {
	pruner := &stubPruner{}
	s := NewScheduler(testConfig(""), nil, nil, pruner, nil)

	s.pruneSessions()
	assert.Equal(t, 1, pruner.calls)
	assert.Equal(t, time.Hour, pruner.maxIdle)
}
