package batch_test

import (
	"context"
	"customer-registry/internal/batch"
	"customer-registry/internal/pkg/apperrors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPrimaryFlagRepairer struct {
	mock.Mock
}

func (m *MockPrimaryFlagRepairer) RepairPrimaryFlags(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPrimaryAddressAuditJob_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("repairs drifted rows", func(t *testing.T) {
		repo := new(MockPrimaryFlagRepairer)
		repo.On("RepairPrimaryFlags", ctx).Return(int64(3), nil).Once()

		job := batch.NewPrimaryAddressAuditJob(repo, newTestLogger())
		err := job.Run(ctx)

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("nothing to repair", func(t *testing.T) {
		repo := new(MockPrimaryFlagRepairer)
		repo.On("RepairPrimaryFlags", ctx).Return(int64(0), nil).Once()

		job := batch.NewPrimaryAddressAuditJob(repo, newTestLogger())

		assert.NoError(t, job.Run(ctx))
		repo.AssertExpectations(t)
	})

	t.Run("repository failure is returned", func(t *testing.T) {
		repo := new(MockPrimaryFlagRepairer)
		dbErr := fmt.Errorf("%w: connection refused", apperrors.ErrDatabase)
		repo.On("RepairPrimaryFlags", ctx).Return(int64(0), dbErr).Once()

		job := batch.NewPrimaryAddressAuditJob(repo, newTestLogger())
		err := job.Run(ctx)

		assert.ErrorIs(t, err, apperrors.ErrDatabase)
		repo.AssertExpectations(t)
	})
}

func TestNewPrimaryAddressAuditJobPanicsOnNilDeps(t *testing.T) {
	assert.Panics(t, func() { batch.NewPrimaryAddressAuditJob(nil, newTestLogger()) })
	assert.Panics(t, func() { batch.NewPrimaryAddressAuditJob(new(MockPrimaryFlagRepairer), nil) })
}

func TestSchedule(t *testing.T) {
	repo := new(MockPrimaryFlagRepairer)
	job := batch.NewPrimaryAddressAuditJob(repo, newTestLogger())

	t.Run("valid spec registers an entry", func(t *testing.T) {
		c := cron.New()
		id, err := batch.Schedule(c, "30 3 * * *", time.Minute, job, newTestLogger())

		require.NoError(t, err)
		entry := c.Entry(id)
		assert.True(t, entry.Valid())
	})

	t.Run("invalid spec is rejected", func(t *testing.T) {
		c := cron.New()
		_, err := batch.Schedule(c, "not a schedule", time.Minute, job, newTestLogger())

		assert.Error(t, err)
		assert.Empty(t, c.Entries())
	})

	t.Run("scheduled run invokes the repair", func(t *testing.T) {
		done := make(chan struct{})
		r := new(MockPrimaryFlagRepairer)
		r.On("RepairPrimaryFlags", mock.Anything).Return(int64(1), nil).Run(func(mock.Arguments) { close(done) }).Once()

		c := cron.New()
		id, err := batch.Schedule(c, "@every 1h", time.Minute, batch.NewPrimaryAddressAuditJob(r, newTestLogger()), newTestLogger())
		require.NoError(t, err)

		c.Entry(id).WrappedJob.Run()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("audit job was not invoked")
		}
		r.AssertExpectations(t)
	})
}
