package scheduler

import (
	"testing"

	"rising-bms/internal/data/entity"
	"rising-bms/internal/data/repository"
	"rising-bms/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestScheduler() *Scheduler {
	return New(repository.NewRepository(nil, zap.NewNop()), nil, zap.NewNop())
}

func newTask(expr string) *entity.ScheduledTask {
	return &entity.ScheduledTask{
		Base:     entity.Base{ID: utils.GenerateUUID()},
		Name:     "Nightly sync",
		CronExpr: expr,
		IsActive: true,
	}
}

func TestScheduler_ScheduleTask(t *testing.T) {
	s := newTestScheduler()
	task := newTask("0 3 * * *")

	require.NoError(t, s.ScheduleTask(task))
	assert.Len(t, s.cron.Entries(), 1)

	// Rescheduling the same task replaces its entry instead of stacking
	task.CronExpr = "0 4 * * *"
	require.NoError(t, s.ScheduleTask(task))
	assert.Len(t, s.cron.Entries(), 1)
}

func TestScheduler_ScheduleTask_InvalidExpr(t *testing.T) {
	s := newTestScheduler()

	err := s.ScheduleTask(newTask("not a cron"))
	require.Error(t, err)
	assert.Empty(t, s.cron.Entries())
}

func TestScheduler_UnscheduleTask(t *testing.T) {
	s := newTestScheduler()
	task := newTask("0 3 * * *")

	require.NoError(t, s.ScheduleTask(task))
	require.Len(t, s.cron.Entries(), 1)

	s.UnscheduleTask(task.ID)
	assert.Empty(t, s.cron.Entries())

	// Unknown IDs are ignored
	s.UnscheduleTask(utils.GenerateUUID())
	assert.Empty(t, s.cron.Entries())
}
