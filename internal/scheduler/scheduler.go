package scheduler

import (
	"context"
	"sync"
	"time"

	"rising-bms/internal/data/entity"
	"rising-bms/internal/data/repository"
	"rising-bms/internal/usecase"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler runs the background jobs: auth cleanup and user-defined
// scheduled tasks loaded from the database. Tasks can be registered and
// removed while the cron loop is running.
type Scheduler struct {
	cron       *cron.Cron
	repo       *repository.Repository
	automation usecase.AutomationService
	log        *zap.Logger

	mu      sync.Mutex
	entries map[uuid.UUID]cron.EntryID
}

func New(repo *repository.Repository, automation usecase.AutomationService, log *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:       cron.New(),
		repo:       repo,
		automation: automation,
		log:        log.With(zap.String("component", "scheduler")),
		entries:    make(map[uuid.UUID]cron.EntryID),
	}
}

// Start registers the built-in jobs plus every active scheduled task
// and starts the cron loop.
func (s *Scheduler) Start(ctx context.Context) error {
	// Hourly auth cleanup
	if _, err := s.cron.AddFunc("@hourly", s.cleanupAuth); err != nil {
		return err
	}

	if err := s.loadTasks(ctx); err != nil {
		return err
	}

	s.cron.Start()
	s.log.Info("scheduler started", zap.Int("entries", len(s.cron.Entries())))
	return nil
}

// Stop stops the cron loop and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.log.Info("scheduler stopped")
}

// ScheduleTask registers a task with the cron loop, replacing any
// earlier entry for the same task.
func (s *Scheduler) ScheduleTask(task *entity.ScheduledTask) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entryID, ok := s.entries[task.ID]; ok {
		s.cron.Remove(entryID)
		delete(s.entries, task.ID)
	}

	taskID := task.ID
	entryID, err := s.cron.AddFunc(task.CronExpr, func() {
		s.runTask(taskID)
	})
	if err != nil {
		return err
	}
	s.entries[task.ID] = entryID

	s.log.Info("scheduled task registered",
		zap.String("task_id", task.ID.String()),
		zap.String("name", task.Name),
		zap.String("cron_expr", task.CronExpr))
	return nil
}

// UnscheduleTask removes a task from the cron loop. Unknown IDs are a
// no-op.
func (s *Scheduler) UnscheduleTask(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entryID, ok := s.entries[id]
	if !ok {
		return
	}
	s.cron.Remove(entryID)
	delete(s.entries, id)

	s.log.Info("scheduled task removed", zap.String("task_id", id.String()))
}

func (s *Scheduler) cleanupAuth() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.repo.Session.CleanExpiredSessions(ctx); err != nil {
		s.log.Error("session cleanup failed", zap.Error(err))
	}
	if err := s.repo.RefreshToken.CleanExpired(ctx); err != nil {
		s.log.Error("refresh token cleanup failed", zap.Error(err))
	}
}

// runTask reloads the task row before firing so payload and webhook
// edits made after registration are honored.
func (s *Scheduler) runTask(id uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	task, err := s.repo.ScheduledTask.FindByID(ctx, id)
	if err != nil {
		s.log.Error("failed to load scheduled task", zap.Error(err), zap.String("task_id", id.String()))
		return
	}
	if task == nil || !task.IsActive {
		return
	}

	s.automation.RunTask(ctx, task)
}

func (s *Scheduler) loadTasks(ctx context.Context) error {
	tasks, err := s.repo.ScheduledTask.FindActive(ctx)
	if err != nil {
		return err
	}

	for _, task := range tasks {
		if err := s.ScheduleTask(task); err != nil {
			// Invalid expressions are rejected on create; a bad row
			// should not keep the service from starting.
			s.log.Error("skipping scheduled task",
				zap.String("task_id", task.ID.String()),
				zap.String("cron_expr", task.CronExpr),
				zap.Error(err))
		}
	}

	return nil
}
