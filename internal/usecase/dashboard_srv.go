package usecase

import (
	"context"
	"fmt"
	"time"

	"rising-bms/internal/data/entity"
	"rising-bms/internal/data/repository"
	"rising-bms/internal/dto/response"
	"rising-bms/pkg/cache"
	"rising-bms/pkg/metrics"
	"rising-bms/pkg/utils"

	"go.uber.org/zap"
)

type DashboardService interface {
	Overview(ctx context.Context, lang string) (*response.DashboardOverviewResponse, error)
	Alerts(ctx context.Context, lang string) (*response.DashboardAlertsResponse, error)
	// InvalidateCache drops the cached dashboard payloads, e.g. after
	// bulk imports.
	InvalidateCache()
}

type dashboardService struct {
	repo   *repository.Repository
	store  *cache.Cache
	config *utils.Config
	log    *zap.Logger
}

func NewDashboardService(repo *repository.Repository, store *cache.Cache, config *utils.Config, log *zap.Logger) DashboardService {
	return &dashboardService{
		repo:   repo,
		store:  store,
		config: config,
		log:    log,
	}
}

const (
	overviewCacheKey = "dashboard:overview:"
	alertsCacheKey   = "dashboard:alerts:"
)

func (s *dashboardService) Overview(ctx context.Context, lang string) (*response.DashboardOverviewResponse, error) {
	key := overviewCacheKey + lang
	if cached, ok := s.store.Get(key); ok {
		metrics.ObserveCacheLookup(true)
		return cached.(*response.DashboardOverviewResponse), nil
	}
	metrics.ObserveCacheLookup(false)

	customerStats, err := s.repo.Customer.Stats(ctx)
	if err != nil {
		s.log.Error("Failed to load customer stats", zap.Error(err))
		return nil, fmt.Errorf("failed to load dashboard")
	}

	requestStats, err := s.repo.ContactRequest.Stats(ctx)
	if err != nil {
		s.log.Error("Failed to load request stats", zap.Error(err))
		return nil, fmt.Errorf("failed to load dashboard")
	}

	appointmentStats, err := s.repo.Appointment.Stats(ctx)
	if err != nil {
		s.log.Error("Failed to load appointment stats", zap.Error(err))
		return nil, fmt.Errorf("failed to load dashboard")
	}

	recentRequests, err := s.repo.ContactRequest.FindAll(ctx, repository.RequestFilter{}, 5, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard")
	}

	recentCustomers, err := s.repo.Customer.FindAll(ctx, repository.CustomerFilter{}, 5, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard")
	}

	todays, err := s.repo.Appointment.FindToday(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard")
	}

	upcoming, err := s.repo.Appointment.FindUpcoming(ctx, 7, 10)
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard")
	}

	overview := &response.DashboardOverviewResponse{
		Customers: response.CustomerStatsResponse{
			Total:        customerStats.Total,
			Aktiv:        customerStats.Aktiv,
			Inaktiv:      customerStats.Inaktiv,
			Interessent:  customerStats.Interessent,
			NewThisMonth: customerStats.NewThisMonth,
		},
		Requests: response.RequestStatsResponse{
			Total:              requestStats.Total,
			Neu:                requestStats.Neu,
			InBearbeitung:      requestStats.InBearbeitung,
			CompletedThisMonth: requestStats.CompletedThisMonth,
			CompletionRate:     requestStats.CompletionRate(),
		},
		Appointments: response.AppointmentStatsResponse{
			Total:              appointmentStats.Total,
			Today:              appointmentStats.Today,
			Upcoming7Days:      appointmentStats.Upcoming7Days,
			CompletedThisMonth: appointmentStats.CompletedThisMonth,
			Cancelled:          appointmentStats.Cancelled,
		},
		RecentRequests:       response.ContactRequestsToResponse(recentRequests, lang),
		RecentCustomers:      response.CustomersToResponse(recentCustomers, lang),
		TodaysAppointments:   response.AppointmentsToResponse(todays, lang),
		UpcomingAppointments: response.AppointmentsToResponse(upcoming, lang),
		GeneratedAt:          time.Now(),
	}

	s.store.Set(key, overview)
	return overview, nil
}

func (s *dashboardService) Alerts(ctx context.Context, lang string) (*response.DashboardAlertsResponse, error) {
	key := alertsCacheKey + lang
	if cached, ok := s.store.Get(key); ok {
		metrics.ObserveCacheLookup(true)
		return cached.(*response.DashboardAlertsResponse), nil
	}
	metrics.ObserveCacheLookup(false)

	alerts := []response.DashboardAlert{}

	// Urgent requests nobody has picked up yet
	urgent := entity.PriorityDringend
	urgentRequests, err := s.repo.ContactRequest.FindAll(ctx,
		repository.RequestFilter{Priority: &urgent, Unassigned: true}, 20, 0)
	if err != nil {
		s.log.Error("Failed to load urgent requests", zap.Error(err))
		return nil, fmt.Errorf("failed to load alerts")
	}
	for _, cr := range urgentRequests {
		if cr.Status == entity.RequestStatusAbgeschlossen || cr.Status == entity.RequestStatusStorniert {
			continue
		}
		id := cr.ID.String()
		alerts = append(alerts, response.DashboardAlert{
			Severity:    "critical",
			Type:        "urgent_request_unassigned",
			Message:     fmt.Sprintf("Dringende Anfrage %s ist nicht zugewiesen: %s", cr.RequestNumber, cr.Subject),
			ReferenceID: &id,
		})
	}

	// Stale requests that have been open too long
	neu := entity.RequestStatusNeu
	staleCutoff := time.Now().Add(-48 * time.Hour)
	newRequests, err := s.repo.ContactRequest.FindAll(ctx,
		repository.RequestFilter{Status: &neu}, 50, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load alerts")
	}
	for _, cr := range newRequests {
		if cr.CreatedAt.After(staleCutoff) {
			continue
		}
		id := cr.ID.String()
		alerts = append(alerts, response.DashboardAlert{
			Severity:    "warning",
			Type:        "request_stale",
			Message:     fmt.Sprintf("Anfrage %s ist seit über 48 Stunden unbearbeitet", cr.RequestNumber),
			ReferenceID: &id,
		})
	}

	// Today's schedule, as a reminder
	todays, err := s.repo.Appointment.FindToday(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load alerts")
	}
	for _, appointment := range todays {
		if appointment.Status == entity.AppointmentStatusStorniert {
			continue
		}
		id := appointment.ID.String()
		alerts = append(alerts, response.DashboardAlert{
			Severity:    "info",
			Type:        "appointment_today",
			Message:     fmt.Sprintf("Heute %s: %s", appointment.ScheduledAt.Format("15:04"), appointment.Title),
			ReferenceID: &id,
		})
	}

	result := &response.DashboardAlertsResponse{
		Alerts:      alerts,
		GeneratedAt: time.Now(),
	}

	s.store.Set(key, result)
	return result, nil
}

func (s *dashboardService) InvalidateCache() {
	s.store.Flush()
	s.log.Info("Dashboard cache invalidated")
}
