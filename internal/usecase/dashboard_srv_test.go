package usecase

import (
	"context"
	"testing"
	"time"

	"rising-bms/internal/data/entity"
	"rising-bms/pkg/cache"
	"rising-bms/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newDashboardService(f *fakeRepos, store *cache.Cache) DashboardService {
	return NewDashboardService(f.repo, store, testConfig(), zap.NewNop())
}

func seedContactRequest(f *fakeRepos, priority entity.RequestPriority, status entity.RequestStatus, createdAt time.Time) *entity.ContactRequest {
	cr := &entity.ContactRequest{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		},
		RequestNumber: utils.GenerateRequestNumber(),
		Name:          "Erika Mustermann",
		Email:         "erika@example.de",
		Subject:       "Beratungstermin",
		Message:       "Ich habe Interesse an einer Beratung.",
		Priority:      priority,
		Status:        status,
	}
	f.contactRequest.requests[cr.ID] = cr
	return cr
}

func TestDashboardService_Overview_CachesResult(t *testing.T) {
	f := newFakeRepos()
	seedCustomer(f, "Erika Mustermann", "erika@example.de")
	store := cache.New(time.Minute, time.Minute)
	defer store.Stop()
	svc := newDashboardService(f, store)

	first, err := svc.Overview(context.Background(), "de")
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Customers.Total)
	require.Len(t, first.RecentCustomers, 1)
	assert.Equal(t, "Erika Mustermann", first.RecentCustomers[0].Name)

	// A customer added after the first load is not visible until the
	// cache expires or is invalidated.
	seedCustomer(f, "Max Mustermann", "max@example.de")

	second, err := svc.Overview(context.Background(), "de")
	require.NoError(t, err)
	assert.Equal(t, int64(1), second.Customers.Total)
	assert.Equal(t, first.GeneratedAt, second.GeneratedAt)
}

func TestDashboardService_Overview_PerLanguageCache(t *testing.T) {
	f := newFakeRepos()
	store := cache.New(time.Minute, time.Minute)
	defer store.Stop()
	svc := newDashboardService(f, store)

	_, err := svc.Overview(context.Background(), "de")
	require.NoError(t, err)
	_, err = svc.Overview(context.Background(), "en")
	require.NoError(t, err)

	assert.Equal(t, 2, store.Len())
}

func TestDashboardService_InvalidateCache(t *testing.T) {
	f := newFakeRepos()
	seedCustomer(f, "Erika Mustermann", "erika@example.de")
	store := cache.New(time.Minute, time.Minute)
	defer store.Stop()
	svc := newDashboardService(f, store)

	_, err := svc.Overview(context.Background(), "de")
	require.NoError(t, err)

	seedCustomer(f, "Max Mustermann", "max@example.de")
	svc.InvalidateCache()

	refreshed, err := svc.Overview(context.Background(), "de")
	require.NoError(t, err)
	assert.Equal(t, int64(2), refreshed.Customers.Total)
}

func TestDashboardService_Alerts(t *testing.T) {
	f := newFakeRepos()
	store := cache.New(time.Minute, time.Minute)
	defer store.Stop()
	svc := newDashboardService(f, store)

	// Urgent and unassigned -> critical
	seedContactRequest(f, entity.PriorityDringend, entity.RequestStatusNeu, time.Now())
	// Neu and older than 48h -> warning (also unassigned but normal priority)
	seedContactRequest(f, entity.PriorityNormal, entity.RequestStatusNeu, time.Now().Add(-72*time.Hour))

	resp, err := svc.Alerts(context.Background(), "de")
	require.NoError(t, err)

	var critical, warning int
	for _, alert := range resp.Alerts {
		switch alert.Severity {
		case "critical":
			assert.Equal(t, "urgent_request_unassigned", alert.Type)
			critical++
		case "warning":
			assert.Equal(t, "request_stale", alert.Type)
			warning++
		}
	}
	assert.Equal(t, 1, critical)
	// The urgent request is fresh; only the old one is stale
	assert.Equal(t, 1, warning)
}
