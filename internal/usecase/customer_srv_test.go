package usecase

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"rising-bms/internal/data/entity"
	"rising-bms/internal/dto/request"
	"rising-bms/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCustomerService_Create(t *testing.T) {
	f := newFakeRepos()
	svc := NewCustomerService(f.repo, newAutomationService(f), zap.NewNop())

	resp, err := svc.Create(context.Background(), &request.CustomerRequest{
		Name:  "Erika Mustermann",
		Email: "erika@example.de",
	}, "de")
	require.NoError(t, err)
	assert.Equal(t, "interessent", resp.Status)
	assert.Equal(t, "Interessent", resp.StatusLabel)
}

func TestCustomerService_Create_DeliversWebhook(t *testing.T) {
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	f := newFakeRepos()
	automation := newAutomationService(f)
	_, err := automation.CreateWebhook(context.Background(), &request.WebhookRequest{
		Name:  "CRM Sync",
		URL:   server.URL,
		Event: "customer.created",
	})
	require.NoError(t, err)

	svc := NewCustomerService(f.repo, automation, zap.NewNop())
	_, err = svc.Create(context.Background(), &request.CustomerRequest{
		Name:  "Erika Mustermann",
		Email: "erika@example.de",
	}, "de")
	require.NoError(t, err)

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(gotBody, &envelope))
	assert.Equal(t, "customer.created", envelope["event"])
	data, ok := envelope["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Erika Mustermann", data["name"])
	assert.Equal(t, "interessent", data["status"])
}

func TestCustomerService_Create_DuplicateEmail(t *testing.T) {
	f := newFakeRepos()
	seedCustomer(f, "Erika Mustermann", "erika@example.de")
	svc := NewCustomerService(f.repo, newAutomationService(f), zap.NewNop())

	_, err := svc.Create(context.Background(), &request.CustomerRequest{
		Name:  "Erika Zwei",
		Email: "erika@example.de",
	}, "de")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestCustomerService_Create_InvalidEmail(t *testing.T) {
	f := newFakeRepos()
	svc := NewCustomerService(f.repo, newAutomationService(f), zap.NewNop())

	_, err := svc.Create(context.Background(), &request.CustomerRequest{
		Name:  "Erika Mustermann",
		Email: "keine-email",
	}, "de")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestCustomerService_Update_Status(t *testing.T) {
	f := newFakeRepos()
	customer := seedCustomer(f, "Erika Mustermann", "erika@example.de")
	svc := NewCustomerService(f.repo, newAutomationService(f), zap.NewNop())

	status := "inaktiv"
	resp, err := svc.Update(context.Background(), customer.ID.String(), &request.CustomerUpdateRequest{
		Status: &status,
	}, "en")
	require.NoError(t, err)
	assert.Equal(t, "inaktiv", resp.Status)
	assert.Equal(t, "Inactive", resp.StatusLabel)
}

func TestCustomerService_Delete_ThenNotFound(t *testing.T) {
	f := newFakeRepos()
	customer := seedCustomer(f, "Erika Mustermann", "erika@example.de")
	svc := NewCustomerService(f.repo, newAutomationService(f), zap.NewNop())

	require.NoError(t, svc.Delete(context.Background(), customer.ID.String()))

	_, err := svc.GetByID(context.Background(), customer.ID.String(), "de")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestCustomerService_GetByID_InvalidID(t *testing.T) {
	f := newFakeRepos()
	svc := NewCustomerService(f.repo, newAutomationService(f), zap.NewNop())

	_, err := svc.GetByID(context.Background(), "nicht-eine-uuid", "de")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid customer ID")
}

func TestCustomerService_AddAndListNotes(t *testing.T) {
	f := newFakeRepos()
	customer := seedCustomer(f, "Erika Mustermann", "erika@example.de")
	author := utils.GenerateUUID()
	svc := NewCustomerService(f.repo, newAutomationService(f), zap.NewNop())

	_, err := svc.AddNote(context.Background(), customer.ID.String(), author, &request.CustomerNoteRequest{
		Content: "Rückruf vereinbart.",
	})
	require.NoError(t, err)

	notes, err := svc.ListNotes(context.Background(), customer.ID.String())
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "Rückruf vereinbart.", notes[0].Content)
	assert.Equal(t, author.String(), notes[0].AuthorID)
}

func TestCustomerService_ExportCSV(t *testing.T) {
	f := newFakeRepos()
	customer := seedCustomer(f, "Erika Mustermann", "erika@example.de")
	customer.Status = entity.CustomerStatusAktiv
	svc := NewCustomerService(f.repo, newAutomationService(f), zap.NewNop())

	data, err := svc.ExportCSV(context.Background(), request.CustomerListRequest{}, "de")
	require.NoError(t, err)

	out := string(data)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Name;E-Mail;Telefon")
	assert.Contains(t, lines[1], "Erika Mustermann")
	assert.Contains(t, lines[1], "Aktiv")
}

func TestCustomerService_ExportCSV_English(t *testing.T) {
	f := newFakeRepos()
	seedCustomer(f, "Erika Mustermann", "erika@example.de")
	svc := NewCustomerService(f.repo, newAutomationService(f), zap.NewNop())

	data, err := svc.ExportCSV(context.Background(), request.CustomerListRequest{}, "en")
	require.NoError(t, err)
	assert.Contains(t, string(data), "Name;Email;Phone")
}
