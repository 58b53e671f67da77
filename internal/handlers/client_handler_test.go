package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/nidhinbose89/workoutplanner/internal/models"
	"github.com/nidhinbose89/workoutplanner/internal/repository"
	"github.com/nidhinbose89/workoutplanner/internal/services"
)

type stubClientRepo struct {
	listResult  []models.Client
	getResult   *models.Client
	getErr      error
	createErr   error
	updateRes   *models.Client
	updateErr   error
	deleteOK    bool
	deleteErr   error
	lastCreated *models.Client
	lastUpdate  repository.ClientUpdateInput
	lastOwnerID int64
}

func (s *stubClientRepo) List(_ context.Context) ([]models.Client, error) {
	return s.listResult, nil
}

func (s *stubClientRepo) GetByID(_ context.Context, _ int64) (*models.Client, error) {
	return s.getResult, s.getErr
}

func (s *stubClientRepo) Create(_ context.Context, client *models.Client) error {
	s.lastCreated = client
	if s.createErr != nil {
		return s.createErr
	}
	client.ID = 11
	return nil
}

func (s *stubClientRepo) Update(_ context.Context, _ int64, input repository.ClientUpdateInput) (*models.Client, error) {
	s.lastUpdate = input
	return s.updateRes, s.updateErr
}

func (s *stubClientRepo) DeleteOwned(_ context.Context, _, ownerID int64) (bool, error) {
	s.lastOwnerID = ownerID
	return s.deleteOK, s.deleteErr
}

type stubNotifier struct {
	events    []services.NotificationEvent
	clientIDs [][]int64
}

func (s *stubNotifier) Notify(_ context.Context, event services.NotificationEvent, clientIDs []int64) {
	s.events = append(s.events, event)
	s.clientIDs = append(s.clientIDs, clientIDs)
}

func newClientApp(repo *stubClientRepo, notifier *stubNotifier) *fiber.App {
	handler := NewClientHandler(repo, notifier)
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", "7")
		return c.Next()
	})
	app.Get("/clients", handler.ListClients)
	app.Post("/clients", handler.CreateClient)
	app.Get("/clients/:id", handler.GetClient)
	app.Put("/clients/:id", handler.UpdateClient)
	app.Delete("/clients/:id", handler.DeleteClient)
	return app
}

func TestListClientsReturnsDataAndCount(t *testing.T) {
	planID := int64(3)
	repo := &stubClientRepo{listResult: []models.Client{
		{ID: 1, Email: "a@b.c", FirstName: "Ann", LastName: "Lee", OwnerID: 7},
		{ID: 2, Email: "d@e.f", FirstName: "Bob", LastName: "Ray", OwnerID: 7, PlanID: &planID},
	}}
	app := newClientApp(repo, &stubNotifier{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/clients", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var payload struct {
		Data  []map[string]any `json:"data"`
		Count int              `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if payload.Count != 2 || len(payload.Data) != 2 {
		t.Fatalf("expected 2 clients, got count=%d len=%d", payload.Count, len(payload.Data))
	}
	if _, ok := payload.Data[0]["owner_id"]; !ok {
		t.Fatalf("expected owner_id in client projection")
	}
	if payload.Data[0]["plan_id"] != nil {
		t.Fatalf("expected null plan_id for unassigned client")
	}
}

func TestGetClientNotFound(t *testing.T) {
	repo := &stubClientRepo{getErr: pgx.ErrNoRows}
	app := newClientApp(repo, &stubNotifier{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/clients/99", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestCreateClientRequiresMandatoryFields(t *testing.T) {
	app := newClientApp(&stubClientRepo{}, &stubNotifier{})

	resp := postJSON(t, app, "/clients", map[string]any{"email": "a@b.c"})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
}

func TestCreateClientDefaultsOwnerToSessionUser(t *testing.T) {
	repo := &stubClientRepo{}
	app := newClientApp(repo, &stubNotifier{})

	resp := postJSON(t, app, "/clients", map[string]any{
		"email":      "a@b.c",
		"first_name": "Ann",
		"last_name":  "Lee",
		"age":        30,
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if repo.lastCreated == nil || repo.lastCreated.OwnerID != 7 {
		t.Fatalf("expected owner to default to session user 7, got %+v", repo.lastCreated)
	}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if payload["message"] != "Client created successfully." {
		t.Fatalf("unexpected message: %v", payload["message"])
	}
	if payload["email"] != "a@b.c" {
		t.Fatalf("expected echoed email, got %v", payload["email"])
	}
}

func TestCreateClientDuplicateEmailConflicts(t *testing.T) {
	repo := &stubClientRepo{createErr: &pgconn.PgError{Code: "23505"}}
	app := newClientApp(repo, &stubNotifier{})

	resp := postJSON(t, app, "/clients", map[string]any{
		"email":      "a@b.c",
		"first_name": "Ann",
		"last_name":  "Lee",
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestUpdateClientEmptyBodyRejected(t *testing.T) {
	app := newClientApp(&stubClientRepo{}, &stubNotifier{})

	resp := postJSONMethod(t, app, http.MethodPut, "/clients/1", map[string]any{})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
}

func TestUpdateClientSkipsZeroFields(t *testing.T) {
	repo := &stubClientRepo{updateRes: &models.Client{ID: 1}}
	app := newClientApp(repo, &stubNotifier{})

	resp := postJSONMethod(t, app, http.MethodPut, "/clients/1", map[string]any{
		"email": "new@b.c",
		"age":   0,
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if repo.lastUpdate.Email == nil || *repo.lastUpdate.Email != "new@b.c" {
		t.Fatalf("expected email update, got %+v", repo.lastUpdate)
	}
	if repo.lastUpdate.Age != nil {
		t.Fatalf("expected zero age to be skipped")
	}
}

func TestUpdateClientPlanAssignmentNotifies(t *testing.T) {
	repo := &stubClientRepo{updateRes: &models.Client{ID: 5}}
	notifier := &stubNotifier{}
	app := newClientApp(repo, notifier)

	resp := postJSONMethod(t, app, http.MethodPut, "/clients/5", map[string]any{
		"plan_id": 3,
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if len(notifier.events) != 1 || notifier.events[0] != services.EventPlanAssigned {
		t.Fatalf("expected one plan.assigned event, got %v", notifier.events)
	}
	if len(notifier.clientIDs[0]) != 1 || notifier.clientIDs[0][0] != 5 {
		t.Fatalf("expected client 5 in event, got %v", notifier.clientIDs[0])
	}
}

func TestUpdateClientUnknownPlanConflicts(t *testing.T) {
	repo := &stubClientRepo{updateErr: &pgconn.PgError{Code: "23503"}}
	app := newClientApp(repo, &stubNotifier{})

	resp := postJSONMethod(t, app, http.MethodPut, "/clients/5", map[string]any{
		"plan_id": 9999,
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestDeleteClientByNonOwnerHidesRow(t *testing.T) {
	repo := &stubClientRepo{deleteOK: false}
	app := newClientApp(repo, &stubNotifier{})

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/clients/5", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if repo.lastOwnerID != 7 {
		t.Fatalf("expected delete scoped to session user 7, got %d", repo.lastOwnerID)
	}
}

func TestDeleteClientByOwner(t *testing.T) {
	repo := &stubClientRepo{deleteOK: true}
	app := newClientApp(repo, &stubNotifier{})

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/clients/5", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if payload["client_id"] != float64(5) {
		t.Fatalf("expected client_id 5, got %v", payload["client_id"])
	}
}
