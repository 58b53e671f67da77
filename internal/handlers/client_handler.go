package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/nidhinbose89/workoutplanner/internal/models"
	"github.com/nidhinbose89/workoutplanner/internal/repository"
	"github.com/nidhinbose89/workoutplanner/internal/services"
)

type clientStore interface {
	List(ctx context.Context) ([]models.Client, error)
	GetByID(ctx context.Context, id int64) (*models.Client, error)
	Create(ctx context.Context, client *models.Client) error
	Update(ctx context.Context, id int64, input repository.ClientUpdateInput) (*models.Client, error)
	DeleteOwned(ctx context.Context, id, ownerID int64) (bool, error)
}

type clientResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Age       int    `json:"age"`
	Weight    int    `json:"weight"`
	Height    int    `json:"height"`
	OwnerID   int64  `json:"owner_id"`
	PlanID    *int64 `json:"plan_id"`
}

func newClientResponse(client *models.Client) clientResponse {
	return clientResponse{
		ID:        client.ID,
		Email:     client.Email,
		FirstName: client.FirstName,
		LastName:  client.LastName,
		Age:       client.Age,
		Weight:    client.Weight,
		Height:    client.Height,
		OwnerID:   client.OwnerID,
		PlanID:    client.PlanID,
	}
}

type ClientHandler struct {
	clientRepo clientStore
	notifier   services.Notifier
}

func NewClientHandler(clientRepo clientStore, notifier services.Notifier) *ClientHandler {
	return &ClientHandler{clientRepo: clientRepo, notifier: notifier}
}

func (h *ClientHandler) ListClients(c *fiber.Ctx) error {
	clients, err := h.clientRepo.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "Failed to fetch clients."})
	}

	data := make([]clientResponse, 0, len(clients))
	for i := range clients {
		data = append(data, newClientResponse(&clients[i]))
	}
	return c.JSON(fiber.Map{"data": data, "count": len(data)})
}

func (h *ClientHandler) GetClient(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"message": "Client not found."})
	}

	client, err := h.clientRepo.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).
				JSON(fiber.Map{"message": "Client not found."})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "Failed to fetch client."})
	}
	return c.JSON(newClientResponse(client))
}

type createClientRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Age       int    `json:"age"`
	Weight    int    `json:"weight"`
	Height    int    `json:"height"`
	OwnerID   int64  `json:"owner_id"`
}

func (h *ClientHandler) CreateClient(c *fiber.Ctx) error {
	var req createClientRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).
			JSON(fiber.Map{"message": "Provide data."})
	}

	req.Email = strings.TrimSpace(req.Email)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	if req.Email == "" || req.FirstName == "" || req.LastName == "" {
		return c.Status(fiber.StatusUnprocessableEntity).
			JSON(fiber.Map{"message": "Must provide email, first name and last name."})
	}

	ownerID := req.OwnerID
	if ownerID == 0 {
		sessionOwner, err := sessionUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).
				JSON(fiber.Map{"message": "Please login to continue"})
		}
		ownerID = sessionOwner
	}

	client := &models.Client{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Age:       req.Age,
		Weight:    req.Weight,
		Height:    req.Height,
		OwnerID:   ownerID,
	}
	if err := h.clientRepo.Create(c.Context(), client); err != nil {
		if isUniqueViolation(err) {
			return c.Status(fiber.StatusConflict).
				JSON(fiber.Map{"message": "Email already exists."})
		}
		if isForeignKeyViolation(err) {
			return c.Status(fiber.StatusConflict).
				JSON(fiber.Map{"message": "Referenced owner does not exist."})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "Failed to create client."})
	}

	return c.JSON(fiber.Map{
		"message":    "Client created successfully.",
		"id":         client.ID,
		"email":      client.Email,
		"first_name": client.FirstName,
		"last_name":  client.LastName,
		"age":        client.Age,
		"weight":     client.Weight,
		"height":     client.Height,
		"owner_id":   client.OwnerID,
	})
}

type updateClientRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Age       int    `json:"age"`
	Weight    int    `json:"weight"`
	Height    int    `json:"height"`
	PlanID    int64  `json:"plan_id"`
}

// toInput keeps the original partial-update contract: only fields that
// arrive non-empty are overwritten.
func (req updateClientRequest) toInput() repository.ClientUpdateInput {
	var input repository.ClientUpdateInput
	if email := strings.TrimSpace(req.Email); email != "" {
		input.Email = &email
	}
	if firstName := strings.TrimSpace(req.FirstName); firstName != "" {
		input.FirstName = &firstName
	}
	if lastName := strings.TrimSpace(req.LastName); lastName != "" {
		input.LastName = &lastName
	}
	if req.Age != 0 {
		input.Age = &req.Age
	}
	if req.Weight != 0 {
		input.Weight = &req.Weight
	}
	if req.Height != 0 {
		input.Height = &req.Height
	}
	if req.PlanID != 0 {
		input.PlanID = &req.PlanID
	}
	return input
}

func (h *ClientHandler) UpdateClient(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"message": "Client not found."})
	}

	var req updateClientRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).
			JSON(fiber.Map{"message": "Provide data to update."})
	}
	input := req.toInput()
	if input.Empty() {
		return c.Status(fiber.StatusUnprocessableEntity).
			JSON(fiber.Map{"message": "Provide data to update."})
	}

	client, err := h.clientRepo.Update(c.Context(), id, input)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).
				JSON(fiber.Map{"message": "Client not found."})
		}
		if isUniqueViolation(err) {
			return c.Status(fiber.StatusConflict).
				JSON(fiber.Map{"message": "Email already exists."})
		}
		if isForeignKeyViolation(err) {
			return c.Status(fiber.StatusConflict).
				JSON(fiber.Map{"message": "Referenced plan does not exist."})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "Failed to update client."})
	}

	if input.PlanID != nil {
		h.notifier.Notify(c.Context(), services.EventPlanAssigned, []int64{client.ID})
	}

	return c.JSON(fiber.Map{
		"message": "Client updated successfully.",
		"id":      client.ID,
	})
}

func (h *ClientHandler) DeleteClient(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"message": "Client not found."})
	}

	ownerID, err := sessionUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "Please login to continue"})
	}

	// A non-owner gets the same 404 as a missing row, so the endpoint
	// does not reveal which ids exist.
	deleted, err := h.clientRepo.DeleteOwned(c.Context(), id, ownerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "Failed to delete client."})
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"message": "Client not found."})
	}

	return c.JSON(fiber.Map{
		"message":   "Client deleted successfully.",
		"client_id": id,
	})
}
