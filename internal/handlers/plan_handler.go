package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/nidhinbose89/workoutplanner/internal/models"
	"github.com/nidhinbose89/workoutplanner/internal/services"
)

type planApplicationService interface {
	CreatePlan(ctx context.Context, name string, clientIDs, dayIDs []int64) (*models.Plan, error)
	UpdatePlan(ctx context.Context, id int64, input services.UpdatePlanInput) (*models.Plan, error)
	ListPlans(ctx context.Context) ([]models.PlanDetail, error)
	GetPlan(ctx context.Context, id int64) (*models.PlanDetail, error)
	DeletePlan(ctx context.Context, id int64) (bool, error)
}

// planClientResponse projects a client without owner and plan ids, which
// are implicit in the enclosing plan.
type planClientResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Age       int    `json:"age"`
	Weight    int    `json:"weight"`
	Height    int    `json:"height"`
}

type planResponse struct {
	ID      int64                `json:"id"`
	Name    string               `json:"name"`
	Days    []dayResponse        `json:"days"`
	Clients []planClientResponse `json:"clients"`
}

func newPlanResponse(detail *models.PlanDetail) planResponse {
	days := make([]dayResponse, 0, len(detail.Days))
	for i := range detail.Days {
		days = append(days, newDayResponse(&detail.Days[i]))
	}
	clients := make([]planClientResponse, 0, len(detail.Clients))
	for _, client := range detail.Clients {
		clients = append(clients, planClientResponse{
			ID:        client.ID,
			Email:     client.Email,
			FirstName: client.FirstName,
			LastName:  client.LastName,
			Age:       client.Age,
			Weight:    client.Weight,
			Height:    client.Height,
		})
	}
	return planResponse{
		ID:      detail.ID,
		Name:    detail.Name,
		Days:    days,
		Clients: clients,
	}
}

type PlanHandler struct {
	service planApplicationService
}

func NewPlanHandler(service planApplicationService) *PlanHandler {
	return &PlanHandler{service: service}
}

func (h *PlanHandler) ListPlans(c *fiber.Ctx) error {
	plans, err := h.service.ListPlans(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "Failed to fetch plans."})
	}

	data := make([]planResponse, 0, len(plans))
	for i := range plans {
		data = append(data, newPlanResponse(&plans[i]))
	}
	return c.JSON(fiber.Map{"data": data, "count": len(data)})
}

func (h *PlanHandler) GetPlan(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"message": "Plan not found."})
	}

	plan, err := h.service.GetPlan(c.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).
				JSON(fiber.Map{"message": "Plan not found."})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "Failed to fetch plan."})
	}
	return c.JSON(newPlanResponse(plan))
}

type planRequest struct {
	Name    string  `json:"name"`
	Clients []int64 `json:"clients"`
	Days    []int64 `json:"days"`
}

func (h *PlanHandler) CreatePlan(c *fiber.Ctx) error {
	var req planRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).
			JSON(fiber.Map{"message": "Provide data."})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.Status(fiber.StatusUnprocessableEntity).
			JSON(fiber.Map{"message": "Must provide name."})
	}

	plan, err := h.service.CreatePlan(c.Context(), req.Name, req.Clients, req.Days)
	if err != nil {
		if isUniqueViolation(err) {
			return c.Status(fiber.StatusConflict).
				JSON(fiber.Map{"message": "Plan name already exists."})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "Failed to create plan."})
	}

	return c.JSON(fiber.Map{
		"id":      plan.ID,
		"message": "Plan created successfully.",
		"name":    plan.Name,
	})
}

func (h *PlanHandler) UpdatePlan(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"message": "Plan not found."})
	}

	var req planRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).
			JSON(fiber.Map{"message": "Provide data to update."})
	}

	var input services.UpdatePlanInput
	if name := strings.TrimSpace(req.Name); name != "" {
		input.Name = &name
	}
	input.ClientIDs = req.Clients
	input.DayIDs = req.Days
	if input.Name == nil && len(input.ClientIDs) == 0 && len(input.DayIDs) == 0 {
		return c.Status(fiber.StatusUnprocessableEntity).
			JSON(fiber.Map{"message": "Provide data to update."})
	}

	plan, err := h.service.UpdatePlan(c.Context(), id, input)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).
				JSON(fiber.Map{"message": "Plan not found."})
		}
		if isUniqueViolation(err) {
			return c.Status(fiber.StatusConflict).
				JSON(fiber.Map{"message": "Plan name already exists."})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "Failed to update plan."})
	}

	return c.JSON(fiber.Map{
		"message": "Plan updated successfully.",
		"id":      plan.ID,
	})
}

func (h *PlanHandler) DeletePlan(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"message": "Plan not found."})
	}

	deleted, err := h.service.DeletePlan(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "Failed to delete plan."})
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"message": "Plan not found."})
	}

	return c.JSON(fiber.Map{
		"message": "Plan deleted successfully.",
		"plan_id": id,
	})
}
