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

type dayApplicationService interface {
	CreateDay(ctx context.Context, name string, exerciseIDs []int64) (*models.Day, error)
	UpdateDay(ctx context.Context, id int64, input services.UpdateDayInput) (*models.Day, error)
	ListDays(ctx context.Context) ([]models.DayDetail, error)
	GetDay(ctx context.Context, id int64) (*models.DayDetail, error)
	DeleteDay(ctx context.Context, id int64) (bool, error)
}

type dayResponse struct {
	ID        int64              `json:"id"`
	Name      string             `json:"name"`
	Exercises []exerciseResponse `json:"exercises"`
}

func newDayResponse(detail *models.DayDetail) dayResponse {
	return dayResponse{
		ID:        detail.ID,
		Name:      detail.Name,
		Exercises: newExerciseResponses(detail.Exercises),
	}
}

type DayHandler struct {
	service dayApplicationService
}

func NewDayHandler(service dayApplicationService) *DayHandler {
	return &DayHandler{service: service}
}

func (h *DayHandler) ListDays(c *fiber.Ctx) error {
	days, err := h.service.ListDays(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "Failed to fetch days."})
	}

	data := make([]dayResponse, 0, len(days))
	for i := range days {
		data = append(data, newDayResponse(&days[i]))
	}
	return c.JSON(fiber.Map{"data": data, "count": len(data)})
}

func (h *DayHandler) GetDay(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"message": "Day not found."})
	}

	day, err := h.service.GetDay(c.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).
				JSON(fiber.Map{"message": "Day not found."})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "Failed to fetch day."})
	}
	return c.JSON(newDayResponse(day))
}

type dayRequest struct {
	Name      string  `json:"name"`
	Exercises []int64 `json:"exercises"`
}

func (h *DayHandler) CreateDay(c *fiber.Ctx) error {
	var req dayRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).
			JSON(fiber.Map{"message": "Provide data."})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.Status(fiber.StatusUnprocessableEntity).
			JSON(fiber.Map{"message": "Must provide name."})
	}

	day, err := h.service.CreateDay(c.Context(), req.Name, req.Exercises)
	if err != nil {
		if isUniqueViolation(err) {
			return c.Status(fiber.StatusConflict).
				JSON(fiber.Map{"message": "Day name already exists."})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "Failed to create day."})
	}

	return c.JSON(fiber.Map{
		"message": "Day created successfully.",
		"id":      day.ID,
		"name":    day.Name,
	})
}

func (h *DayHandler) UpdateDay(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"message": "Day not found."})
	}

	var req dayRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).
			JSON(fiber.Map{"message": "Provide data to update."})
	}

	var input services.UpdateDayInput
	if name := strings.TrimSpace(req.Name); name != "" {
		input.Name = &name
	}
	input.ExerciseIDs = req.Exercises
	if input.Name == nil && len(input.ExerciseIDs) == 0 {
		return c.Status(fiber.StatusUnprocessableEntity).
			JSON(fiber.Map{"message": "Provide data to update."})
	}

	day, err := h.service.UpdateDay(c.Context(), id, input)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).
				JSON(fiber.Map{"message": "Day not found."})
		}
		if isUniqueViolation(err) {
			return c.Status(fiber.StatusConflict).
				JSON(fiber.Map{"message": "Day name already exists."})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "Failed to update day."})
	}

	return c.JSON(fiber.Map{
		"message": "Day updated successfully.",
		"id":      day.ID,
	})
}

func (h *DayHandler) DeleteDay(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"message": "Day not found."})
	}

	deleted, err := h.service.DeleteDay(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "Failed to delete day."})
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"message": "Day not found."})
	}

	return c.JSON(fiber.Map{
		"message": "Day deleted successfully.",
		"day_id":  id,
	})
}
