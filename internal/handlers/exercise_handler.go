package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/nidhinbose89/workoutplanner/internal/models"
	"github.com/nidhinbose89/workoutplanner/internal/repository"
)

type exerciseStore interface {
	List(ctx context.Context) ([]models.Exercise, error)
	GetByID(ctx context.Context, id int64) (*models.Exercise, error)
	Create(ctx context.Context, exercise *models.Exercise) error
	Update(ctx context.Context, id int64, input repository.ExerciseUpdateInput) (*models.Exercise, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type exerciseResponse struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Activity *string `json:"activity"`
}

func newExerciseResponse(exercise *models.Exercise) exerciseResponse {
	return exerciseResponse{
		ID:       exercise.ID,
		Name:     exercise.Name,
		Activity: exercise.Activity,
	}
}

func newExerciseResponses(exercises []models.Exercise) []exerciseResponse {
	responses := make([]exerciseResponse, 0, len(exercises))
	for i := range exercises {
		responses = append(responses, newExerciseResponse(&exercises[i]))
	}
	return responses
}

type ExerciseHandler struct {
	exerciseRepo exerciseStore
}

func NewExerciseHandler(exerciseRepo exerciseStore) *ExerciseHandler {
	return &ExerciseHandler{exerciseRepo: exerciseRepo}
}

func (h *ExerciseHandler) ListExercises(c *fiber.Ctx) error {
	exercises, err := h.exerciseRepo.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "Failed to fetch exercises."})
	}
	data := newExerciseResponses(exercises)
	return c.JSON(fiber.Map{"data": data, "count": len(data)})
}

func (h *ExerciseHandler) GetExercise(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"message": "Exercise not found."})
	}

	exercise, err := h.exerciseRepo.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).
				JSON(fiber.Map{"message": "Exercise not found."})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "Failed to fetch exercise."})
	}
	return c.JSON(newExerciseResponse(exercise))
}

type exerciseRequest struct {
	Name     string `json:"name"`
	Activity string `json:"activity"`
}

func (h *ExerciseHandler) CreateExercise(c *fiber.Ctx) error {
	var req exerciseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).
			JSON(fiber.Map{"message": "Provide data."})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.Status(fiber.StatusUnprocessableEntity).
			JSON(fiber.Map{"message": "Must provide name."})
	}

	exercise := &models.Exercise{Name: req.Name}
	if activity := strings.TrimSpace(req.Activity); activity != "" {
		exercise.Activity = &activity
	}
	if err := h.exerciseRepo.Create(c.Context(), exercise); err != nil {
		if isUniqueViolation(err) {
			return c.Status(fiber.StatusConflict).
				JSON(fiber.Map{"message": "Exercise name already exists."})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "Failed to create exercise."})
	}

	return c.JSON(fiber.Map{
		"message": "Exercise created successfully.",
		"id":      exercise.ID,
		"name":    exercise.Name,
	})
}

func (h *ExerciseHandler) UpdateExercise(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"message": "Exercise not found."})
	}

	var req exerciseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).
			JSON(fiber.Map{"message": "Provide data to update."})
	}

	var input repository.ExerciseUpdateInput
	if name := strings.TrimSpace(req.Name); name != "" {
		input.Name = &name
	}
	if activity := strings.TrimSpace(req.Activity); activity != "" {
		input.Activity = &activity
	}
	if input.Empty() {
		return c.Status(fiber.StatusUnprocessableEntity).
			JSON(fiber.Map{"message": "Provide data to update."})
	}

	exercise, err := h.exerciseRepo.Update(c.Context(), id, input)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).
				JSON(fiber.Map{"message": "Exercise not found."})
		}
		if isUniqueViolation(err) {
			return c.Status(fiber.StatusConflict).
				JSON(fiber.Map{"message": "Exercise name already exists."})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "Failed to update exercise."})
	}

	return c.JSON(fiber.Map{
		"message": "Exercise updated successfully.",
		"id":      exercise.ID,
	})
}

// Any authenticated caller may delete any exercise; exercises carry no
// ownership, unlike clients.
func (h *ExerciseHandler) DeleteExercise(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"message": "Exercise not found."})
	}

	deleted, err := h.exerciseRepo.Delete(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "Failed to delete exercise."})
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"message": "Exercise not found."})
	}

	return c.JSON(fiber.Map{
		"message":     "Exercise deleted successfully.",
		"exercise_id": id,
	})
}
