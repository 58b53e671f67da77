package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/nidhinbose89/workoutplanner/internal/models"
)

type ExerciseUpdateInput struct {
	Name     *string
	Activity *string
}

func (in ExerciseUpdateInput) Empty() bool {
	return in.Name == nil && in.Activity == nil
}

type ExerciseRepository struct {
	db DBTX
}

func NewExerciseRepository(db DBTX) *ExerciseRepository {
	return &ExerciseRepository{db: db}
}

func (r *ExerciseRepository) Create(ctx context.Context, exercise *models.Exercise) error {
	query := `
		INSERT INTO exercises (name, activity)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, exercise.Name, exercise.Activity).
		Scan(&exercise.ID, &exercise.CreatedAt, &exercise.UpdatedAt)
}

func (r *ExerciseRepository) GetByID(ctx context.Context, id int64) (*models.Exercise, error) {
	query := `
		SELECT id, name, activity, created_at, updated_at
		FROM exercises
		WHERE id = $1
	`
	var exercise models.Exercise
	err := r.db.QueryRow(ctx, query, id).
		Scan(&exercise.ID, &exercise.Name, &exercise.Activity, &exercise.CreatedAt, &exercise.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &exercise, nil
}

func (r *ExerciseRepository) List(ctx context.Context) ([]models.Exercise, error) {
	query := `
		SELECT id, name, activity, created_at, updated_at
		FROM exercises
		ORDER BY id ASC
	`
	return r.queryExercises(ctx, query)
}

// ListByDayID returns the exercises associated with a day through the
// day_exercises join table.
func (r *ExerciseRepository) ListByDayID(ctx context.Context, dayID int64) ([]models.Exercise, error) {
	query := `
		SELECT e.id, e.name, e.activity, e.created_at, e.updated_at
		FROM exercises e
		JOIN day_exercises de ON de.exercise_id = e.id
		WHERE de.day_id = $1
		ORDER BY e.id ASC
	`
	return r.queryExercises(ctx, query, dayID)
}

func (r *ExerciseRepository) queryExercises(ctx context.Context, query string, args ...any) ([]models.Exercise, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exercises := make([]models.Exercise, 0)
	for rows.Next() {
		var exercise models.Exercise
		if err := rows.Scan(
			&exercise.ID,
			&exercise.Name,
			&exercise.Activity,
			&exercise.CreatedAt,
			&exercise.UpdatedAt,
		); err != nil {
			return nil, err
		}
		exercises = append(exercises, exercise)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return exercises, nil
}

func (r *ExerciseRepository) Update(ctx context.Context, id int64, input ExerciseUpdateInput) (*models.Exercise, error) {
	setParts := []string{"updated_at = NOW()"}
	args := []any{id}

	if input.Name != nil {
		args = append(args, *input.Name)
		setParts = append(setParts, fmt.Sprintf("name = $%d", len(args)))
	}
	if input.Activity != nil {
		args = append(args, *input.Activity)
		setParts = append(setParts, fmt.Sprintf("activity = $%d", len(args)))
	}

	query := fmt.Sprintf(`
		UPDATE exercises
		SET %s
		WHERE id = $1
		RETURNING id, name, activity, created_at, updated_at
	`, strings.Join(setParts, ", "))

	var exercise models.Exercise
	err := r.db.QueryRow(ctx, query, args...).
		Scan(&exercise.ID, &exercise.Name, &exercise.Activity, &exercise.CreatedAt, &exercise.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &exercise, nil
}

func (r *ExerciseRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM exercises WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
