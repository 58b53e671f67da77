package repository

import (
	"context"

	"github.com/nidhinbose89/workoutplanner/internal/models"
)

type DayRepository struct {
	db DBTX
}

func NewDayRepository(db DBTX) *DayRepository {
	return &DayRepository{db: db}
}

func (r *DayRepository) Create(ctx context.Context, day *models.Day) error {
	query := `
		INSERT INTO days (name)
		VALUES ($1)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, day.Name).
		Scan(&day.ID, &day.CreatedAt, &day.UpdatedAt)
}

func (r *DayRepository) GetByID(ctx context.Context, id int64) (*models.Day, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM days
		WHERE id = $1
	`
	var day models.Day
	err := r.db.QueryRow(ctx, query, id).
		Scan(&day.ID, &day.Name, &day.CreatedAt, &day.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &day, nil
}

func (r *DayRepository) List(ctx context.Context) ([]models.Day, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM days
		ORDER BY id ASC
	`
	return r.queryDays(ctx, query)
}

// ListByPlanID returns the days associated with a plan through the
// plan_days join table.
func (r *DayRepository) ListByPlanID(ctx context.Context, planID int64) ([]models.Day, error) {
	query := `
		SELECT d.id, d.name, d.created_at, d.updated_at
		FROM days d
		JOIN plan_days pd ON pd.day_id = d.id
		WHERE pd.plan_id = $1
		ORDER BY d.id ASC
	`
	return r.queryDays(ctx, query, planID)
}

func (r *DayRepository) queryDays(ctx context.Context, query string, args ...any) ([]models.Day, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	days := make([]models.Day, 0)
	for rows.Next() {
		var day models.Day
		if err := rows.Scan(&day.ID, &day.Name, &day.CreatedAt, &day.UpdatedAt); err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return days, nil
}

func (r *DayRepository) UpdateName(ctx context.Context, id int64, name string) (*models.Day, error) {
	query := `
		UPDATE days
		SET name = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, created_at, updated_at
	`
	var day models.Day
	err := r.db.QueryRow(ctx, query, id, name).
		Scan(&day.ID, &day.Name, &day.CreatedAt, &day.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &day, nil
}

// Touch bumps updated_at without changing any field, for updates that
// only replace the exercise set.
func (r *DayRepository) Touch(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `UPDATE days SET updated_at = NOW() WHERE id = $1`, id)
	return err
}

// AddExercises associates the subset of ids that exist in the exercises
// table; unknown ids drop out in the SELECT.
func (r *DayRepository) AddExercises(ctx context.Context, dayID int64, exerciseIDs []int64) error {
	if len(exerciseIDs) == 0 {
		return nil
	}
	query := `
		INSERT INTO day_exercises (day_id, exercise_id)
		SELECT $1, id FROM exercises WHERE id = ANY($2)
		ON CONFLICT DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, dayID, exerciseIDs)
	return err
}

// ReplaceExercises swaps the day's exercise set for the resolvable subset
// of the given ids.
func (r *DayRepository) ReplaceExercises(ctx context.Context, dayID int64, exerciseIDs []int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM day_exercises WHERE day_id = $1`, dayID); err != nil {
		return err
	}
	return r.AddExercises(ctx, dayID, exerciseIDs)
}

func (r *DayRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM days WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
