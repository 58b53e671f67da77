package repository

import (
	"context"

	"github.com/nidhinbose89/workoutplanner/internal/models"
)

type PlanRepository struct {
	db DBTX
}

func NewPlanRepository(db DBTX) *PlanRepository {
	return &PlanRepository{db: db}
}

func (r *PlanRepository) Create(ctx context.Context, plan *models.Plan) error {
	query := `
		INSERT INTO plans (name)
		VALUES ($1)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, plan.Name).
		Scan(&plan.ID, &plan.CreatedAt, &plan.UpdatedAt)
}

func (r *PlanRepository) GetByID(ctx context.Context, id int64) (*models.Plan, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM plans
		WHERE id = $1
	`
	var plan models.Plan
	err := r.db.QueryRow(ctx, query, id).
		Scan(&plan.ID, &plan.Name, &plan.CreatedAt, &plan.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *PlanRepository) List(ctx context.Context) ([]models.Plan, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM plans
		ORDER BY id ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := make([]models.Plan, 0)
	for rows.Next() {
		var plan models.Plan
		if err := rows.Scan(&plan.ID, &plan.Name, &plan.CreatedAt, &plan.UpdatedAt); err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *PlanRepository) UpdateName(ctx context.Context, id int64, name string) (*models.Plan, error) {
	query := `
		UPDATE plans
		SET name = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, created_at, updated_at
	`
	var plan models.Plan
	err := r.db.QueryRow(ctx, query, id, name).
		Scan(&plan.ID, &plan.Name, &plan.CreatedAt, &plan.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// Touch bumps updated_at for updates that only replace association sets.
func (r *PlanRepository) Touch(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `UPDATE plans SET updated_at = NOW() WHERE id = $1`, id)
	return err
}

// AddDays associates the subset of ids that exist in the days table;
// unknown ids drop out in the SELECT.
func (r *PlanRepository) AddDays(ctx context.Context, planID int64, dayIDs []int64) error {
	if len(dayIDs) == 0 {
		return nil
	}
	query := `
		INSERT INTO plan_days (plan_id, day_id)
		SELECT $1, id FROM days WHERE id = ANY($2)
		ON CONFLICT DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, planID, dayIDs)
	return err
}

// ReplaceDays swaps the plan's day set for the resolvable subset of the
// given ids.
func (r *PlanRepository) ReplaceDays(ctx context.Context, planID int64, dayIDs []int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM plan_days WHERE plan_id = $1`, planID); err != nil {
		return err
	}
	return r.AddDays(ctx, planID, dayIDs)
}

// AssignClients enrolls the resolvable subset of the given client ids
// into the plan and returns the ids actually assigned. A client already
// on another plan is silently moved.
func (r *PlanRepository) AssignClients(ctx context.Context, planID int64, clientIDs []int64) ([]int64, error) {
	if len(clientIDs) == 0 {
		return nil, nil
	}
	query := `
		UPDATE clients
		SET plan_id = $1, updated_at = NOW()
		WHERE id = ANY($2)
		RETURNING id
	`
	rows, err := r.db.Query(ctx, query, planID, clientIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assigned := make([]int64, 0, len(clientIDs))
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		assigned = append(assigned, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return assigned, nil
}

// ReplaceClients detaches every client currently on the plan and then
// assigns the resolvable subset of the given ids. Returns the ids
// actually assigned.
func (r *PlanRepository) ReplaceClients(ctx context.Context, planID int64, clientIDs []int64) ([]int64, error) {
	detach := `
		UPDATE clients
		SET plan_id = NULL, updated_at = NOW()
		WHERE plan_id = $1
	`
	if _, err := r.db.Exec(ctx, detach, planID); err != nil {
		return nil, err
	}
	return r.AssignClients(ctx, planID, clientIDs)
}

// AssignedClientIDs returns the ids of all clients currently on the plan,
// for notification fan-out.
func (r *PlanRepository) AssignedClientIDs(ctx context.Context, planID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM clients WHERE plan_id = $1 ORDER BY id ASC`, planID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *PlanRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM plans WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
