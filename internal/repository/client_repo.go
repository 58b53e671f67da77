package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/nidhinbose89/workoutplanner/internal/models"
)

// ClientUpdateInput carries the fields to overwrite on a client. Nil
// pointers are left untouched.
type ClientUpdateInput struct {
	Email     *string
	FirstName *string
	LastName  *string
	Age       *int
	Weight    *int
	Height    *int
	PlanID    *int64
}

func (in ClientUpdateInput) Empty() bool {
	return in.Email == nil && in.FirstName == nil && in.LastName == nil &&
		in.Age == nil && in.Weight == nil && in.Height == nil && in.PlanID == nil
}

type ClientRepository struct {
	db DBTX
}

func NewClientRepository(db DBTX) *ClientRepository {
	return &ClientRepository{db: db}
}

const clientColumns = "id, email, first_name, last_name, age, weight, height, owner_id, plan_id, created_at, updated_at"

func scanClient(row interface{ Scan(...any) error }, client *models.Client) error {
	return row.Scan(
		&client.ID,
		&client.Email,
		&client.FirstName,
		&client.LastName,
		&client.Age,
		&client.Weight,
		&client.Height,
		&client.OwnerID,
		&client.PlanID,
		&client.CreatedAt,
		&client.UpdatedAt,
	)
}

func (r *ClientRepository) Create(ctx context.Context, client *models.Client) error {
	query := `
		INSERT INTO clients (email, first_name, last_name, age, weight, height, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(
		ctx,
		query,
		client.Email,
		client.FirstName,
		client.LastName,
		client.Age,
		client.Weight,
		client.Height,
		client.OwnerID,
	).Scan(&client.ID, &client.CreatedAt, &client.UpdatedAt)
}

func (r *ClientRepository) GetByID(ctx context.Context, id int64) (*models.Client, error) {
	query := fmt.Sprintf(`SELECT %s FROM clients WHERE id = $1`, clientColumns)
	var client models.Client
	if err := scanClient(r.db.QueryRow(ctx, query, id), &client); err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *ClientRepository) List(ctx context.Context) ([]models.Client, error) {
	query := fmt.Sprintf(`SELECT %s FROM clients ORDER BY id ASC`, clientColumns)
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := make([]models.Client, 0)
	for rows.Next() {
		var client models.Client
		if err := scanClient(rows, &client); err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *ClientRepository) ListByPlanID(ctx context.Context, planID int64) ([]models.Client, error) {
	query := fmt.Sprintf(`SELECT %s FROM clients WHERE plan_id = $1 ORDER BY id ASC`, clientColumns)
	rows, err := r.db.Query(ctx, query, planID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := make([]models.Client, 0)
	for rows.Next() {
		var client models.Client
		if err := scanClient(rows, &client); err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return clients, nil
}

// Update overwrites only the fields set in input and bumps updated_at.
// Returns pgx.ErrNoRows via the Scan when the client does not exist.
func (r *ClientRepository) Update(ctx context.Context, id int64, input ClientUpdateInput) (*models.Client, error) {
	setParts := []string{"updated_at = NOW()"}
	args := []any{id}

	addSet := func(column string, value any) {
		args = append(args, value)
		setParts = append(setParts, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if input.Email != nil {
		addSet("email", *input.Email)
	}
	if input.FirstName != nil {
		addSet("first_name", *input.FirstName)
	}
	if input.LastName != nil {
		addSet("last_name", *input.LastName)
	}
	if input.Age != nil {
		addSet("age", *input.Age)
	}
	if input.Weight != nil {
		addSet("weight", *input.Weight)
	}
	if input.Height != nil {
		addSet("height", *input.Height)
	}
	if input.PlanID != nil {
		addSet("plan_id", *input.PlanID)
	}

	query := fmt.Sprintf(`
		UPDATE clients
		SET %s
		WHERE id = $1
		RETURNING %s
	`, strings.Join(setParts, ", "), clientColumns)

	var client models.Client
	if err := scanClient(r.db.QueryRow(ctx, query, args...), &client); err != nil {
		return nil, err
	}
	return &client, nil
}

// DeleteOwned removes a client only when ownerID matches, so non-owners
// cannot tell the row exists.
func (r *ClientRepository) DeleteOwned(ctx context.Context, id, ownerID int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM clients WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
