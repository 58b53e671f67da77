package services

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nidhinbose89/workoutplanner/internal/models"
	"github.com/nidhinbose89/workoutplanner/internal/repository"
)

type PlanService struct {
	db           *pgxpool.Pool
	planRepo     *repository.PlanRepository
	dayRepo      *repository.DayRepository
	exerciseRepo *repository.ExerciseRepository
	clientRepo   *repository.ClientRepository
	notifier     Notifier
}

func NewPlanService(
	db *pgxpool.Pool,
	planRepo *repository.PlanRepository,
	dayRepo *repository.DayRepository,
	exerciseRepo *repository.ExerciseRepository,
	clientRepo *repository.ClientRepository,
	notifier Notifier,
) *PlanService {
	return &PlanService{
		db:           db,
		planRepo:     planRepo,
		dayRepo:      dayRepo,
		exerciseRepo: exerciseRepo,
		clientRepo:   clientRepo,
		notifier:     notifier,
	}
}

type UpdatePlanInput struct {
	Name      *string
	ClientIDs []int64
	DayIDs    []int64
}

// CreatePlan inserts the plan and associates the resolvable subsets of
// the given day and client ids in one transaction. Unknown ids are
// dropped, not rejected. Assignment notifications fire after commit.
func (s *PlanService) CreatePlan(ctx context.Context, name string, clientIDs, dayIDs []int64) (*models.Plan, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txPlanRepo := repository.NewPlanRepository(tx)

	plan := &models.Plan{Name: name}
	if err := txPlanRepo.Create(ctx, plan); err != nil {
		return nil, err
	}
	if err := txPlanRepo.AddDays(ctx, plan.ID, dayIDs); err != nil {
		return nil, err
	}
	assigned, err := txPlanRepo.AssignClients(ctx, plan.ID, clientIDs)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, EventPlanAssigned, assigned)
	return plan, nil
}

// UpdatePlan renames the plan and/or replaces its day and client sets
// wholesale. Returns pgx.ErrNoRows when the plan does not exist. After a
// successful commit the change is fanned out to every client currently
// on the plan.
func (s *PlanService) UpdatePlan(ctx context.Context, id int64, input UpdatePlanInput) (*models.Plan, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txPlanRepo := repository.NewPlanRepository(tx)

	var plan *models.Plan
	if input.Name != nil {
		plan, err = txPlanRepo.UpdateName(ctx, id, *input.Name)
	} else {
		plan, err = txPlanRepo.GetByID(ctx, id)
	}
	if err != nil {
		return nil, err
	}

	touched := input.Name != nil
	if len(input.DayIDs) > 0 {
		if err := txPlanRepo.ReplaceDays(ctx, id, input.DayIDs); err != nil {
			return nil, err
		}
	}
	var assigned []int64
	if len(input.ClientIDs) > 0 {
		assigned, err = txPlanRepo.ReplaceClients(ctx, id, input.ClientIDs)
		if err != nil {
			return nil, err
		}
	}
	if !touched {
		if err := txPlanRepo.Touch(ctx, id); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, EventPlanAssigned, assigned)
	current, err := s.planRepo.AssignedClientIDs(ctx, id)
	if err != nil {
		log.Printf("plan %d changed, could not resolve clients for fan-out: %v", id, err)
	} else {
		s.notifier.Notify(ctx, EventPlanChanged, current)
	}
	return plan, nil
}

func (s *PlanService) ListPlans(ctx context.Context) ([]models.PlanDetail, error) {
	plans, err := s.planRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	details := make([]models.PlanDetail, 0, len(plans))
	for _, plan := range plans {
		detail, err := s.buildDetail(ctx, plan)
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}
	return details, nil
}

func (s *PlanService) GetPlan(ctx context.Context, id int64) (*models.PlanDetail, error) {
	plan, err := s.planRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.buildDetail(ctx, *plan)
}

func (s *PlanService) buildDetail(ctx context.Context, plan models.Plan) (*models.PlanDetail, error) {
	days, err := s.dayRepo.ListByPlanID(ctx, plan.ID)
	if err != nil {
		return nil, err
	}
	dayDetails := make([]models.DayDetail, 0, len(days))
	for _, day := range days {
		exercises, err := s.exerciseRepo.ListByDayID(ctx, day.ID)
		if err != nil {
			return nil, err
		}
		dayDetails = append(dayDetails, models.DayDetail{Day: day, Exercises: exercises})
	}

	clients, err := s.clientRepo.ListByPlanID(ctx, plan.ID)
	if err != nil {
		return nil, err
	}

	return &models.PlanDetail{Plan: plan, Days: dayDetails, Clients: clients}, nil
}

func (s *PlanService) DeletePlan(ctx context.Context, id int64) (bool, error) {
	return s.planRepo.Delete(ctx, id)
}
