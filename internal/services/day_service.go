package services

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nidhinbose89/workoutplanner/internal/models"
	"github.com/nidhinbose89/workoutplanner/internal/repository"
)

type DayService struct {
	db           *pgxpool.Pool
	dayRepo      *repository.DayRepository
	exerciseRepo *repository.ExerciseRepository
}

func NewDayService(
	db *pgxpool.Pool,
	dayRepo *repository.DayRepository,
	exerciseRepo *repository.ExerciseRepository,
) *DayService {
	return &DayService{
		db:           db,
		dayRepo:      dayRepo,
		exerciseRepo: exerciseRepo,
	}
}

type UpdateDayInput struct {
	Name        *string
	ExerciseIDs []int64
}

// CreateDay inserts the day and associates the resolvable subset of the
// given exercise ids in one transaction. Unknown ids are dropped, not
// rejected.
func (s *DayService) CreateDay(ctx context.Context, name string, exerciseIDs []int64) (*models.Day, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txDayRepo := repository.NewDayRepository(tx)

	day := &models.Day{Name: name}
	if err := txDayRepo.Create(ctx, day); err != nil {
		return nil, err
	}
	if err := txDayRepo.AddExercises(ctx, day.ID, exerciseIDs); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return day, nil
}

// UpdateDay renames the day and/or replaces its exercise set wholesale.
// Returns pgx.ErrNoRows when the day does not exist.
func (s *DayService) UpdateDay(ctx context.Context, id int64, input UpdateDayInput) (*models.Day, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txDayRepo := repository.NewDayRepository(tx)

	var day *models.Day
	if input.Name != nil {
		day, err = txDayRepo.UpdateName(ctx, id, *input.Name)
	} else {
		day, err = txDayRepo.GetByID(ctx, id)
	}
	if err != nil {
		return nil, err
	}

	if len(input.ExerciseIDs) > 0 {
		if err := txDayRepo.ReplaceExercises(ctx, id, input.ExerciseIDs); err != nil {
			return nil, err
		}
		if input.Name == nil {
			if err := txDayRepo.Touch(ctx, id); err != nil {
				return nil, err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return day, nil
}

func (s *DayService) ListDays(ctx context.Context) ([]models.DayDetail, error) {
	days, err := s.dayRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	details := make([]models.DayDetail, 0, len(days))
	for _, day := range days {
		exercises, err := s.exerciseRepo.ListByDayID(ctx, day.ID)
		if err != nil {
			return nil, err
		}
		details = append(details, models.DayDetail{Day: day, Exercises: exercises})
	}
	return details, nil
}

func (s *DayService) GetDay(ctx context.Context, id int64) (*models.DayDetail, error) {
	day, err := s.dayRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	exercises, err := s.exerciseRepo.ListByDayID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.DayDetail{Day: *day, Exercises: exercises}, nil
}

func (s *DayService) DeleteDay(ctx context.Context, id int64) (bool, error) {
	return s.dayRepo.Delete(ctx, id)
}
