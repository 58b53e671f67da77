package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nidhinbose89/workoutplanner/internal/config"
	"github.com/nidhinbose89/workoutplanner/internal/handlers"
	"github.com/nidhinbose89/workoutplanner/internal/middleware"
	"github.com/nidhinbose89/workoutplanner/internal/repository"
	"github.com/nidhinbose89/workoutplanner/internal/services"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) {
	sessions := session.New()

	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	exerciseRepo := repository.NewExerciseRepository(db)
	dayRepo := repository.NewDayRepository(db)
	planRepo := repository.NewPlanRepository(db)

	notifier := services.NewLogNotifier()
	dayService := services.NewDayService(db, dayRepo, exerciseRepo)
	planService := services.NewPlanService(db, planRepo, dayRepo, exerciseRepo, clientRepo, notifier)

	authHandler := handlers.NewAuthHandler(
		userRepo,
		sessions,
		cfg.JWTSecret,
		cfg.AccessTokenTTL,
		cfg.RefreshTokenTTL,
	)
	clientHandler := handlers.NewClientHandler(clientRepo, notifier)
	exerciseHandler := handlers.NewExerciseHandler(exerciseRepo)
	dayHandler := handlers.NewDayHandler(dayService)
	planHandler := handlers.NewPlanHandler(planService)

	app.Post("/sign_up", authHandler.SignUp)
	app.Post("/login", authHandler.Login)
	app.Get("/logout", authHandler.Logout)
	app.Post("/refresh", authHandler.Refresh)

	authRequired := middleware.AuthRequired(cfg.JWTSecret, sessions)

	clients := app.Group("/clients", authRequired)
	clients.Get("", clientHandler.ListClients)
	clients.Post("", clientHandler.CreateClient)
	clients.Get("/:id", clientHandler.GetClient)
	clients.Put("/:id", clientHandler.UpdateClient)
	clients.Delete("/:id", clientHandler.DeleteClient)

	exercises := app.Group("/exercises", authRequired)
	exercises.Get("", exerciseHandler.ListExercises)
	exercises.Post("", exerciseHandler.CreateExercise)
	exercises.Get("/:id", exerciseHandler.GetExercise)
	exercises.Put("/:id", exerciseHandler.UpdateExercise)
	exercises.Delete("/:id", exerciseHandler.DeleteExercise)

	days := app.Group("/days", authRequired)
	days.Get("", dayHandler.ListDays)
	days.Post("", dayHandler.CreateDay)
	days.Get("/:id", dayHandler.GetDay)
	days.Put("/:id", dayHandler.UpdateDay)
	days.Delete("/:id", dayHandler.DeleteDay)

	plans := app.Group("/plans", authRequired)
	plans.Get("", planHandler.ListPlans)
	plans.Post("", planHandler.CreatePlan)
	plans.Get("/:id", planHandler.GetPlan)
	plans.Put("/:id", planHandler.UpdatePlan)
	plans.Delete("/:id", planHandler.DeletePlan)
}
