package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/salonbelle/salon-scheduler/internal/audit"
	"github.com/salonbelle/salon-scheduler/internal/config"
	"github.com/salonbelle/salon-scheduler/internal/handlers"
	infraRepo "github.com/salonbelle/salon-scheduler/internal/infra/repository"
	"github.com/salonbelle/salon-scheduler/internal/middleware"
	"github.com/salonbelle/salon-scheduler/internal/notify"
	"github.com/salonbelle/salon-scheduler/internal/timezone"
	ucCalendar "github.com/salonbelle/salon-scheduler/internal/usecase/calendar"
	ucReservation "github.com/salonbelle/salon-scheduler/internal/usecase/reservation"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, hub *notify.Hub, cfg *config.Config) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	reservationRepo := infraRepo.NewReservationGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	loc := timezone.Location(cfg.SalonTimezone)

	// ======================================================
	// USE CASES — RESERVATIONS
	// ======================================================
	createReservationUC := ucReservation.NewCreateReservation(
		reservationRepo,
		auditDispatcher,
		hub,
		loc,
	)

	confirmReservationUC := ucReservation.NewConfirmReservation(
		reservationRepo,
		auditDispatcher,
		hub,
		loc,
	)

	declineReservationUC := ucReservation.NewDeclineReservation(
		reservationRepo,
		auditDispatcher,
		hub,
		loc,
	)

	completeReservationUC := ucReservation.NewCompleteReservation(
		reservationRepo,
		auditDispatcher,
		hub,
		loc,
	)

	listQueueUC := ucReservation.NewListQueue(reservationRepo)

	// ======================================================
	// USE CASES — CALENDAR
	// ======================================================
	aggregateWeekUC := ucCalendar.NewAggregateWeek(reservationRepo, loc)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	serviceHandler := handlers.NewServiceHandler(db)
	clientHandler := handlers.NewClientHandler(db)
	workingHoursHandler := handlers.NewWorkingHoursHandler(db, hub)
	availabilityHandler := handlers.NewAvailabilityHandler(db, hub)
	reviewHandler := handlers.NewReviewHandler(db)

	reservationHandler := handlers.NewReservationHandler(
		confirmReservationUC,
		declineReservationUC,
		completeReservationUC,
		listQueueUC,
	)

	calendarHandler := handlers.NewCalendarHandler(aggregateWeekUC, loc)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	publicHandler := handlers.NewPublicHandler(db, createReservationUC)
	wsHandler := handlers.NewWSHandler(hub, cfg)

	// ======================================================
	// WEBSOCKET
	// ======================================================
	r.GET("/ws", wsHandler.Serve)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC API
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/stylists", publicHandler.ListStylists)
			publicAPI.GET("/stylists/:id/services", publicHandler.ListServices)
			publicAPI.GET("/stylists/:id/working-hours", publicHandler.GetWorkingHours)

			publicAPI.POST(
				"/stylists/:id/reservations",
				middleware.RateLimitMiddleware(rdb, cfg.RateLimitPerMinute),
				publicHandler.CreateReservation,
			)

			publicAPI.POST("/reservations/:ref/review", reviewHandler.Create)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/clients", clientHandler.List)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)

			secured.GET("/me/working-hours", workingHoursHandler.Get)
			secured.PUT("/me/working-hours", workingHoursHandler.Update)

			secured.GET("/me/availability-blocks", availabilityHandler.List)
			secured.POST("/me/availability-blocks", availabilityHandler.Create)
			secured.DELETE("/me/availability-blocks/:id", availabilityHandler.Delete)

			// ------------------------------
			// RESERVATIONS
			// ------------------------------
			secured.GET("/me/reservations/queue", reservationHandler.Queue)
			secured.PATCH("/me/reservations/:id/confirm", reservationHandler.Confirm)
			secured.PATCH("/me/reservations/:id/decline", reservationHandler.Decline)
			secured.PATCH("/me/reservations/:id/complete", reservationHandler.Complete)

			secured.GET("/me/calendar/week", calendarHandler.Week)

			secured.GET("/me/reviews", reviewHandler.ListMine)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
