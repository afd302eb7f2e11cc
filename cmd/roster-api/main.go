package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/rosterhq/roster-api/api/swagger"
	"github.com/rosterhq/roster-api/internal/agenda"
	"github.com/rosterhq/roster-api/internal/handler"
	"github.com/rosterhq/roster-api/internal/middleware"
	"github.com/rosterhq/roster-api/internal/repository"
	"github.com/rosterhq/roster-api/internal/service"
	"github.com/rosterhq/roster-api/pkg/cache"
	"github.com/rosterhq/roster-api/pkg/config"
	"github.com/rosterhq/roster-api/pkg/database"
	"github.com/rosterhq/roster-api/pkg/logger"
	corsmiddleware "github.com/rosterhq/roster-api/pkg/middleware/cors"
	reqidmiddleware "github.com/rosterhq/roster-api/pkg/middleware/requestid"
)

// @title Roster API
// @version 0.1.0
// @description Shift roster, availability and earnings service
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, agenda caching disabled", "error", err)
		redisClient = nil
	}

	validate := validator.New()
	metrics := service.NewMetricsService()
	hub := service.NewSnapshotHub()

	userRepo := repository.NewUserRepository(db)
	workplaceRepo := repository.NewWorkplaceRepository(db)
	timeSlotRepo := repository.NewTimeSlotRepository(db)
	adhocRepo := repository.NewAdhocRepository(db)
	workShiftRepo := repository.NewWorkShiftRepository(db)
	profileRepo := repository.NewProfileRepository(db)

	var agendaCache service.AgendaCache
	if redisClient != nil {
		agendaCache = repository.NewCacheRepository(redisClient, logr)
	}

	agendaSvc := service.NewAgendaService(
		workShiftRepo, adhocRepo, agendaCache, metrics, logr,
		agenda.Window{MonthsBack: cfg.Agenda.MonthsBack, MonthsForward: cfg.Agenda.MonthsForward},
		cfg.Agenda.CacheTTL,
	)
	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             "roster-api",
	})
	workplaceSvc := service.NewWorkplaceService(workplaceRepo, validate, logr, hub)
	availabilitySvc := service.NewAvailabilityService(timeSlotRepo, adhocRepo, validate, logr, hub, agendaSvc)
	workShiftSvc := service.NewWorkShiftService(workShiftRepo, workplaceRepo, validate, logr, hub, agendaSvc, cfg.Earnings.StandardHoursPerDay)
	calendarSvc := service.NewCalendarService(workShiftRepo, logr, cfg.Calendar.ProdID, cfg.Calendar.FeedName)
	profileSvc := service.NewProfileService(profileRepo, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	workplaceHandler := handler.NewWorkplaceHandler(workplaceSvc)
	availabilityHandler := handler.NewAvailabilityHandler(availabilitySvc)
	workShiftHandler := handler.NewWorkShiftHandler(workShiftSvc)
	agendaHandler := handler.NewAgendaHandler(agendaSvc, hub, metrics)
	calendarHandler := handler.NewCalendarHandler(calendarSvc)
	profileHandler := handler.NewProfileHandler(profileSvc)
	metricsHandler := handler.NewMetricsHandler(metrics)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(corsmiddleware.Config{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedHeaders: cfg.CORS.AllowedHeaders,
		AllowedMethods: cfg.CORS.AllowedMethods,
		MaxAge:         cfg.CORS.MaxAge,
	}))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/logout", middleware.JWT(authSvc), authHandler.Logout)
	auth.GET("/me", middleware.JWT(authSvc), authHandler.Me)
	auth.PUT("/password", middleware.JWT(authSvc), authHandler.ChangePassword)
	auth.DELETE("/account", middleware.JWT(authSvc), authHandler.DeleteAccount)

	profile := api.Group("/profile", middleware.JWT(authSvc))
	profile.GET("", profileHandler.Get)
	profile.PUT("", profileHandler.Save)

	// Record routes accept anonymous traffic: requests without a token are
	// scoped to the shared anonymous namespace.
	records := api.Group("")
	records.Use(middleware.OptionalJWT(authSvc))

	records.GET("/workplaces", workplaceHandler.List)
	records.POST("/workplaces", workplaceHandler.Create)
	records.GET("/workplaces/stream", agendaHandler.StreamWorkplaces)
	records.GET("/workplaces/:id", workplaceHandler.Get)
	records.PUT("/workplaces/:id", workplaceHandler.Update)
	records.DELETE("/workplaces/:id", workplaceHandler.Delete)

	records.GET("/availability/slots", availabilityHandler.ListTimeSlots)
	records.POST("/availability/slots", availabilityHandler.CreateTimeSlot)
	records.GET("/availability/slots/stream", agendaHandler.StreamTimeSlots)
	records.GET("/availability/slots/:id", availabilityHandler.GetTimeSlot)
	records.PUT("/availability/slots/:id", availabilityHandler.UpdateTimeSlot)
	records.DELETE("/availability/slots/:id", availabilityHandler.DeleteTimeSlot)

	records.GET("/availability/adhocs", availabilityHandler.ListAdhocs)
	records.POST("/availability/adhocs", availabilityHandler.CreateAdhoc)
	records.GET("/availability/adhocs/:id", availabilityHandler.GetAdhoc)
	records.PUT("/availability/adhocs/:id", availabilityHandler.UpdateAdhoc)
	records.DELETE("/availability/adhocs/:id", availabilityHandler.DeleteAdhoc)

	records.GET("/shifts", workShiftHandler.List)
	records.POST("/shifts", workShiftHandler.Create)
	records.GET("/shifts/:id", workShiftHandler.Get)
	records.PUT("/shifts/:id", workShiftHandler.Update)
	records.DELETE("/shifts/:id", workShiftHandler.Delete)
	records.GET("/shifts/:id/earning", workShiftHandler.Earning)

	records.GET("/agenda/shifts", agendaHandler.Shifts)
	records.GET("/agenda/shifts/stream", agendaHandler.StreamShifts)
	records.GET("/agenda/adhocs", agendaHandler.Adhocs)
	records.GET("/agenda/adhocs/stream", agendaHandler.StreamAdhocs)

	if cfg.Calendar.Enabled {
		records.GET("/calendar/shifts.ics", calendarHandler.ShiftFeed)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
