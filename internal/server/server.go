package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"trackzen.io/backend/internal/config"
	"trackzen.io/backend/internal/entity"
	"trackzen.io/backend/internal/middleware"
	"trackzen.io/backend/internal/modules/reminder"
	"trackzen.io/backend/internal/scheduler"

	adminHttp "trackzen.io/backend/internal/modules/admin/delivery/http"
	adminService "trackzen.io/backend/internal/modules/admin/service"

	interviewHttp "trackzen.io/backend/internal/modules/interview/delivery/http"
	interviewRepo "trackzen.io/backend/internal/modules/interview/repository"
	interviewService "trackzen.io/backend/internal/modules/interview/service"

	leaderboardHttp "trackzen.io/backend/internal/modules/leaderboard/delivery/http"
	leaderboardService "trackzen.io/backend/internal/modules/leaderboard/service"

	notiHttp "trackzen.io/backend/internal/modules/notification/delivery/http"
	notifRepo "trackzen.io/backend/internal/modules/notification/repository"
	notifService "trackzen.io/backend/internal/modules/notification/service"

	projectHttp "trackzen.io/backend/internal/modules/project/delivery/http"
	projectRepo "trackzen.io/backend/internal/modules/project/repository"
	projectService "trackzen.io/backend/internal/modules/project/service"

	statHttp "trackzen.io/backend/internal/modules/stat/delivery/http"
	statService "trackzen.io/backend/internal/modules/stat/service"

	updateHttp "trackzen.io/backend/internal/modules/update/delivery/http"
	updateRepo "trackzen.io/backend/internal/modules/update/repository"
	updateService "trackzen.io/backend/internal/modules/update/service"

	userHttp "trackzen.io/backend/internal/modules/user/delivery/http"
	userRepo "trackzen.io/backend/internal/modules/user/repository"
	userService "trackzen.io/backend/internal/modules/user/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const jobTimeout = 10 * time.Minute

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
	scheduler   *scheduler.Scheduler
	addr        string
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	userRepo := userRepo.NewUserRepository(db)

	authSvc := userService.NewAuthService(userRepo, redisClient, userService.Options{
		Secret:      cfg.JWTSecret,
		TokenTTL:    cfg.JWTTTL,
		MaxAttempts: cfg.LoginMaxAttempts,
		AttemptsTTL: cfg.LoginWindow,
	})
	authHandler := userHttp.NewAuthHandler(authSvc)

	adminSvc := adminService.NewAdminService(userRepo)
	adminHandler := adminHttp.NewAdminHandler(adminSvc)

	// Notification Module
	notificationRepository := notifRepo.NewNotificationRepository(db)
	notificationSvc := notifService.NewNotificationService(notificationRepository, redisClient)
	notificationHandler := notiHttp.NewNotificationHandler(notificationSvc, redisClient)

	updateRepo := updateRepo.NewUpdateRepository(db)
	updateSvc := updateService.NewUpdateService(updateRepo, redisClient, cfg.Location, time.Now)
	updateHandler := updateHttp.NewUpdateHandler(updateSvc)

	interviewRepo := interviewRepo.NewInterviewRepository(db)
	interviewSvc := interviewService.NewInterviewService(interviewRepo, userRepo, notificationSvc)
	interviewHandler := interviewHttp.NewInterviewHandler(interviewSvc)

	projectRepo := projectRepo.NewProjectRepository(db)
	projectSvc := projectService.NewProjectService(projectRepo, userRepo, notificationSvc)
	projectHandler := projectHttp.NewProjectHandler(projectSvc)

	leaderboardSvc := leaderboardService.NewLeaderboardService(
		userRepo,
		updateRepo,
		interviewRepo,
		interviewRepo,
		projectRepo,
		leaderboardService.Options{
			Concurrency: cfg.LeaderboardConcurrency,
			UpdateLimit: cfg.LeaderboardUpdateLimit,
			Location:    cfg.Location,
		},
	)
	leaderboardHandler := leaderboardHttp.NewLeaderboardHandler(leaderboardSvc)

	statSvc := statService.NewStatService(userRepo, updateRepo, interviewRepo, projectRepo, cfg.Location)
	statHandler := statHttp.NewStatHandler(statSvc)

	// Background jobs
	sched := scheduler.New(cfg.Location, jobTimeout)
	reminderJob := reminder.NewJob(userRepo, updateRepo, notificationSvc, cfg.ReminderCron, cfg.Location)
	if err := sched.Register(reminderJob); err != nil {
		return nil, fmt.Errorf("register reminder job: %w", err)
	}
	jobHandler := adminHttp.NewJobHandler(sched)

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/health", "/api/notifications/ws"},
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authMiddleware := middleware.NewAuthMiddleware(userRepo, cfg.JWTSecret)
	staffOnly := authMiddleware.RequireRoles(entity.RoleManager, entity.RoleAdmin)

	api := router.Group("/api")

	// Public routes (no auth required)
	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
	}

	// Protected routes (apply auth middleware explicitly)
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.GET("/auth/me", authHandler.Me)

		// Admin routes
		adminGroup := protected.Group("/admin")
		adminGroup.Use(authMiddleware.RequireAdmin())
		{
			adminGroup.POST("/users", adminHandler.CreateUser)
			adminGroup.GET("/users", adminHandler.GetAllUsers)
			adminGroup.PUT("/users/:id", adminHandler.UpdateUser)
			adminGroup.DELETE("/users/:id", adminHandler.DeleteUser)
			adminGroup.GET("/jobs", jobHandler.List)
			adminGroup.POST("/jobs/:name/run", jobHandler.Run)
		}

		// Leaderboard routes
		protected.GET("/leaderboard", leaderboardHandler.GetLeaderboard)
		protected.GET("/leaderboard/rank", leaderboardHandler.GetUserRank)

		// Daily update routes
		protected.POST("/updates", authMiddleware.RequireRoles(entity.RoleEmployee), updateHandler.Submit)
		protected.GET("/updates/me", updateHandler.ListMine)
		protected.GET("/updates/streak", updateHandler.Streak)
		protected.GET("/updates/user/:id", staffOnly, updateHandler.ListByUser)

		// Interview routes
		protected.POST("/interviews", staffOnly, interviewHandler.Schedule)
		protected.GET("/interviews/me", interviewHandler.ListMine)
		protected.GET("/interviews/:id", interviewHandler.Get)
		protected.PUT("/interviews/:id/status", interviewHandler.UpdateStatus)
		protected.POST("/interviews/:id/feedback", interviewHandler.SubmitFeedback)

		// Project routes
		protected.POST("/projects", staffOnly, projectHandler.Create)
		protected.GET("/projects", projectHandler.List)
		protected.GET("/projects/me", projectHandler.ListMine)
		protected.PUT("/projects/:id/status", staffOnly, projectHandler.UpdateStatus)
		protected.POST("/projects/:id/members", staffOnly, projectHandler.AddMember)
		protected.GET("/projects/:id/members", projectHandler.ListMembers)
		protected.DELETE("/projects/:id/members/:userId", staffOnly, projectHandler.RemoveMember)
		protected.POST("/projects/:id/tickets", projectHandler.CreateTicket)
		protected.GET("/projects/:id/tickets", projectHandler.ListTickets)
		protected.PUT("/tickets/:id/status", projectHandler.UpdateTicketStatus)

		// Notification routes
		protected.GET("/notifications", notificationHandler.GetNotifications)
		protected.GET("/notifications/unread-count", notificationHandler.UnreadCount)
		protected.PUT("/notifications/:id/read", notificationHandler.MarkAsRead)
		protected.PUT("/notifications/read-all", notificationHandler.MarkAllAsRead)
		protected.GET("/notifications/ws", notificationHandler.HandleWebSocket)

		// Stat routes
		protected.GET("/stats/overview", staffOnly, statHandler.Overview)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
		scheduler:   sched,
		addr:        ":" + cfg.Port,
	}, nil
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then drains in-flight requests and stops
// the scheduler.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.scheduler.Start()
	defer s.scheduler.Stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("🚀 Server listening on %s", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("⏳ Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func setupCORS(router *gin.Engine, origins []string) {
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
