package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/akrotov/task-manager/internal/config"
	"github.com/akrotov/task-manager/internal/constants"
	"github.com/akrotov/task-manager/internal/database"
	"github.com/akrotov/task-manager/internal/handlers"
	"github.com/akrotov/task-manager/internal/middleware"
	"github.com/akrotov/task-manager/internal/repository"
	"github.com/akrotov/task-manager/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	setupLogger(cfg.GinMode)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		log.WithError(err).Fatal("failed to create indexes")
	}

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(cors.Default())

	// Session middleware: Redis when configured, cookie store otherwise
	store, err := sessionStore(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to create session store")
	}
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize repositories and services
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	statusRepo := repository.NewStatusRepository(db)
	labelRepo := repository.NewLabelRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	authService := services.NewAuthService(userRepo)
	taskService := services.NewTaskService(taskRepo, statusRepo, labelRepo, userRepo)

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(authService)
	userHandler := handlers.NewUserHandler(authService, userRepo)
	statusHandler := handlers.NewStatusHandler(statusRepo)
	labelHandler := handlers.NewLabelHandler(labelRepo)
	taskHandler := handlers.NewTaskHandler(taskService, statusRepo, labelRepo, userRepo)

	// Home and session routes
	r.GET("/", sessionHandler.Home)
	r.GET("/login/", sessionHandler.LoginPage)
	r.POST("/login/", sessionHandler.Login)
	r.GET("/logout/", sessionHandler.Logout)

	// User routes: listing and registration are public, editing and
	// deletion are gated
	users := r.Group("/users")
	{
		users.GET("/", userHandler.List)
		users.GET("/create/", userHandler.CreatePage)
		users.POST("/create/", userHandler.Create)
		users.GET("/:id/update/", middleware.RequireAuth(), userHandler.UpdatePage)
		users.POST("/:id/update/", middleware.RequireAuth(), userHandler.Update)
		users.POST("/:id/delete/", middleware.RequireAuth(), userHandler.Delete)
	}

	// Status routes (protected)
	statuses := r.Group("/statuses")
	statuses.Use(middleware.RequireAuth())
	{
		statuses.GET("/", statusHandler.List)
		statuses.GET("/create/", statusHandler.CreatePage)
		statuses.POST("/create/", statusHandler.Create)
		statuses.GET("/:id/update/", statusHandler.UpdatePage)
		statuses.POST("/:id/update/", statusHandler.Update)
		statuses.POST("/:id/delete/", statusHandler.Delete)
	}

	// Label routes (protected)
	labels := r.Group("/labels")
	labels.Use(middleware.RequireAuth())
	{
		labels.GET("/", labelHandler.List)
		labels.GET("/create/", labelHandler.CreatePage)
		labels.POST("/create/", labelHandler.Create)
		labels.GET("/:id/update/", labelHandler.UpdatePage)
		labels.POST("/:id/update/", labelHandler.Update)
		labels.POST("/:id/delete/", labelHandler.Delete)
	}

	// Task routes (protected)
	tasks := r.Group("/tasks")
	tasks.Use(middleware.RequireAuth())
	{
		tasks.GET("/", taskHandler.List)
		tasks.GET("/create/", taskHandler.CreatePage)
		tasks.POST("/create/", taskHandler.Create)
		tasks.GET("/:id/", taskHandler.Detail)
		tasks.GET("/:id/update/", taskHandler.UpdatePage)
		tasks.POST("/:id/update/", taskHandler.Update)
		tasks.POST("/:id/delete/", taskHandler.Delete)
	}

	// Start server
	log.WithField("addr", cfg.ListenAddr).Info("server starting")
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.WithError(err).Fatal("failed to start server")
	}
}

func setupLogger(mode string) {
	if mode == "release" {
		log.SetFormatter(&log.JSONFormatter{})
		log.SetLevel(log.InfoLevel)
		return
	}
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.DebugLevel)
}

// sessionStore picks Redis when a host is configured so sessions
// survive restarts; the cookie store covers development setups.
func sessionStore(cfg *config.Config) (sessions.Store, error) {
	isProduction := cfg.GinMode == "release"

	options := sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	}

	if cfg.RedisHost != "" {
		store, err := redisStore.NewStore(
			10,
			"tcp",
			cfg.RedisHost+":"+cfg.RedisPort,
			"",
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			return nil, err
		}
		store.Options(options)
		return store, nil
	}

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(options)
	return store, nil
}
