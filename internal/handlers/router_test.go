package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/akrotov/task-manager/internal/constants"
	"github.com/akrotov/task-manager/internal/database"
	"github.com/akrotov/task-manager/internal/middleware"
	"github.com/akrotov/task-manager/internal/models"
	"github.com/akrotov/task-manager/internal/repository"
	"github.com/akrotov/task-manager/internal/services"
)

// testEnv wires the full application against an in-memory database,
// with the same route table the server uses.
type testEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	authService *services.AuthService
	taskService *services.TaskService
	userRepo    repository.UserRepository
	statusRepo  repository.StatusRepository
	labelRepo   repository.LabelRepository
	taskRepo    repository.TaskRepository
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Status{},
		&models.Label{},
		&models.Task{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	userRepo := repository.NewUserRepository(db)
	statusRepo := repository.NewStatusRepository(db)
	labelRepo := repository.NewLabelRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	authService := services.NewAuthService(userRepo)
	taskService := services.NewTaskService(taskRepo, statusRepo, labelRepo, userRepo)

	sessionHandler := NewSessionHandler(authService)
	userHandler := NewUserHandler(authService, userRepo)
	statusHandler := NewStatusHandler(statusRepo)
	labelHandler := NewLabelHandler(labelRepo)
	taskHandler := NewTaskHandler(taskService, statusRepo, labelRepo, userRepo)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	r.GET("/", sessionHandler.Home)
	r.GET("/login/", sessionHandler.LoginPage)
	r.POST("/login/", sessionHandler.Login)
	r.GET("/logout/", sessionHandler.Logout)

	users := r.Group("/users")
	{
		users.GET("/", userHandler.List)
		users.GET("/create/", userHandler.CreatePage)
		users.POST("/create/", userHandler.Create)
		users.GET("/:id/update/", middleware.RequireAuth(), userHandler.UpdatePage)
		users.POST("/:id/update/", middleware.RequireAuth(), userHandler.Update)
		users.POST("/:id/delete/", middleware.RequireAuth(), userHandler.Delete)
	}

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

	return &testEnv{
		db:          db,
		router:      r,
		authService: authService,
		taskService: taskService,
		userRepo:    userRepo,
		statusRepo:  statusRepo,
		labelRepo:   labelRepo,
		taskRepo:    taskRepo,
	}
}

// do performs a request, carrying any session cookies along.
func (env *testEnv) do(t *testing.T, method, target string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// mergeCookies overlays response cookies on the ones carried so far.
// The cookie session store rewrites the whole session on every save, so
// a client following redirects must keep the freshest cookie.
func mergeCookies(held, fresh []*http.Cookie) []*http.Cookie {
	byName := map[string]*http.Cookie{}
	for _, c := range held {
		byName[c.Name] = c
	}
	for _, c := range fresh {
		byName[c.Name] = c
	}

	merged := make([]*http.Cookie, 0, len(byName))
	for _, c := range byName {
		merged = append(merged, c)
	}
	return merged
}

// register creates a user through the service layer.
func (env *testEnv) register(t *testing.T, username, password string) *models.User {
	t.Helper()

	user, err := env.authService.Register(services.RegisterInput{
		Username:  username,
		FirstName: "Test",
		LastName:  "User",
		Password:  password,
	})
	require.NoError(t, err)
	return user
}

// login performs the login flow and returns the session cookies.
func (env *testEnv) login(t *testing.T, username, password string) []*http.Cookie {
	t.Helper()

	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	w := env.do(t, http.MethodPost, "/login/", form, nil)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, constants.PathHome, w.Header().Get("Location"))

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "expected session cookie to be set")
	return cookies
}

// loginAs registers a user and logs them in.
func (env *testEnv) loginAs(t *testing.T, username string) (*models.User, []*http.Cookie) {
	t.Helper()

	user := env.register(t, username, "supersecret")
	return user, env.login(t, username, "supersecret")
}

func (env *testEnv) createStatus(t *testing.T, name string) *models.Status {
	t.Helper()

	status := &models.Status{Name: name}
	require.NoError(t, env.statusRepo.Create(status))
	return status
}

func (env *testEnv) createLabel(t *testing.T, name string) *models.Label {
	t.Helper()

	label := &models.Label{Name: name}
	require.NoError(t, env.labelRepo.Create(label))
	return label
}

func (env *testEnv) createTask(t *testing.T, name string, authorID, statusID uint64) *models.Task {
	t.Helper()

	task := &models.Task{Name: name, StatusID: statusID, AuthorID: authorID}
	require.NoError(t, env.taskRepo.Create(task))
	return task
}

func (env *testEnv) count(t *testing.T, model any) int64 {
	t.Helper()

	var n int64
	require.NoError(t, env.db.Model(model).Count(&n).Error)
	return n
}
