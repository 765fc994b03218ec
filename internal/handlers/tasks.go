package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/akrotov/task-manager/internal/authz"
	"github.com/akrotov/task-manager/internal/constants"
	"github.com/akrotov/task-manager/internal/dto"
	apierrors "github.com/akrotov/task-manager/internal/errors"
	"github.com/akrotov/task-manager/internal/flash"
	"github.com/akrotov/task-manager/internal/forms"
	"github.com/akrotov/task-manager/internal/middleware"
	"github.com/akrotov/task-manager/internal/models"
	"github.com/akrotov/task-manager/internal/repository"
	"github.com/akrotov/task-manager/internal/services"
	"github.com/akrotov/task-manager/internal/utils"
)

// TaskHandler implements the task CRUD flows. Every page requires an
// authenticated session; deletion is restricted to the task's author.
type TaskHandler struct {
	taskService *services.TaskService
	statusRepo  repository.StatusRepository
	labelRepo   repository.LabelRepository
	userRepo    repository.UserRepository
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(
	taskService *services.TaskService,
	statusRepo repository.StatusRepository,
	labelRepo repository.LabelRepository,
	userRepo repository.UserRepository,
) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		statusRepo:  statusRepo,
		labelRepo:   labelRepo,
		userRepo:    userRepo,
	}
}

// List shows tasks, optionally filtered by status, executor, label and
// "my tasks only".
func (h *TaskHandler) List(c *gin.Context) {
	filter := repository.TaskFilter{}

	if v, ok := queryID(c, "status"); ok {
		filter.StatusID = &v
	}
	if v, ok := queryID(c, "executor"); ok {
		filter.ExecutorID = &v
	}
	if v, ok := queryID(c, "label"); ok {
		filter.LabelID = &v
	}
	if c.Query("self_tasks") != "" {
		if actorID, exists := middleware.GetUserID(c); exists {
			filter.AuthorID = &actorID
		}
	}

	params := utils.GetPaginationParams(c)
	filter.Page = params.Page
	filter.PageSize = params.Limit

	tasks, total, err := h.taskService.ListTasks(filter)
	if err != nil {
		log.WithError(err).Error("failed to list tasks")
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	renderPage(c, constants.PageTasksList, gin.H{
		"tasks": dto.ToTaskDTOs(tasks),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// Detail shows a single task with its relations.
func (h *TaskHandler) Detail(c *gin.Context) {
	task, ok := h.loadTask(c)
	if !ok {
		return
	}

	renderPage(c, constants.PageTaskDetail, gin.H{"task": dto.ToTaskDTO(*task)})
}

// CreatePage renders the task creation form together with the available
// status, executor and label choices.
func (h *TaskHandler) CreatePage(c *gin.Context) {
	choices, ok := h.formChoices(c)
	if !ok {
		return
	}

	renderForm(c, constants.PageTaskCreate, gin.H{
		"name":        "",
		"description": "",
		"choices":     choices,
	}, nil)
}

// Create persists a new task authored by the current user. Whatever the
// form claims about authorship is ignored.
func (h *TaskHandler) Create(c *gin.Context) {
	actorID, exists := middleware.GetUserID(c)
	if !exists {
		flash.Warning(c, constants.MsgNoPermission)
		c.Redirect(http.StatusFound, constants.PathLogin)
		return
	}

	form := forms.ParseTaskForm(c)
	errs := form.Validate()
	if !errs.Empty() {
		renderForm(c, constants.PageTaskCreate, h.taskFormData(form), fieldErrors(errs))
		return
	}

	_, err := h.taskService.CreateTask(actorID, services.TaskInput{
		Name:        form.Name,
		Description: form.Description,
		StatusID:    form.StatusID,
		ExecutorID:  form.ExecutorID,
		LabelIDs:    form.LabelIDs,
	})
	if err != nil {
		if field, ok := referenceErrorField(err); ok {
			renderForm(c, constants.PageTaskCreate, h.taskFormData(form),
				gin.H{field: []string{forms.MsgInvalidChoice}})
			return
		}
		log.WithError(err).Error("failed to create task")
		apierrors.InternalError(c, "Failed to create task")
		return
	}

	flash.Success(c, constants.MsgTaskCreated)
	c.Redirect(http.StatusFound, constants.PathTasks)
}

// UpdatePage renders the editing form for a task.
func (h *TaskHandler) UpdatePage(c *gin.Context) {
	task, ok := h.loadTask(c)
	if !ok {
		return
	}

	choices, ok := h.formChoices(c)
	if !ok {
		return
	}

	labelIDs := make([]uint64, len(task.Labels))
	for i, label := range task.Labels {
		labelIDs[i] = label.ID
	}

	renderForm(c, constants.PageTaskUpdate, gin.H{
		"name":        task.Name,
		"description": task.Description,
		"status":      task.StatusID,
		"executor":    task.ExecutorID,
		"labels":      labelIDs,
		"choices":     choices,
	}, nil)
}

// Update applies the form to an existing task. The author never
// changes.
func (h *TaskHandler) Update(c *gin.Context) {
	task, ok := h.loadTask(c)
	if !ok {
		return
	}

	form := forms.ParseTaskForm(c)
	errs := form.Validate()
	if !errs.Empty() {
		renderForm(c, constants.PageTaskUpdate, h.taskFormData(form), fieldErrors(errs))
		return
	}

	err := h.taskService.UpdateTask(task, services.TaskInput{
		Name:        form.Name,
		Description: form.Description,
		StatusID:    form.StatusID,
		ExecutorID:  form.ExecutorID,
		LabelIDs:    form.LabelIDs,
	})
	if err != nil {
		if field, ok := referenceErrorField(err); ok {
			renderForm(c, constants.PageTaskUpdate, h.taskFormData(form),
				gin.H{field: []string{forms.MsgInvalidChoice}})
			return
		}
		log.WithError(err).Error("failed to update task")
		apierrors.InternalError(c, "Failed to update task")
		return
	}

	flash.Success(c, constants.MsgTaskUpdated)
	c.Redirect(http.StatusFound, constants.PathTasks)
}

// Delete removes a task. Only the author may delete it.
func (h *TaskHandler) Delete(c *gin.Context) {
	task, ok := h.loadTask(c)
	if !ok {
		return
	}

	actorID, exists := middleware.GetUserID(c)
	if !exists {
		flash.Warning(c, constants.MsgNoPermission)
		c.Redirect(http.StatusFound, constants.PathLogin)
		return
	}

	if err := authz.CanDeleteTask(actorID, task); err != nil {
		flash.Error(c, constants.MsgNotAuthor)
		c.Redirect(http.StatusFound, constants.PathTasks)
		return
	}

	if err := h.taskService.DeleteTask(task.ID); err != nil {
		log.WithError(err).Error("failed to delete task")
		apierrors.InternalError(c, "Failed to delete task")
		return
	}

	flash.Success(c, constants.MsgTaskDeleted)
	c.Redirect(http.StatusFound, constants.PathTasks)
}

func (h *TaskHandler) loadTask(c *gin.Context) (*models.Task, bool) {
	id, ok := paramID(c)
	if !ok {
		apierrors.NotFound(c, "Task not found")
		return nil, false
	}

	task, err := h.taskService.GetTask(id)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			apierrors.NotFound(c, "Task not found")
			return nil, false
		}
		log.WithError(err).Error("failed to load task")
		apierrors.InternalError(c, "Failed to load task")
		return nil, false
	}

	return task, true
}

// formChoices collects the selectable statuses, executors and labels
// for the task form.
func (h *TaskHandler) formChoices(c *gin.Context) (gin.H, bool) {
	statuses, err := h.statusRepo.List()
	if err != nil {
		log.WithError(err).Error("failed to load statuses")
		apierrors.InternalError(c, "Failed to load form choices")
		return nil, false
	}
	users, err := h.userRepo.List()
	if err != nil {
		log.WithError(err).Error("failed to load users")
		apierrors.InternalError(c, "Failed to load form choices")
		return nil, false
	}
	labels, err := h.labelRepo.List()
	if err != nil {
		log.WithError(err).Error("failed to load labels")
		apierrors.InternalError(c, "Failed to load form choices")
		return nil, false
	}

	return gin.H{
		"statuses":  dto.ToStatusDTOs(statuses),
		"executors": dto.ToUserDTOs(users),
		"labels":    dto.ToLabelDTOs(labels),
	}, true
}

func (h *TaskHandler) taskFormData(form *forms.TaskForm) gin.H {
	return gin.H{
		"name":        form.Name,
		"description": form.Description,
		"status":      form.StatusID,
		"executor":    form.ExecutorID,
		"labels":      form.LabelIDs,
	}
}

// referenceErrorField maps a dangling-reference error to the form field
// that caused it.
func referenceErrorField(err error) (string, bool) {
	switch {
	case errors.Is(err, services.ErrStatusNotFound):
		return "status", true
	case errors.Is(err, services.ErrExecutorNotFound):
		return "executor", true
	case errors.Is(err, services.ErrLabelNotFound):
		return "labels", true
	default:
		return "", false
	}
}

// queryID parses an optional numeric query parameter.
func queryID(c *gin.Context, name string) (uint64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
