package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/akrotov/task-manager/internal/constants"
	"github.com/akrotov/task-manager/internal/dto"
	apierrors "github.com/akrotov/task-manager/internal/errors"
	"github.com/akrotov/task-manager/internal/flash"
	"github.com/akrotov/task-manager/internal/forms"
	"github.com/akrotov/task-manager/internal/models"
	"github.com/akrotov/task-manager/internal/repository"
)

const msgStatusNameTaken = "Status with this Name already exists."

// StatusHandler implements the status CRUD flows. Every page requires
// an authenticated session; there is no per-row ownership.
type StatusHandler struct {
	statusRepo repository.StatusRepository
}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler(statusRepo repository.StatusRepository) *StatusHandler {
	return &StatusHandler{
		statusRepo: statusRepo,
	}
}

// List shows all statuses.
func (h *StatusHandler) List(c *gin.Context) {
	statuses, err := h.statusRepo.List()
	if err != nil {
		log.WithError(err).Error("failed to list statuses")
		apierrors.InternalError(c, "Failed to fetch statuses")
		return
	}

	renderPage(c, constants.PageStatusesList, gin.H{"statuses": dto.ToStatusDTOs(statuses)})
}

// CreatePage renders the status creation form.
func (h *StatusHandler) CreatePage(c *gin.Context) {
	renderForm(c, constants.PageStatusCreate, gin.H{"name": ""}, nil)
}

// Create persists a new status.
func (h *StatusHandler) Create(c *gin.Context) {
	form := forms.ParseStatusForm(c)
	errs := form.Validate()
	if !errs.Empty() {
		renderForm(c, constants.PageStatusCreate, gin.H{"name": form.Name}, fieldErrors(errs))
		return
	}

	if taken, ok := h.nameTaken(c, form.Name, 0); !ok {
		return
	} else if taken {
		renderForm(c, constants.PageStatusCreate, gin.H{"name": form.Name},
			gin.H{"name": []string{msgStatusNameTaken}})
		return
	}

	status := &models.Status{Name: form.Name}
	if err := h.statusRepo.Create(status); err != nil {
		log.WithError(err).Error("failed to create status")
		apierrors.InternalError(c, "Failed to create status")
		return
	}

	flash.Success(c, constants.MsgStatusCreated)
	c.Redirect(http.StatusFound, constants.PathStatuses)
}

// UpdatePage renders the editing form for a status.
func (h *StatusHandler) UpdatePage(c *gin.Context) {
	status, ok := h.loadStatus(c)
	if !ok {
		return
	}

	renderForm(c, constants.PageStatusUpdate, gin.H{"name": status.Name}, nil)
}

// Update applies the form to an existing status.
func (h *StatusHandler) Update(c *gin.Context) {
	status, ok := h.loadStatus(c)
	if !ok {
		return
	}

	form := forms.ParseStatusForm(c)
	errs := form.Validate()
	if !errs.Empty() {
		renderForm(c, constants.PageStatusUpdate, gin.H{"name": form.Name}, fieldErrors(errs))
		return
	}

	if taken, ok := h.nameTaken(c, form.Name, status.ID); !ok {
		return
	} else if taken {
		renderForm(c, constants.PageStatusUpdate, gin.H{"name": form.Name},
			gin.H{"name": []string{msgStatusNameTaken}})
		return
	}

	status.Name = form.Name
	if err := h.statusRepo.Update(status); err != nil {
		log.WithError(err).Error("failed to update status")
		apierrors.InternalError(c, "Failed to update status")
		return
	}

	flash.Success(c, constants.MsgStatusUpdated)
	c.Redirect(http.StatusFound, constants.PathStatuses)
}

// Delete removes a status unless a task still uses it.
func (h *StatusHandler) Delete(c *gin.Context) {
	status, ok := h.loadStatus(c)
	if !ok {
		return
	}

	if err := h.statusRepo.Delete(status.ID); err != nil {
		if errors.Is(err, repository.ErrProtected) {
			flash.Error(c, constants.MsgStatusInUse)
			c.Redirect(http.StatusFound, constants.PathStatuses)
			return
		}
		log.WithError(err).Error("failed to delete status")
		apierrors.InternalError(c, "Failed to delete status")
		return
	}

	flash.Success(c, constants.MsgStatusDeleted)
	c.Redirect(http.StatusFound, constants.PathStatuses)
}

func (h *StatusHandler) loadStatus(c *gin.Context) (*models.Status, bool) {
	id, ok := paramID(c)
	if !ok {
		apierrors.NotFound(c, "Status not found")
		return nil, false
	}

	status, err := h.statusRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "Status not found")
			return nil, false
		}
		log.WithError(err).Error("failed to load status")
		apierrors.InternalError(c, "Failed to load status")
		return nil, false
	}

	return status, true
}

// nameTaken reports whether another status already has the name. The
// second return value is false when the lookup itself failed and a
// response has been written.
func (h *StatusHandler) nameTaken(c *gin.Context, name string, selfID uint64) (bool, bool) {
	existing, err := h.statusRepo.FindByName(name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, true
		}
		log.WithError(err).Error("failed to check status name")
		apierrors.InternalError(c, "Failed to check status name")
		return false, false
	}
	return existing.ID != selfID, true
}
