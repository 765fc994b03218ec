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

const msgLabelNameTaken = "Label with this Name already exists."

// LabelHandler implements the label CRUD flows. Every page requires an
// authenticated session; there is no per-row ownership.
type LabelHandler struct {
	labelRepo repository.LabelRepository
}

// NewLabelHandler creates a new LabelHandler.
func NewLabelHandler(labelRepo repository.LabelRepository) *LabelHandler {
	return &LabelHandler{
		labelRepo: labelRepo,
	}
}

// List shows all labels.
func (h *LabelHandler) List(c *gin.Context) {
	labels, err := h.labelRepo.List()
	if err != nil {
		log.WithError(err).Error("failed to list labels")
		apierrors.InternalError(c, "Failed to fetch labels")
		return
	}

	renderPage(c, constants.PageLabelsList, gin.H{"labels": dto.ToLabelDTOs(labels)})
}

// CreatePage renders the label creation form.
func (h *LabelHandler) CreatePage(c *gin.Context) {
	renderForm(c, constants.PageLabelCreate, gin.H{"name": ""}, nil)
}

// Create persists a new label.
func (h *LabelHandler) Create(c *gin.Context) {
	form := forms.ParseLabelForm(c)
	errs := form.Validate()
	if !errs.Empty() {
		renderForm(c, constants.PageLabelCreate, gin.H{"name": form.Name}, fieldErrors(errs))
		return
	}

	if taken, ok := h.nameTaken(c, form.Name, 0); !ok {
		return
	} else if taken {
		renderForm(c, constants.PageLabelCreate, gin.H{"name": form.Name},
			gin.H{"name": []string{msgLabelNameTaken}})
		return
	}

	label := &models.Label{Name: form.Name}
	if err := h.labelRepo.Create(label); err != nil {
		log.WithError(err).Error("failed to create label")
		apierrors.InternalError(c, "Failed to create label")
		return
	}

	flash.Success(c, constants.MsgLabelCreated)
	c.Redirect(http.StatusFound, constants.PathLabels)
}

// UpdatePage renders the editing form for a label.
func (h *LabelHandler) UpdatePage(c *gin.Context) {
	label, ok := h.loadLabel(c)
	if !ok {
		return
	}

	renderForm(c, constants.PageLabelUpdate, gin.H{"name": label.Name}, nil)
}

// Update applies the form to an existing label.
func (h *LabelHandler) Update(c *gin.Context) {
	label, ok := h.loadLabel(c)
	if !ok {
		return
	}

	form := forms.ParseLabelForm(c)
	errs := form.Validate()
	if !errs.Empty() {
		renderForm(c, constants.PageLabelUpdate, gin.H{"name": form.Name}, fieldErrors(errs))
		return
	}

	if taken, ok := h.nameTaken(c, form.Name, label.ID); !ok {
		return
	} else if taken {
		renderForm(c, constants.PageLabelUpdate, gin.H{"name": form.Name},
			gin.H{"name": []string{msgLabelNameTaken}})
		return
	}

	label.Name = form.Name
	if err := h.labelRepo.Update(label); err != nil {
		log.WithError(err).Error("failed to update label")
		apierrors.InternalError(c, "Failed to update label")
		return
	}

	flash.Success(c, constants.MsgLabelUpdated)
	c.Redirect(http.StatusFound, constants.PathLabels)
}

// Delete removes a label unless a task still carries it.
func (h *LabelHandler) Delete(c *gin.Context) {
	label, ok := h.loadLabel(c)
	if !ok {
		return
	}

	if err := h.labelRepo.Delete(label.ID); err != nil {
		if errors.Is(err, repository.ErrProtected) {
			flash.Error(c, constants.MsgLabelInUse)
			c.Redirect(http.StatusFound, constants.PathLabels)
			return
		}
		log.WithError(err).Error("failed to delete label")
		apierrors.InternalError(c, "Failed to delete label")
		return
	}

	flash.Success(c, constants.MsgLabelDeleted)
	c.Redirect(http.StatusFound, constants.PathLabels)
}

func (h *LabelHandler) loadLabel(c *gin.Context) (*models.Label, bool) {
	id, ok := paramID(c)
	if !ok {
		apierrors.NotFound(c, "Label not found")
		return nil, false
	}

	label, err := h.labelRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "Label not found")
			return nil, false
		}
		log.WithError(err).Error("failed to load label")
		apierrors.InternalError(c, "Failed to load label")
		return nil, false
	}

	return label, true
}

func (h *LabelHandler) nameTaken(c *gin.Context, name string, selfID uint64) (bool, bool) {
	existing, err := h.labelRepo.FindByName(name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, true
		}
		log.WithError(err).Error("failed to check label name")
		apierrors.InternalError(c, "Failed to check label name")
		return false, false
	}
	return existing.ID != selfID, true
}
