package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

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
)

// UserHandler implements the user CRUD flows. Listing and registration
// are public; editing and deletion are self-service only.
type UserHandler struct {
	authService *services.AuthService
	userRepo    repository.UserRepository
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(authService *services.AuthService, userRepo repository.UserRepository) *UserHandler {
	return &UserHandler{
		authService: authService,
		userRepo:    userRepo,
	}
}

// List shows all users. The page is public.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userRepo.List()
	if err != nil {
		log.WithError(err).Error("failed to list users")
		apierrors.InternalError(c, "Failed to fetch users")
		return
	}

	renderPage(c, constants.PageUsersList, gin.H{"users": dto.ToUserDTOs(users)})
}

// CreatePage renders the registration form. Reachable by anonymous
// visitors.
func (h *UserHandler) CreatePage(c *gin.Context) {
	renderForm(c, constants.PageUserCreate, h.registrationFormData(&forms.RegistrationForm{}), nil)
}

// Create registers a new user and redirects to the login page.
func (h *UserHandler) Create(c *gin.Context) {
	form := forms.ParseRegistrationForm(c)
	errs := form.Validate()
	if !errs.Empty() {
		renderForm(c, constants.PageUserCreate, h.registrationFormData(form), fieldErrors(errs))
		return
	}

	_, err := h.authService.Register(services.RegisterInput{
		Username:  form.Username,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Password:  form.Password1,
	})
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			renderForm(c, constants.PageUserCreate, h.registrationFormData(form),
				gin.H{"username": []string{msgUsernameTaken}})
			return
		}
		log.WithError(err).Error("registration failed")
		apierrors.InternalError(c, "Failed to register user")
		return
	}

	flash.Success(c, constants.MsgUserRegistered)
	c.Redirect(http.StatusFound, constants.PathLogin)
}

// UpdatePage renders the editing form for the user's own account.
func (h *UserHandler) UpdatePage(c *gin.Context) {
	target, ok := h.loadOwnUser(c)
	if !ok {
		return
	}

	renderForm(c, constants.PageUserUpdate, gin.H{
		"username":   target.Username,
		"first_name": target.FirstName,
		"last_name":  target.LastName,
		"email":      target.Email,
	}, nil)
}

// Update applies the editing form to the user's own account.
func (h *UserHandler) Update(c *gin.Context) {
	target, ok := h.loadOwnUser(c)
	if !ok {
		return
	}

	form := forms.ParseUserEditForm(c)
	errs := form.Validate()
	if !errs.Empty() {
		renderForm(c, constants.PageUserUpdate, h.editFormData(form), fieldErrors(errs))
		return
	}

	err := h.authService.UpdateUser(target, services.UpdateUserInput{
		Username:  form.Username,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
	})
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			renderForm(c, constants.PageUserUpdate, h.editFormData(form),
				gin.H{"username": []string{msgUsernameTaken}})
			return
		}
		log.WithError(err).Error("failed to update user")
		apierrors.InternalError(c, "Failed to update user")
		return
	}

	flash.Success(c, constants.MsgUserUpdated)
	c.Redirect(http.StatusFound, constants.PathUsers)
}

// Delete removes the user's own account. A user still referenced by a
// task cannot be deleted. Deleting the account ends the session.
func (h *UserHandler) Delete(c *gin.Context) {
	target, ok := h.loadOwnUser(c)
	if !ok {
		return
	}

	if err := h.userRepo.Delete(target.ID); err != nil {
		if errors.Is(err, repository.ErrProtected) {
			flash.Error(c, constants.MsgUserInUse)
			c.Redirect(http.StatusFound, constants.PathUsers)
			return
		}
		log.WithError(err).Error("failed to delete user")
		apierrors.InternalError(c, "Failed to delete user")
		return
	}

	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		log.WithError(err).Error("failed to clear session")
	}

	flash.Success(c, constants.MsgUserDeleted)
	c.Redirect(http.StatusFound, constants.PathUsers)
}

// loadOwnUser loads the target user and enforces the self-service rule.
// On denial the caller must stop: the response is already written.
func (h *UserHandler) loadOwnUser(c *gin.Context) (*models.User, bool) {
	id, ok := paramID(c)
	if !ok {
		apierrors.NotFound(c, "User not found")
		return nil, false
	}

	target, err := h.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "User not found")
			return nil, false
		}
		log.WithError(err).Error("failed to load user")
		apierrors.InternalError(c, "Failed to load user")
		return nil, false
	}

	actorID, exists := middleware.GetUserID(c)
	if !exists {
		flash.Warning(c, constants.MsgNoPermission)
		c.Redirect(http.StatusFound, constants.PathLogin)
		return nil, false
	}

	if err := authz.CanModifyUser(actorID, target); err != nil {
		flash.Error(c, constants.MsgNotSelf)
		c.Redirect(http.StatusFound, constants.PathUsers)
		return nil, false
	}

	return target, true
}

func (h *UserHandler) registrationFormData(form *forms.RegistrationForm) gin.H {
	return gin.H{
		"username":   form.Username,
		"first_name": form.FirstName,
		"last_name":  form.LastName,
	}
}

func (h *UserHandler) editFormData(form *forms.UserEditForm) gin.H {
	return gin.H{
		"username":   form.Username,
		"first_name": form.FirstName,
		"last_name":  form.LastName,
		"email":      form.Email,
	}
}

const msgUsernameTaken = "A user with that username already exists."
