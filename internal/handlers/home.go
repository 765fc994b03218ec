package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/akrotov/task-manager/internal/constants"
	apierrors "github.com/akrotov/task-manager/internal/errors"
	"github.com/akrotov/task-manager/internal/flash"
	"github.com/akrotov/task-manager/internal/forms"
	"github.com/akrotov/task-manager/internal/services"
)

// SessionHandler serves the home page and the login/logout flow.
type SessionHandler struct {
	authService *services.AuthService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(authService *services.AuthService) *SessionHandler {
	return &SessionHandler{
		authService: authService,
	}
}

// Home renders the home page.
func (h *SessionHandler) Home(c *gin.Context) {
	renderPage(c, constants.PageHome, gin.H{})
}

// LoginPage renders the login form.
func (h *SessionHandler) LoginPage(c *gin.Context) {
	renderForm(c, constants.PageLogin, gin.H{"username": ""}, nil)
}

// Login authenticates the submitted credentials and initializes the
// session.
func (h *SessionHandler) Login(c *gin.Context) {
	form := forms.ParseLoginForm(c)
	if errs := form.Validate(); !errs.Empty() {
		renderForm(c, constants.PageLogin, gin.H{"username": form.Username}, fieldErrors(errs))
		return
	}

	user, err := h.authService.Authenticate(form.Username, form.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			renderForm(c, constants.PageLogin,
				gin.H{"username": form.Username},
				gin.H{"__all__": []string{constants.MsgInvalidCredentials}})
			return
		}
		log.WithError(err).Error("login failed")
		apierrors.InternalError(c, "")
		return
	}

	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, user.ID)
	if err := session.Save(); err != nil {
		log.WithError(err).Error("failed to save session")
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	flash.Info(c, constants.MsgLoggedIn)
	c.Redirect(http.StatusFound, constants.PathHome)
}

// Logout removes the authentication session.
func (h *SessionHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		log.WithError(err).Error("failed to clear session")
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	flash.Info(c, constants.MsgLoggedOut)
	c.Redirect(http.StatusFound, constants.PathHome)
}
