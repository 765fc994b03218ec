package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/akrotov/task-manager/internal/constants"
	"github.com/akrotov/task-manager/internal/models"
)

func registrationForm(username string) url.Values {
	form := url.Values{}
	form.Set("username", username)
	form.Set("first_name", "Harry")
	form.Set("last_name", "Potter")
	form.Set("password1", "supersecret")
	form.Set("password2", "supersecret")
	return form
}

func TestUsersList_Public(t *testing.T) {
	env := setupTestEnv(t)
	env.register(t, "visible", "supersecret")

	w := env.do(t, http.MethodGet, "/users/", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "visible")
	require.Contains(t, w.Body.String(), constants.PageUsersList.Title)
}

func TestUserCreate(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPost, "/users/create/", registrationForm("hpotter"), nil)

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, constants.PathLogin, w.Header().Get("Location"))
	require.EqualValues(t, 1, env.count(t, &models.User{}))

	user, err := env.userRepo.FindByUsername("hpotter")
	require.NoError(t, err)
	require.Equal(t, "Harry Potter", user.FullName())
	require.NotEqual(t, "supersecret", user.PasswordHash)
}

func TestUserCreate_ValidationErrors(t *testing.T) {
	env := setupTestEnv(t)

	form := registrationForm("The Boy Who Lived")
	w := env.do(t, http.MethodPost, "/users/create/", form, nil)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(),
		"Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters.")
	require.EqualValues(t, 0, env.count(t, &models.User{}))
}

func TestUserCreate_UsernameTaken(t *testing.T) {
	env := setupTestEnv(t)
	env.register(t, "hpotter", "supersecret")

	w := env.do(t, http.MethodPost, "/users/create/", registrationForm("hpotter"), nil)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "A user with that username already exists.")
	require.EqualValues(t, 1, env.count(t, &models.User{}))
}

func TestUserUpdate_Self(t *testing.T) {
	env := setupTestEnv(t)
	user, cookies := env.loginAs(t, "hpotter")

	form := url.Values{}
	form.Set("username", "hpotter")
	form.Set("first_name", "Henry")
	form.Set("last_name", "Potter")

	w := env.do(t, http.MethodPost, fmt.Sprintf("/users/%d/update/", user.ID), form, cookies)

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, constants.PathUsers, w.Header().Get("Location"))

	updated, err := env.userRepo.FindByID(user.ID)
	require.NoError(t, err)
	require.Equal(t, "Henry", updated.FirstName)
}

func TestUserUpdate_OtherUserDenied(t *testing.T) {
	env := setupTestEnv(t)
	other := env.register(t, "rweasley", "supersecret")
	_, cookies := env.loginAs(t, "hpotter")

	form := url.Values{}
	form.Set("username", "rweasley")
	form.Set("first_name", "Changed")
	form.Set("last_name", "Changed")

	w := env.do(t, http.MethodPost, fmt.Sprintf("/users/%d/update/", other.ID), form, cookies)

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, constants.PathUsers, w.Header().Get("Location"))

	// The target row is unmodified
	unchanged, err := env.userRepo.FindByID(other.ID)
	require.NoError(t, err)
	require.Equal(t, "Test", unchanged.FirstName)
}

func TestUserUpdate_Unauthenticated(t *testing.T) {
	env := setupTestEnv(t)
	user := env.register(t, "hpotter", "supersecret")

	form := url.Values{}
	form.Set("username", "hpotter")

	w := env.do(t, http.MethodPost, fmt.Sprintf("/users/%d/update/", user.ID), form, nil)

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, constants.PathLogin, w.Header().Get("Location"))
}

func TestUserDelete_OtherUserDenied(t *testing.T) {
	env := setupTestEnv(t)
	other := env.register(t, "rweasley", "supersecret")
	_, cookies := env.loginAs(t, "hpotter")

	w := env.do(t, http.MethodPost, fmt.Sprintf("/users/%d/delete/", other.ID), nil, cookies)

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, constants.PathUsers, w.Header().Get("Location"))
	require.EqualValues(t, 2, env.count(t, &models.User{}))
}

func TestUserDelete_Self(t *testing.T) {
	env := setupTestEnv(t)
	user, cookies := env.loginAs(t, "hpotter")

	w := env.do(t, http.MethodPost, fmt.Sprintf("/users/%d/delete/", user.ID), nil, cookies)

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, constants.PathUsers, w.Header().Get("Location"))
	require.EqualValues(t, 0, env.count(t, &models.User{}))

	_, err := env.userRepo.FindByID(user.ID)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestUserDelete_InUse(t *testing.T) {
	env := setupTestEnv(t)
	user, cookies := env.loginAs(t, "hpotter")
	status := env.createStatus(t, "new")
	env.createTask(t, "Defeat Voldemort", user.ID, status.ID)

	w := env.do(t, http.MethodPost, fmt.Sprintf("/users/%d/delete/", user.ID), nil, cookies)

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, constants.PathUsers, w.Header().Get("Location"))
	require.EqualValues(t, 1, env.count(t, &models.User{}))

	// The error message shows on the users list
	cookies = mergeCookies(cookies, w.Result().Cookies())
	w = env.do(t, http.MethodGet, "/users/", nil, cookies)
	require.Contains(t, w.Body.String(), constants.MsgUserInUse)
}

func TestUserUpdate_NotFound(t *testing.T) {
	env := setupTestEnv(t)
	_, cookies := env.loginAs(t, "hpotter")

	w := env.do(t, http.MethodGet, "/users/9999/update/", nil, cookies)

	require.Equal(t, http.StatusNotFound, w.Code)
}
