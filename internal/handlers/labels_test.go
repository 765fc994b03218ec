package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/akrotov/task-manager/internal/constants"
	"github.com/akrotov/task-manager/internal/models"
)

func TestLabels_RequireAuth(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodGet, "/labels/", nil, nil)

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, constants.PathLogin, w.Header().Get("Location"))
}

func TestLabelCreate(t *testing.T) {
	env := setupTestEnv(t)
	_, cookies := env.loginAs(t, "hpotter")

	form := url.Values{}
	form.Set("name", "bug")

	w := env.do(t, http.MethodPost, "/labels/create/", form, cookies)

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, constants.PathLabels, w.Header().Get("Location"))
	require.EqualValues(t, 1, env.count(t, &models.Label{}))
}

func TestLabelCreate_DuplicateName(t *testing.T) {
	env := setupTestEnv(t)
	_, cookies := env.loginAs(t, "hpotter")
	env.createLabel(t, "bug")

	form := url.Values{}
	form.Set("name", "bug")

	w := env.do(t, http.MethodPost, "/labels/create/", form, cookies)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Label with this Name already exists.")
	require.EqualValues(t, 1, env.count(t, &models.Label{}))
}

func TestLabelUpdate(t *testing.T) {
	env := setupTestEnv(t)
	_, cookies := env.loginAs(t, "hpotter")
	label := env.createLabel(t, "bug")

	form := url.Values{}
	form.Set("name", "feature")

	w := env.do(t, http.MethodPost, fmt.Sprintf("/labels/%d/update/", label.ID), form, cookies)

	require.Equal(t, http.StatusFound, w.Code)

	updated, err := env.labelRepo.FindByID(label.ID)
	require.NoError(t, err)
	require.Equal(t, "feature", updated.Name)
}

func TestLabelDelete(t *testing.T) {
	env := setupTestEnv(t)
	_, cookies := env.loginAs(t, "hpotter")
	label := env.createLabel(t, "stale")

	w := env.do(t, http.MethodPost, fmt.Sprintf("/labels/%d/delete/", label.ID), nil, cookies)

	require.Equal(t, http.StatusFound, w.Code)
	require.EqualValues(t, 0, env.count(t, &models.Label{}))
}

func TestLabelDelete_InUse(t *testing.T) {
	env := setupTestEnv(t)
	user, cookies := env.loginAs(t, "hpotter")
	status := env.createStatus(t, "new")
	label := env.createLabel(t, "urgent")

	task := &models.Task{
		Name:     "Defeat Voldemort",
		StatusID: status.ID,
		AuthorID: user.ID,
		Labels:   []models.Label{*label},
	}
	require.NoError(t, env.taskRepo.Create(task))

	w := env.do(t, http.MethodPost, fmt.Sprintf("/labels/%d/delete/", label.ID), nil, cookies)

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, constants.PathLabels, w.Header().Get("Location"))
	require.EqualValues(t, 1, env.count(t, &models.Label{}))

	cookies = mergeCookies(cookies, w.Result().Cookies())
	w = env.do(t, http.MethodGet, "/labels/", nil, cookies)
	require.Contains(t, w.Body.String(), constants.MsgLabelInUse)
}
