package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/akrotov/task-manager/internal/constants"
	"github.com/akrotov/task-manager/internal/flash"
)

// renderPage renders a page payload: the page metadata, any pending
// flash messages, and the handler-supplied data. The markup layer is
// not part of this application; clients render the payload.
func renderPage(c *gin.Context, meta constants.PageMeta, data gin.H) {
	payload := gin.H{
		"page_title":       meta.Title,
		"page_description": meta.Description,
	}

	if messages := flash.Take(c); len(messages) > 0 {
		payload["messages"] = messages
	}

	for key, value := range data {
		payload[key] = value
	}

	c.JSON(http.StatusOK, payload)
}

// renderForm re-renders a submitted form with its per-field error lists.
func renderForm(c *gin.Context, meta constants.PageMeta, form gin.H, errs gin.H) {
	data := gin.H{"form": form}
	if len(errs) > 0 {
		data["errors"] = errs
	}
	renderPage(c, meta, data)
}

// fieldErrors converts a validation error map for rendering.
func fieldErrors(errs map[string][]string) gin.H {
	out := gin.H{}
	for field, messages := range errs {
		out[field] = messages
	}
	return out
}

// paramID parses the numeric id path parameter.
func paramID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
