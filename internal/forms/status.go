package forms

import (
	"github.com/gin-gonic/gin"

	"github.com/akrotov/task-manager/internal/constants"
)

// StatusForm carries the single field of the status form.
type StatusForm struct {
	Name string
}

// ParseStatusForm binds the status form from the request.
func ParseStatusForm(c *gin.Context) *StatusForm {
	return &StatusForm{Name: c.PostForm("name")}
}

// Validate reports every violated constraint per field.
func (f *StatusForm) Validate() Errors {
	errs := Errors{}
	if checkRequired(errs, "name", f.Name) {
		checkMaxLength(errs, "name", f.Name, constants.MaxStatusNameLength)
	}
	return errs
}
