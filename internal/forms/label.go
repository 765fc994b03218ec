package forms

import (
	"github.com/gin-gonic/gin"

	"github.com/akrotov/task-manager/internal/constants"
)

// LabelForm carries the single field of the label form.
type LabelForm struct {
	Name string
}

// ParseLabelForm binds the label form from the request.
func ParseLabelForm(c *gin.Context) *LabelForm {
	return &LabelForm{Name: c.PostForm("name")}
}

// Validate reports every violated constraint per field.
func (f *LabelForm) Validate() Errors {
	errs := Errors{}
	if checkRequired(errs, "name", f.Name) {
		checkMaxLength(errs, "name", f.Name, constants.MaxLabelNameLength)
	}
	return errs
}
