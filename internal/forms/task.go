package forms

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/akrotov/task-manager/internal/constants"
)

// TaskForm carries the fields of the task form. The author is never part
// of the form: it is assigned from the session identity on create and
// left untouched on update.
type TaskForm struct {
	Name        string
	Description string
	StatusID    uint64
	ExecutorID  *uint64
	LabelIDs    []uint64

	rawStatus   string
	rawExecutor string
	rawLabels   []string
}

// ParseTaskForm binds the task form from the request.
func ParseTaskForm(c *gin.Context) *TaskForm {
	return &TaskForm{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		rawStatus:   c.PostForm("status"),
		rawExecutor: c.PostForm("executor"),
		rawLabels:   c.PostFormArray("labels"),
	}
}

// Validate reports every violated constraint per field and parses the
// reference fields.
func (f *TaskForm) Validate() Errors {
	errs := Errors{}

	if checkRequired(errs, "name", f.Name) {
		checkMaxLength(errs, "name", f.Name, constants.MaxNameLength)
	}

	if checkRequired(errs, "status", f.rawStatus) {
		statusID, err := strconv.ParseUint(f.rawStatus, 10, 64)
		if err != nil {
			errs.add("status", MsgInvalidChoice)
		} else {
			f.StatusID = statusID
		}
	}

	if f.rawExecutor != "" {
		executorID, err := strconv.ParseUint(f.rawExecutor, 10, 64)
		if err != nil {
			errs.add("executor", MsgInvalidChoice)
		} else {
			f.ExecutorID = &executorID
		}
	}

	f.LabelIDs = f.LabelIDs[:0]
	for _, raw := range f.rawLabels {
		if raw == "" {
			continue
		}
		labelID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			errs.add("labels", MsgInvalidChoice)
			continue
		}
		f.LabelIDs = append(f.LabelIDs, labelID)
	}

	return errs
}
