package forms

import (
	"github.com/gin-gonic/gin"

	"github.com/akrotov/task-manager/internal/constants"
)

// RegistrationForm carries the fields of the user sign-up form.
type RegistrationForm struct {
	Username  string
	FirstName string
	LastName  string
	Password1 string
	Password2 string
}

// ParseRegistrationForm binds the sign-up form from the request.
func ParseRegistrationForm(c *gin.Context) *RegistrationForm {
	return &RegistrationForm{
		Username:  c.PostForm("username"),
		FirstName: c.PostForm("first_name"),
		LastName:  c.PostForm("last_name"),
		Password1: c.PostForm("password1"),
		Password2: c.PostForm("password2"),
	}
}

// Validate reports every violated constraint per field.
func (f *RegistrationForm) Validate() Errors {
	errs := Errors{}

	if checkRequired(errs, "username", f.Username) {
		checkUsernameChars(errs, "username", f.Username)
	}
	checkMaxLength(errs, "username", f.Username, constants.MaxUsernameLength)

	if checkRequired(errs, "first_name", f.FirstName) {
		checkMaxLength(errs, "first_name", f.FirstName, constants.MaxNameLength)
	}
	if checkRequired(errs, "last_name", f.LastName) {
		checkMaxLength(errs, "last_name", f.LastName, constants.MaxNameLength)
	}

	checkPasswordPair(errs, f.Password1, f.Password2)

	return errs
}

// UserEditForm carries the fields of the user editing form.
type UserEditForm struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
}

// ParseUserEditForm binds the user editing form from the request.
func ParseUserEditForm(c *gin.Context) *UserEditForm {
	return &UserEditForm{
		Username:  c.PostForm("username"),
		FirstName: c.PostForm("first_name"),
		LastName:  c.PostForm("last_name"),
		Email:     c.PostForm("email"),
	}
}

// Validate reports every violated constraint per field.
func (f *UserEditForm) Validate() Errors {
	errs := Errors{}

	if checkRequired(errs, "username", f.Username) {
		checkUsernameChars(errs, "username", f.Username)
	}
	checkMaxLength(errs, "username", f.Username, constants.MaxUsernameLength)

	if checkRequired(errs, "first_name", f.FirstName) {
		checkMaxLength(errs, "first_name", f.FirstName, constants.MaxNameLength)
	}
	if checkRequired(errs, "last_name", f.LastName) {
		checkMaxLength(errs, "last_name", f.LastName, constants.MaxNameLength)
	}

	return errs
}
