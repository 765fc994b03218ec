package forms

import "github.com/gin-gonic/gin"

// LoginForm carries the credentials of the login form.
type LoginForm struct {
	Username string
	Password string
}

// ParseLoginForm binds the login form from the request.
func ParseLoginForm(c *gin.Context) *LoginForm {
	return &LoginForm{
		Username: c.PostForm("username"),
		Password: c.PostForm("password"),
	}
}

// Validate reports every violated constraint per field.
func (f *LoginForm) Validate() Errors {
	errs := Errors{}
	checkRequired(errs, "username", f.Username)
	checkRequired(errs, "password", f.Password)
	return errs
}
