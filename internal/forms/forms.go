// Package forms binds and validates submitted form data. Every violated
// constraint is reported, one message per rule, keyed by field name.
package forms

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/akrotov/task-manager/internal/constants"
)

// Field error messages. The wording matches the fixtures used by the
// existing test suites and must not drift.
const (
	MsgRequired        = "This field is required."
	MsgMaxLength       = "Ensure this value has at most %d characters (it has %d)."
	MsgInvalidUsername = "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."

	MsgPasswordMismatch = "The two password fields didn't match."
	MsgPasswordTooShort = "Your password is too short. It must contain at least %d characters."
	MsgInvalidChoice    = "Select a valid choice. That choice is not one of the available choices."
)

// usernameRe restricts usernames to letters, digits and @ . + - _.
// Letters and digits from any script are allowed, so the Unicode
// classes are spelled out: Go's \w alone only covers ASCII.
var usernameRe = regexp.MustCompile(`^[\w\p{L}\p{N}.@+-]+$`)

// Errors collects validation failures per field.
type Errors map[string][]string

func (e Errors) add(field, message string) {
	e[field] = append(e[field], message)
}

// Empty reports whether the form passed validation.
func (e Errors) Empty() bool {
	return len(e) == 0
}

func checkRequired(e Errors, field, value string) bool {
	if value == "" {
		e.add(field, MsgRequired)
		return false
	}
	return true
}

func checkMaxLength(e Errors, field, value string, max int) {
	if n := utf8.RuneCountInString(value); n > max {
		e.add(field, fmt.Sprintf(MsgMaxLength, max, n))
	}
}

func checkUsernameChars(e Errors, field, value string) {
	if value != "" && !usernameRe.MatchString(value) {
		e.add(field, MsgInvalidUsername)
	}
}

func checkPasswordPair(e Errors, password1, password2 string) {
	ok1 := checkRequired(e, "password1", password1)
	ok2 := checkRequired(e, "password2", password2)
	if !ok1 || !ok2 {
		return
	}

	if password1 != password2 {
		e.add("password2", MsgPasswordMismatch)
		return
	}
	if utf8.RuneCountInString(password1) < constants.MinPasswordLength {
		e.add("password2", fmt.Sprintf(MsgPasswordTooShort, constants.MinPasswordLength))
	}
}
