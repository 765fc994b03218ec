// Package authz holds the ownership rules for mutating entities.
// Authentication is enforced earlier by the session middleware; these
// checks only decide whether an authenticated actor may touch a
// particular record. A denial is ordinary control flow, translated by
// the handlers into a redirect with a flash message.
package authz

import (
	"errors"

	"github.com/akrotov/task-manager/internal/models"
)

var (
	// ErrNotSelf is returned when a user tries to change or delete
	// another user's account.
	ErrNotSelf = errors.New("only the user themself may modify the account")
	// ErrNotAuthor is returned when someone other than the task's author
	// tries to delete it.
	ErrNotAuthor = errors.New("only the author may delete the task")
)

// CanModifyUser allows update and delete on a user record for the
// owning identity only.
func CanModifyUser(actorID uint64, target *models.User) error {
	if actorID != target.ID {
		return ErrNotSelf
	}
	return nil
}

// CanDeleteTask allows deletion for the task's author only.
func CanDeleteTask(actorID uint64, target *models.Task) error {
	if actorID != target.AuthorID {
		return ErrNotAuthor
	}
	return nil
}
