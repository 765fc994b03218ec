package constants

// Flash messages. The wording is load-bearing: existing fixtures match
// on the exact strings.
const (
	MsgLoggedIn     = "You are logged in"
	MsgLoggedOut    = "Logged out successfully"
	MsgNoPermission = "You are not authorized! Please log in."

	MsgUserRegistered = "User is successfully registered"
	MsgUserUpdated    = "User is successfully updated"
	MsgUserDeleted    = "User is successfully deleted"
	MsgNotSelf        = "You do not have permission to change another user."

	MsgStatusCreated = "Status is successfully created"
	MsgStatusUpdated = "Status is successfully updated"
	MsgStatusDeleted = "Status is successfully deleted"

	MsgLabelCreated = "Label is successfully created"
	MsgLabelUpdated = "Label is successfully updated"
	MsgLabelDeleted = "Label is successfully deleted"

	MsgTaskCreated = "Task is successfully created"
	MsgTaskUpdated = "Task is successfully updated"
	MsgTaskDeleted = "Task is successfully deleted"
	MsgNotAuthor   = "The task can be deleted only by its author"

	MsgStatusInUse = "This status cannot be deleted because it is in use in a task"
	MsgLabelInUse  = "This label cannot be deleted because it is in use in a task"
	MsgUserInUse   = "This user cannot be deleted because it is in use in a task"

	MsgInvalidCredentials = "Please enter a correct username and password."
)
