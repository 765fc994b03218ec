package constants

// Session
const (
	SessionCookieName = "task_session"
	ContextKeyUserID  = "user_id"
	SessionKeyFlashes = "flashes"
)

// Auth
const (
	MinPasswordLength = 3
)

// Field limits
const (
	MaxUsernameLength   = 150
	MaxNameLength       = 150
	MaxStatusNameLength = 40
	MaxLabelNameLength  = 100
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 50
	MaxPageSize     = 100
)

// Redirect targets
const (
	PathHome     = "/"
	PathLogin    = "/login/"
	PathUsers    = "/users/"
	PathStatuses = "/statuses/"
	PathLabels   = "/labels/"
	PathTasks    = "/tasks/"
)
