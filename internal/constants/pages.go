package constants

// PageMeta carries the title/description pair rendered on every page.
type PageMeta struct {
	Title       string `json:"page_title"`
	Description string `json:"page_description"`
}

var (
	PageHome = PageMeta{Title: "Task Manager", Description: "Manage your tasks in one place."}

	PageLogin = PageMeta{Title: "Login", Description: "Log in into Task Manager."}

	PageUsersList  = PageMeta{Title: "Users", Description: "List of Task Manager Users."}
	PageUserCreate = PageMeta{Title: "Registration", Description: "User Registration on Task Manager."}
	PageUserUpdate = PageMeta{Title: "User editing", Description: "User editing on Task Manager."}

	PageStatusesList = PageMeta{Title: "Statuses", Description: "List of Task Statuses."}
	PageStatusCreate = PageMeta{Title: "Status creating", Description: "Status creating on Task Manager."}
	PageStatusUpdate = PageMeta{Title: "Status editing", Description: "Status editing on Task Manager."}

	PageLabelsList  = PageMeta{Title: "Labels", Description: "List of Task Labels."}
	PageLabelCreate = PageMeta{Title: "Label creating", Description: "Label creating on Task Manager."}
	PageLabelUpdate = PageMeta{Title: "Label editing", Description: "Label editing on Task Manager."}

	PageTasksList  = PageMeta{Title: "Tasks", Description: "List of Tasks."}
	PageTaskDetail = PageMeta{Title: "Task view", Description: "Task details on Task Manager."}
	PageTaskCreate = PageMeta{Title: "Task creating", Description: "Task creating on Task Manager."}
	PageTaskUpdate = PageMeta{Title: "Task editing", Description: "Task editing on Task Manager."}
)
