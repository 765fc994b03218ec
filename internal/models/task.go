package models

import "time"

type Task struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"type:varchar(150);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	StatusID    uint64    `gorm:"not null" json:"status_id"`
	AuthorID    uint64    `gorm:"not null" json:"author_id"`
	ExecutorID  *uint64   `json:"executor_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations. Deleting a referenced status or user is restricted at
	// the database level; the repositories check before deleting anyway.
	Status   Status  `gorm:"foreignKey:StatusID;constraint:OnDelete:RESTRICT" json:"status,omitempty"`
	Author   User    `gorm:"foreignKey:AuthorID;constraint:OnDelete:RESTRICT" json:"author,omitempty"`
	Executor *User   `gorm:"foreignKey:ExecutorID;constraint:OnDelete:RESTRICT" json:"executor,omitempty"`
	Labels   []Label `gorm:"many2many:task_labels" json:"labels,omitempty"`
}
