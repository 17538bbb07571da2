package models

import (
	"time"

	"github.com/google/uuid"
)

// Lesson is a course the student is enrolled in.
type Lesson struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Subject     string    `json:"subject"`
	Progress    int       `json:"progress"`
	CreatedAt   time.Time `json:"created_at"`
}

// HomeworkStatus is the lifecycle state of an assignment.
type HomeworkStatus string

const (
	HomeworkAll       HomeworkStatus = "all"
	HomeworkPending   HomeworkStatus = "pending"
	HomeworkSubmitted HomeworkStatus = "submitted"
	HomeworkOverdue   HomeworkStatus = "overdue"
)

// Valid reports whether s is one of the known statuses (including the "all" filter).
func (s HomeworkStatus) Valid() bool {
	switch s {
	case HomeworkAll, HomeworkPending, HomeworkSubmitted, HomeworkOverdue:
		return true
	}
	return false
}

// Homework is an assignment attached to a lesson.
type Homework struct {
	ID          uuid.UUID      `json:"id"`
	LessonID    *uuid.UUID     `json:"lesson_id,omitempty"`
	Title       string         `json:"title"`
	Subject     string         `json:"subject"`
	Description string         `json:"description"`
	Status      HomeworkStatus `json:"status"`
	DueDate     string         `json:"due_date"`
}

// HomeworkSubmission links an uploaded attachment to an assignment.
type HomeworkSubmission struct {
	HomeworkID uuid.UUID `json:"homework_id"`
	StudentID  uuid.UUID `json:"student_id"`
	StorageKey string    `json:"storage_key"`
	FileName   string    `json:"file_name"`
}
