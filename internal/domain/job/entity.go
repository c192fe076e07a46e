package job

import (
	"time"

	"skill-match/internal/domain/employee"
	"skill-match/internal/domain/skill"

	"github.com/google/uuid"
)

// Job is open while FilledBy is nil. Once FilledBy and FilledAt are set they
// never change again.
type Job struct {
	ID                 uuid.UUID
	EmployerID         uuid.UUID
	Title              string
	Location           string
	Salary             string
	RequiredSkills     skill.Set
	ExperienceRequired int
	FilledBy           *uuid.UUID
	FilledAt           *time.Time
	CreatedAt          time.Time
	Version            int64
}

func (j Job) IsOpen() bool {
	return j.FilledBy == nil
}

func (j Job) IsFilled() bool {
	return j.FilledBy != nil && j.FilledAt != nil
}

// Filled is a filled job together with the employee that filled it.
type Filled struct {
	Job      Job
	Employee employee.Profile
}

// FilledEvent is published after a job transitions to filled.
type FilledEvent struct {
	JobID      uuid.UUID
	EmployerID uuid.UUID
	EmployeeID uuid.UUID
	FilledAt   time.Time
}

// TimeRange is inclusive on both ends.
type TimeRange struct {
	From time.Time
	To   time.Time
}

func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.From) && !t.After(r.To)
}

func (r TimeRange) Valid() bool {
	return !r.From.IsZero() && !r.To.IsZero() && !r.To.Before(r.From)
}
