package employee

import (
	"skill-match/internal/domain/skill"

	"github.com/google/uuid"
)

// Profile is the employee side of matching. Version changes whenever the
// profile or its skill set is edited.
type Profile struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Name            string
	Location        string
	Skills          skill.Set
	ExperienceYears int
	Version         int64
}
