package employer

import "github.com/google/uuid"

type Profile struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	CompanyName  string
	ContactEmail string
	Location     string
}
