package domain

import (
	"time"

	"congrego/internal/schedule"
)

// Member is a congregation member record; distinct from User, which is a
// login account.
type Member struct {
	ID            int64         `json:"id"`
	FullName      string        `json:"full_name" validate:"required"`
	BirthDate     schedule.Date `json:"birth_date"`
	Gender        string        `json:"gender" validate:"required"`
	CPF           string        `json:"cpf,omitempty"`
	RG            string        `json:"rg,omitempty"`
	Phone         string        `json:"phone" validate:"required"`
	Email         string        `json:"email" validate:"required,email"`
	Street        string        `json:"street,omitempty"`
	Number        string        `json:"number,omitempty"`
	Neighborhood  string        `json:"neighborhood,omitempty"`
	City          string        `json:"city,omitempty"`
	State         string        `json:"state,omitempty"`
	CEP           string        `json:"cep,omitempty"`
	MotherName    string        `json:"mother_name,omitempty"`
	FatherName    string        `json:"father_name,omitempty"`
	MaritalStatus string        `json:"marital_status,omitempty"`
	HasChildren   bool          `json:"has_children"`
	ChildrenCount int           `json:"children_count"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// Age at the given moment, respecting whether the birthday has passed.
func (m *Member) Age(now time.Time) int {
	age := now.Year() - m.BirthDate.Year
	birthdayThisYear := time.Date(now.Year(), m.BirthDate.Month, m.BirthDate.Day, 0, 0, 0, 0, time.UTC)
	if now.Before(birthdayThisYear) {
		age--
	}
	return age
}
