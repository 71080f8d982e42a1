package identity

import "github.com/google/uuid"

// Patient is the identity service's view of a patient
type Patient struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	IsActive bool      `json:"is_active"`
}

// Provider is the identity service's view of a provider
type Provider struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	Specialization string    `json:"specialization"`
	IsActive       bool      `json:"is_active"`
}
