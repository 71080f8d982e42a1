package entity

import "github.com/google/uuid"

// AppointmentFilter is a domain-level filter for querying appointments.
// Used by repository layer to avoid coupling with delivery DTOs.
type AppointmentFilter struct {
	ProviderID *uuid.UUID
	PatientID  *uuid.UUID
	Status     *AppointmentStatus
	StartDate  string // Format: YYYY-MM-DD, inclusive
	EndDate    string // Format: YYYY-MM-DD, inclusive
	Page       int
	Limit      int
}

// Offset returns the row offset for the filter's page, treating page and
// limit below 1 as defaults.
func (f *AppointmentFilter) Offset() int {
	page := f.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * f.PageSize()
}

// PageSize returns the effective page size, defaulting to 20 and capping
// at 100.
func (f *AppointmentFilter) PageSize() int {
	if f.Limit < 1 {
		return 20
	}
	if f.Limit > 100 {
		return 100
	}
	return f.Limit
}
