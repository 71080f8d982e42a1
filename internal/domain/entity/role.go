package entity

// Caller roles as asserted by the external identity service. The scheduling
// core trusts the authenticated role claim and performs no credential checks.
const (
	RoleAdmin    = "admin"
	RoleProvider = "provider"
	RolePatient  = "patient"
)
