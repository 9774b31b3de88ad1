package models

// Role identifies which kind of account a principal is.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
)

// Capability is a single permission checked by the authorization gate.
type Capability string

const (
	CapBookAppointment     Capability = "appointment:book"
	CapViewOwnAppointments Capability = "appointment:view-own"
	CapManageAppointments  Capability = "appointment:manage"
	CapManageAvailability  Capability = "availability:manage"
	CapManageProfile       Capability = "profile:manage"
	CapVerifyDoctors       Capability = "doctor:verify"
)

var roleCapabilities = map[Role][]Capability{
	RolePatient: {CapBookAppointment, CapViewOwnAppointments, CapManageProfile},
	RoleDoctor:  {CapManageAppointments, CapManageAvailability, CapManageProfile},
	RoleAdmin:   {CapVerifyDoctors, CapViewOwnAppointments, CapManageAppointments},
}

// Principal is the authenticated caller of a request.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Valid reports whether the role is one this system issues.
func (r Role) Valid() bool {
	_, ok := roleCapabilities[r]
	return ok
}

// Can reports whether the principal's role grants every capability in caps.
func (p Principal) Can(caps ...Capability) bool {
	granted := roleCapabilities[p.Role]
	for _, want := range caps {
		found := false
		for _, g := range granted {
			if g == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Owns reports whether the principal may act on resources of the given account.
// Admins own everything.
func (p Principal) Owns(accountID string) bool {
	return p.Role == RoleAdmin || p.ID == accountID
}
