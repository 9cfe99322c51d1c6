package domain

type Role string

const (
	RolePatient Role = "PATIENT"
	RoleAdmin   Role = "ADMIN"
)

// Principal is the per-request identity assertion. The zero value is the
// anonymous caller. A principal carries exactly one role; role switches go
// through revoke-then-issue, never by mutating an existing session.
type Principal struct {
	Role      Role   `json:"role"`
	PatientID string `json:"patient_id,omitempty"`
	Email     string `json:"email,omitempty"`
}

func (p Principal) IsAnonymous() bool { return p.Role == "" }

func (p Principal) IsPatient() bool { return p.Role == RolePatient }

func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }
