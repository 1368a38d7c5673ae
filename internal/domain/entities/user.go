package entities

// Role identifies who is acting on a service request.
type Role string

const (
	RoleClient   Role = "CLIENT"
	RoleMechanic Role = "MECHANIC"
	RoleAdmin    Role = "ADMIN"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleClient, RoleMechanic, RoleAdmin:
		return true
	default:
		return false
	}
}

// User is the read-only projection of an account that notifications need.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// ServiceType is a catalog entry (e.g. "Cambio de aceite").
type ServiceType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
