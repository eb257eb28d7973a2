package domain

const (
	RoleFacility = "FAC"
	RoleAdmin    = "ADM"
	RoleEmployee = "EMP"
)

// User is an authenticated account. Roles are looked up, never
// mutated, by the booking core.
type User struct {
	ID       string
	Login    string
	FullName string
	Roles    []string
}
