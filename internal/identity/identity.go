package identity

// CurrentUser is the authenticated caller, passed explicitly into every
// usecase instead of being read from an ambient context.
type CurrentUser struct {
	ID    uint
	Email string
	Role  string
}

const (
	RoleStylist = "stylist"
	RoleAdmin   = "admin"
	RoleClient  = "client"
)

func (u CurrentUser) IsStylist() bool {
	return u.Role == RoleStylist || u.Role == RoleAdmin
}
