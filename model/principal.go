package model

// PrincipalType identifies the kind of actor behind a request. Jobs,
// interviews and ratings store the acting principal as a (type, id)
// pair instead of a foreign key into one account table, so the same
// column pair can point at a user, a coordinator or a company.
type PrincipalType string

const (
	PrincipalUser        PrincipalType = "user"
	PrincipalCoordinator PrincipalType = "coordinator"
	PrincipalCompany     PrincipalType = "company"
	PrincipalAdmin       PrincipalType = "admin"
)

// Principal is the caller identity passed into every ownership check.
type Principal struct {
	Type PrincipalType
	ID   int64
}

// Is reports whether two principals are the same actor.
func (p Principal) Is(other Principal) bool {
	return p.Type == other.Type && p.ID == other.ID
}
