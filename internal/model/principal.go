package model

// Principal is the authenticated caller extracted from the access token.
type Principal struct {
	UserID int64
	Email  string
	Roles  RoleList
}

func (p Principal) IsAdmin() bool {
	return p.Roles.Has(RoleAdmin)
}

func (p Principal) IsTechnician() bool {
	return p.Roles.Has(RoleTechnician)
}
