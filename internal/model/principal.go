package model

// Principal is the resolved identity of a request: a registered user id or
// an anonymous guest session id, never both. It is built by the middleware
// layer and passed explicitly into every service operation so the core never
// reads identity from ambient request state.
type Principal struct {
	UserID         uint
	GuestSessionID string
}

func UserPrincipal(id uint) Principal {
	return Principal{UserID: id}
}

func GuestPrincipal(sessionID string) Principal {
	return Principal{GuestSessionID: sessionID}
}

func (p Principal) IsUser() bool {
	return p.UserID != 0
}

func (p Principal) IsGuest() bool {
	return p.UserID == 0 && p.GuestSessionID != ""
}

// IsZero reports that neither identity is present; operations requiring a
// participant reject such principals.
func (p Principal) IsZero() bool {
	return p.UserID == 0 && p.GuestSessionID == ""
}
