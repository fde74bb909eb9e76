package domain

// Identity is the verified claim set carried by a bearer token.
type Identity struct {
	UserID int64
	Role   Role
}

// IsZero reports whether no identity was established for the request.
func (i Identity) IsZero() bool {
	return i.UserID == 0 && i.Role == ""
}

// Authorize grants access when the identity holds exactly the required role.
// It performs no I/O so callers can run it before touching any store.
func Authorize(id Identity, required Role) error {
	if id.IsZero() {
		return ErrMissingToken
	}
	if id.Role != required {
		return ErrForbidden
	}
	return nil
}
