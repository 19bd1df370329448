package models

// Identity is the authenticated caller, verified upstream by the
// gateway. Engine operations take it as an explicit argument; nothing
// reads ambient request state.
type Identity struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

func (i Identity) IsAdmin() bool { return i.Role == "admin" }
