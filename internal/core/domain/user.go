package domain

import "encoding/json"

// User is the client-side snapshot of an authenticated actor, copied
// verbatim from the sign-in response. It is never mutated in place; profile
// updates replace the whole value after a round trip to the backend.
type User struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Role           Role   `json:"role"`
	CompanyID      string `json:"companyId,omitempty"`
	Specialization string `json:"specialization,omitempty"`
}

// UnmarshalJSON normalises the role field so an unknown value from the
// backend degrades to customer instead of carrying privilege it shouldn't.
func (u *User) UnmarshalJSON(data []byte) error {
	type alias User
	var raw alias
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	raw.Role = ParseRole(string(raw.Role))
	*u = User(raw)
	return nil
}
