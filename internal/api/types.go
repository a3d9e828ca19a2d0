package api

import (
	"bytes"
	"encoding/json"

	"uniportal.org/internal/authz"
)

// FlexID absorbs identifiers the backend emits inconsistently as JSON
// numbers, strings or null. Empty means absent.
type FlexID string

func (f *FlexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexID(n.String())
	return nil
}

func (f FlexID) String() string { return string(f) }

// User is the backend's representation of an authenticated account.
type User struct {
	ID          FlexID     `json:"id"`
	Username    string     `json:"username"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        authz.Role `json:"role"`
	CollegeID   FlexID     `json:"college_id"`
	FacultyID   FlexID     `json:"faculty_id"`
	CollegeName string     `json:"college_name,omitempty"`
	FacultyName string     `json:"faculty_name,omitempty"`
	LastLogin   string     `json:"last_login,omitempty"`
}

// Scope returns the user's organizational scope for permission checks.
func (u *User) Scope() authz.Scope {
	if u == nil {
		return authz.Scope{}
	}
	return authz.Scope{CollegeID: u.CollegeID.String(), FacultyID: u.FacultyID.String()}
}
