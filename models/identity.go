package models

import (
	"encoding/json"
	"strings"
)

type Role string

const (
	Student  Role = "student"
	Landlord Role = "landlord"
	Agent    Role = "agent"
	Admin    Role = "admin"
)

// ParseRole lower-cases and validates a role name. Unknown names yield "".
func ParseRole(s string) Role {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case Student, Landlord, Agent, Admin:
		return r
	}
	return ""
}

// Identity is the authenticated user held for the lifetime of a session.
type Identity struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Role             Role   `json:"role"`
	Verified         bool   `json:"verified"`
	RegistrationDate string `json:"registrationDate,omitempty"`
}

// ProfileStats are the listing counters the backend returns with a profile.
type ProfileStats struct {
	Active  int `json:"active"`
	Rented  int `json:"rented"`
	Student int `json:"student"`
}

// Profile is the backend profile document. The backend capitalizes some
// field names and not others, so decoding accepts both spellings.
type Profile struct {
	Fullname string       `json:"fullName"`
	Email    string       `json:"email"`
	Number   string       `json:"number"`
	Mode     string       `json:"mode"`
	Level    string       `json:"level,omitempty"`
	Password string       `json:"password,omitempty"`
	Stats    ProfileStats `json:"-"`
}

func (p *Profile) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Profile{
		Fullname: firstString(raw, "Fullname", "fullName", "fullname", "name"),
		Email:    firstString(raw, "Email", "email"),
		Number:   firstString(raw, "Number", "number", "phone"),
		Mode:     firstString(raw, "Mode", "mode", "role"),
		Level:    firstString(raw, "Level", "level"),
		Stats: ProfileStats{
			Active:  int(firstNumber(raw, "active")),
			Rented:  int(firstNumber(raw, "rented")),
			Student: int(firstNumber(raw, "student")),
		},
	}
	return nil
}

// Identity converts the profile into a session identity.
func (p Profile) Identity() *Identity {
	return &Identity{
		Name:     p.Fullname,
		Email:    p.Email,
		Phone:    p.Number,
		Role:     ParseRole(p.Mode),
		Verified: true,
	}
}
