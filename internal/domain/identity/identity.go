package identity

import (
	"time"

	"github.com/jennilaluyan/connect-in-backend/internal/common"
)

type Role string

const (
	RoleSeeker    Role = "seeker"
	RoleRecruiter Role = "recruiter"
	RoleAdmin     Role = "admin"
)

func ParseRole(value string) (Role, bool) {
	switch Role(value) {
	case RoleSeeker, RoleRecruiter, RoleAdmin:
		return Role(value), true
	default:
		return "", false
	}
}

type Identity struct {
	ID           common.UUID `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Role         Role        `json:"role"`
	// Approved gates recruiters only; seekers and admins are stored as
	// approved so they never trip the pending-recruiter login check.
	Approved    bool      `json:"is_approved"`
	Headline    string    `json:"headline,omitempty"`
	City        string    `json:"city,omitempty"`
	Province    string    `json:"province,omitempty"`
	CompanyName string    `json:"company_name,omitempty"`
	AvatarPath  string    `json:"avatar_path,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProfileUpdate carries partial profile changes; nil fields stay untouched.
type ProfileUpdate struct {
	Name        *string
	Headline    *string
	City        *string
	Province    *string
	CompanyName *string
	AvatarPath  *string
}
