package posting

import (
	"time"

	"github.com/jennilaluyan/connect-in-backend/internal/common"
)

type Type string

const (
	TypeFullTime   Type = "full-time"
	TypePartTime   Type = "part-time"
	TypeContract   Type = "contract"
	TypeInternship Type = "internship"
)

func ParseType(value string) (Type, bool) {
	switch Type(value) {
	case TypeFullTime, TypePartTime, TypeContract, TypeInternship:
		return Type(value), true
	default:
		return "", false
	}
}

type Posting struct {
	ID               common.UUID `json:"id"`
	OwnerID          common.UUID `json:"owner_id"`
	Title            string      `json:"title"`
	CompanyName      string      `json:"company_name"`
	Type             Type        `json:"type"`
	Location         string      `json:"location"`
	Description      string      `json:"description"`
	Requirements     []string    `json:"requirements"`
	Responsibilities []string    `json:"responsibilities"`
	Benefits         []string    `json:"benefits,omitempty"`
	SalaryMin        *int64      `json:"salary_min,omitempty"`
	SalaryMax        *int64      `json:"salary_max,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// Update carries partial changes; nil fields keep their stored value.
type Update struct {
	Title            *string
	CompanyName      *string
	Type             *Type
	Location         *string
	Description      *string
	Requirements     *[]string
	Responsibilities *[]string
	Benefits         *[]string
	SalaryMin        *int64
	SalaryMax        *int64
}
