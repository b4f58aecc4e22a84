// Package policy holds the role, ownership and approval predicates gating
// every mutating operation. Predicates are stateless and always take the
// caller's identity explicitly; nothing here reads ambient request state.
package policy

import (
	"github.com/jennilaluyan/connect-in-backend/internal/domain/identity"
	"github.com/jennilaluyan/connect-in-backend/internal/domain/posting"
)

func IsApprovedRecruiter(ident *identity.Identity) bool {
	return ident != nil && ident.Role == identity.RoleRecruiter && ident.Approved
}

func IsAdmin(ident *identity.Identity) bool {
	return ident != nil && ident.Role == identity.RoleAdmin
}

func OwnsPosting(ident *identity.Identity, p *posting.Posting) bool {
	return IsApprovedRecruiter(ident) && p != nil && p.OwnerID == ident.ID
}

func CanMutatePosting(ident *identity.Identity, p *posting.Posting) bool {
	return OwnsPosting(ident, p) || IsAdmin(ident)
}

// CanActOnApplication gates status transitions and CV access. The posting is
// the one the application references; authorization follows posting
// ownership, never the application row itself.
func CanActOnApplication(ident *identity.Identity, p *posting.Posting) bool {
	return CanMutatePosting(ident, p)
}

func CanApply(ident *identity.Identity) bool {
	return ident != nil && ident.Role == identity.RoleSeeker
}
