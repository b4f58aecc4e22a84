package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jennilaluyan/connect-in-backend/internal/common"
	"github.com/jennilaluyan/connect-in-backend/internal/domain/identity"
	"github.com/jennilaluyan/connect-in-backend/internal/domain/posting"
)

func ident(role identity.Role, approved bool) *identity.Identity {
	return &identity.Identity{ID: common.NewUUID(), Role: role, Approved: approved}
}

func TestIsApprovedRecruiter(t *testing.T) {
	assert.True(t, IsApprovedRecruiter(ident(identity.RoleRecruiter, true)))
	assert.False(t, IsApprovedRecruiter(ident(identity.RoleRecruiter, false)))
	assert.False(t, IsApprovedRecruiter(ident(identity.RoleSeeker, true)))
	assert.False(t, IsApprovedRecruiter(ident(identity.RoleAdmin, true)))
	assert.False(t, IsApprovedRecruiter(nil))
}

func TestOwnsPosting(t *testing.T) {
	recruiter := ident(identity.RoleRecruiter, true)
	own := &posting.Posting{ID: common.NewUUID(), OwnerID: recruiter.ID}
	other := &posting.Posting{ID: common.NewUUID(), OwnerID: common.NewUUID()}

	assert.True(t, OwnsPosting(recruiter, own))
	assert.False(t, OwnsPosting(recruiter, other))

	pending := ident(identity.RoleRecruiter, false)
	own.OwnerID = pending.ID
	assert.False(t, OwnsPosting(pending, own), "pending recruiter never owns anything")
	assert.False(t, OwnsPosting(recruiter, nil))
}

func TestCanMutatePosting(t *testing.T) {
	recruiter := ident(identity.RoleRecruiter, true)
	admin := ident(identity.RoleAdmin, true)
	seeker := ident(identity.RoleSeeker, true)
	p := &posting.Posting{ID: common.NewUUID(), OwnerID: recruiter.ID}

	assert.True(t, CanMutatePosting(recruiter, p))
	assert.True(t, CanMutatePosting(admin, p), "admin may act on any posting")
	assert.False(t, CanMutatePosting(seeker, p))
	assert.False(t, CanMutatePosting(ident(identity.RoleRecruiter, true), p), "other recruiter is not owner")
}

func TestCanApply(t *testing.T) {
	assert.True(t, CanApply(ident(identity.RoleSeeker, true)))
	assert.False(t, CanApply(ident(identity.RoleRecruiter, true)))
	assert.False(t, CanApply(ident(identity.RoleAdmin, true)))
	assert.False(t, CanApply(nil))
}
