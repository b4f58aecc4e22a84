package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/jennilaluyan/connect-in-backend/internal/common"
	"github.com/jennilaluyan/connect-in-backend/internal/domain/application"
	"github.com/jennilaluyan/connect-in-backend/internal/domain/auth"
	"github.com/jennilaluyan/connect-in-backend/internal/domain/identity"
	"github.com/jennilaluyan/connect-in-backend/internal/domain/notification"
	"github.com/jennilaluyan/connect-in-backend/internal/domain/posting"
	"github.com/jennilaluyan/connect-in-backend/internal/policy"
	"github.com/jennilaluyan/connect-in-backend/internal/storage"
)

type AdminService struct {
	identities    identity.Repository
	postings      posting.Repository
	applications  application.Repository
	notifications notification.Repository
	sessions      auth.SessionRepository
	blobs         storage.BlobStore
	logger        zerolog.Logger
}

func NewAdminService(
	identities identity.Repository,
	postings posting.Repository,
	applications application.Repository,
	notifications notification.Repository,
	sessions auth.SessionRepository,
	blobs storage.BlobStore,
	logger zerolog.Logger,
) *AdminService {
	return &AdminService{
		identities:    identities,
		postings:      postings,
		applications:  applications,
		notifications: notifications,
		sessions:      sessions,
		blobs:         blobs,
		logger:        logger,
	}
}

func (s *AdminService) ListUsers(ctx context.Context, caller *identity.Identity) ([]identity.Identity, error) {
	if !policy.IsAdmin(caller) {
		return nil, common.NewError(common.CodeForbidden, "admin access required", nil)
	}
	return s.identities.List(ctx)
}

func (s *AdminService) ListPendingRecruiters(ctx context.Context, caller *identity.Identity) ([]identity.Identity, error) {
	if !policy.IsAdmin(caller) {
		return nil, common.NewError(common.CodeForbidden, "admin access required", nil)
	}
	return s.identities.ListPendingRecruiters(ctx)
}

// ApproveRecruiter flips the approval flag for a pending recruiter. Anything
// else, including an already approved recruiter, is not applicable.
func (s *AdminService) ApproveRecruiter(ctx context.Context, caller *identity.Identity, id common.UUID) (*identity.Identity, error) {
	if !policy.IsAdmin(caller) {
		return nil, common.NewError(common.CodeForbidden, "admin access required", nil)
	}
	ident, err := s.pendingRecruiter(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.identities.SetApproved(ctx, ident.ID, true); err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", ident.ID.String()).Msg("recruiter approved")
	ident.Approved = true
	return ident, nil
}

// RejectRecruiter removes a pending recruiter account outright. The email
// becomes free to register again.
func (s *AdminService) RejectRecruiter(ctx context.Context, caller *identity.Identity, id common.UUID) error {
	if !policy.IsAdmin(caller) {
		return common.NewError(common.CodeForbidden, "admin access required", nil)
	}
	ident, err := s.pendingRecruiter(ctx, id)
	if err != nil {
		return err
	}
	if err := s.removeIdentity(ctx, ident); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", ident.ID.String()).Msg("recruiter rejected and removed")
	return nil
}

// DeleteUser removes a non-admin account with all of its data: postings and
// their applications for recruiters, own applications for seekers, plus
// notifications and sessions either way.
func (s *AdminService) DeleteUser(ctx context.Context, caller *identity.Identity, id common.UUID) error {
	if !policy.IsAdmin(caller) {
		return common.NewError(common.CodeForbidden, "admin access required", nil)
	}
	ident, err := s.identities.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if ident.Role == identity.RoleAdmin {
		return common.NewError(common.CodeForbidden, "admin accounts cannot be deleted", nil)
	}
	if err := s.removeIdentity(ctx, ident); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", ident.ID.String()).Str("role", string(ident.Role)).Msg("user deleted by admin")
	return nil
}

func (s *AdminService) pendingRecruiter(ctx context.Context, id common.UUID) (*identity.Identity, error) {
	ident, err := s.identities.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ident.Role != identity.RoleRecruiter || ident.Approved {
		return nil, common.NewError(common.CodeNotApplicable, "user is not a pending recruiter", nil)
	}
	return ident, nil
}

func (s *AdminService) removeIdentity(ctx context.Context, ident *identity.Identity) error {
	if ident.Role == identity.RoleRecruiter {
		removed, err := s.applications.DeleteByPostingOwner(ctx, ident.ID)
		if err != nil {
			return err
		}
		s.deleteCVBlobs(ctx, removed)
		if err := s.postings.DeleteByOwner(ctx, ident.ID); err != nil {
			return err
		}
	}
	if ident.Role == identity.RoleSeeker {
		removed, err := s.applications.DeleteByApplicant(ctx, ident.ID)
		if err != nil {
			return err
		}
		s.deleteCVBlobs(ctx, removed)
	}
	if err := s.notifications.DeleteByRecipient(ctx, ident.ID); err != nil {
		return err
	}
	if err := s.sessions.RevokeAll(ctx, ident.ID, time.Now().UTC().Unix()); err != nil {
		return err
	}
	if ident.AvatarPath != "" {
		if err := s.blobs.Delete(ctx, ident.AvatarPath); err != nil {
			s.logger.Error().Err(err).Str("avatar_path", ident.AvatarPath).Msg("failed to delete avatar blob")
		}
	}
	return s.identities.Delete(ctx, ident.ID)
}

func (s *AdminService) deleteCVBlobs(ctx context.Context, removed []application.Application) {
	for _, app := range removed {
		if app.CVPath == "" {
			continue
		}
		if err := s.blobs.Delete(ctx, app.CVPath); err != nil {
			s.logger.Error().Err(err).Str("cv_path", app.CVPath).Msg("failed to delete cv blob")
		}
	}
}
