package app

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jennilaluyan/connect-in-backend/internal/common"
	"github.com/jennilaluyan/connect-in-backend/internal/domain/identity"
	"github.com/jennilaluyan/connect-in-backend/internal/storage"
)

const maxAvatarSize = 2 << 20

var allowedAvatarExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}

type ProfileService struct {
	identities identity.Repository
	blobs      storage.BlobStore
	logger     zerolog.Logger
}

func NewProfileService(identities identity.Repository, blobs storage.BlobStore, logger zerolog.Logger) *ProfileService {
	return &ProfileService{identities: identities, blobs: blobs, logger: logger}
}

func (s *ProfileService) Get(ctx context.Context, caller *identity.Identity) (*identity.Identity, error) {
	return s.identities.GetByID(ctx, caller.ID)
}

// Update merges the supplied fields into the caller's own profile. A new
// avatar replaces the old blob once the row update lands.
func (s *ProfileService) Update(ctx context.Context, caller *identity.Identity, update identity.ProfileUpdate, avatar *FileUpload) (*identity.Identity, error) {
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return nil, common.NewValidationError("invalid profile", map[string]string{"name": "name must not be empty"})
	}

	oldAvatar := caller.AvatarPath
	if avatar.present() {
		avatarPath, err := s.saveAvatar(ctx, caller.ID, avatar)
		if err != nil {
			return nil, err
		}
		update.AvatarPath = &avatarPath
	}

	updated, err := s.identities.UpdateProfile(ctx, caller.ID, update)
	if err != nil {
		if update.AvatarPath != nil {
			if delErr := s.blobs.Delete(ctx, *update.AvatarPath); delErr != nil {
				s.logger.Error().Err(delErr).Str("avatar_path", *update.AvatarPath).Msg("failed to clean up avatar blob after update failure")
			}
		}
		return nil, err
	}
	if update.AvatarPath != nil && oldAvatar != "" && oldAvatar != *update.AvatarPath {
		if err := s.blobs.Delete(ctx, oldAvatar); err != nil {
			s.logger.Error().Err(err).Str("avatar_path", oldAvatar).Msg("failed to delete replaced avatar blob")
		}
	}
	return updated, nil
}

func (s *ProfileService) saveAvatar(ctx context.Context, userID common.UUID, avatar *FileUpload) (string, error) {
	ext := strings.ToLower(path.Ext(avatar.FileName))
	if !allowedAvatarExtensions[ext] {
		return "", common.NewValidationError("invalid avatar", map[string]string{"avatar": "avatar must be a jpg, jpeg, or png file"})
	}
	if avatar.Size > maxAvatarSize {
		return "", common.NewValidationError("invalid avatar", map[string]string{"avatar": "avatar must not exceed 2 MB"})
	}
	avatarPath := fmt.Sprintf("avatars/avatar_%s_%d%s", userID, time.Now().Unix(), ext)
	if err := s.blobs.Save(ctx, avatarPath, avatar.Content); err != nil {
		return "", err
	}
	return avatarPath, nil
}
