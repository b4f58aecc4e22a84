package app

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jennilaluyan/connect-in-backend/internal/common"
	"github.com/jennilaluyan/connect-in-backend/internal/domain/application"
	"github.com/jennilaluyan/connect-in-backend/internal/domain/identity"
	"github.com/jennilaluyan/connect-in-backend/internal/domain/notification"
	"github.com/jennilaluyan/connect-in-backend/internal/domain/posting"
	"github.com/jennilaluyan/connect-in-backend/internal/policy"
	"github.com/jennilaluyan/connect-in-backend/internal/storage"
)

const maxCVSize = 5 << 20

var allowedCVExtensions = map[string]bool{".pdf": true, ".doc": true, ".docx": true}

type ApplicationService struct {
	repo          application.Repository
	postings      posting.Repository
	identities    identity.Repository
	notifications notification.Repository
	blobs         storage.BlobStore
	logger        zerolog.Logger
}

func NewApplicationService(repo application.Repository, postings posting.Repository, identities identity.Repository, notifications notification.Repository, blobs storage.BlobStore, logger zerolog.Logger) *ApplicationService {
	return &ApplicationService{repo: repo, postings: postings, identities: identities, notifications: notifications, blobs: blobs, logger: logger}
}

// Apply runs the one-shot creation protocol: role check, duplicate check, CV
// validation, blob write, row insert. The blob is written before the row and
// removed again when the insert fails.
func (s *ApplicationService) Apply(ctx context.Context, caller *identity.Identity, postingID common.UUID, cv *FileUpload, coverLetter string) (*application.Application, error) {
	if !policy.CanApply(caller) {
		return nil, common.NewError(common.CodeForbidden, "only job seekers can apply", nil)
	}
	p, err := s.postings.GetByID(ctx, postingID)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.FindByPostingAndApplicant(ctx, postingID, caller.ID); err == nil {
		return nil, common.NewError(common.CodeConflict, "you have already applied to this job posting", nil)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	ext, err := validateCV(cv)
	if err != nil {
		return nil, err
	}
	if len(coverLetter) > 5000 {
		return nil, common.NewValidationError("invalid cover letter", map[string]string{"cover_letter": "cover letter must not exceed 5000 characters"})
	}

	cvPath := fmt.Sprintf("cvs/cv_%s_%s_%d_%s%s", caller.ID, postingID, time.Now().Unix(), common.Slugify(trimExt(cv.FileName), "-"), ext)
	if err := s.blobs.Save(ctx, cvPath, cv.Content); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, application.Application{
		PostingID:   postingID,
		ApplicantID: caller.ID,
		CVPath:      cvPath,
		CoverLetter: coverLetter,
		Status:      application.StatusPending,
	})
	if err != nil {
		// Compensate: the row never landed, so the blob must not outlive it.
		if delErr := s.blobs.Delete(ctx, cvPath); delErr != nil {
			s.logger.Error().Err(delErr).Str("cv_path", cvPath).Msg("failed to clean up cv blob after insert failure")
		}
		return nil, err
	}

	s.notify(ctx, notification.Event{
		RecipientID: p.OwnerID,
		Kind:        notification.KindNewApplication,
		Payload: map[string]string{
			"applicant_name": caller.Name,
			"job_title":      p.Title,
			"application_id": created.ID.String(),
		},
	})
	s.logger.Info().Str("application_id", created.ID.String()).Str("job_posting_id", postingID.String()).Msg("application submitted")
	return created, nil
}

// UpdateStatus moves an application along the transition table. Persistence
// is a compare-and-swap, so a concurrent transition loses with the same
// invalid-transition error a bad request gets.
func (s *ApplicationService) UpdateStatus(ctx context.Context, caller *identity.Identity, applicationID common.UUID, next application.Status) (*application.Application, error) {
	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	p, err := s.postings.GetByID(ctx, app.PostingID)
	if err != nil {
		return nil, err
	}
	if !policy.CanActOnApplication(caller, p) {
		return nil, common.NewError(common.CodeForbidden, "application belongs to another recruiter's posting", nil)
	}
	if _, ok := application.ParseStatus(string(next)); !ok {
		return nil, common.NewValidationError("invalid status", map[string]string{"status": "status must be pending, reviewed, shortlisted, rejected, or hired"})
	}
	if application.IsTerminal(app.Status) || !application.CanTransition(app.Status, next) {
		return nil, common.NewTransitionError(string(app.Status), string(next))
	}
	updated, err := s.repo.UpdateStatus(ctx, app.ID, app.Status, next)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, notification.Event{
		RecipientID: app.ApplicantID,
		Kind:        notification.KindStatusUpdated,
		Payload: map[string]string{
			"job_title":          p.Title,
			"application_status": string(next),
			"application_id":     app.ID.String(),
		},
	})
	s.logger.Info().Str("application_id", app.ID.String()).Str("from", string(app.Status)).Str("to", string(next)).Msg("application status changed")
	return updated, nil
}

func (s *ApplicationService) ListByApplicant(ctx context.Context, caller *identity.Identity, limit, offset int) ([]application.Application, error) {
	return s.repo.ListByApplicant(ctx, caller.ID, limit, offset)
}

func (s *ApplicationService) ListForRecruiter(ctx context.Context, caller *identity.Identity, postingID *common.UUID, limit, offset int) ([]application.Application, error) {
	if !policy.IsApprovedRecruiter(caller) {
		return nil, common.NewError(common.CodeForbidden, "only approved recruiters can view applicants", nil)
	}
	return s.repo.ListByOwner(ctx, caller.ID, postingID, limit, offset)
}

// DownloadCV streams the stored blob. The returned file name is derived from
// the applicant name and job title, never from the stored path.
func (s *ApplicationService) DownloadCV(ctx context.Context, caller *identity.Identity, applicationID common.UUID) (io.ReadCloser, string, error) {
	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, "", err
	}
	p, err := s.postings.GetByID(ctx, app.PostingID)
	if err != nil {
		return nil, "", err
	}
	if !policy.CanActOnApplication(caller, p) {
		return nil, "", common.NewError(common.CodeForbidden, "cv belongs to another recruiter's posting", nil)
	}
	applicant, err := s.identities.GetByID(ctx, app.ApplicantID)
	if err != nil {
		return nil, "", err
	}
	reader, err := s.blobs.Open(ctx, app.CVPath)
	if err != nil {
		return nil, "", err
	}
	name := fmt.Sprintf("CV_%s_%s%s", common.Slugify(applicant.Name, "_"), common.Slugify(p.Title, "_"), path.Ext(app.CVPath))
	return reader, name, nil
}

func (s *ApplicationService) notify(ctx context.Context, event notification.Event) {
	if _, err := s.notifications.Create(ctx, event); err != nil {
		s.logger.Error().Err(err).Str("recipient_id", event.RecipientID.String()).Msg("failed to record notification")
	}
}

func validateCV(cv *FileUpload) (string, error) {
	if !cv.present() {
		return "", common.NewValidationError("cv is required", map[string]string{"cv": "a cv file is required"})
	}
	ext := strings.ToLower(path.Ext(cv.FileName))
	if !allowedCVExtensions[ext] {
		return "", common.NewValidationError("invalid cv", map[string]string{"cv": "cv must be a pdf, doc, or docx file"})
	}
	if cv.Size > maxCVSize {
		return "", common.NewValidationError("invalid cv", map[string]string{"cv": "cv must not exceed 5 MB"})
	}
	return ext, nil
}

func trimExt(name string) string {
	return strings.TrimSuffix(name, path.Ext(name))
}
