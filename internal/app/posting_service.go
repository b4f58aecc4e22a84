package app

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jennilaluyan/connect-in-backend/internal/common"
	"github.com/jennilaluyan/connect-in-backend/internal/domain/application"
	"github.com/jennilaluyan/connect-in-backend/internal/domain/identity"
	"github.com/jennilaluyan/connect-in-backend/internal/domain/posting"
	"github.com/jennilaluyan/connect-in-backend/internal/policy"
	"github.com/jennilaluyan/connect-in-backend/internal/storage"
)

type PostingService struct {
	repo         posting.Repository
	applications application.Repository
	blobs        storage.BlobStore
	logger       zerolog.Logger
}

func NewPostingService(repo posting.Repository, applications application.Repository, blobs storage.BlobStore, logger zerolog.Logger) *PostingService {
	return &PostingService{repo: repo, applications: applications, blobs: blobs, logger: logger}
}

func (s *PostingService) Create(ctx context.Context, caller *identity.Identity, p posting.Posting) (*posting.Posting, error) {
	if !policy.IsApprovedRecruiter(caller) {
		return nil, common.NewError(common.CodeForbidden, "only approved recruiters can post jobs", nil)
	}
	p.OwnerID = caller.ID
	if err := validatePosting(p); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("job_posting_id", created.ID.String()).Str("owner_id", caller.ID.String()).Msg("job posting created")
	return created, nil
}

// Update applies partial changes: only supplied fields move, and the salary
// invariant is checked against the merged result.
func (s *PostingService) Update(ctx context.Context, caller *identity.Identity, id common.UUID, update posting.Update) (*posting.Posting, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanMutatePosting(caller, current) {
		return nil, common.NewError(common.CodeForbidden, "job posting belongs to another recruiter", nil)
	}
	merged := *current
	if update.Title != nil {
		merged.Title = *update.Title
	}
	if update.CompanyName != nil {
		merged.CompanyName = *update.CompanyName
	}
	if update.Type != nil {
		merged.Type = *update.Type
	}
	if update.Location != nil {
		merged.Location = *update.Location
	}
	if update.Description != nil {
		merged.Description = *update.Description
	}
	if update.Requirements != nil {
		merged.Requirements = *update.Requirements
	}
	if update.Responsibilities != nil {
		merged.Responsibilities = *update.Responsibilities
	}
	if update.Benefits != nil {
		merged.Benefits = *update.Benefits
	}
	if update.SalaryMin != nil {
		merged.SalaryMin = update.SalaryMin
	}
	if update.SalaryMax != nil {
		merged.SalaryMax = update.SalaryMax
	}
	if err := validatePosting(merged); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, update)
}

// Delete removes the posting and cascades to its applications so no row is
// left referencing a missing posting. CV blobs go best effort.
func (s *PostingService) Delete(ctx context.Context, caller *identity.Identity, id common.UUID) error {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !policy.CanMutatePosting(caller, current) {
		return common.NewError(common.CodeForbidden, "job posting belongs to another recruiter", nil)
	}
	removed, err := s.applications.DeleteByPosting(ctx, id)
	if err != nil {
		return err
	}
	for _, app := range removed {
		if err := s.blobs.Delete(ctx, app.CVPath); err != nil {
			s.logger.Error().Err(err).Str("cv_path", app.CVPath).Msg("failed to delete cv blob for removed posting")
		}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("job_posting_id", id.String()).Int("applications_removed", len(removed)).Msg("job posting deleted")
	return nil
}

func (s *PostingService) Get(ctx context.Context, id common.UUID) (*posting.Posting, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *PostingService) List(ctx context.Context, search string, limit, offset int) ([]posting.Posting, error) {
	return s.repo.List(ctx, search, limit, offset)
}

// ListMine scopes the listing to the caller's own postings. This is a query
// convenience for recruiters; write access is still gated per mutation.
func (s *PostingService) ListMine(ctx context.Context, caller *identity.Identity, limit, offset int) ([]posting.Posting, error) {
	if !policy.IsApprovedRecruiter(caller) {
		return nil, common.NewError(common.CodeForbidden, "only approved recruiters have their own postings", nil)
	}
	return s.repo.ListByOwner(ctx, caller.ID, limit, offset)
}

func validatePosting(p posting.Posting) error {
	fields := map[string]string{}
	if p.Title == "" {
		fields["title"] = "title is required"
	}
	if p.CompanyName == "" {
		fields["company_name"] = "company name is required"
	}
	if _, ok := posting.ParseType(string(p.Type)); !ok {
		fields["type"] = "type must be full-time, part-time, contract, or internship"
	}
	if p.Location == "" {
		fields["location"] = "location is required"
	}
	if p.Description == "" {
		fields["description"] = "description is required"
	}
	if len(p.Requirements) == 0 {
		fields["requirements"] = "requirements are required"
	}
	if len(p.Responsibilities) == 0 {
		fields["responsibilities"] = "responsibilities are required"
	}
	if p.SalaryMin != nil && *p.SalaryMin < 0 {
		fields["salary_min"] = "salary_min must not be negative"
	}
	if p.SalaryMin != nil && p.SalaryMax != nil && *p.SalaryMin > *p.SalaryMax {
		fields["salary_min"] = "salary_min must not exceed salary_max"
	}
	if len(fields) > 0 {
		return common.NewValidationError("invalid job posting", fields)
	}
	return nil
}
