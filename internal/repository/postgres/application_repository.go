package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jennilaluyan/connect-in-backend/internal/common"
	"github.com/jennilaluyan/connect-in-backend/internal/domain/application"
)

const applicationColumns = `id, job_posting_id, applicant_id, cv_path, cover_letter, status, created_at, updated_at`

type ApplicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func scanApplication(row interface{ Scan(...any) error }) (*application.Application, error) {
	var app application.Application
	err := row.Scan(&app.ID, &app.PostingID, &app.ApplicantID, &app.CVPath, &app.CoverLetter, &app.Status, &app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *ApplicationRepository) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	app.ID = common.NewUUID()
	now := time.Now().UTC()
	app.CreatedAt = now
	app.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO job_applications (`+applicationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		app.ID, app.PostingID, app.ApplicantID, app.CVPath, app.CoverLetter, app.Status, app.CreatedAt, app.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "you have already applied to this job posting", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create application", err)
	}
	return &app, nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM job_applications WHERE id = $1`, id)
	app, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "application not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load application", err)
	}
	return app, nil
}

func (r *ApplicationRepository) FindByPostingAndApplicant(ctx context.Context, postingID, applicantID common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM job_applications WHERE job_posting_id = $1 AND applicant_id = $2`, postingID, applicantID)
	app, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "application not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load application", err)
	}
	return app, nil
}

func (r *ApplicationRepository) ListByApplicant(ctx context.Context, applicantID common.UUID, limit, offset int) ([]application.Application, error) {
	return r.queryList(ctx, `SELECT `+applicationColumns+` FROM job_applications WHERE applicant_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, applicantID, limit, offset)
}

func (r *ApplicationRepository) ListByOwner(ctx context.Context, ownerID common.UUID, postingID *common.UUID, limit, offset int) ([]application.Application, error) {
	if postingID != nil {
		return r.queryList(ctx, `SELECT a.id, a.job_posting_id, a.applicant_id, a.cv_path, a.cover_letter, a.status, a.created_at, a.updated_at
			FROM job_applications a
			JOIN job_postings p ON p.id = a.job_posting_id
			WHERE p.owner_id = $1 AND a.job_posting_id = $2
			ORDER BY a.created_at DESC LIMIT $3 OFFSET $4`, ownerID, *postingID, limit, offset)
	}
	return r.queryList(ctx, `SELECT a.id, a.job_posting_id, a.applicant_id, a.cv_path, a.cover_letter, a.status, a.created_at, a.updated_at
		FROM job_applications a
		JOIN job_postings p ON p.id = a.job_posting_id
		WHERE p.owner_id = $1
		ORDER BY a.created_at DESC LIMIT $2 OFFSET $3`, ownerID, limit, offset)
}

func (r *ApplicationRepository) queryList(ctx context.Context, query string, args ...any) ([]application.Application, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list applications", err)
	}
	defer rows.Close()
	var items []application.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan application", err)
		}
		items = append(items, *app)
	}
	return items, nil
}

// UpdateStatus swaps the status only when the stored value still matches
// expected, so racing transitions cannot both win.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id common.UUID, expected, next application.Status) (*application.Application, error) {
	updatedAt := time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `UPDATE job_applications SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`,
		next, updatedAt, id, expected)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update application status", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		current, getErr := r.GetByID(ctx, id)
		if getErr != nil {
			return nil, getErr
		}
		return nil, common.NewTransitionError(string(current.Status), string(next))
	}
	return r.GetByID(ctx, id)
}

func (r *ApplicationRepository) DeleteByPosting(ctx context.Context, postingID common.UUID) ([]application.Application, error) {
	return r.deleteReturning(ctx, `DELETE FROM job_applications WHERE job_posting_id = $1 RETURNING `+applicationColumns, postingID)
}

func (r *ApplicationRepository) DeleteByApplicant(ctx context.Context, applicantID common.UUID) ([]application.Application, error) {
	return r.deleteReturning(ctx, `DELETE FROM job_applications WHERE applicant_id = $1 RETURNING `+applicationColumns, applicantID)
}

func (r *ApplicationRepository) DeleteByPostingOwner(ctx context.Context, ownerID common.UUID) ([]application.Application, error) {
	return r.deleteReturning(ctx, `DELETE FROM job_applications
		WHERE job_posting_id IN (SELECT id FROM job_postings WHERE owner_id = $1)
		RETURNING `+applicationColumns, ownerID)
}

func (r *ApplicationRepository) deleteReturning(ctx context.Context, query string, args ...any) ([]application.Application, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to delete applications", err)
	}
	defer rows.Close()
	var items []application.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan application", err)
		}
		items = append(items, *app)
	}
	return items, nil
}
