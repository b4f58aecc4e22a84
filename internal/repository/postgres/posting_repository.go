package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/jennilaluyan/connect-in-backend/internal/common"
	"github.com/jennilaluyan/connect-in-backend/internal/domain/posting"
)

const postingColumns = `id, owner_id, title, company_name, posting_type, location, description, requirements, responsibilities, benefits, salary_min, salary_max, created_at, updated_at`

type PostingRepository struct {
	db *sql.DB
}

func NewPostingRepository(db *sql.DB) *PostingRepository {
	return &PostingRepository{db: db}
}

func scanPosting(row interface{ Scan(...any) error }) (*posting.Posting, error) {
	var p posting.Posting
	err := row.Scan(&p.ID, &p.OwnerID, &p.Title, &p.CompanyName, &p.Type, &p.Location, &p.Description,
		pq.Array(&p.Requirements), pq.Array(&p.Responsibilities), pq.Array(&p.Benefits),
		&p.SalaryMin, &p.SalaryMax, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostingRepository) Create(ctx context.Context, p posting.Posting) (*posting.Posting, error) {
	p.ID = common.NewUUID()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO job_postings (`+postingColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		p.ID, p.OwnerID, p.Title, p.CompanyName, p.Type, p.Location, p.Description,
		pq.Array(p.Requirements), pq.Array(p.Responsibilities), pq.Array(p.Benefits),
		p.SalaryMin, p.SalaryMax, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create job posting", err)
	}
	return &p, nil
}

func (r *PostingRepository) Update(ctx context.Context, id common.UUID, update posting.Update) (*posting.Posting, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if update.Title != nil {
		current.Title = *update.Title
	}
	if update.CompanyName != nil {
		current.CompanyName = *update.CompanyName
	}
	if update.Type != nil {
		current.Type = *update.Type
	}
	if update.Location != nil {
		current.Location = *update.Location
	}
	if update.Description != nil {
		current.Description = *update.Description
	}
	if update.Requirements != nil {
		current.Requirements = *update.Requirements
	}
	if update.Responsibilities != nil {
		current.Responsibilities = *update.Responsibilities
	}
	if update.Benefits != nil {
		current.Benefits = *update.Benefits
	}
	if update.SalaryMin != nil {
		current.SalaryMin = update.SalaryMin
	}
	if update.SalaryMax != nil {
		current.SalaryMax = update.SalaryMax
	}
	current.UpdatedAt = time.Now().UTC()
	_, err = r.db.ExecContext(ctx, `UPDATE job_postings SET title = $1, company_name = $2, posting_type = $3, location = $4, description = $5, requirements = $6, responsibilities = $7, benefits = $8, salary_min = $9, salary_max = $10, updated_at = $11 WHERE id = $12`,
		current.Title, current.CompanyName, current.Type, current.Location, current.Description,
		pq.Array(current.Requirements), pq.Array(current.Responsibilities), pq.Array(current.Benefits),
		current.SalaryMin, current.SalaryMax, current.UpdatedAt, id)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update job posting", err)
	}
	return current, nil
}

func (r *PostingRepository) GetByID(ctx context.Context, id common.UUID) (*posting.Posting, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+postingColumns+` FROM job_postings WHERE id = $1`, id)
	p, err := scanPosting(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "job posting not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load job posting", err)
	}
	return p, nil
}

func (r *PostingRepository) List(ctx context.Context, search string, limit, offset int) ([]posting.Posting, error) {
	search = strings.TrimSpace(search)
	if search == "" {
		return r.queryList(ctx, `SELECT `+postingColumns+` FROM job_postings ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	}
	pattern := "%" + search + "%"
	return r.queryList(ctx, `SELECT `+postingColumns+` FROM job_postings
		WHERE title ILIKE $1 OR company_name ILIKE $1 OR description ILIKE $1 OR location ILIKE $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`, pattern, limit, offset)
}

func (r *PostingRepository) ListByOwner(ctx context.Context, ownerID common.UUID, limit, offset int) ([]posting.Posting, error) {
	return r.queryList(ctx, `SELECT `+postingColumns+` FROM job_postings WHERE owner_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, ownerID, limit, offset)
}

func (r *PostingRepository) queryList(ctx context.Context, query string, args ...any) ([]posting.Posting, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list job postings", err)
	}
	defer rows.Close()
	var items []posting.Posting
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan job posting", err)
		}
		items = append(items, *p)
	}
	return items, nil
}

func (r *PostingRepository) Delete(ctx context.Context, id common.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM job_postings WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete job posting", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "job posting not found", sql.ErrNoRows)
	}
	return nil
}

func (r *PostingRepository) DeleteByOwner(ctx context.Context, ownerID common.UUID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM job_postings WHERE owner_id = $1`, ownerID); err != nil {
		return common.NewError(common.CodeInternal, "failed to delete owner postings", err)
	}
	return nil
}
