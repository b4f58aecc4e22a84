package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jennilaluyan/connect-in-backend/internal/common"
	"github.com/jennilaluyan/connect-in-backend/internal/domain/identity"
)

const identityColumns = `id, name, email, password_hash, role, is_approved, headline, city, province, company_name, avatar_path, created_at, updated_at`

type IdentityRepository struct {
	db *sql.DB
}

func NewIdentityRepository(db *sql.DB) *IdentityRepository {
	return &IdentityRepository{db: db}
}

func scanIdentity(row interface{ Scan(...any) error }) (*identity.Identity, error) {
	var ident identity.Identity
	err := row.Scan(&ident.ID, &ident.Name, &ident.Email, &ident.PasswordHash, &ident.Role, &ident.Approved,
		&ident.Headline, &ident.City, &ident.Province, &ident.CompanyName, &ident.AvatarPath,
		&ident.CreatedAt, &ident.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &ident, nil
}

func (r *IdentityRepository) Create(ctx context.Context, ident identity.Identity) (*identity.Identity, error) {
	ident.ID = common.NewUUID()
	now := time.Now().UTC()
	ident.CreatedAt = now
	ident.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO users (`+identityColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		ident.ID, ident.Name, strings.ToLower(ident.Email), ident.PasswordHash, ident.Role, ident.Approved,
		ident.Headline, ident.City, ident.Province, ident.CompanyName, ident.AvatarPath,
		ident.CreatedAt, ident.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewValidationError("registration failed", map[string]string{"email": "email is already registered"})
		}
		return nil, common.NewError(common.CodeInternal, "failed to create user", err)
	}
	return &ident, nil
}

func (r *IdentityRepository) GetByID(ctx context.Context, id common.UUID) (*identity.Identity, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+identityColumns+` FROM users WHERE id = $1`, id)
	ident, err := scanIdentity(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "user not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load user", err)
	}
	return ident, nil
}

func (r *IdentityRepository) GetByEmail(ctx context.Context, email string) (*identity.Identity, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+identityColumns+` FROM users WHERE email = $1`, strings.ToLower(strings.TrimSpace(email)))
	ident, err := scanIdentity(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "user not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load user", err)
	}
	return ident, nil
}

func (r *IdentityRepository) List(ctx context.Context) ([]identity.Identity, error) {
	return r.queryList(ctx, `SELECT `+identityColumns+` FROM users ORDER BY created_at DESC`)
}

func (r *IdentityRepository) ListPendingRecruiters(ctx context.Context) ([]identity.Identity, error) {
	return r.queryList(ctx, `SELECT `+identityColumns+` FROM users WHERE role = $1 AND is_approved = FALSE ORDER BY created_at ASC`, identity.RoleRecruiter)
}

func (r *IdentityRepository) queryList(ctx context.Context, query string, args ...any) ([]identity.Identity, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list users", err)
	}
	defer rows.Close()
	var items []identity.Identity
	for rows.Next() {
		ident, err := scanIdentity(rows)
		if err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan user", err)
		}
		items = append(items, *ident)
	}
	return items, nil
}

func (r *IdentityRepository) SetApproved(ctx context.Context, id common.UUID, approved bool) error {
	result, err := r.db.ExecContext(ctx, `UPDATE users SET is_approved = $1, updated_at = $2 WHERE id = $3`, approved, time.Now().UTC(), id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to update approval", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "user not found", sql.ErrNoRows)
	}
	return nil
}

func (r *IdentityRepository) UpdateProfile(ctx context.Context, id common.UUID, update identity.ProfileUpdate) (*identity.Identity, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if update.Name != nil {
		current.Name = *update.Name
	}
	if update.Headline != nil {
		current.Headline = *update.Headline
	}
	if update.City != nil {
		current.City = *update.City
	}
	if update.Province != nil {
		current.Province = *update.Province
	}
	if update.CompanyName != nil {
		current.CompanyName = *update.CompanyName
	}
	if update.AvatarPath != nil {
		current.AvatarPath = *update.AvatarPath
	}
	current.UpdatedAt = time.Now().UTC()
	_, err = r.db.ExecContext(ctx, `UPDATE users SET name = $1, headline = $2, city = $3, province = $4, company_name = $5, avatar_path = $6, updated_at = $7 WHERE id = $8`,
		current.Name, current.Headline, current.City, current.Province, current.CompanyName, current.AvatarPath, current.UpdatedAt, id)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update profile", err)
	}
	return current, nil
}

func (r *IdentityRepository) Delete(ctx context.Context, id common.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete user", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "user not found", sql.ErrNoRows)
	}
	return nil
}
