package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/webroomers/pg-booking-service/internal/model"
	"github.com/webroomers/pg-booking-service/internal/utils"
)

// UserRepo provides persistence for accounts.  Emails are normalized
// to lower case before any read or write.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

var ErrEmailExists = errors.New("email already exists")

// Create inserts a user and returns its ID.  CompanyID is zero for
// tenants.
func (r *UserRepo) Create(ctx context.Context, email, password, role string, companyID uint64, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, role, company_id) VALUES (?,?,?,?)",
		email, hash, role, companyID)
	if err != nil {
		// MySQL duplicate-key errors carry code 1062.
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// SetCompany assigns a user to a company.  Owner accounts anchor their
// own company, so their company id is set to their user id right after
// registration.
func (r *UserRepo) SetCompany(ctx context.Context, userID, companyID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET company_id=? WHERE id=?", companyID, userID)
	return err
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,role,company_id,is_active,created_at,updated_at FROM users WHERE email=? LIMIT 1",
		email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.CompanyID, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,role,company_id,is_active,created_at,updated_at FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.CompanyID, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}
