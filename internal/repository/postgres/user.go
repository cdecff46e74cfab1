package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rentall-backend/internal/domain"
	"rentall-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, name, password_hash, avatar_url, location, bio, balance, payout_account, created_on, updated_on`

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (id, email, name, password_hash, balance, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, 0, $5, $5)`
	now := time.Now().UTC()
	u.CreatedOn = now.Format(time.RFC3339)
	_, err := r.db.ExecContext(ctx, query, u.ID, u.Email, u.Name, u.PasswordHash, now)
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getBy(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getBy(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *userRepository) getBy(ctx context.Context, query string, arg any) (*domain.User, error) {
	u := &domain.User{}
	var createdOn, updatedOn time.Time
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.AvatarURL, &u.Location,
		&u.Bio, &u.Balance, &u.PayoutAccount, &createdOn, &updatedOn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundError("user not found")
	}
	if err != nil {
		return nil, err
	}
	u.CreatedOn = createdOn.Format(time.RFC3339)
	u.UpdatedOn = updatedOn.Format(time.RFC3339)
	return u, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, id string, up domain.ProfileUpdate) error {
	query := `UPDATE users SET
	            name = COALESCE($1, name),
	            avatar_url = COALESCE($2, avatar_url),
	            location = COALESCE($3, location),
	            bio = COALESCE($4, bio),
	            payout_account = COALESCE($5, payout_account),
	            updated_on = $6
	          WHERE id = $7`
	res, err := r.db.ExecContext(ctx, query, up.Name, up.AvatarURL, up.Location, up.Bio, up.PayoutAccount, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError("user not found")
	}
	return nil
}
