package userrepo

import (
	"context"
	"time"

	"libraryservice/model"
	"libraryservice/util/database"
)

type Repo interface {
	Create(ctx context.Context, u *model.User) error
	ByEmail(ctx context.Context, email string) (*model.User, error)
	ByID(ctx context.Context, id int64) (*model.User, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

const userColumns = `id, email, first_name, last_name, password_hash, is_staff, created_at`

// Create stores u and fills in its id. A second account with the same email,
// in any letter case, yields database.ErrDuplicateKey.
func (r *repo) Create(ctx context.Context, u *model.User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)
	}
	const q = `
		INSERT INTO users(email, first_name, last_name, password_hash, is_staff, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id`
	err := r.db.QueryRowxContext(ctx, r.db.Rebind(q),
		u.Email, u.FirstName, u.LastName, u.PasswordHash, u.IsStaff, u.CreatedAt,
	).Scan(&u.ID)
	return database.MapError(err)
}

func (r *repo) ByEmail(ctx context.Context, email string) (*model.User, error) {
	u := &model.User{}
	err := r.db.GetContext(ctx, u, r.db.Rebind(`
		SELECT `+userColumns+`
		FROM users
		WHERE lower(email) = lower(?)`), email)
	if err != nil {
		return nil, database.MapError(err)
	}
	return u, nil
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.User, error) {
	u := &model.User{}
	if err := r.db.GetContext(ctx, u, r.db.Rebind(`SELECT `+userColumns+` FROM users WHERE id = ?`), id); err != nil {
		return nil, database.MapError(err)
	}
	return u, nil
}
