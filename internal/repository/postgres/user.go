package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/clinic-api/internal/model"
)

const userColumns = `id, name, phone, email, password_hash, role, created_at, updated_at`

type UserRepository struct {
	BaseRepository
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *UserRepository) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE id = $1`, id); err != nil {
		return nil, mapGetError(err)
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE email = $1`, email); err != nil {
		return nil, mapGetError(err)
	}
	return &user, nil
}

func (r *UserRepository) FindFirst(ctx context.Context, match model.UserMatch) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		WHERE id <> $1
		  AND (($2 <> '' AND name = $2) OR ($3 <> '' AND email = $3) OR ($4 <> '' AND phone = $4))
		ORDER BY created_at
		LIMIT 1`
	var user model.User
	if err := r.db.GetContext(ctx, &user, query, match.ExcludeID, match.Name, match.Email, match.Phone); err != nil {
		return nil, mapGetError(err)
	}
	return &user, nil
}

func (r *UserRepository) List(ctx context.Context, filter model.UserFilter) ([]*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ($1 = '' OR role = $1) ORDER BY created_at`
	users := []*model.User{}
	if err := r.db.SelectContext(ctx, &users, query, filter.Role); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (id, name, phone, email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.Phone,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.CreatedAt,
		user.UpdatedAt,
	)
	return mapWriteError(err)
}

func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users
		SET name = $1, phone = $2, email = $3, password_hash = $4, role = $5, updated_at = $6
		WHERE id = $7`
	return r.exec(ctx, r.db, query,
		user.Name,
		user.Phone,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.UpdatedAt,
		user.ID,
	)
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.remove(ctx, "users", id)
}
