package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/librarium/librarium/internal/domain/entity"
	"github.com/librarium/librarium/internal/domain/repository"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create inserts the user and its profile in a single transaction. The
// profile row always exists once the user row exists.
func (r *UserRepository) Create(ctx context.Context, u *entity.User, p *entity.UserProfile) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, name)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, u.Email, u.Password, u.Name)
	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return mapError(err)
	}

	if p.Role == "" {
		p.Role = entity.RoleMember
	}
	p.UserID = u.ID
	row = tx.QueryRow(ctx, `
		INSERT INTO user_profiles (user_id, role, date_of_birth, photo_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, p.UserID, p.Role, p.DateOfBirth, p.PhotoURL)
	if err := row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return mapError(err)
	}

	return tx.Commit(ctx)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getBy(ctx, `WHERE id = $1`, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getBy(ctx, `WHERE email = $1`, email)
}

func (r *UserRepository) getBy(ctx context.Context, where string, arg any) (*entity.User, error) {
	u := &entity.User{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, name, created_at, updated_at
		FROM users
	`+where, arg)
	if err := row.Scan(&u.ID, &u.Email, &u.Password, &u.Name, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET email = $1, password_hash = $2, name = $3, updated_at = now()
		WHERE id = $4
	`, u.Email, u.Password, u.Name, u.ID)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&n)
	return n, err
}

func (r *UserRepository) GetProfile(ctx context.Context, userID string) (*entity.UserProfile, error) {
	p := &entity.UserProfile{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, role, date_of_birth, photo_url, created_at, updated_at
		FROM user_profiles
		WHERE user_id = $1
	`, userID)
	if err := row.Scan(&p.ID, &p.UserID, &p.Role, &p.DateOfBirth, &p.PhotoURL,
		&p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, p *entity.UserProfile) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE user_profiles
		SET role = $1, date_of_birth = $2, photo_url = $3, updated_at = now()
		WHERE user_id = $4
	`, p.Role, p.DateOfBirth, p.PhotoURL, p.UserID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) SetRole(ctx context.Context, userID, role string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE user_profiles
		SET role = $1, updated_at = now()
		WHERE user_id = $2
	`, role, userID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
