package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/librarium/librarium/internal/domain/entity"
	"github.com/librarium/librarium/internal/domain/repository"
)

type AccessRepository struct {
	pool *pgxpool.Pool
}

func NewAccessRepository(pool *pgxpool.Pool) *AccessRepository {
	return &AccessRepository{pool: pool}
}

func (r *AccessRepository) ListGroups(ctx context.Context) ([]entity.Group, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT g.id, g.name, g.created_at, g.updated_at,
		       coalesce(array_agg(p.code ORDER BY p.code) FILTER (WHERE p.code IS NOT NULL), '{}')
		FROM groups g
		LEFT JOIN group_permissions gp ON gp.group_id = g.id
		LEFT JOIN permissions p ON p.id = gp.permission_id
		GROUP BY g.id
		ORDER BY g.name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := make([]entity.Group, 0)
	for rows.Next() {
		var g entity.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.CreatedAt, &g.UpdatedAt, &g.Permissions); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (r *AccessRepository) GetGroupByName(ctx context.Context, name string) (*entity.Group, error) {
	g := &entity.Group{}
	row := r.pool.QueryRow(ctx, `
		SELECT g.id, g.name, g.created_at, g.updated_at,
		       coalesce(array_agg(p.code ORDER BY p.code) FILTER (WHERE p.code IS NOT NULL), '{}')
		FROM groups g
		LEFT JOIN group_permissions gp ON gp.group_id = g.id
		LEFT JOIN permissions p ON p.id = gp.permission_id
		WHERE g.name = $1
		GROUP BY g.id
	`, name)
	if err := row.Scan(&g.ID, &g.Name, &g.CreatedAt, &g.UpdatedAt, &g.Permissions); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return g, nil
}

func (r *AccessRepository) UserPermissions(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT p.code
		FROM user_groups ug
		JOIN group_permissions gp ON gp.group_id = ug.group_id
		JOIN permissions p ON p.id = gp.permission_id
		WHERE ug.user_id = $1
		ORDER BY p.code
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	perms := make([]string, 0)
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		perms = append(perms, code)
	}
	return perms, rows.Err()
}

// SetUserGroups replaces the user's memberships atomically.
func (r *AccessRepository) SetUserGroups(ctx context.Context, userID string, groupIDs []string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM user_groups WHERE user_id = $1`, userID); err != nil {
		return err
	}
	for _, gid := range groupIDs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO user_groups (user_id, group_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, userID, gid); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *AccessRepository) AddUserToGroup(ctx context.Context, userID, groupID string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO user_groups (user_id, group_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, userID, groupID)
	return err
}

var _ repository.AccessRepository = (*AccessRepository)(nil)
