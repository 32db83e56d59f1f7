package item

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL item repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func (r *postgresRepository) Create(ctx context.Context, it *Item) error {
	query := `
		INSERT INTO items (name, description, quantity, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		it.Name, it.Description, it.Quantity, it.Price,
	).Scan(&it.ID, &it.CreatedAt, &it.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicateName
	}
	return err
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*Item, error) {
	it := &Item{}
	query := `
		SELECT id, name, description, quantity, price, created_at, updated_at
		FROM items
		WHERE id = $1
	`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&it.ID, &it.Name, &it.Description, &it.Quantity, &it.Price,
		&it.CreatedAt, &it.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return it, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]Item, error) {
	query := `
		SELECT id, name, description, quantity, price, created_at, updated_at
		FROM items
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		var it Item
		if err := rows.Scan(
			&it.ID, &it.Name, &it.Description, &it.Quantity, &it.Price,
			&it.CreatedAt, &it.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *postgresRepository) Update(ctx context.Context, it *Item) error {
	query := `
		UPDATE items
		SET name = $1, description = $2, quantity = $3, price = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		it.Name, it.Description, it.Quantity, it.Price, it.ID,
	).Scan(&it.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if isUniqueViolation(err) {
		return ErrDuplicateName
	}
	return err
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM items WHERE name = $1)`, name,
	).Scan(&exists)
	return exists, err
}
