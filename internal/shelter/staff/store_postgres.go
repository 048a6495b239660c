package staff

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/catcafe/catcafe/internal/platform/apperr"
	"github.com/catcafe/catcafe/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) List(ctx context.Context) ([]*Staff, error) {
	const query = `
		SELECT id, name, last_name, age, date_joined, role
		FROM staff
		ORDER BY name`

	rows, err := repository.db.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_staff")
	}
	defer rows.Close()

	var members []*Staff
	for rows.Next() {
		s := &Staff{}
		if err := rows.Scan(&s.ID, &s.Name, &s.LastName, &s.Age, &s.DateJoined, &s.Role); err != nil {
			return nil, dberr.Wrap(err, "scan_staff")
		}
		members = append(members, s)
	}

	return members, rows.Err()
}

func (repository *PostgresRepository) Get(ctx context.Context, id string) (*Staff, error) {
	const query = `
		SELECT id, name, last_name, age, date_joined, role
		FROM staff
		WHERE id = $1`

	s := &Staff{}
	err := repository.db.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.LastName, &s.Age, &s.DateJoined, &s.Role,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Staff")
		}
		return nil, dberr.Wrap(err, "get_staff")
	}

	return s, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, s *Staff) error {
	const query = `
		INSERT INTO staff (id, name, last_name, age, date_joined, role)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := repository.db.Exec(ctx, query, s.ID, s.Name, s.LastName, s.Age, s.DateJoined, s.Role)
	return dberr.Wrap(err, "create_staff")
}

func (repository *PostgresRepository) Update(ctx context.Context, s *Staff) error {
	const query = `
		UPDATE staff
		SET name = $2, last_name = $3, age = $4, date_joined = $5, role = $6
		WHERE id = $1`

	cmd, err := repository.db.Exec(ctx, query, s.ID, s.Name, s.LastName, s.Age, s.DateJoined, s.Role)
	if err != nil {
		return dberr.Wrap(err, "update_staff")
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Staff")
	}
	return nil
}

func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	// cats.staff_in_charge carries ON DELETE SET NULL, so referencing cats
	// are detached rather than blocking the delete.
	const query = `DELETE FROM staff WHERE id = $1`

	cmd, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_staff")
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Staff")
	}
	return nil
}

func (repository *PostgresRepository) Exists(ctx context.Context, id string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM staff WHERE id = $1)`

	var exists bool
	if err := repository.db.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "staff_exists")
	}
	return exists, nil
}
