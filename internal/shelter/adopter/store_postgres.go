package adopter

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

func (repository *PostgresRepository) List(ctx context.Context) ([]*Adopter, error) {
	const query = `
		SELECT id, name, last_name, date_of_birth, phone, address
		FROM adopters
		ORDER BY name`

	rows, err := repository.db.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_adopters")
	}
	defer rows.Close()

	var adopters []*Adopter
	for rows.Next() {
		a := &Adopter{}
		if err := rows.Scan(&a.ID, &a.Name, &a.LastName, &a.DateOfBirth, &a.Phone, &a.Address); err != nil {
			return nil, dberr.Wrap(err, "scan_adopter")
		}
		adopters = append(adopters, a)
	}

	return adopters, rows.Err()
}

func (repository *PostgresRepository) Get(ctx context.Context, id int64) (*Adopter, error) {
	const query = `
		SELECT id, name, last_name, date_of_birth, phone, address
		FROM adopters
		WHERE id = $1`

	a := &Adopter{}
	err := repository.db.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.Name, &a.LastName, &a.DateOfBirth, &a.Phone, &a.Address,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Adopter")
		}
		return nil, dberr.Wrap(err, "get_adopter")
	}

	return a, nil
}

func (repository *PostgresRepository) GetByPhone(ctx context.Context, phone string) (*Adopter, error) {
	const query = `
		SELECT id, name, last_name, date_of_birth, phone, address
		FROM adopters
		WHERE phone = $1`

	a := &Adopter{}
	err := repository.db.QueryRow(ctx, query, phone).Scan(
		&a.ID, &a.Name, &a.LastName, &a.DateOfBirth, &a.Phone, &a.Address,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Adopter")
		}
		return nil, dberr.Wrap(err, "get_adopter_by_phone")
	}

	return a, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, a *Adopter) error {
	// The unique index on phone is the authoritative guard; a concurrent
	// duplicate surfaces here as a Conflict via dberr.
	const query = `
		INSERT INTO adopters (name, last_name, date_of_birth, phone, address)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := repository.db.QueryRow(ctx, query,
		a.Name, a.LastName, a.DateOfBirth, a.Phone, a.Address,
	).Scan(&a.ID)
	return dberr.Wrap(err, "create_adopter")
}

func (repository *PostgresRepository) Update(ctx context.Context, a *Adopter) error {
	const query = `
		UPDATE adopters
		SET name = $2, last_name = $3, date_of_birth = $4, phone = $5, address = $6
		WHERE id = $1`

	cmd, err := repository.db.Exec(ctx, query,
		a.ID, a.Name, a.LastName, a.DateOfBirth, a.Phone, a.Address,
	)
	if err != nil {
		return dberr.Wrap(err, "update_adopter")
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Adopter")
	}
	return nil
}

func (repository *PostgresRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM adopters WHERE id = $1`

	cmd, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_adopter")
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Adopter")
	}
	return nil
}

func (repository *PostgresRepository) Exists(ctx context.Context, id int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM adopters WHERE id = $1)`

	var exists bool
	if err := repository.db.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "adopter_exists")
	}
	return exists, nil
}
