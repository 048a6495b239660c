package temperament

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/catcafe/catcafe/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) List(ctx context.Context) ([]Temperament, error) {
	const query = `SELECT id, name FROM temperaments ORDER BY name`

	rows, err := repository.db.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_temperaments")
	}
	defer rows.Close()

	var temperaments []Temperament
	for rows.Next() {
		var t Temperament
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, dberr.Wrap(err, "scan_temperament")
		}
		temperaments = append(temperaments, t)
	}

	return temperaments, rows.Err()
}

func (repository *PostgresRepository) FindByNames(ctx context.Context, names []string) ([]Temperament, error) {
	const query = `SELECT id, name FROM temperaments WHERE name = ANY($1)`

	rows, err := repository.db.Query(ctx, query, names)
	if err != nil {
		return nil, dberr.Wrap(err, "find_temperaments")
	}
	defer rows.Close()

	var temperaments []Temperament
	for rows.Next() {
		var t Temperament
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, dberr.Wrap(err, "scan_temperament")
		}
		temperaments = append(temperaments, t)
	}

	return temperaments, rows.Err()
}
