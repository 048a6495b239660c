package cat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/catcafe/catcafe/internal/platform/apperr"
	"github.com/catcafe/catcafe/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
//
// Reads hydrate temperament tags with a json_agg sub-query so every cat comes
// back in a single round-trip; writes that touch the association table run
// inside one transaction so a failed tag insert never leaves a half-tagged
// row behind.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// catColumns is the shared SELECT list. The COALESCE keeps tag-less cats at
// an empty JSON array instead of SQL NULL.
const catColumns = `
	c.id, c.name, c.age, c.breed, c.date_joined, c.vaccinated,
	c.staff_in_charge, c.is_adopted, c.adopter_id,
	COALESCE((
		SELECT json_agg(t.name ORDER BY t.name)
		FROM temperaments t
		JOIN cat_temperaments ct ON t.id = ct.temperament_id
		WHERE ct.cat_id = c.id
	), '[]') AS temperament
`

func (repository *PostgresRepository) List(ctx context.Context) ([]*Cat, error) {
	query := `SELECT ` + catColumns + ` FROM cats c ORDER BY c.name, c.id`
	return repository.queryCats(ctx, query)
}

func (repository *PostgresRepository) Get(ctx context.Context, id int64) (*Cat, error) {
	query := `SELECT ` + catColumns + ` FROM cats c WHERE c.id = $1`

	cat, err := scanCat(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Cat")
		}
		return nil, dberr.Wrap(err, "get_cat")
	}
	return cat, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, cat *Cat, temperamentIDs []int) error {
	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "create_cat_begin")
	}
	defer transaction.Rollback(ctx)

	query := `
		INSERT INTO cats (name, age, breed, date_joined, vaccinated, staff_in_charge, is_adopted, adopter_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err = transaction.QueryRow(ctx, query,
		cat.Name, cat.Age, cat.Breed, cat.DateJoined, cat.Vaccinated,
		cat.StaffInCharge, cat.IsAdopted, cat.AdopterID,
	).Scan(&cat.ID)
	if err != nil {
		return dberr.Wrap(err, "create_cat")
	}

	if err := repository.replaceAssociations(ctx, transaction, cat.ID, temperamentIDs); err != nil {
		return err
	}

	if err := transaction.Commit(ctx); err != nil {
		return dberr.Wrap(err, "create_cat_commit")
	}
	return nil
}

func (repository *PostgresRepository) Replace(ctx context.Context, cat *Cat, temperamentIDs []int, replaceTags bool) error {
	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "replace_cat_begin")
	}
	defer transaction.Rollback(ctx)

	query := `
		UPDATE cats
		SET name = $1, age = $2, breed = $3, date_joined = $4, vaccinated = $5,
		    staff_in_charge = $6, is_adopted = $7, adopter_id = $8
		WHERE id = $9
	`
	result, err := transaction.Exec(ctx, query,
		cat.Name, cat.Age, cat.Breed, cat.DateJoined, cat.Vaccinated,
		cat.StaffInCharge, cat.IsAdopted, cat.AdopterID, cat.ID,
	)
	if err != nil {
		return dberr.Wrap(err, "replace_cat")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Cat")
	}

	if replaceTags {
		if err := repository.replaceAssociations(ctx, transaction, cat.ID, temperamentIDs); err != nil {
			return err
		}
	}

	if err := transaction.Commit(ctx); err != nil {
		return dberr.Wrap(err, "replace_cat_commit")
	}
	return nil
}

func (repository *PostgresRepository) UpdateAssignment(ctx context.Context, cat *Cat) error {
	query := `
		UPDATE cats
		SET staff_in_charge = $1, adopter_id = $2, is_adopted = $3
		WHERE id = $4
	`
	result, err := repository.pool.Exec(ctx, query, cat.StaffInCharge, cat.AdopterID, cat.IsAdopted, cat.ID)
	if err != nil {
		return dberr.Wrap(err, "patch_cat")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Cat")
	}
	return nil
}

func (repository *PostgresRepository) Delete(ctx context.Context, id int64) error {
	// cat_temperaments rows cascade with the cat row.
	result, err := repository.pool.Exec(ctx, `DELETE FROM cats WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "delete_cat")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Cat")
	}
	return nil
}

func (repository *PostgresRepository) ListByStaff(ctx context.Context, staffID string) ([]*Cat, error) {
	query := `SELECT ` + catColumns + ` FROM cats c WHERE c.staff_in_charge = $1 ORDER BY c.name, c.id`
	return repository.queryCats(ctx, query, staffID)
}

func (repository *PostgresRepository) ListByAdopter(ctx context.Context, adopterID int64) ([]*Cat, error) {
	query := `SELECT ` + catColumns + ` FROM cats c WHERE c.adopter_id = $1 ORDER BY c.name, c.id`
	return repository.queryCats(ctx, query, adopterID)
}

func (repository *PostgresRepository) CountByAdopter(ctx context.Context, adopterID int64) (int64, error) {
	var count int64
	err := repository.pool.QueryRow(ctx, `SELECT COUNT(*) FROM cats WHERE adopter_id = $1`, adopterID).Scan(&count)
	if err != nil {
		return 0, dberr.Wrap(err, "count_adoptions")
	}
	return count, nil
}

// replaceAssociations synchronizes the cat_temperaments junction with a
// clear-and-insert strategy, batching the inserts into one round-trip.
func (repository *PostgresRepository) replaceAssociations(ctx context.Context, transaction pgx.Tx, catID int64, temperamentIDs []int) error {
	if _, err := transaction.Exec(ctx, `DELETE FROM cat_temperaments WHERE cat_id = $1`, catID); err != nil {
		return dberr.Wrap(err, "clear_cat_temperaments")
	}

	if len(temperamentIDs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, temperamentID := range temperamentIDs {
		batch.Queue(`INSERT INTO cat_temperaments (cat_id, temperament_id) VALUES ($1, $2)`, catID, temperamentID)
	}

	results := transaction.SendBatch(ctx, batch)
	if err := results.Close(); err != nil {
		return dberr.Wrap(err, "insert_cat_temperaments")
	}
	return nil
}

func (repository *PostgresRepository) queryCats(ctx context.Context, query string, args ...any) ([]*Cat, error) {
	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_cats")
	}
	defer rows.Close()

	var cats []*Cat
	for rows.Next() {
		cat, err := scanCat(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan cat: %w", err)
		}
		cats = append(cats, cat)
	}
	return cats, rows.Err()
}

func scanCat(row pgx.Row) (*Cat, error) {
	cat := &Cat{}
	var tagsJSON []byte

	err := row.Scan(
		&cat.ID, &cat.Name, &cat.Age, &cat.Breed, &cat.DateJoined, &cat.Vaccinated,
		&cat.StaffInCharge, &cat.IsAdopted, &cat.AdopterID, &tagsJSON,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(tagsJSON, &cat.Temperament); err != nil {
		return nil, fmt.Errorf("postgres: failed to unmarshal temperament tags: %w", err)
	}
	if cat.Temperament == nil {
		cat.Temperament = []string{}
	}
	return cat, nil
}
