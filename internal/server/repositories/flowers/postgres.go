package flowers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/soulbloom/internal/common"
	"github.com/dmitrijs2005/soulbloom/internal/dbx"
	"github.com/dmitrijs2005/soulbloom/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const flowerColumns = `id, user_id, garden_id, self_care_type, description, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFlower(row rowScanner) (*models.Flower, error) {
	var (
		f      models.Flower
		garden sql.NullString
	)
	if err := row.Scan(&f.ID, &f.UserID, &garden, &f.SelfCareType, &f.Description, &f.CreatedAt); err != nil {
		return nil, err
	}
	if garden.Valid {
		id := garden.String
		f.GardenID = &id
	}
	return &f, nil
}

func gardenArg(id *string) sql.NullString {
	if id == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *id, Valid: true}
}

func (r *PostgresRepository) Create(ctx context.Context, flower *models.Flower) (*models.Flower, error) {
	query :=
		`INSERT INTO flowers (id, user_id, garden_id, self_care_type, description, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		flower.ID, flower.UserID, gardenArg(flower.GardenID), flower.SelfCareType, flower.Description, flower.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return flower, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Flower, error) {
	query := `SELECT ` + flowerColumns + ` FROM flowers WHERE id = $1`

	f, err := scanFlower(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return f, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, userID string) ([]models.Flower, error) {
	return r.list(ctx, `SELECT `+flowerColumns+` FROM flowers WHERE user_id = $1 ORDER BY created_at, id`, userID)
}

func (r *PostgresRepository) ListByGarden(ctx context.Context, gardenID string) ([]models.Flower, error) {
	return r.list(ctx, `SELECT `+flowerColumns+` FROM flowers WHERE garden_id = $1 ORDER BY created_at, id`, gardenID)
}

func (r *PostgresRepository) list(ctx context.Context, query string, arg any) ([]models.Flower, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Flower
	for rows.Next() {
		f, err := scanFlower(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, flower *models.Flower) (*models.Flower, error) {
	query :=
		`UPDATE flowers SET self_care_type = $1, description = $2, garden_id = $3
		 WHERE id = $4
		 RETURNING ` + flowerColumns

	f, err := scanFlower(r.db.QueryRowContext(ctx, query,
		flower.SelfCareType, flower.Description, gardenArg(flower.GardenID), flower.ID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return f, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM flowers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteByOwner(ctx context.Context, userID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM flowers WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
