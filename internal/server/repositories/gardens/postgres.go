package gardens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

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

const gardenColumns = `id, user_id, last_watered, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGarden(row rowScanner) (*models.Garden, error) {
	var (
		g       models.Garden
		watered sql.NullTime
	)
	if err := row.Scan(&g.ID, &g.UserID, &watered, &g.CreatedAt); err != nil {
		return nil, err
	}
	if watered.Valid {
		t := watered.Time
		g.LastWatered = &t
	}
	return &g, nil
}

func (r *PostgresRepository) Create(ctx context.Context, garden *models.Garden) (*models.Garden, error) {
	query :=
		`INSERT INTO gardens (id, user_id, last_watered, created_at)
		 VALUES ($1, $2, $3, $4)`

	var watered sql.NullTime
	if garden.LastWatered != nil {
		watered = sql.NullTime{Time: *garden.LastWatered, Valid: true}
	}

	if _, err := r.db.ExecContext(ctx, query, garden.ID, garden.UserID, watered, garden.CreatedAt); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return garden, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Garden, error) {
	query := `SELECT ` + gardenColumns + ` FROM gardens WHERE id = $1`

	g, err := scanGarden(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return g, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, userID string) ([]models.Garden, error) {
	query :=
		`SELECT ` + gardenColumns + ` FROM gardens
		 WHERE user_id = $1
		 ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Garden
	for rows.Next() {
		g, err := scanGarden(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) UpdateLastWatered(ctx context.Context, id, userID string, at time.Time) (*models.Garden, error) {
	query :=
		`UPDATE gardens SET last_watered = $1
		 WHERE id = $2 AND user_id = $3
		 RETURNING ` + gardenColumns

	g, err := scanGarden(r.db.QueryRowContext(ctx, query, at, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return g, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM gardens WHERE id = $1`, id)
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
	res, err := r.db.ExecContext(ctx, `DELETE FROM gardens WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
