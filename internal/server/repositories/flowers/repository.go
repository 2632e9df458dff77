package flowers

import (
	"context"

	"github.com/dmitrijs2005/soulbloom/internal/server/models"
)

// Repository stores flowers. Reads and writes of missing rows return
// common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, flower *models.Flower) (*models.Flower, error)
	GetByID(ctx context.Context, id string) (*models.Flower, error)
	ListByOwner(ctx context.Context, userID string) ([]models.Flower, error)
	ListByGarden(ctx context.Context, gardenID string) ([]models.Flower, error)
	// Update writes self_care_type, description and garden_id.
	Update(ctx context.Context, flower *models.Flower) (*models.Flower, error)
	Delete(ctx context.Context, id string) error
	DeleteByOwner(ctx context.Context, userID string) (int64, error)
}
