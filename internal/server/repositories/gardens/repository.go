package gardens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/soulbloom/internal/server/models"
)

// Repository stores gardens. Reads of missing rows return common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, garden *models.Garden) (*models.Garden, error)
	GetByID(ctx context.Context, id string) (*models.Garden, error)
	// ListByOwner returns the user's gardens oldest first.
	ListByOwner(ctx context.Context, userID string) ([]models.Garden, error)
	// UpdateLastWatered sets last_watered only when the garden belongs to userID.
	UpdateLastWatered(ctx context.Context, id, userID string, at time.Time) (*models.Garden, error)
	Delete(ctx context.Context, id string) error
	DeleteByOwner(ctx context.Context, userID string) (int64, error)
}
