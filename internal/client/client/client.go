package client

import (
	"context"

	"github.com/dmitrijs2005/soulbloom/internal/api"
)

// Client is the set of server operations the CLI uses.
type Client interface {
	Close() error
	LoggedIn() bool
	Logout()

	Register(ctx context.Context, email, username, name string, password []byte) (*api.User, error)
	Login(ctx context.Context, email string, password []byte) error

	Me(ctx context.Context) (*api.User, error)
	UpdateMe(ctx context.Context, username, name string) (*api.User, error)
	DeleteMe(ctx context.Context) (*api.User, error)
	ListUsers(ctx context.Context) ([]api.User, error)

	CreateGarden(ctx context.Context) (*api.Garden, error)
	WaterGarden(ctx context.Context, gardenID string) (*api.Garden, error)
	GetGarden(ctx context.Context, gardenID string) (*api.Garden, error)
	ListGardens(ctx context.Context) ([]api.Garden, error)

	AddFlower(ctx context.Context, in api.AddFlowerRequest) (*api.Flower, error)
	UpdateFlower(ctx context.Context, in api.UpdateFlowerRequest) (*api.Flower, error)
	DeleteFlower(ctx context.Context, flowerID string) (*api.Flower, error)
	ListFlowers(ctx context.Context) ([]api.Flower, error)
}
