package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/soulbloom/internal/common"
	"github.com/dmitrijs2005/soulbloom/internal/logging"
	"github.com/dmitrijs2005/soulbloom/internal/server/models"
	"github.com/dmitrijs2005/soulbloom/internal/server/services"
)

const (
	aliceID  = "7c1f1a54-9d4e-4a43-8d6b-1f7b8f2b0a01"
	bobID    = "7c1f1a54-9d4e-4a43-8d6b-1f7b8f2b0a02"
	gardenID = "0b6f3f2e-5b7a-4f64-9d0c-2a1e4c3b5d01"
	flowerID = "0b6f3f2e-5b7a-4f64-9d0c-2a1e4c3b5d02"
)

var t0 = time.Date(2025, time.April, 1, 12, 0, 0, 0, time.UTC)

type fakeAuth struct {
	regUser  *models.User
	regErr   error
	regInput services.RegisterInput

	token     *services.IssuedToken
	loginErr  error
	loginAddr string
}

func (f *fakeAuth) Register(_ context.Context, in services.RegisterInput) (*models.User, error) {
	f.regInput = in
	return f.regUser, f.regErr
}

func (f *fakeAuth) Login(ctx context.Context, _, _ string) (*services.IssuedToken, error) {
	f.loginAddr = services.ClientAddr(ctx)
	return f.token, f.loginErr
}

// fakeResolver knows a fixed set of tokens.
type fakeResolver struct {
	tokens map[string]*models.User
	err    error
}

func (f *fakeResolver) Resolve(_ context.Context, token string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.tokens[token]
	if !ok {
		return nil, common.ErrorUnauthenticated
	}
	return u, nil
}

type fakeUsers struct {
	lastID    string
	lastPatch services.UserPatch
	err       error
	list      []models.User
}

func (f *fakeUsers) GetUser(_ context.Context, id string) (*models.User, error) {
	f.lastID = id
	if f.err != nil {
		return nil, f.err
	}
	return &models.User{ID: id, Email: "a@x.com", Username: "a@x.com", CreatedAt: t0}, nil
}

func (f *fakeUsers) ListUsers(context.Context) ([]models.User, error) {
	return f.list, f.err
}

func (f *fakeUsers) UpdateUser(_ context.Context, id string, p services.UserPatch) (*models.User, error) {
	f.lastID, f.lastPatch = id, p
	if f.err != nil {
		return nil, f.err
	}
	return &models.User{ID: id, Username: p.Username, Name: p.Name}, nil
}

func (f *fakeUsers) DeleteUser(_ context.Context, id string) (*models.User, error) {
	f.lastID = id
	if f.err != nil {
		return nil, f.err
	}
	return &models.User{ID: id}, nil
}

// fakeGardens records the owner of the last call and returns err when set.
type fakeGardens struct {
	owner     *models.User
	lastID    string
	lastInput services.FlowerInput
	lastPatch services.FlowerPatch
	err       error
}

func (f *fakeGardens) garden(owner *models.User, id string) (*models.Garden, error) {
	f.owner, f.lastID = owner, id
	if f.err != nil {
		return nil, f.err
	}
	return &models.Garden{ID: id, UserID: owner.ID, CreatedAt: t0, LastWatered: &t0}, nil
}

func (f *fakeGardens) flower(owner *models.User, id string) (*models.Flower, error) {
	f.owner, f.lastID = owner, id
	if f.err != nil {
		return nil, f.err
	}
	return &models.Flower{ID: id, UserID: owner.ID, SelfCareType: "walk", CreatedAt: t0}, nil
}

func (f *fakeGardens) CreateGarden(_ context.Context, owner *models.User) (*models.Garden, error) {
	return f.garden(owner, gardenID)
}

func (f *fakeGardens) Water(_ context.Context, owner *models.User, id string) (*models.Garden, error) {
	return f.garden(owner, id)
}

func (f *fakeGardens) GetGarden(_ context.Context, owner *models.User, id string) (*models.Garden, error) {
	g, err := f.garden(owner, id)
	if err != nil {
		return nil, err
	}
	g.Flowers = []models.Flower{{ID: flowerID, UserID: owner.ID, GardenID: &g.ID, SelfCareType: "walk"}}
	return g, nil
}

func (f *fakeGardens) ListGardens(_ context.Context, owner *models.User) ([]models.Garden, error) {
	g, err := f.garden(owner, gardenID)
	if err != nil {
		return nil, err
	}
	return []models.Garden{*g}, nil
}

func (f *fakeGardens) AddFlower(_ context.Context, owner *models.User, in services.FlowerInput) (*models.Flower, error) {
	f.lastInput = in
	return f.flower(owner, flowerID)
}

func (f *fakeGardens) UpdateFlower(_ context.Context, owner *models.User, id string, p services.FlowerPatch) (*models.Flower, error) {
	f.lastPatch = p
	return f.flower(owner, id)
}

func (f *fakeGardens) DeleteFlower(_ context.Context, owner *models.User, id string) (*models.Flower, error) {
	return f.flower(owner, id)
}

func (f *fakeGardens) ListFlowers(_ context.Context, owner *models.User) ([]models.Flower, error) {
	fl, err := f.flower(owner, flowerID)
	if err != nil {
		return nil, err
	}
	return []models.Flower{*fl}, nil
}

type fixture struct {
	auth     *fakeAuth
	resolver *fakeResolver
	users    *fakeUsers
	gardens  *fakeGardens
	server   *GRPCServer
}

func newFixture() *fixture {
	f := &fixture{
		auth: &fakeAuth{},
		resolver: &fakeResolver{tokens: map[string]*models.User{
			"alice-token": {ID: aliceID, Email: "alice@x.com"},
			"bob-token":   {ID: bobID, Email: "bob@x.com"},
		}},
		users:   &fakeUsers{},
		gardens: &fakeGardens{},
	}
	f.server = NewGRPCServer("127.0.0.1:0", logging.Nop(), Services{
		Auth:     f.auth,
		Identity: f.resolver,
		Users:    f.users,
		Gardens:  f.gardens,
	}, nil)
	return f
}
