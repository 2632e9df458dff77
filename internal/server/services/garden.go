package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/soulbloom/internal/common"
	"github.com/dmitrijs2005/soulbloom/internal/logging"
	"github.com/dmitrijs2005/soulbloom/internal/server/models"
	"github.com/dmitrijs2005/soulbloom/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// FlowerInput describes a new flower. GardenID is optional; when empty the
// owner's oldest garden is used, and no garden at all if the owner has none.
type FlowerInput struct {
	SelfCareType string
	Description  string
	GardenID     string
}

// FlowerPatch holds a partial flower update. Empty fields are left unchanged.
// A non-empty GardenID moves the flower to another garden of the same owner.
type FlowerPatch struct {
	SelfCareType string
	Description  string
	GardenID     string
}

func (p FlowerPatch) empty() bool {
	return p.SelfCareType == "" && p.Description == "" && p.GardenID == ""
}

// GardenService implements garden and flower operations. Every method takes
// the already resolved owner and only ever touches that owner's rows.
type GardenService struct {
	db            *sql.DB
	repos         repomanager.RepositoryManager
	waterOnCreate bool
	log           logging.Logger

	now   func() time.Time
	newID func() string
}

// NewGardenService wires a GardenService. With waterOnCreate set, new gardens
// start with last-watered equal to their creation time.
func NewGardenService(db *sql.DB, m repomanager.RepositoryManager, waterOnCreate bool, log logging.Logger) *GardenService {
	return &GardenService{
		db:            db,
		repos:         m,
		waterOnCreate: waterOnCreate,
		log:           log,
		now:           time.Now,
		newID:         uuid.NewString,
	}
}

func checkOwner(owner *models.User) error {
	if owner == nil || owner.ID == "" {
		return common.ErrorUnauthenticated
	}
	return nil
}

// CreateGarden adds a garden for owner. Owners may have any number of gardens.
func (s *GardenService) CreateGarden(ctx context.Context, owner *models.User) (g *models.Garden, err error) {
	if err := checkOwner(owner); err != nil {
		return nil, err
	}
	ctx, span := startSpan(ctx, "garden.create", attribute.String("user.id", owner.ID))
	defer func() { endSpan(span, err) }()

	now := s.now().UTC()
	garden := &models.Garden{ID: s.newID(), UserID: owner.ID, CreatedAt: now}
	if s.waterOnCreate {
		garden.LastWatered = &now
	}

	g, err = s.repos.Gardens(s.db).Create(ctx, garden)
	if err != nil {
		return nil, err
	}
	s.log.Info(ctx, "garden created", "garden_id", g.ID, "user_id", owner.ID)
	return g, nil
}

// ownedGarden loads a garden and hides gardens of other users behind
// common.ErrorNotFound.
func (s *GardenService) ownedGarden(ctx context.Context, owner *models.User, gardenID string) (*models.Garden, error) {
	g, err := s.repos.Gardens(s.db).GetByID(ctx, gardenID)
	if err != nil {
		return nil, err
	}
	if g.UserID != owner.ID {
		return nil, common.ErrorNotFound
	}
	return g, nil
}

// Water sets the garden's last-watered time to now. A garden that does not
// exist or belongs to someone else yields common.ErrorNotFound and is left
// untouched.
func (s *GardenService) Water(ctx context.Context, owner *models.User, gardenID string) (g *models.Garden, err error) {
	if err := checkOwner(owner); err != nil {
		return nil, err
	}
	ctx, span := startSpan(ctx, "garden.water",
		attribute.String("user.id", owner.ID), attribute.String("garden.id", gardenID))
	defer func() { endSpan(span, err) }()

	if _, err = s.ownedGarden(ctx, owner, gardenID); err != nil {
		return nil, err
	}

	return s.repos.Gardens(s.db).UpdateLastWatered(ctx, gardenID, owner.ID, s.now().UTC())
}

// GetGarden returns one of owner's gardens together with its flowers.
func (s *GardenService) GetGarden(ctx context.Context, owner *models.User, gardenID string) (g *models.Garden, err error) {
	if err := checkOwner(owner); err != nil {
		return nil, err
	}
	ctx, span := startSpan(ctx, "garden.get", attribute.String("garden.id", gardenID))
	defer func() { endSpan(span, err) }()

	g, err = s.ownedGarden(ctx, owner, gardenID)
	if err != nil {
		return nil, err
	}

	g.Flowers, err = s.repos.Flowers(s.db).ListByGarden(ctx, g.ID)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// ListGardens returns owner's gardens, oldest first.
func (s *GardenService) ListGardens(ctx context.Context, owner *models.User) ([]models.Garden, error) {
	if err := checkOwner(owner); err != nil {
		return nil, err
	}
	return s.repos.Gardens(s.db).ListByOwner(ctx, owner.ID)
}

// AddFlower stores a new flower for owner, placing it in the requested
// garden or the owner's first garden by creation order.
func (s *GardenService) AddFlower(ctx context.Context, owner *models.User, in FlowerInput) (f *models.Flower, err error) {
	if err := checkOwner(owner); err != nil {
		return nil, err
	}
	ctx, span := startSpan(ctx, "flower.add", attribute.String("user.id", owner.ID))
	defer func() { endSpan(span, err) }()

	flower := &models.Flower{
		ID:           s.newID(),
		SelfCareType: strings.TrimSpace(in.SelfCareType),
		Description:  in.Description,
		UserID:       owner.ID,
		CreatedAt:    s.now().UTC(),
	}

	if in.GardenID != "" {
		g, err := s.ownedGarden(ctx, owner, in.GardenID)
		if err != nil {
			return nil, err
		}
		flower.GardenID = &g.ID
	} else {
		gardens, err := s.repos.Gardens(s.db).ListByOwner(ctx, owner.ID)
		if err != nil {
			return nil, err
		}
		if len(gardens) > 0 {
			flower.GardenID = &gardens[0].ID
		} else {
			s.log.Debug(ctx, "owner has no garden, flower stored unplanted", "user_id", owner.ID)
		}
	}

	return s.repos.Flowers(s.db).Create(ctx, flower)
}

// ownedFlower loads a flower and reports flowers of other users as
// common.ErrorNotFound unless foreign is set, in which case it returns
// common.ErrorForbidden.
func (s *GardenService) ownedFlower(ctx context.Context, owner *models.User, flowerID string, foreign error) (*models.Flower, error) {
	f, err := s.repos.Flowers(s.db).GetByID(ctx, flowerID)
	if err != nil {
		return nil, err
	}
	if f.UserID != owner.ID {
		return nil, foreign
	}
	return f, nil
}

// UpdateFlower applies the non-empty fields of patch to one of owner's
// flowers.
func (s *GardenService) UpdateFlower(ctx context.Context, owner *models.User, flowerID string, patch FlowerPatch) (f *models.Flower, err error) {
	if err := checkOwner(owner); err != nil {
		return nil, err
	}
	ctx, span := startSpan(ctx, "flower.update", attribute.String("flower.id", flowerID))
	defer func() { endSpan(span, err) }()

	f, err = s.ownedFlower(ctx, owner, flowerID, common.ErrorNotFound)
	if err != nil {
		return nil, err
	}
	if patch.empty() {
		return f, nil
	}

	if v := strings.TrimSpace(patch.SelfCareType); v != "" {
		f.SelfCareType = v
	}
	if patch.Description != "" {
		f.Description = patch.Description
	}
	if patch.GardenID != "" {
		g, err := s.ownedGarden(ctx, owner, patch.GardenID)
		if err != nil {
			return nil, err
		}
		f.GardenID = &g.ID
	}

	return s.repos.Flowers(s.db).Update(ctx, f)
}

// DeleteFlower removes one of owner's flowers and returns it as it was.
// It fails with common.ErrorNotFound for an unknown id and with
// common.ErrorForbidden for a flower of another user.
func (s *GardenService) DeleteFlower(ctx context.Context, owner *models.User, flowerID string) (f *models.Flower, err error) {
	if err := checkOwner(owner); err != nil {
		return nil, err
	}
	ctx, span := startSpan(ctx, "flower.delete", attribute.String("flower.id", flowerID))
	defer func() { endSpan(span, err) }()

	f, err = s.ownedFlower(ctx, owner, flowerID, common.ErrorForbidden)
	if err != nil {
		if errors.Is(err, common.ErrorForbidden) {
			s.log.Warn(ctx, "flower delete denied", "flower_id", flowerID, "user_id", owner.ID)
		}
		return nil, err
	}

	if err = s.repos.Flowers(s.db).Delete(ctx, f.ID); err != nil {
		return nil, fmt.Errorf("delete flower: %w", err)
	}
	return f, nil
}

// ListFlowers returns all of owner's flowers, oldest first.
func (s *GardenService) ListFlowers(ctx context.Context, owner *models.User) ([]models.Flower, error) {
	if err := checkOwner(owner); err != nil {
		return nil, err
	}
	return s.repos.Flowers(s.db).ListByOwner(ctx, owner.ID)
}
