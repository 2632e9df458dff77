package services

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/soulbloom/internal/common"
	"github.com/dmitrijs2005/soulbloom/internal/dbx"
	"github.com/dmitrijs2005/soulbloom/internal/server/models"
	"github.com/dmitrijs2005/soulbloom/internal/server/repositories/flowers"
	"github.com/dmitrijs2005/soulbloom/internal/server/repositories/gardens"
	"github.com/dmitrijs2005/soulbloom/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
)

// --- in-memory store shared by the fake repositories ---

type memStore struct {
	mu      sync.Mutex
	users   map[string]models.User
	gardens map[string]models.Garden
	flowers map[string]models.Flower

	// fail maps "repo.Method" to an error returned instead of doing the work.
	fail map[string]error
}

func newMemStore() *memStore {
	return &memStore{
		users:   map[string]models.User{},
		gardens: map[string]models.Garden{},
		flowers: map[string]models.Flower{},
		fail:    map[string]error{},
	}
}

func (s *memStore) failure(op string) error {
	return s.fail[op]
}

type fakeRepoManager struct {
	store *memStore
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository            { return &memUsers{m.store} }
func (m *fakeRepoManager) Gardens(dbx.DBTX) gardens.Repository        { return &memGardens{m.store} }
func (m *fakeRepoManager) Flowers(dbx.DBTX) flowers.Repository        { return &memFlowers{m.store} }

// --- users ---

type memUsers struct{ s *memStore }

func (r *memUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("users.Create"); err != nil {
		return nil, err
	}
	for _, e := range r.s.users {
		if e.Email == u.Email || e.Username == u.Username {
			return nil, common.ErrorAlreadyExists
		}
	}
	r.s.users[u.ID] = *u
	cp := *u
	return &cp, nil
}

func (r *memUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("users.GetByID"); err != nil {
		return nil, err
	}
	u, ok := r.s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

func (r *memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("users.GetByEmail"); err != nil {
		return nil, err
	}
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *memUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if err == common.ErrorNotFound {
		return false, nil
	}
	return err == nil, err
}

func (r *memUsers) ExistsByUsername(_ context.Context, username string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *memUsers) List(context.Context) ([]models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.User
	for _, u := range r.s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memUsers) Update(_ context.Context, u *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.users[u.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cur.Username, cur.Name = u.Username, u.Name
	r.s.users[u.ID] = cur
	return &cur, nil
}

func (r *memUsers) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("users.Delete"); err != nil {
		return err
	}
	if _, ok := r.s.users[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.s.users, id)
	return nil
}

// --- gardens ---

type memGardens struct{ s *memStore }

func (r *memGardens) Create(_ context.Context, g *models.Garden) (*models.Garden, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("gardens.Create"); err != nil {
		return nil, err
	}
	r.s.gardens[g.ID] = *g
	cp := *g
	return &cp, nil
}

func (r *memGardens) GetByID(_ context.Context, id string) (*models.Garden, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	g, ok := r.s.gardens[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &g, nil
}

func (r *memGardens) ListByOwner(_ context.Context, userID string) ([]models.Garden, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Garden
	for _, g := range r.s.gardens {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *memGardens) UpdateLastWatered(_ context.Context, id, userID string, at time.Time) (*models.Garden, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	g, ok := r.s.gardens[id]
	if !ok || g.UserID != userID {
		return nil, common.ErrorNotFound
	}
	g.LastWatered = &at
	r.s.gardens[id] = g
	return &g, nil
}

func (r *memGardens) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.gardens[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.s.gardens, id)
	return nil
}

func (r *memGardens) DeleteByOwner(_ context.Context, userID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("gardens.DeleteByOwner"); err != nil {
		return 0, err
	}
	var n int64
	for id, g := range r.s.gardens {
		if g.UserID == userID {
			delete(r.s.gardens, id)
			n++
		}
	}
	return n, nil
}

// --- flowers ---

type memFlowers struct{ s *memStore }

func (r *memFlowers) Create(_ context.Context, f *models.Flower) (*models.Flower, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.flowers[f.ID] = *f
	cp := *f
	return &cp, nil
}

func (r *memFlowers) GetByID(_ context.Context, id string) (*models.Flower, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f, ok := r.s.flowers[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &f, nil
}

func (r *memFlowers) list(match func(models.Flower) bool) []models.Flower {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Flower
	for _, f := range r.s.flowers {
		if match(f) {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *memFlowers) ListByOwner(_ context.Context, userID string) ([]models.Flower, error) {
	return r.list(func(f models.Flower) bool { return f.UserID == userID }), nil
}

func (r *memFlowers) ListByGarden(_ context.Context, gardenID string) ([]models.Flower, error) {
	return r.list(func(f models.Flower) bool { return f.GardenID != nil && *f.GardenID == gardenID }), nil
}

func (r *memFlowers) Update(_ context.Context, f *models.Flower) (*models.Flower, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.flowers[f.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	r.s.flowers[f.ID] = *f
	cp := *f
	return &cp, nil
}

func (r *memFlowers) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.flowers[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.s.flowers, id)
	return nil
}

func (r *memFlowers) DeleteByOwner(_ context.Context, userID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, f := range r.s.flowers {
		if f.UserID == userID {
			delete(r.s.flowers, id)
			n++
		}
	}
	return n, nil
}

// --- helpers ---

var t0 = time.Date(2025, time.April, 1, 12, 0, 0, 0, time.UTC)

// testClock returns a clock starting at t0 that advances one second per call.
func testClock() func() time.Time {
	var mu sync.Mutex
	cur := t0.Add(-time.Second)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		cur = cur.Add(time.Second)
		return cur
	}
}

// seqIDs returns an id generator producing prefix-1, prefix-2, ...
func seqIDs(prefix string) func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func (s *memStore) addUser(id, email string) *models.User {
	u := models.User{ID: id, Email: email, Username: email, CreatedAt: t0}
	s.mu.Lock()
	s.users[id] = u
	s.mu.Unlock()
	return &u
}
