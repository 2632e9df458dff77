package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/soulbloom/internal/api"
	"github.com/dmitrijs2005/soulbloom/internal/client/client"
	"github.com/dmitrijs2005/soulbloom/internal/client/config"
)

// fakeClient embeds client.Client so tests only implement what they use.
type fakeClient struct {
	client.Client

	loggedIn bool
	closed   bool
	err      error

	registered    []string
	loginEmail    string
	loginPassword []byte
	updateMe      [2]string
	deleted       bool
	addFlower     api.AddFlowerRequest
	updateFlower  api.UpdateFlowerRequest
	wateredGarden string

	users   []api.User
	gardens []api.Garden
	flowers []api.Flower
}

func (f *fakeClient) Close() error   { f.closed = true; return nil }
func (f *fakeClient) LoggedIn() bool { return f.loggedIn }
func (f *fakeClient) Logout()        { f.loggedIn = false }

func (f *fakeClient) Register(_ context.Context, email, username, name string, password []byte) (*api.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.registered = []string{email, username, name, string(password)}
	return &api.User{ID: "u1", Email: email, Username: username}, nil
}

func (f *fakeClient) Login(_ context.Context, email string, password []byte) error {
	if f.err != nil {
		return f.err
	}
	f.loginEmail = email
	f.loginPassword = password
	f.loggedIn = true
	return nil
}

func (f *fakeClient) UpdateMe(_ context.Context, username, name string) (*api.User, error) {
	f.updateMe = [2]string{username, name}
	return &api.User{ID: "u1", Email: "a@x.io", Username: username, Name: name}, nil
}

func (f *fakeClient) DeleteMe(context.Context) (*api.User, error) {
	f.deleted = true
	f.loggedIn = false
	return &api.User{ID: "u1", Email: "a@x.io"}, nil
}

func (f *fakeClient) WaterGarden(_ context.Context, id string) (*api.Garden, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.wateredGarden = id
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return &api.Garden{ID: id, LastWatered: &now}, nil
}

func (f *fakeClient) ListUsers(context.Context) ([]api.User, error)     { return f.users, nil }
func (f *fakeClient) ListGardens(context.Context) ([]api.Garden, error) { return f.gardens, nil }
func (f *fakeClient) ListFlowers(context.Context) ([]api.Flower, error) { return f.flowers, nil }

func (f *fakeClient) AddFlower(_ context.Context, in api.AddFlowerRequest) (*api.Flower, error) {
	f.addFlower = in
	return &api.Flower{ID: "f1", SelfCareType: in.SelfCareType, Description: in.Description}, nil
}

func (f *fakeClient) UpdateFlower(_ context.Context, in api.UpdateFlowerRequest) (*api.Flower, error) {
	f.updateFlower = in
	return &api.Flower{ID: in.FlowerID, SelfCareType: in.SelfCareType}, nil
}

func newTestApp(fc *fakeClient, input string) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return newApp(&config.Config{}, fc, strings.NewReader(input), &out), &out
}

func TestRegister_SendsInputAndWipesPassword(t *testing.T) {
	var captured []byte
	orig := readPassword
	readPassword = func(int) ([]byte, error) {
		captured = []byte("pw-123")
		return captured, nil
	}
	t.Cleanup(func() { readPassword = orig })

	fc := &fakeClient{}
	app, out := newTestApp(fc, "alice@example.com\nalice\nAlice A\n")

	require.NoError(t, app.Register(context.Background()))
	assert.Equal(t, []string{"alice@example.com", "alice", "Alice A", "pw-123"}, fc.registered)
	assert.Equal(t, make([]byte, len("pw-123")), captured)
	assert.Contains(t, out.String(), "Registered alice@example.com")
}

func TestRegister_EmptyEmail(t *testing.T) {
	fc := &fakeClient{}
	app, out := newTestApp(fc, "\n")

	require.ErrorIs(t, app.Register(context.Background()), errEmptyInput)
	assert.Nil(t, fc.registered)
	assert.Contains(t, out.String(), "error:")
}

func TestLogin_UpdatesStatus(t *testing.T) {
	stubPassword(t, "pw", nil)
	fc := &fakeClient{}
	app, _ := newTestApp(fc, "Alice@Example.com\n")

	assert.Equal(t, "(not logged in)", app.status())
	require.NoError(t, app.Login(context.Background()))
	assert.Equal(t, "Alice@Example.com", fc.loginEmail)
	assert.Equal(t, "alice@example.com", app.status())

	require.NoError(t, app.Logout(context.Background()))
	assert.False(t, fc.loggedIn)
	assert.Equal(t, "(not logged in)", app.status())
}

func TestLogin_ErrorIsReported(t *testing.T) {
	stubPassword(t, "bad", nil)
	fc := &fakeClient{err: client.ErrUnauthorized}
	app, out := newTestApp(fc, "alice@example.com\n")

	require.ErrorIs(t, app.Login(context.Background()), client.ErrUnauthorized)
	assert.Contains(t, out.String(), "error: ")
	assert.False(t, fc.loggedIn)
}

func TestRename(t *testing.T) {
	fc := &fakeClient{loggedIn: true}
	app, out := newTestApp(fc, "bloomer\n\n")

	require.NoError(t, app.Rename(context.Background()))
	assert.Equal(t, [2]string{"bloomer", ""}, fc.updateMe)
	assert.Contains(t, out.String(), "username=bloomer")
}

func TestDeleteAccount_RequiresConfirmation(t *testing.T) {
	fc := &fakeClient{loggedIn: true}
	app, out := newTestApp(fc, "no\n")

	require.NoError(t, app.DeleteAccount(context.Background()))
	assert.False(t, fc.deleted)
	assert.Contains(t, out.String(), "Cancelled")

	app, out = newTestApp(fc, "YES\n")
	require.NoError(t, app.DeleteAccount(context.Background()))
	assert.True(t, fc.deleted)
	assert.Contains(t, out.String(), "Account a@x.io deleted")
}

func TestWaterGarden(t *testing.T) {
	fc := &fakeClient{loggedIn: true}
	app, out := newTestApp(fc, "")

	require.NoError(t, app.WaterGarden(context.Background(), "g1"))
	assert.Equal(t, "g1", fc.wateredGarden)
	assert.Contains(t, out.String(), "garden g1")
	assert.NotContains(t, out.String(), "never")
}

func TestWaterGarden_NotFound(t *testing.T) {
	fc := &fakeClient{loggedIn: true, err: client.ErrNotFound}
	app, out := newTestApp(fc, "")

	require.ErrorIs(t, app.WaterGarden(context.Background(), "g1"), client.ErrNotFound)
	assert.Contains(t, out.String(), "error: ")
}

func TestGardensAndFlowers_EmptyLists(t *testing.T) {
	app, out := newTestApp(&fakeClient{loggedIn: true}, "")

	require.NoError(t, app.Gardens(context.Background()))
	require.NoError(t, app.Flowers(context.Background()))
	assert.Contains(t, out.String(), "No gardens yet")
	assert.Contains(t, out.String(), "No flowers yet")
}

func TestGardens_PrintsEach(t *testing.T) {
	fc := &fakeClient{loggedIn: true, gardens: []api.Garden{{ID: "g1"}, {ID: "g2"}}}
	app, out := newTestApp(fc, "")

	require.NoError(t, app.Gardens(context.Background()))
	assert.Contains(t, out.String(), "garden g1")
	assert.Contains(t, out.String(), "garden g2")
	assert.Contains(t, out.String(), "last watered=never")
}

func TestAddFlower(t *testing.T) {
	fc := &fakeClient{loggedIn: true}
	app, out := newTestApp(fc, "walk\nthirty minutes outside\n")

	require.NoError(t, app.AddFlower(context.Background(), "g1"))
	assert.Equal(t, api.AddFlowerRequest{SelfCareType: "walk", Description: "thirty minutes outside", GardenID: "g1"}, fc.addFlower)
	assert.Contains(t, out.String(), "flower f1  walk  garden=-")
}

func TestAddFlower_TypeRequired(t *testing.T) {
	fc := &fakeClient{loggedIn: true}
	app, _ := newTestApp(fc, "\n")

	require.ErrorIs(t, app.AddFlower(context.Background(), ""), errEmptyInput)
	assert.Empty(t, fc.addFlower.SelfCareType)
}

func TestUpdateFlower(t *testing.T) {
	fc := &fakeClient{loggedIn: true}
	app, _ := newTestApp(fc, "journal\n\ng2\n")

	require.NoError(t, app.UpdateFlower(context.Background(), "f1"))
	assert.Equal(t, api.UpdateFlowerRequest{FlowerID: "f1", SelfCareType: "journal", GardenID: "g2"}, fc.updateFlower)
}

func TestRun_ClosesClient(t *testing.T) {
	fc := &fakeClient{}
	app, out := newTestApp(fc, "exit\n")

	require.NoError(t, app.Run(context.Background()))
	assert.True(t, fc.closed)
	assert.Contains(t, out.String(), "Bye!")
}

func TestRun_PromptsShareInput(t *testing.T) {
	fc := &fakeClient{loggedIn: true}
	app, _ := newTestApp(fc, "flower-add g1\nwalk\nby the river\nexit\n")

	require.NoError(t, app.Run(context.Background()))
	assert.Equal(t, api.AddFlowerRequest{SelfCareType: "walk", Description: "by the river", GardenID: "g1"}, fc.addFlower)
}

func TestUsers_PublicListingHasNoEmail(t *testing.T) {
	fc := &fakeClient{loggedIn: true}
	fc.users = []api.User{{ID: "u2", Username: "bob"}}
	app, out := newTestApp(fc, "")

	require.NoError(t, app.Users(context.Background()))
	assert.Equal(t, "user u2  username=bob\n", out.String())
}
