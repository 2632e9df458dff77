package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/soulbloom/internal/api"
	"github.com/dmitrijs2005/soulbloom/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	timeout     time.Duration
	conn        *grpc.ClientConn
	client      *api.SoulbloomClient

	mu          sync.RWMutex
	accessToken string
}

var _ Client = (*GRPCClient)(nil)

// NewGRPCClient connects lazily to endpointURL. Every call is bounded by
// timeout when it is positive. Extra dial options are appended to the
// defaults.
func NewGRPCClient(endpointURL string, timeout time.Duration, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout}

	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, opts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = api.NewSoulbloomClient(conn)
	return c, nil
}

func (c *GRPCClient) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

func (c *GRPCClient) setToken(t string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = t
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	md.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	return metadata.NewOutgoingContext(ctx, md)
}

func (c *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if !api.IsPublicMethod(method) {
		if t := c.token(); t != "" {
			ctx = withAccessToken(ctx, t)
		}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	err := invoker(ctx, method, req, reply, cc, opts...)
	if status.Code(err) == codes.Unauthenticated && !api.IsPublicMethod(method) {
		// expired or revoked by account deletion
		c.setToken("")
	}
	return err
}

func (c *GRPCClient) mapError(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	switch st.Code() {
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.Unauthenticated:
		return ErrUnauthorized
	case codes.PermissionDenied:
		return ErrForbidden
	case codes.NotFound:
		return ErrNotFound
	case codes.AlreadyExists:
		return ErrAlreadyExists
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalidArgument, st.Message())
	case codes.ResourceExhausted:
		return ErrTooManyAttempts
	default:
		return fmt.Errorf("server error: %s", st.Message())
	}
}

func (c *GRPCClient) Close() error {
	return c.conn.Close()
}

func (c *GRPCClient) LoggedIn() bool {
	return c.token() != ""
}

func (c *GRPCClient) Logout() {
	c.setToken("")
}

func (c *GRPCClient) requireLogin() error {
	if !c.LoggedIn() {
		return ErrNotLoggedIn
	}
	return nil
}

func (c *GRPCClient) Register(ctx context.Context, email, username, name string, password []byte) (*api.User, error) {
	resp, err := c.client.Register(ctx, &api.RegisterRequest{
		Email:    email,
		Username: username,
		Name:     name,
		Password: string(password),
	})
	if err != nil {
		return nil, c.mapError(err)
	}
	return &resp.User, nil
}

func (c *GRPCClient) Login(ctx context.Context, email string, password []byte) error {
	resp, err := c.client.Login(ctx, &api.LoginRequest{Email: email, Password: string(password)})
	if err != nil {
		return c.mapError(err)
	}
	c.setToken(resp.Token)
	return nil
}

func (c *GRPCClient) Me(ctx context.Context) (*api.User, error) {
	if err := c.requireLogin(); err != nil {
		return nil, err
	}
	resp, err := c.client.GetMe(ctx, &api.Empty{})
	if err != nil {
		return nil, c.mapError(err)
	}
	return &resp.User, nil
}

func (c *GRPCClient) UpdateMe(ctx context.Context, username, name string) (*api.User, error) {
	if err := c.requireLogin(); err != nil {
		return nil, err
	}
	resp, err := c.client.UpdateMe(ctx, &api.UpdateMeRequest{Username: username, Name: name})
	if err != nil {
		return nil, c.mapError(err)
	}
	return &resp.User, nil
}

// DeleteMe deletes the logged-in account and forgets the token.
func (c *GRPCClient) DeleteMe(ctx context.Context) (*api.User, error) {
	if err := c.requireLogin(); err != nil {
		return nil, err
	}
	resp, err := c.client.DeleteMe(ctx, &api.DeleteMeRequest{})
	if err != nil {
		return nil, c.mapError(err)
	}
	c.setToken("")
	return &resp.User, nil
}

func (c *GRPCClient) ListUsers(ctx context.Context) ([]api.User, error) {
	if err := c.requireLogin(); err != nil {
		return nil, err
	}
	resp, err := c.client.ListUsers(ctx, &api.Empty{})
	if err != nil {
		return nil, c.mapError(err)
	}
	return resp.Users, nil
}

func (c *GRPCClient) CreateGarden(ctx context.Context) (*api.Garden, error) {
	if err := c.requireLogin(); err != nil {
		return nil, err
	}
	resp, err := c.client.CreateGarden(ctx, &api.Empty{})
	if err != nil {
		return nil, c.mapError(err)
	}
	return &resp.Garden, nil
}

func (c *GRPCClient) WaterGarden(ctx context.Context, gardenID string) (*api.Garden, error) {
	if err := c.requireLogin(); err != nil {
		return nil, err
	}
	resp, err := c.client.WaterGarden(ctx, &api.GardenRequest{GardenID: gardenID})
	if err != nil {
		return nil, c.mapError(err)
	}
	return &resp.Garden, nil
}

func (c *GRPCClient) GetGarden(ctx context.Context, gardenID string) (*api.Garden, error) {
	if err := c.requireLogin(); err != nil {
		return nil, err
	}
	resp, err := c.client.GetGarden(ctx, &api.GardenRequest{GardenID: gardenID})
	if err != nil {
		return nil, c.mapError(err)
	}
	return &resp.Garden, nil
}

func (c *GRPCClient) ListGardens(ctx context.Context) ([]api.Garden, error) {
	if err := c.requireLogin(); err != nil {
		return nil, err
	}
	resp, err := c.client.ListGardens(ctx, &api.Empty{})
	if err != nil {
		return nil, c.mapError(err)
	}
	return resp.Gardens, nil
}

func (c *GRPCClient) AddFlower(ctx context.Context, in api.AddFlowerRequest) (*api.Flower, error) {
	if err := c.requireLogin(); err != nil {
		return nil, err
	}
	resp, err := c.client.AddFlower(ctx, &in)
	if err != nil {
		return nil, c.mapError(err)
	}
	return &resp.Flower, nil
}

func (c *GRPCClient) UpdateFlower(ctx context.Context, in api.UpdateFlowerRequest) (*api.Flower, error) {
	if err := c.requireLogin(); err != nil {
		return nil, err
	}
	resp, err := c.client.UpdateFlower(ctx, &in)
	if err != nil {
		return nil, c.mapError(err)
	}
	return &resp.Flower, nil
}

func (c *GRPCClient) DeleteFlower(ctx context.Context, flowerID string) (*api.Flower, error) {
	if err := c.requireLogin(); err != nil {
		return nil, err
	}
	resp, err := c.client.DeleteFlower(ctx, &api.FlowerRequest{FlowerID: flowerID})
	if err != nil {
		return nil, c.mapError(err)
	}
	return &resp.Flower, nil
}

func (c *GRPCClient) ListFlowers(ctx context.Context) ([]api.Flower, error) {
	if err := c.requireLogin(); err != nil {
		return nil, err
	}
	resp, err := c.client.ListFlowers(ctx, &api.Empty{})
	if err != nil {
		return nil, c.mapError(err)
	}
	return resp.Flowers, nil
}
