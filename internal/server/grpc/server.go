// Package grpc exposes the soulbloom services over gRPC. Protected methods
// require a bearer token that the auth interceptor resolves to a user before
// the handler runs.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/soulbloom/internal/api"
	"github.com/dmitrijs2005/soulbloom/internal/logging"
	"github.com/dmitrijs2005/soulbloom/internal/observability"
	"github.com/dmitrijs2005/soulbloom/internal/server/models"
	"github.com/dmitrijs2005/soulbloom/internal/server/services"
	"google.golang.org/grpc"
)

type authService interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.IssuedToken, error)
}

type identityResolver interface {
	Resolve(ctx context.Context, token string) (*models.User, error)
}

type userService interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, userID string, patch services.UserPatch) (*models.User, error)
	DeleteUser(ctx context.Context, userID string) (*models.User, error)
}

type gardenService interface {
	CreateGarden(ctx context.Context, owner *models.User) (*models.Garden, error)
	Water(ctx context.Context, owner *models.User, gardenID string) (*models.Garden, error)
	GetGarden(ctx context.Context, owner *models.User, gardenID string) (*models.Garden, error)
	ListGardens(ctx context.Context, owner *models.User) ([]models.Garden, error)
	AddFlower(ctx context.Context, owner *models.User, in services.FlowerInput) (*models.Flower, error)
	UpdateFlower(ctx context.Context, owner *models.User, flowerID string, patch services.FlowerPatch) (*models.Flower, error)
	DeleteFlower(ctx context.Context, owner *models.User, flowerID string) (*models.Flower, error)
	ListFlowers(ctx context.Context, owner *models.User) ([]models.Flower, error)
}

// Services bundles what the transport calls into.
type Services struct {
	Auth     authService
	Identity identityResolver
	Users    userService
	Gardens  gardenService
}

type GRPCServer struct {
	address  string
	auth     authService
	identity identityResolver
	users    userService
	gardens  gardenService
	metrics  *observability.Metrics
	logger   logging.Logger
}

var _ api.SoulbloomServer = (*GRPCServer)(nil)

// NewGRPCServer wires the transport. metrics may be nil.
func NewGRPCServer(address string, l logging.Logger, svc Services, metrics *observability.Metrics) *GRPCServer {
	return &GRPCServer{
		address:  address,
		auth:     svc.Auth,
		identity: svc.Identity,
		users:    svc.Users,
		gardens:  svc.Gardens,
		metrics:  metrics,
		logger:   l.With("module", "grpc_server"),
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.metricsInterceptor, s.authInterceptor))
	api.RegisterSoulbloomServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve serves on lis until ctx is cancelled, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}
	<-stopped
	return nil
}
