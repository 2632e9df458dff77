package grpc

import (
	"context"
	"errors"
	"net"

	"github.com/dmitrijs2005/soulbloom/internal/api"
	"github.com/dmitrijs2005/soulbloom/internal/common"
	"github.com/dmitrijs2005/soulbloom/internal/server/models"
	"github.com/dmitrijs2005/soulbloom/internal/server/services"
	"github.com/google/uuid"
	"google.golang.org/grpc/peer"
)

// owner returns the user resolved by authInterceptor.
func (s *GRPCServer) owner(ctx context.Context) (*models.User, error) {
	u, ok := userFromContext(ctx)
	if !ok {
		return nil, s.toStatus(ctx, common.ErrorUnauthenticated)
	}
	return u, nil
}

// validID rejects ids that cannot name any row. They are reported as
// NotFound, the same as ids of rows that do not exist.
func (s *GRPCServer) validID(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return s.toStatus(ctx, common.ErrorNotFound)
	}
	return nil
}

// selfOnly allows an explicit target id only when it is the caller's own.
func (s *GRPCServer) selfOnly(ctx context.Context, owner *models.User, target string) error {
	if target != "" && target != owner.ID {
		s.logger.Warn(ctx, "account operation on another user denied", "user_id", owner.ID, "target", target)
		return s.toStatus(ctx, common.ErrorForbidden)
	}
	return nil
}

func (s *GRPCServer) Register(ctx context.Context, req *api.RegisterRequest) (*api.UserResponse, error) {
	s.logger.Info(ctx, "Registration request")

	u, err := s.auth.Register(ctx, services.RegisterInput{
		Email:    req.Email,
		Username: req.Username,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.UserResponse{User: userToAPI(u)}, nil
}

// peerHost returns the caller's host without the port, which changes with
// every connection.
func peerHost(ctx context.Context) string {
	p, ok := peer.FromContext(ctx)
	if !ok || p.Addr == nil {
		return ""
	}
	addr := p.Addr.String()
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.LoginResponse, error) {
	ctx = services.WithClientAddr(ctx, peerHost(ctx))

	t, err := s.auth.Login(ctx, req.Email, req.Password)
	s.observeLogin(err)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.LoginResponse{Token: t.Token, ExpiresAt: t.ExpiresAt}, nil
}

func (s *GRPCServer) observeLogin(err error) {
	if s.metrics == nil {
		return
	}
	switch {
	case err == nil:
		s.metrics.ObserveLogin("ok")
	case errors.Is(err, common.ErrTooManyAttempts):
		s.metrics.ObserveLogin("throttled")
	default:
		s.metrics.ObserveLogin("failed")
	}
}

func (s *GRPCServer) GetMe(ctx context.Context, _ *api.Empty) (*api.UserResponse, error) {
	owner, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}

	u, err := s.users.GetUser(ctx, owner.ID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.UserResponse{User: userToAPI(u)}, nil
}

func (s *GRPCServer) UpdateMe(ctx context.Context, req *api.UpdateMeRequest) (*api.UserResponse, error) {
	owner, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.selfOnly(ctx, owner, req.UserID); err != nil {
		return nil, err
	}

	u, err := s.users.UpdateUser(ctx, owner.ID, services.UserPatch{Username: req.Username, Name: req.Name})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.UserResponse{User: userToAPI(u)}, nil
}

func (s *GRPCServer) DeleteMe(ctx context.Context, req *api.DeleteMeRequest) (*api.UserResponse, error) {
	owner, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.selfOnly(ctx, owner, req.UserID); err != nil {
		return nil, err
	}

	u, err := s.users.DeleteUser(ctx, owner.ID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.UserResponse{User: userToAPI(u)}, nil
}

func (s *GRPCServer) ListUsers(ctx context.Context, _ *api.Empty) (*api.ListUsersResponse, error) {
	if _, err := s.owner(ctx); err != nil {
		return nil, err
	}

	list, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	resp := &api.ListUsersResponse{Users: make([]api.User, 0, len(list))}
	for i := range list {
		resp.Users = append(resp.Users, publicUserToAPI(&list[i]))
	}
	return resp, nil
}

func (s *GRPCServer) CreateGarden(ctx context.Context, _ *api.Empty) (*api.GardenResponse, error) {
	owner, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}

	g, err := s.gardens.CreateGarden(ctx, owner)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.GardenResponse{Garden: gardenToAPI(g)}, nil
}

func (s *GRPCServer) WaterGarden(ctx context.Context, req *api.GardenRequest) (*api.GardenResponse, error) {
	owner, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.validID(ctx, req.GardenID); err != nil {
		return nil, err
	}

	g, err := s.gardens.Water(ctx, owner, req.GardenID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.GardenResponse{Garden: gardenToAPI(g)}, nil
}

func (s *GRPCServer) GetGarden(ctx context.Context, req *api.GardenRequest) (*api.GardenResponse, error) {
	owner, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.validID(ctx, req.GardenID); err != nil {
		return nil, err
	}

	g, err := s.gardens.GetGarden(ctx, owner, req.GardenID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.GardenResponse{Garden: gardenToAPI(g)}, nil
}

func (s *GRPCServer) ListGardens(ctx context.Context, _ *api.Empty) (*api.ListGardensResponse, error) {
	owner, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}

	list, err := s.gardens.ListGardens(ctx, owner)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	resp := &api.ListGardensResponse{Gardens: make([]api.Garden, 0, len(list))}
	for i := range list {
		resp.Gardens = append(resp.Gardens, gardenToAPI(&list[i]))
	}
	return resp, nil
}

func (s *GRPCServer) AddFlower(ctx context.Context, req *api.AddFlowerRequest) (*api.FlowerResponse, error) {
	owner, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}
	if req.GardenID != "" {
		if err := s.validID(ctx, req.GardenID); err != nil {
			return nil, err
		}
	}

	f, err := s.gardens.AddFlower(ctx, owner, services.FlowerInput{
		SelfCareType: req.SelfCareType,
		Description:  req.Description,
		GardenID:     req.GardenID,
	})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.FlowerResponse{Flower: flowerToAPI(f)}, nil
}

func (s *GRPCServer) UpdateFlower(ctx context.Context, req *api.UpdateFlowerRequest) (*api.FlowerResponse, error) {
	owner, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.validID(ctx, req.FlowerID); err != nil {
		return nil, err
	}
	if req.GardenID != "" {
		if err := s.validID(ctx, req.GardenID); err != nil {
			return nil, err
		}
	}

	f, err := s.gardens.UpdateFlower(ctx, owner, req.FlowerID, services.FlowerPatch{
		SelfCareType: req.SelfCareType,
		Description:  req.Description,
		GardenID:     req.GardenID,
	})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.FlowerResponse{Flower: flowerToAPI(f)}, nil
}

func (s *GRPCServer) DeleteFlower(ctx context.Context, req *api.FlowerRequest) (*api.FlowerResponse, error) {
	owner, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.validID(ctx, req.FlowerID); err != nil {
		return nil, err
	}

	f, err := s.gardens.DeleteFlower(ctx, owner, req.FlowerID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.FlowerResponse{Flower: flowerToAPI(f)}, nil
}

func (s *GRPCServer) ListFlowers(ctx context.Context, _ *api.Empty) (*api.ListFlowersResponse, error) {
	owner, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}

	list, err := s.gardens.ListFlowers(ctx, owner)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	resp := &api.ListFlowersResponse{Flowers: make([]api.Flower, 0, len(list))}
	for i := range list {
		resp.Flowers = append(resp.Flowers, flowerToAPI(&list[i]))
	}
	return resp, nil
}
