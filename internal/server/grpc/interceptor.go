package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/soulbloom/internal/api"
	"github.com/dmitrijs2005/soulbloom/internal/common"
	"github.com/dmitrijs2005/soulbloom/internal/server/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey struct{}

func withUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

func userFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(ctxKey{}).(*models.User)
	return u, ok && u != nil
}

func bearerFromMetadata(ctx context.Context) (string, bool) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", false
	}
	values := md.Get(common.AuthorizationHeaderName)
	if len(values) == 0 {
		return "", false
	}
	return common.BearerToken(values[0])
}

// authInterceptor resolves the bearer token of every non-public call and
// hands the user to the handler through the context.
func (s *GRPCServer) authInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if api.IsPublicMethod(info.FullMethod) {
		return handler(ctx, req)
	}

	token, ok := bearerFromMetadata(ctx)
	if !ok {
		return nil, s.toStatus(ctx, common.ErrorUnauthenticated)
	}

	user, err := s.identity.Resolve(ctx, token)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return handler(withUser(ctx, user), req)
}

func (s *GRPCServer) metricsInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	if s.metrics != nil {
		s.metrics.ObserveRequest(info.FullMethod, status.Code(err).String(), time.Since(start))
	}
	return resp, err
}
