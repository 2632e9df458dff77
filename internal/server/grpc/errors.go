package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/soulbloom/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const notAuthorized = "not authorized"

// toStatus maps service errors to gRPC statuses. Unexpected errors are
// logged and reported as Internal without their cause.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrAuthenticationFailed),
		errors.Is(err, common.ErrorUnauthenticated):
		return status.Error(codes.Unauthenticated, notAuthorized)
	case errors.Is(err, common.ErrorForbidden):
		return status.Error(codes.PermissionDenied, notAuthorized)
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, common.ErrorAlreadyExists):
		return status.Error(codes.AlreadyExists, "already exists")
	case errors.Is(err, common.ErrInvalidArgument):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrTooManyAttempts):
		return status.Error(codes.ResourceExhausted, "too many attempts")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "canceled")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")
	}

	s.logger.Error(ctx, "request failed", "error", err)
	return status.Error(codes.Internal, "internal error")
}
