package api

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "soulbloom.v1.Soulbloom"

// Full method names, as seen by interceptors.
const (
	MethodRegister     = "/" + ServiceName + "/Register"
	MethodLogin        = "/" + ServiceName + "/Login"
	MethodGetMe        = "/" + ServiceName + "/GetMe"
	MethodUpdateMe     = "/" + ServiceName + "/UpdateMe"
	MethodDeleteMe     = "/" + ServiceName + "/DeleteMe"
	MethodListUsers    = "/" + ServiceName + "/ListUsers"
	MethodCreateGarden = "/" + ServiceName + "/CreateGarden"
	MethodWaterGarden  = "/" + ServiceName + "/WaterGarden"
	MethodGetGarden    = "/" + ServiceName + "/GetGarden"
	MethodListGardens  = "/" + ServiceName + "/ListGardens"
	MethodAddFlower    = "/" + ServiceName + "/AddFlower"
	MethodUpdateFlower = "/" + ServiceName + "/UpdateFlower"
	MethodDeleteFlower = "/" + ServiceName + "/DeleteFlower"
	MethodListFlowers  = "/" + ServiceName + "/ListFlowers"
)

// IsPublicMethod reports whether fullMethod may be called without a token.
func IsPublicMethod(fullMethod string) bool {
	return fullMethod == MethodRegister || fullMethod == MethodLogin
}

// SoulbloomServer is implemented by the gRPC transport.
type SoulbloomServer interface {
	Register(context.Context, *RegisterRequest) (*UserResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	GetMe(context.Context, *Empty) (*UserResponse, error)
	UpdateMe(context.Context, *UpdateMeRequest) (*UserResponse, error)
	DeleteMe(context.Context, *DeleteMeRequest) (*UserResponse, error)
	ListUsers(context.Context, *Empty) (*ListUsersResponse, error)
	CreateGarden(context.Context, *Empty) (*GardenResponse, error)
	WaterGarden(context.Context, *GardenRequest) (*GardenResponse, error)
	GetGarden(context.Context, *GardenRequest) (*GardenResponse, error)
	ListGardens(context.Context, *Empty) (*ListGardensResponse, error)
	AddFlower(context.Context, *AddFlowerRequest) (*FlowerResponse, error)
	UpdateFlower(context.Context, *UpdateFlowerRequest) (*FlowerResponse, error)
	DeleteFlower(context.Context, *FlowerRequest) (*FlowerResponse, error)
	ListFlowers(context.Context, *Empty) (*ListFlowersResponse, error)
}

// RegisterSoulbloomServer attaches srv to a gRPC server.
func RegisterSoulbloomServer(s grpc.ServiceRegistrar, srv SoulbloomServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// unary adapts a typed server method to grpc.MethodHandler.
func unary[Req, Resp any](fullMethod string, call func(SoulbloomServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		s := srv.(SoulbloomServer)
		if interceptor == nil {
			return call(s, ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(s, ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SoulbloomServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Register", Handler: unary(MethodRegister, SoulbloomServer.Register)},
		{MethodName: "Login", Handler: unary(MethodLogin, SoulbloomServer.Login)},
		{MethodName: "GetMe", Handler: unary(MethodGetMe, SoulbloomServer.GetMe)},
		{MethodName: "UpdateMe", Handler: unary(MethodUpdateMe, SoulbloomServer.UpdateMe)},
		{MethodName: "DeleteMe", Handler: unary(MethodDeleteMe, SoulbloomServer.DeleteMe)},
		{MethodName: "ListUsers", Handler: unary(MethodListUsers, SoulbloomServer.ListUsers)},
		{MethodName: "CreateGarden", Handler: unary(MethodCreateGarden, SoulbloomServer.CreateGarden)},
		{MethodName: "WaterGarden", Handler: unary(MethodWaterGarden, SoulbloomServer.WaterGarden)},
		{MethodName: "GetGarden", Handler: unary(MethodGetGarden, SoulbloomServer.GetGarden)},
		{MethodName: "ListGardens", Handler: unary(MethodListGardens, SoulbloomServer.ListGardens)},
		{MethodName: "AddFlower", Handler: unary(MethodAddFlower, SoulbloomServer.AddFlower)},
		{MethodName: "UpdateFlower", Handler: unary(MethodUpdateFlower, SoulbloomServer.UpdateFlower)},
		{MethodName: "DeleteFlower", Handler: unary(MethodDeleteFlower, SoulbloomServer.DeleteFlower)},
		{MethodName: "ListFlowers", Handler: unary(MethodListFlowers, SoulbloomServer.ListFlowers)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "soulbloom/v1/soulbloom.json",
}
