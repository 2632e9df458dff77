package api

import (
	"context"

	"google.golang.org/grpc"
)

// SoulbloomClient is a typed stub over a client connection. Every call is
// sent with the JSON content subtype.
type SoulbloomClient struct {
	cc grpc.ClientConnInterface
}

func NewSoulbloomClient(cc grpc.ClientConnInterface) *SoulbloomClient {
	return &SoulbloomClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *SoulbloomClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*UserResponse, error) {
	return invoke[UserResponse](ctx, c.cc, MethodRegister, in, opts)
}

func (c *SoulbloomClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, MethodLogin, in, opts)
}

func (c *SoulbloomClient) GetMe(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*UserResponse, error) {
	return invoke[UserResponse](ctx, c.cc, MethodGetMe, in, opts)
}

func (c *SoulbloomClient) UpdateMe(ctx context.Context, in *UpdateMeRequest, opts ...grpc.CallOption) (*UserResponse, error) {
	return invoke[UserResponse](ctx, c.cc, MethodUpdateMe, in, opts)
}

func (c *SoulbloomClient) DeleteMe(ctx context.Context, in *DeleteMeRequest, opts ...grpc.CallOption) (*UserResponse, error) {
	return invoke[UserResponse](ctx, c.cc, MethodDeleteMe, in, opts)
}

func (c *SoulbloomClient) ListUsers(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListUsersResponse, error) {
	return invoke[ListUsersResponse](ctx, c.cc, MethodListUsers, in, opts)
}

func (c *SoulbloomClient) CreateGarden(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*GardenResponse, error) {
	return invoke[GardenResponse](ctx, c.cc, MethodCreateGarden, in, opts)
}

func (c *SoulbloomClient) WaterGarden(ctx context.Context, in *GardenRequest, opts ...grpc.CallOption) (*GardenResponse, error) {
	return invoke[GardenResponse](ctx, c.cc, MethodWaterGarden, in, opts)
}

func (c *SoulbloomClient) GetGarden(ctx context.Context, in *GardenRequest, opts ...grpc.CallOption) (*GardenResponse, error) {
	return invoke[GardenResponse](ctx, c.cc, MethodGetGarden, in, opts)
}

func (c *SoulbloomClient) ListGardens(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListGardensResponse, error) {
	return invoke[ListGardensResponse](ctx, c.cc, MethodListGardens, in, opts)
}

func (c *SoulbloomClient) AddFlower(ctx context.Context, in *AddFlowerRequest, opts ...grpc.CallOption) (*FlowerResponse, error) {
	return invoke[FlowerResponse](ctx, c.cc, MethodAddFlower, in, opts)
}

func (c *SoulbloomClient) UpdateFlower(ctx context.Context, in *UpdateFlowerRequest, opts ...grpc.CallOption) (*FlowerResponse, error) {
	return invoke[FlowerResponse](ctx, c.cc, MethodUpdateFlower, in, opts)
}

func (c *SoulbloomClient) DeleteFlower(ctx context.Context, in *FlowerRequest, opts ...grpc.CallOption) (*FlowerResponse, error) {
	return invoke[FlowerResponse](ctx, c.cc, MethodDeleteFlower, in, opts)
}

func (c *SoulbloomClient) ListFlowers(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListFlowersResponse, error) {
	return invoke[ListFlowersResponse](ctx, c.cc, MethodListFlowers, in, opts)
}
