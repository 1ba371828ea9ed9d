// Package rpc exposes the game as a gRPC service. Messages are
// google.protobuf.Struct values holding the same JSON fields as the HTTP API,
// so no generated code is needed.
package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "gemgacha.v1.GameService"

// GameServiceServer is implemented by Server.
type GameServiceServer interface {
	Login(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetGameData(context.Context, *structpb.Struct) (*structpb.Struct, error)
	EarnPoints(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Draw(context.Context, *structpb.Struct) (*structpb.Struct, error)
	BuyVolume(context.Context, *structpb.Struct) (*structpb.Struct, error)
	EquipGem(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ExtractGem(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(GameServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unary(name string, call unaryCall) grpc.MethodDesc {
	full := "/" + ServiceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(GameServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: full}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(srv.(GameServiceServer), ctx, req.(*structpb.Struct))
			})
		},
	}
}

// ServiceDesc describes GameService for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*GameServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Login", GameServiceServer.Login),
		unary("GetGameData", GameServiceServer.GetGameData),
		unary("EarnPoints", GameServiceServer.EarnPoints),
		unary("Draw", GameServiceServer.Draw),
		unary("BuyVolume", GameServiceServer.BuyVolume),
		unary("EquipGem", GameServiceServer.EquipGem),
		unary("ExtractGem", GameServiceServer.ExtractGem),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gemgacha/v1/game.proto",
}

// Client calls GameService over an existing connection.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Call invokes method (e.g. "Draw") with req encoded as a Struct.
func (c *Client) Call(ctx context.Context, method string, req map[string]any, opts ...grpc.CallOption) (map[string]any, error) {
	in, err := structpb.NewStruct(req)
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out.AsMap(), nil
}
