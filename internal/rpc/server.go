package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/xtding233/gem-gacha/internal/api"
	"github.com/xtding233/gem-gacha/internal/ledger"
)

// Server adapts api.Handler to GameServiceServer.
type Server struct {
	h *api.Handler
}

var _ GameServiceServer = (*Server)(nil)

func NewServer(h *api.Handler) *Server {
	return &Server{h: h}
}

// NewGRPCServer builds a grpc.Server with GameService and the standard
// health service registered. The returned health server is marked SERVING.
func NewGRPCServer(h *api.Handler, opts ...grpc.ServerOption) (*grpc.Server, *health.Server) {
	opts = append([]grpc.ServerOption{grpc.ChainUnaryInterceptor(logUnary)}, opts...)
	gs := grpc.NewServer(opts...)
	gs.RegisterService(&ServiceDesc, NewServer(h))

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(gs, hs)
	return gs, hs
}

func logUnary(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := next(ctx, req)
	log.WithFields(log.Fields{
		"method":   info.FullMethod,
		"code":     status.Code(err).String(),
		"duration": time.Since(start).String(),
	}).Debug("grpc request")
	return resp, err
}

// toStatus maps ledger errors to gRPC status codes.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, ledger.ErrInvalidArgument):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, ledger.ErrInsufficientFunds),
		errors.Is(err, ledger.ErrAlreadyOwned),
		errors.Is(err, ledger.ErrNotOwned),
		errors.Is(err, ledger.ErrSlotFull),
		errors.Is(err, ledger.ErrNotEquipped):
		return status.Error(codes.FailedPrecondition, err.Error())
	default:
		log.WithError(err).Error("grpc request failed")
		return status.Error(codes.Internal, "internal error")
	}
}

func decodeStruct(in *structpb.Struct, dst any) error {
	b, err := protojson.Marshal(in)
	if err != nil {
		return fmt.Errorf("%w: %v", ledger.ErrInvalidArgument, err)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("%w: %v", ledger.ErrInvalidArgument, err)
	}
	return nil
}

func encodeStruct(v any) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	out := new(structpb.Struct)
	if err := protojson.Unmarshal(b, out); err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return out, nil
}

// handle decodes in into a Req, runs fn and encodes the result.
func handle[Req, Resp any](in *structpb.Struct, fn func(Req) (Resp, error)) (*structpb.Struct, error) {
	var req Req
	if err := decodeStruct(in, &req); err != nil {
		return nil, toStatus(err)
	}
	resp, err := fn(req)
	if err != nil {
		return nil, toStatus(err)
	}
	return encodeStruct(resp)
}

func (s *Server) Login(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return handle(in, func(req api.LoginRequest) (api.LoginResponse, error) {
		return s.h.Login(req), nil
	})
}

func (s *Server) GetGameData(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return handle(in, func(req api.UserRequest) (api.GameDataResponse, error) {
		return s.h.GameData(req.UserID)
	})
}

func (s *Server) EarnPoints(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return handle(in, s.h.EarnPoints)
}

func (s *Server) Draw(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return handle(in, s.h.Draw)
}

func (s *Server) BuyVolume(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return handle(in, s.h.BuyVolume)
}

func (s *Server) EquipGem(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return handle(in, s.h.EquipGem)
}

func (s *Server) ExtractGem(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return handle(in, s.h.ExtractGem)
}
