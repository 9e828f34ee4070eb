package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/joseph-ayodele/legal-docify/internal/common"
	"github.com/joseph-ayodele/legal-docify/internal/entity"
)

// CodecName is the gRPC content-subtype the service speaks. Messages are
// plain JSON, so no generated protobuf types are involved.
const CodecName = "json"

const (
	ServiceName            = "docify.v1.DocifyService"
	ProcessDocumentsMethod = "/" + ServiceName + "/ProcessDocuments"
	requestIDHeader        = "x-request-id"
)

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (jsonCodec) Name() string                       { return CodecName }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// ProcessDocumentsRequest is the gRPC request body.
type ProcessDocumentsRequest struct {
	Documents []entity.RawDocument `json:"documents"`
}

// DocifyServer is the server API for docify.v1.DocifyService.
type DocifyServer interface {
	ProcessDocuments(ctx context.Context, req *ProcessDocumentsRequest) (*entity.SummaryResult, error)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DocifyServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ProcessDocuments", Handler: processDocumentsHandler},
	},
	Streams: []grpc.StreamDesc{},
}

func processDocumentsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ProcessDocumentsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DocifyServer).ProcessDocuments(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ProcessDocumentsMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DocifyServer).ProcessDocuments(ctx, req.(*ProcessDocumentsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

type grpcHandler struct {
	svc *Service
}

func (h *grpcHandler) ProcessDocuments(ctx context.Context, req *ProcessDocumentsRequest) (*entity.SummaryResult, error) {
	res, err := h.svc.ProcessDocuments(ctx, req.Documents)
	if err != nil {
		return nil, common.GRPCStatus(err)
	}
	return res, nil
}

// NewGRPCServer returns a server with the docify service and the standard
// health service registered. The docify service has no proto descriptor (it
// speaks the json codec only), so server reflection is not offered.
func NewGRPCServer(svc *Service, logger *slog.Logger) *grpc.Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := grpc.NewServer(grpc.ChainUnaryInterceptor(requestIDInterceptor(logger)))
	s.RegisterService(&serviceDesc, &grpcHandler{svc: svc})

	hs := health.NewServer()
	healthpb.RegisterHealthServer(s, hs)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	return s
}

// requestIDInterceptor adopts an incoming x-request-id, else mints one, and
// logs each call.
func requestIDInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if ids := md.Get(requestIDHeader); len(ids) > 0 && ids[0] != "" {
				ctx = common.WithRequestID(ctx, ids[0])
			}
		}
		ctx, rid := common.EnsureRequestID(ctx)
		start := time.Now()
		resp, err := handler(ctx, req)
		logger.Info("grpc.call",
			"req_id", rid,
			"method", info.FullMethod,
			"code", status.Code(err).String(),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return resp, err
	}
}

// ProcessDocumentsRPC is the client side of ProcessDocuments.
func ProcessDocumentsRPC(ctx context.Context, conn grpc.ClientConnInterface, docs []entity.RawDocument) (*entity.SummaryResult, error) {
	out := new(entity.SummaryResult)
	req := &ProcessDocumentsRequest{Documents: docs}
	if err := conn.Invoke(ctx, ProcessDocumentsMethod, req, out, grpc.CallContentSubtype(CodecName)); err != nil {
		return nil, err
	}
	return out, nil
}
