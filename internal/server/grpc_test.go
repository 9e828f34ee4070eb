package server

import (
	"context"
	"errors"
	"net"
	"strings"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/joseph-ayodele/legal-docify/internal/core/llm/llmtest"
	"github.com/joseph-ayodele/legal-docify/internal/entity"
)

func dialTestServer(t *testing.T, svc *Service) *grpc.ClientConn {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	srv := NewGRPCServer(svc, quietLogger())
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("grpc.NewClient() error = %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestProcessDocumentsRPC(t *testing.T) {
	svc, fake := newTestService(nil, llmtest.Reply{Text: "S"}, llmtest.Reply{Text: metadataReply})
	conn := dialTestServer(t, svc)

	res, err := ProcessDocumentsRPC(context.Background(), conn, helloWorld())
	if err != nil {
		t.Fatalf("ProcessDocumentsRPC() error = %v", err)
	}
	if res.Summary != "S" || !strings.HasPrefix(res.Metadata, "Key Issues:\n- A") {
		t.Errorf("result = %+v", res)
	}
	if calls := fake.Calls(); len(calls) != 2 || !strings.Contains(calls[0].User, "Hello world") {
		t.Errorf("calls = %+v", calls)
	}
}

func TestProcessDocumentsRPCErrors(t *testing.T) {
	tests := []struct {
		name     string
		docs     []entity.RawDocument
		replies  []llmtest.Reply
		wantCode codes.Code
	}{
		{"missing doc_id", []entity.RawDocument{{Content: []entity.RawPage{}}}, nil, codes.InvalidArgument},
		{"llm failure", helloWorld(), []llmtest.Reply{{Err: errors.New("401")}}, codes.Internal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(nil, tt.replies...)
			conn := dialTestServer(t, svc)
			_, err := ProcessDocumentsRPC(context.Background(), conn, tt.docs)
			if got := status.Code(err); got != tt.wantCode {
				t.Errorf("code = %v, want %v (err %v)", got, tt.wantCode, err)
			}
		})
	}
}

func TestGRPCHealth(t *testing.T) {
	svc, _ := newTestService(nil)
	conn := dialTestServer(t, svc)

	resp, err := healthpb.NewHealthClient(conn).Check(context.Background(), &healthpb.HealthCheckRequest{Service: ServiceName})
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		t.Errorf("status = %v", resp.GetStatus())
	}
}

func TestGRPCServerServices(t *testing.T) {
	svc, _ := newTestService(nil)
	info := NewGRPCServer(svc, quietLogger()).GetServiceInfo()

	docify, ok := info[ServiceName]
	if !ok {
		t.Fatalf("services = %v, missing %s", info, ServiceName)
	}
	if docify.Metadata != nil {
		t.Errorf("Metadata = %v, want none (no proto descriptor is registered)", docify.Metadata)
	}
	if _, ok := info[healthpb.Health_ServiceDesc.ServiceName]; !ok {
		t.Error("health service not registered")
	}
	for name := range info {
		if strings.HasPrefix(name, "grpc.reflection.") {
			t.Errorf("reflection service %s registered without descriptors", name)
		}
	}
}
