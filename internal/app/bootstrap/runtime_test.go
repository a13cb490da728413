package bootstrap

import (
	"context"
	"fmt"
	"net"
	"path/filepath"
	"strconv"
	"testing"
)

func freePort(t *testing.T) int {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("reserve port: %v", err)
	}
	port := lis.Addr().(*net.TCPAddr).Port
	_ = lis.Close()
	return port
}

// The worker process shares NewRuntime with the API process but never serves
// gRPC or HTTP, so construction must not bind any listener.
func TestNewRuntimeDoesNotBindPorts(t *testing.T) {
	grpcPort := freePort(t)
	httpPort := freePort(t)
	t.Setenv("GRPC_PORT", strconv.Itoa(grpcPort))
	t.Setenv("HTTP_PORT", strconv.Itoa(httpPort))
	t.Setenv("REDIS_URL", "")
	t.Setenv("KAFKA_BROKERS", "")

	if _, err := NewRuntime(context.Background(), filepath.Join(t.TempDir(), "missing.yaml")); err != nil {
		t.Fatalf("runtime construction failed: %v", err)
	}

	for _, port := range []int{grpcPort, httpPort} {
		lis, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		if err != nil {
			t.Fatalf("port %d bound during construction: %v", port, err)
		}
		_ = lis.Close()
	}
}
