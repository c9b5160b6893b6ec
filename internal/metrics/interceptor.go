package metrics

import (
	"context"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

func UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		observeRPC(info.FullMethod, start, err)
		return resp, err
	}
}

// StreamServerInterceptor records a stream once it ends, e.g. Health/Watch.
func StreamServerInterceptor() grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		start := time.Now()
		err := handler(srv, ss)
		observeRPC(info.FullMethod, start, err)
		return err
	}
}

func observeRPC(fullMethod string, start time.Time, err error) {
	service, method := splitMethodName(fullMethod)
	GRPCRequestsTotal.WithLabelValues(service, method, status.Code(err).String()).Inc()
	GRPCRequestDuration.WithLabelValues(service, method).Observe(time.Since(start).Seconds())
}

func splitMethodName(fullMethod string) (string, string) {
	if fullMethod == "" {
		return "unknown", "unknown"
	}
	fullMethod = strings.TrimPrefix(fullMethod, "/")
	if i := strings.Index(fullMethod, "/"); i >= 0 {
		return fullMethod[:i], fullMethod[i+1:]
	}
	return "unknown", fullMethod
}
