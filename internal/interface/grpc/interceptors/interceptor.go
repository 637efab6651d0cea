package interceptors

import (
	middleware "github.com/grpc-ecosystem/go-grpc-middleware"
	"google.golang.org/grpc"
)

// UnaryInterceptor returns the chain of unary interceptors of the ledger
// server. The error converter runs outermost so that every error, including
// those produced by the other interceptors, reaches the client with details.
func UnaryInterceptor(readiness *ReadinessService) grpc.ServerOption {
	return grpc.UnaryInterceptor(
		middleware.ChainUnaryServer(
			errorConverter,
			unaryLogger,
			unaryPanicRecoveryInterceptor(),
			unaryReadinessHandler(readiness),
		),
	)
}

// StreamInterceptor returns the chain of stream interceptors of the ledger
// server.
func StreamInterceptor(readiness *ReadinessService) grpc.ServerOption {
	return grpc.StreamInterceptor(
		middleware.ChainStreamServer(
			streamErrorConverter,
			streamLogger,
			streamPanicRecoveryInterceptor(),
			streamReadinessHandler(readiness),
		),
	)
}
