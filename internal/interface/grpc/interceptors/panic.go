package interceptors

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/arkade-os/ledgerd/pkg/errors"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
)

// recoveredPanic turns the value recovered from a panicking handler into an
// INTERNAL_ERROR, so that the server keeps running and the client gets a
// generic message.
func recoveredPanic(method string, r any) error {
	log.WithField("method", method).Errorf("recovered from panic: %v", r)
	log.Debugf("stack trace: %s", debug.Stack())
	return errors.INTERNAL_ERROR.New("something went wrong").
		WithMetadata(map[string]any{"method": method, "panic": fmt.Sprintf("%v", r)})
}

func unaryPanicRecoveryInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context, req any,
		info *grpc.UnaryServerInfo, handler grpc.UnaryHandler,
	) (resp any, err error) {
		defer func() {
			if r := recover(); r != nil {
				resp, err = nil, recoveredPanic(info.FullMethod, r)
			}
		}()

		return handler(ctx, req)
	}
}

func streamPanicRecoveryInterceptor() grpc.StreamServerInterceptor {
	return func(
		srv any, stream grpc.ServerStream,
		info *grpc.StreamServerInfo, handler grpc.StreamHandler,
	) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = recoveredPanic(info.FullMethod, r)
			}
		}()

		return handler(srv, stream)
	}
}
