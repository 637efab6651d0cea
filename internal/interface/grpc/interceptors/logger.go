package interceptors

import (
	"context"
	"errors"

	ledgererrors "github.com/arkade-os/ledgerd/pkg/errors"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
)

func unaryLogger(
	ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler,
) (any, error) {
	log.Debugf("gRPC method: %s", info.FullMethod)
	resp, err := handler(ctx, req)
	logInternalError(ctx, info.FullMethod, err)
	return resp, err
}

func streamLogger(
	srv any, stream grpc.ServerStream,
	info *grpc.StreamServerInfo, handler grpc.StreamHandler,
) error {
	log.Debugf("gRPC method: %s", info.FullMethod)
	err := handler(srv, stream)
	logInternalError(stream.Context(), info.FullMethod, err)
	return err
}

// only internal errors are logged, the others are expected rejections.
func logInternalError(ctx context.Context, method string, err error) {
	if err == nil {
		return
	}
	var structuredErr ledgererrors.Error
	if !errors.As(err, &structuredErr) {
		return
	}
	if structuredErr.Code() == ledgererrors.INTERNAL_ERROR.Code {
		structuredErr.Log().WithContext(ctx).WithField("method", method).
			Error(structuredErr.Error())
	}
}
