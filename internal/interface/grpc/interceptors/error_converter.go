package interceptors

import (
	"context"
	"errors"
	"fmt"

	ledgererrors "github.com/arkade-os/ledgerd/pkg/errors"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

const errorDomain = "ledgerd"

// gRPCError is a wrapper implementing GRPCStatus method for errors.Error
// the grpc server will use this to return the associated status error with an
// ErrorInfo detail carrying the error name, code and metadata.
type gRPCError struct {
	err ledgererrors.Error
}

func (e gRPCError) Error() string {
	return e.err.Error()
}

func (e gRPCError) Unwrap() error {
	return e.err
}

func (e gRPCError) GRPCStatus() *status.Status {
	st := status.New(e.err.GrpcCode(), e.err.Error())

	metadata := e.err.Metadata()
	metadata["code"] = fmt.Sprintf("%d", e.err.Code())

	stWithDetails, err := st.WithDetails(&errdetails.ErrorInfo{
		Reason:   e.err.CodeName(),
		Domain:   errorDomain,
		Metadata: metadata,
	})
	if err != nil {
		return st
	}
	return stWithDetails
}

func toGRPCError(err error) error {
	if err == nil {
		return nil
	}
	var structuredErr ledgererrors.Error
	if errors.As(err, &structuredErr) {
		return gRPCError{structuredErr}
	}
	return err
}

func errorConverter(
	ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler,
) (any, error) {
	resp, err := handler(ctx, req)
	if err != nil {
		return nil, toGRPCError(err)
	}
	return resp, nil
}

func streamErrorConverter(
	srv any, stream grpc.ServerStream,
	info *grpc.StreamServerInfo, handler grpc.StreamHandler,
) error {
	return toGRPCError(handler(srv, stream))
}
