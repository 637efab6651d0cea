package interceptors

import (
	"context"
	"fmt"
	"testing"

	ledgererrors "github.com/arkade-os/ledgerd/pkg/errors"
	"github.com/stretchr/testify/require"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestErrorConverter(t *testing.T) {
	info := &grpc.UnaryServerInfo{FullMethod: "/ledger.v1.LedgerService/Transfer"}

	t.Run("structured error", func(t *testing.T) {
		_, err := errorConverter(
			context.Background(), nil, info,
			func(context.Context, any) (any, error) {
				return nil, ledgererrors.NOT_OPTED_IN.New("receiver not opted in").
					WithMetadata(ledgererrors.AccountMetadata{Account: "bb"})
			},
		)
		require.Error(t, err)
		require.True(t, ledgererrors.NOT_OPTED_IN.Is(err))

		st, ok := status.FromError(err)
		require.True(t, ok)
		require.Equal(t, codes.FailedPrecondition, st.Code())
		require.Contains(t, st.Message(), "NOT_OPTED_IN")

		details := st.Details()
		require.Len(t, details, 1)
		errInfo, ok := details[0].(*errdetails.ErrorInfo)
		require.True(t, ok)
		require.Equal(t, "NOT_OPTED_IN", errInfo.Reason)
		require.Equal(t, errorDomain, errInfo.Domain)
		require.Equal(t, "bb", errInfo.Metadata["account"])
		require.Equal(t, "5", errInfo.Metadata["code"])
	})

	t.Run("plain error", func(t *testing.T) {
		plain := fmt.Errorf("boom")
		_, err := errorConverter(
			context.Background(), nil, info,
			func(context.Context, any) (any, error) { return nil, plain },
		)
		require.Equal(t, plain, err)
	})

	t.Run("no error", func(t *testing.T) {
		resp, err := errorConverter(
			context.Background(), nil, info,
			func(context.Context, any) (any, error) { return "ok", nil },
		)
		require.NoError(t, err)
		require.Equal(t, "ok", resp)
	})
}

func TestPanicRecovery(t *testing.T) {
	t.Run("unary", func(t *testing.T) {
		interceptor := unaryPanicRecoveryInterceptor()
		resp, err := interceptor(
			context.Background(), nil,
			&grpc.UnaryServerInfo{FullMethod: "/ledger.v1.LedgerService/OptIn"},
			func(context.Context, any) (any, error) { panic("unexpected") },
		)
		require.Nil(t, resp)
		require.True(t, ledgererrors.INTERNAL_ERROR.Is(err))

		st, ok := status.FromError(toGRPCError(err))
		require.True(t, ok)
		require.Equal(t, codes.Internal, st.Code())
	})

	t.Run("stream", func(t *testing.T) {
		interceptor := streamPanicRecoveryInterceptor()
		err := interceptor(
			nil, &testServerStream{ctx: context.Background()},
			&grpc.StreamServerInfo{FullMethod: "/ledger.v1.LedgerService/GetEventStream"},
			func(any, grpc.ServerStream) error { panic("unexpected") },
		)
		require.True(t, ledgererrors.INTERNAL_ERROR.Is(err))
	})
}
