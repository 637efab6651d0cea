package ledgerv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

const (
	ServiceName = "ledger.v1.LedgerService"

	// CallerHeader is the metadata key carrying the hex id of the caller.
	CallerHeader = "x-caller-id"

	LedgerService_CreateAsset_FullMethodName    = "/ledger.v1.LedgerService/CreateAsset"
	LedgerService_Transfer_FullMethodName       = "/ledger.v1.LedgerService/Transfer"
	LedgerService_OptIn_FullMethodName          = "/ledger.v1.LedgerService/OptIn"
	LedgerService_OptOut_FullMethodName         = "/ledger.v1.LedgerService/OptOut"
	LedgerService_Freeze_FullMethodName         = "/ledger.v1.LedgerService/Freeze"
	LedgerService_ModifyAsset_FullMethodName    = "/ledger.v1.LedgerService/ModifyAsset"
	LedgerService_GetAsset_FullMethodName       = "/ledger.v1.LedgerService/GetAsset"
	LedgerService_GetAccount_FullMethodName     = "/ledger.v1.LedgerService/GetAccount"
	LedgerService_ListAccounts_FullMethodName   = "/ledger.v1.LedgerService/ListAccounts"
	LedgerService_ListEvents_FullMethodName     = "/ledger.v1.LedgerService/ListEvents"
	LedgerService_GetEventStream_FullMethodName = "/ledger.v1.LedgerService/GetEventStream"
)

// WithCaller attaches the caller id to the outgoing metadata of ctx.
func WithCaller(ctx context.Context, caller string) context.Context {
	return metadata.AppendToOutgoingContext(ctx, CallerHeader, caller)
}

type LedgerServiceServer interface {
	CreateAsset(context.Context, *CreateAssetRequest) (*CreateAssetResponse, error)
	Transfer(context.Context, *TransferRequest) (*TransferResponse, error)
	OptIn(context.Context, *OptInRequest) (*OptInResponse, error)
	OptOut(context.Context, *OptOutRequest) (*OptOutResponse, error)
	Freeze(context.Context, *FreezeRequest) (*FreezeResponse, error)
	ModifyAsset(context.Context, *ModifyAssetRequest) (*ModifyAssetResponse, error)
	GetAsset(context.Context, *GetAssetRequest) (*GetAssetResponse, error)
	GetAccount(context.Context, *GetAccountRequest) (*GetAccountResponse, error)
	ListAccounts(context.Context, *ListAccountsRequest) (*ListAccountsResponse, error)
	ListEvents(context.Context, *ListEventsRequest) (*ListEventsResponse, error)
	GetEventStream(*GetEventStreamRequest, LedgerService_GetEventStreamServer) error
}

type LedgerService_GetEventStreamServer = grpc.ServerStreamingServer[GetEventStreamResponse]

type LedgerService_GetEventStreamClient = grpc.ServerStreamingClient[GetEventStreamResponse]

func RegisterLedgerServiceServer(s grpc.ServiceRegistrar, srv LedgerServiceServer) {
	s.RegisterService(&LedgerService_ServiceDesc, srv)
}

var LedgerService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LedgerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateAsset",
			Handler: unaryHandler(
				LedgerService_CreateAsset_FullMethodName, LedgerServiceServer.CreateAsset,
			),
		},
		{
			MethodName: "Transfer",
			Handler: unaryHandler(
				LedgerService_Transfer_FullMethodName, LedgerServiceServer.Transfer,
			),
		},
		{
			MethodName: "OptIn",
			Handler:    unaryHandler(LedgerService_OptIn_FullMethodName, LedgerServiceServer.OptIn),
		},
		{
			MethodName: "OptOut",
			Handler: unaryHandler(
				LedgerService_OptOut_FullMethodName, LedgerServiceServer.OptOut,
			),
		},
		{
			MethodName: "Freeze",
			Handler: unaryHandler(
				LedgerService_Freeze_FullMethodName, LedgerServiceServer.Freeze,
			),
		},
		{
			MethodName: "ModifyAsset",
			Handler: unaryHandler(
				LedgerService_ModifyAsset_FullMethodName, LedgerServiceServer.ModifyAsset,
			),
		},
		{
			MethodName: "GetAsset",
			Handler: unaryHandler(
				LedgerService_GetAsset_FullMethodName, LedgerServiceServer.GetAsset,
			),
		},
		{
			MethodName: "GetAccount",
			Handler: unaryHandler(
				LedgerService_GetAccount_FullMethodName, LedgerServiceServer.GetAccount,
			),
		},
		{
			MethodName: "ListAccounts",
			Handler: unaryHandler(
				LedgerService_ListAccounts_FullMethodName, LedgerServiceServer.ListAccounts,
			),
		},
		{
			MethodName: "ListEvents",
			Handler: unaryHandler(
				LedgerService_ListEvents_FullMethodName, LedgerServiceServer.ListEvents,
			),
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "GetEventStream",
			Handler:       getEventStreamHandler,
			ServerStreams: true,
		},
	},
	Metadata: "ledger/v1/service.go",
}

func unaryHandler[Req, Resp any](
	fullMethod string, call func(LedgerServiceServer, context.Context, *Req) (*Resp, error),
) grpc.MethodHandler {
	return func(
		srv any, ctx context.Context, dec func(any) error,
		interceptor grpc.UnaryServerInterceptor,
	) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(LedgerServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(LedgerServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func getEventStreamHandler(srv any, stream grpc.ServerStream) error {
	in := new(GetEventStreamRequest)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(LedgerServiceServer).GetEventStream(
		in, &grpc.GenericServerStream[GetEventStreamRequest, GetEventStreamResponse]{
			ServerStream: stream,
		},
	)
}

type LedgerServiceClient interface {
	CreateAsset(
		ctx context.Context, in *CreateAssetRequest, opts ...grpc.CallOption,
	) (*CreateAssetResponse, error)
	Transfer(
		ctx context.Context, in *TransferRequest, opts ...grpc.CallOption,
	) (*TransferResponse, error)
	OptIn(ctx context.Context, in *OptInRequest, opts ...grpc.CallOption) (*OptInResponse, error)
	OptOut(
		ctx context.Context, in *OptOutRequest, opts ...grpc.CallOption,
	) (*OptOutResponse, error)
	Freeze(
		ctx context.Context, in *FreezeRequest, opts ...grpc.CallOption,
	) (*FreezeResponse, error)
	ModifyAsset(
		ctx context.Context, in *ModifyAssetRequest, opts ...grpc.CallOption,
	) (*ModifyAssetResponse, error)
	GetAsset(
		ctx context.Context, in *GetAssetRequest, opts ...grpc.CallOption,
	) (*GetAssetResponse, error)
	GetAccount(
		ctx context.Context, in *GetAccountRequest, opts ...grpc.CallOption,
	) (*GetAccountResponse, error)
	ListAccounts(
		ctx context.Context, in *ListAccountsRequest, opts ...grpc.CallOption,
	) (*ListAccountsResponse, error)
	ListEvents(
		ctx context.Context, in *ListEventsRequest, opts ...grpc.CallOption,
	) (*ListEventsResponse, error)
	GetEventStream(
		ctx context.Context, in *GetEventStreamRequest, opts ...grpc.CallOption,
	) (LedgerService_GetEventStreamClient, error)
}

type ledgerServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewLedgerServiceClient(cc grpc.ClientConnInterface) LedgerServiceClient {
	return &ledgerServiceClient{cc}
}

func invoke[Resp any](
	ctx context.Context, cc grpc.ClientConnInterface, method string, in any,
	opts []grpc.CallOption,
) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{CallOption()}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerServiceClient) CreateAsset(
	ctx context.Context, in *CreateAssetRequest, opts ...grpc.CallOption,
) (*CreateAssetResponse, error) {
	return invoke[CreateAssetResponse](ctx, c.cc, LedgerService_CreateAsset_FullMethodName, in, opts)
}

func (c *ledgerServiceClient) Transfer(
	ctx context.Context, in *TransferRequest, opts ...grpc.CallOption,
) (*TransferResponse, error) {
	return invoke[TransferResponse](ctx, c.cc, LedgerService_Transfer_FullMethodName, in, opts)
}

func (c *ledgerServiceClient) OptIn(
	ctx context.Context, in *OptInRequest, opts ...grpc.CallOption,
) (*OptInResponse, error) {
	return invoke[OptInResponse](ctx, c.cc, LedgerService_OptIn_FullMethodName, in, opts)
}

func (c *ledgerServiceClient) OptOut(
	ctx context.Context, in *OptOutRequest, opts ...grpc.CallOption,
) (*OptOutResponse, error) {
	return invoke[OptOutResponse](ctx, c.cc, LedgerService_OptOut_FullMethodName, in, opts)
}

func (c *ledgerServiceClient) Freeze(
	ctx context.Context, in *FreezeRequest, opts ...grpc.CallOption,
) (*FreezeResponse, error) {
	return invoke[FreezeResponse](ctx, c.cc, LedgerService_Freeze_FullMethodName, in, opts)
}

func (c *ledgerServiceClient) ModifyAsset(
	ctx context.Context, in *ModifyAssetRequest, opts ...grpc.CallOption,
) (*ModifyAssetResponse, error) {
	return invoke[ModifyAssetResponse](ctx, c.cc, LedgerService_ModifyAsset_FullMethodName, in, opts)
}

func (c *ledgerServiceClient) GetAsset(
	ctx context.Context, in *GetAssetRequest, opts ...grpc.CallOption,
) (*GetAssetResponse, error) {
	return invoke[GetAssetResponse](ctx, c.cc, LedgerService_GetAsset_FullMethodName, in, opts)
}

func (c *ledgerServiceClient) GetAccount(
	ctx context.Context, in *GetAccountRequest, opts ...grpc.CallOption,
) (*GetAccountResponse, error) {
	return invoke[GetAccountResponse](ctx, c.cc, LedgerService_GetAccount_FullMethodName, in, opts)
}

func (c *ledgerServiceClient) ListAccounts(
	ctx context.Context, in *ListAccountsRequest, opts ...grpc.CallOption,
) (*ListAccountsResponse, error) {
	return invoke[ListAccountsResponse](
		ctx, c.cc, LedgerService_ListAccounts_FullMethodName, in, opts,
	)
}

func (c *ledgerServiceClient) ListEvents(
	ctx context.Context, in *ListEventsRequest, opts ...grpc.CallOption,
) (*ListEventsResponse, error) {
	return invoke[ListEventsResponse](ctx, c.cc, LedgerService_ListEvents_FullMethodName, in, opts)
}

func (c *ledgerServiceClient) GetEventStream(
	ctx context.Context, in *GetEventStreamRequest, opts ...grpc.CallOption,
) (LedgerService_GetEventStreamClient, error) {
	opts = append([]grpc.CallOption{CallOption()}, opts...)
	stream, err := c.cc.NewStream(
		ctx, &LedgerService_ServiceDesc.Streams[0],
		LedgerService_GetEventStream_FullMethodName, opts...,
	)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[GetEventStreamRequest, GetEventStreamResponse]{
		ClientStream: stream,
	}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}
