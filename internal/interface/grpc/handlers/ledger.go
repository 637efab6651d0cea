package handlers

import (
	"context"
	"time"

	ledgerv1 "github.com/arkade-os/ledgerd/api-spec/ledger/v1"
	"github.com/arkade-os/ledgerd/internal/core/application"
	"github.com/arkade-os/ledgerd/internal/core/domain"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type ledgerHandler struct {
	svc      application.Service
	eventsCh <-chan []domain.Event

	eventsListenerHandler *broker[*ledgerv1.GetEventStreamResponse]

	heartbeat time.Duration
}

func NewLedgerHandler(
	svc application.Service, heartbeat int64,
) ledgerv1.LedgerServiceServer {
	h := &ledgerHandler{
		svc:                   svc,
		eventsCh:              svc.GetEventsChannel(context.Background()),
		eventsListenerHandler: newBroker[*ledgerv1.GetEventStreamResponse](),
		heartbeat:             time.Duration(heartbeat) * time.Second,
	}

	go h.listenToEvents()

	return h
}

func (h *ledgerHandler) CreateAsset(
	ctx context.Context, req *ledgerv1.CreateAssetRequest,
) (*ledgerv1.CreateAssetResponse, error) {
	caller, err := parseCaller(ctx)
	if err != nil {
		return nil, err
	}
	params, err := parseAssetParams(req)
	if err != nil {
		return nil, err
	}
	roles, err := parseRoles(req.Roles)
	if err != nil {
		return nil, err
	}

	ledger, err := h.svc.CreateAsset(ctx, caller, params, roles)
	if err != nil {
		return nil, err
	}
	return &ledgerv1.CreateAssetResponse{Asset: toAsset(ledger)}, nil
}

func (h *ledgerHandler) Transfer(
	ctx context.Context, req *ledgerv1.TransferRequest,
) (*ledgerv1.TransferResponse, error) {
	caller, err := parseCaller(ctx)
	if err != nil {
		return nil, err
	}
	receiver, err := parseAccountId("receiver", req.Receiver)
	if err != nil {
		return nil, err
	}

	if err := h.svc.Transfer(ctx, caller, receiver, req.Amount); err != nil {
		return nil, err
	}
	return &ledgerv1.TransferResponse{}, nil
}

func (h *ledgerHandler) OptIn(
	ctx context.Context, _ *ledgerv1.OptInRequest,
) (*ledgerv1.OptInResponse, error) {
	caller, err := parseCaller(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.svc.OptIn(ctx, caller); err != nil {
		return nil, err
	}
	return &ledgerv1.OptInResponse{}, nil
}

func (h *ledgerHandler) OptOut(
	ctx context.Context, _ *ledgerv1.OptOutRequest,
) (*ledgerv1.OptOutResponse, error) {
	caller, err := parseCaller(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.svc.OptOut(ctx, caller); err != nil {
		return nil, err
	}
	return &ledgerv1.OptOutResponse{}, nil
}

func (h *ledgerHandler) Freeze(
	ctx context.Context, req *ledgerv1.FreezeRequest,
) (*ledgerv1.FreezeResponse, error) {
	caller, err := parseCaller(ctx)
	if err != nil {
		return nil, err
	}
	account, err := parseAccountId("account", req.Account)
	if err != nil {
		return nil, err
	}

	if err := h.svc.Freeze(ctx, caller, account, req.Freeze); err != nil {
		return nil, err
	}
	return &ledgerv1.FreezeResponse{}, nil
}

func (h *ledgerHandler) ModifyAsset(
	ctx context.Context, req *ledgerv1.ModifyAssetRequest,
) (*ledgerv1.ModifyAssetResponse, error) {
	caller, err := parseCaller(ctx)
	if err != nil {
		return nil, err
	}
	roles, err := parseRoles(req.Roles)
	if err != nil {
		return nil, err
	}

	if err := h.svc.ModifyAsset(ctx, caller, roles); err != nil {
		return nil, err
	}
	return &ledgerv1.ModifyAssetResponse{}, nil
}

func (h *ledgerHandler) GetAsset(
	ctx context.Context, _ *ledgerv1.GetAssetRequest,
) (*ledgerv1.GetAssetResponse, error) {
	ledger, err := h.svc.GetAsset(ctx)
	if err != nil {
		return nil, err
	}
	return &ledgerv1.GetAssetResponse{Asset: toAsset(ledger)}, nil
}

func (h *ledgerHandler) GetAccount(
	ctx context.Context, req *ledgerv1.GetAccountRequest,
) (*ledgerv1.GetAccountResponse, error) {
	id, err := parseAccountId("account", req.Account)
	if err != nil {
		return nil, err
	}

	account, err := h.svc.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ledgerv1.GetAccountResponse{Account: toAccount(*account)}, nil
}

func (h *ledgerHandler) ListAccounts(
	ctx context.Context, _ *ledgerv1.ListAccountsRequest,
) (*ledgerv1.ListAccountsResponse, error) {
	accounts, err := h.svc.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	return &ledgerv1.ListAccountsResponse{Accounts: accountList(accounts).toProto()}, nil
}

func (h *ledgerHandler) ListEvents(
	ctx context.Context, _ *ledgerv1.ListEventsRequest,
) (*ledgerv1.ListEventsResponse, error) {
	events, err := h.svc.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	return &ledgerv1.ListEventsResponse{Events: eventList(events).toProto()}, nil
}

func (h *ledgerHandler) GetEventStream(
	req *ledgerv1.GetEventStreamRequest, stream ledgerv1.LedgerService_GetEventStreamServer,
) error {
	listener := newListener[*ledgerv1.GetEventStreamResponse](uuid.NewString(), req.Topics)

	h.eventsListenerHandler.pushListener(listener)
	defer h.eventsListenerHandler.removeListener(listener.id)

	// create a Timer that will fire after one heartbeat interval
	timer := time.NewTimer(h.heartbeat)
	defer timer.Stop()

	resetTimer := func() {
		if !timer.Stop() {
			// drain if it already fired
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(h.heartbeat)
	}

	for {
		select {
		case <-stream.Context().Done():
			return nil
		case ev := <-listener.ch:
			if err := stream.Send(ev); err != nil {
				return err
			}
			resetTimer()
		case <-timer.C:
			hb := &ledgerv1.GetEventStreamResponse{Heartbeat: &ledgerv1.Heartbeat{}}
			if err := stream.Send(hb); err != nil {
				return err
			}
			resetTimer()
		}
	}
}

func (h *ledgerHandler) listenToEvents() {
	for events := range h.eventsCh {
		if !h.eventsListenerHandler.hasListeners() {
			continue
		}

		for _, event := range eventList(events).toProto() {
			topics := eventTopics(event)
			msg := &ledgerv1.GetEventStreamResponse{Event: event}

			for _, l := range h.eventsListenerHandler.getListenersCopy() {
				if !l.includesAny(topics) {
					continue
				}
				if !l.send(msg) {
					log.Debugf("dropped %s event for listener %s", event.Type, l.id)
				}
			}
		}
	}
}
