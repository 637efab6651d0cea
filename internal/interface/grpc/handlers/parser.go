package handlers

import (
	"context"

	ledgerv1 "github.com/arkade-os/ledgerd/api-spec/ledger/v1"
	"github.com/arkade-os/ledgerd/internal/core/domain"
	"github.com/arkade-os/ledgerd/pkg/errors"
	"google.golang.org/grpc/metadata"
)

func parseCaller(ctx context.Context) (domain.AccountId, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return domain.AccountId{}, errors.MISSING_CALLER.New("missing request metadata")
	}
	values := md.Get(ledgerv1.CallerHeader)
	if len(values) <= 0 || len(values[0]) <= 0 {
		return domain.AccountId{}, errors.MISSING_CALLER.New(
			"missing %s header", ledgerv1.CallerHeader,
		)
	}
	return parseAccountId(ledgerv1.CallerHeader, values[0])
}

func parseAccountId(field, value string) (domain.AccountId, error) {
	var id domain.AccountId
	if len(value) <= 0 {
		return id, errors.INVALID_ACCOUNT_ID.New("missing %s", field).
			WithMetadata(errors.InvalidAccountIdMetadata{Field: field, Value: value})
	}
	if err := id.FromString(value); err != nil {
		return id, errors.INVALID_ACCOUNT_ID.Wrap(err).
			WithMetadata(errors.InvalidAccountIdMetadata{Field: field, Value: value})
	}
	return id, nil
}

// parseRoles maps every empty or missing role to nil, which the ledger writes
// as the sentinel id.
func parseRoles(roles *ledgerv1.Roles) (domain.RoleUpdate, error) {
	var update domain.RoleUpdate
	if roles == nil {
		return update, nil
	}

	fields := []struct {
		name  string
		value string
		dest  **domain.AccountId
	}{
		{"manager", roles.Manager, &update.Manager},
		{"reserve", roles.Reserve, &update.Reserve},
		{"freeze", roles.Freeze, &update.Freeze},
		{"clawback", roles.Clawback, &update.Clawback},
	}
	for _, f := range fields {
		if len(f.value) <= 0 {
			continue
		}
		id, err := parseAccountId(f.name, f.value)
		if err != nil {
			return update, err
		}
		*f.dest = &id
	}
	return update, nil
}

func parseAssetParams(req *ledgerv1.CreateAssetRequest) (domain.AssetParams, error) {
	params := domain.AssetParams{
		Name:          req.Name,
		UnitName:      req.UnitName,
		Total:         req.Total,
		Decimals:      req.Decimals,
		DefaultFrozen: req.DefaultFrozen,
		Url:           req.Url,
	}
	if len(req.MetadataHash) > 0 {
		if err := params.MetadataHash.FromString(req.MetadataHash); err != nil {
			return params, errors.INVALID_ASSET_PARAMS.Wrap(err).
				WithMetadata(errors.InvalidAssetParamsMetadata{
					Field: "metadata_hash",
					Value: req.MetadataHash,
				})
		}
	}
	return params, nil
}

func toAsset(ledger *domain.Ledger) *ledgerv1.Asset {
	return &ledgerv1.Asset{
		Id:            ledger.Asset.Id.String(),
		Creator:       ledger.Asset.Creator.String(),
		Name:          ledger.Asset.Name,
		UnitName:      ledger.Asset.UnitName,
		Total:         ledger.Asset.Total,
		Decimals:      ledger.Asset.Decimals,
		DefaultFrozen: ledger.Asset.DefaultFrozen,
		Url:           ledger.Asset.Url,
		MetadataHash:  ledger.Asset.MetadataHash.String(),
		Manager:       ledger.Roles.Manager.String(),
		Reserve:       ledger.Roles.Reserve.String(),
		Freeze:        ledger.Roles.Freeze.String(),
		Clawback:      ledger.Roles.Clawback.String(),
	}
}

func toAccount(account domain.Account) *ledgerv1.Account {
	return &ledgerv1.Account{
		Id:      account.Id.String(),
		Balance: account.Balance,
		OptedIn: account.OptedIn,
		Frozen:  account.Frozen,
	}
}

type accountList []domain.Account

func (l accountList) toProto() []*ledgerv1.Account {
	list := make([]*ledgerv1.Account, 0, len(l))
	for _, account := range l {
		list = append(list, toAccount(account))
	}
	return list
}

type eventList []domain.Event

func (l eventList) toProto() []*ledgerv1.Event {
	list := make([]*ledgerv1.Event, 0, len(l))
	for _, event := range l {
		if e := toEvent(event); e != nil {
			list = append(list, e)
		}
	}
	return list
}

// toEvent returns nil for unknown event types.
func toEvent(event domain.Event) *ledgerv1.Event {
	accounts := make([]string, 0, len(event.Accounts()))
	for _, id := range event.Accounts() {
		accounts = append(accounts, id.String())
	}

	e := &ledgerv1.Event{
		Type:     event.GetType().String(),
		AssetId:  event.GetAssetId(),
		Accounts: accounts,
	}

	switch ev := event.(type) {
	case domain.AssetCreated:
		e.Timestamp = ev.Timestamp
		e.Creation = &ledgerv1.CreationEvent{
			AssetName: ev.AssetName,
			Creator:   ev.Creator.String(),
			Total:     ev.Total,
		}
	case domain.Transfer:
		e.Timestamp = ev.Timestamp
		e.Transfer = &ledgerv1.TransferEvent{
			Sender:   ev.Sender.String(),
			Receiver: ev.Receiver.String(),
			Amount:   ev.Amount,
		}
	case domain.OptIn:
		e.Timestamp = ev.Timestamp
		e.OptIn = &ledgerv1.AccountEvent{Account: ev.Account.String()}
	case domain.OptOut:
		e.Timestamp = ev.Timestamp
		e.OptOut = &ledgerv1.AccountEvent{Account: ev.Account.String()}
	case domain.Freeze:
		e.Timestamp = ev.Timestamp
		e.Freeze = &ledgerv1.FreezeEvent{
			Account:  ev.Account.String(),
			FreezeId: ev.FreezeId.String(),
			Freeze:   ev.Freeze,
		}
	case domain.Modify:
		e.Timestamp = ev.Timestamp
		e.Modify = &ledgerv1.ModifyEvent{
			ManagerId:  ev.ManagerId.String(),
			ReserveId:  ev.ReserveId.String(),
			FreezeId:   ev.FreezeId.String(),
			ClawbackId: ev.ClawbackId.String(),
		}
	case domain.Revoke:
		e.Timestamp = ev.Timestamp
		e.Revoke = &ledgerv1.RevokeEvent{
			From:     ev.From.String(),
			Clawback: ev.Clawback.String(),
			Amount:   ev.Amount,
		}
	case domain.Destruction:
		e.Timestamp = ev.Timestamp
		e.Destruction = &ledgerv1.DestructionEvent{Destroyer: ev.Destroyer.String()}
	default:
		return nil
	}
	return e
}

// eventTopics are the topics a stream listener can match an event with: its
// type name and the ids of the accounts involved.
func eventTopics(event *ledgerv1.Event) []string {
	topics := make([]string, 0, len(event.Accounts)+1)
	topics = append(topics, event.Type)
	return append(topics, event.Accounts...)
}
